package service

import (
	"context"
	"testing"
	"time"

	"clinivoice-be/internal/apperrors"
	"clinivoice-be/internal/dto"
	"clinivoice-be/internal/entity"
	"clinivoice-be/internal/repository/memory"
	"clinivoice-be/pkg/soap"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSOAPFixture uses a generator without a completion provider, which
// always lands on the section-level fallback. Provider behavior itself is
// covered in the soap package tests.
func newSOAPFixture(t *testing.T) (*memory.SessionRepository, ISOAPService) {
	t.Helper()
	repo := memory.NewSessionRepository()
	generator := soap.NewGenerator(nil, 5*time.Second, 800, 0.3, nopLogger{})
	return repo, NewSOAPService(repo, generator, nopLogger{})
}

func seedSession(repo *memory.SessionRepository, status entity.SessionStatus, messages ...entity.ConversationMessage) *entity.ConversationSession {
	session := &entity.ConversationSession{
		Id:        uuid.New(),
		Messages:  messages,
		StartTime: time.Now(),
		Status:    status,
	}
	repo.Save(session)
	return session
}

func TestGenerateUnknownSession(t *testing.T) {
	_, svc := newSOAPFixture(t)

	_, err := svc.Generate(context.Background(), &dto.GenerateSOAPRequest{SessionId: uuid.New()})
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGenerateEmptyConversation(t *testing.T) {
	repo, svc := newSOAPFixture(t)
	session := seedSession(repo, entity.SessionStatusActive)

	_, err := svc.Generate(context.Background(), &dto.GenerateSOAPRequest{SessionId: session.Id})
	assert.ErrorIs(t, err, apperrors.ErrEmptyConversation)
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestGenerateOnActiveSession(t *testing.T) {
	repo, svc := newSOAPFixture(t)
	session := seedSession(repo, entity.SessionStatusActive,
		entity.ConversationMessage{Speaker: entity.SpeakerPatient, Text: "I have back pain", Timestamp: "09:00:00", Confidence: 0.7},
	)

	note, err := svc.Generate(context.Background(), &dto.GenerateSOAPRequest{SessionId: session.Id, PatientName: "Jane Roe"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", note.PatientName)
	assert.Equal(t, session.Id, note.ConversationId)
	assert.Equal(t, string(entity.NoteSourceSectionFallback), note.Source)
	assert.InDelta(t, 0.5, note.ConfidenceScore, 1e-9)
}

func TestGenerateOnCompletedSession(t *testing.T) {
	repo, svc := newSOAPFixture(t)
	session := seedSession(repo, entity.SessionStatusActive,
		entity.ConversationMessage{Speaker: entity.SpeakerDoctor, Text: "How is the pain today?", Timestamp: "09:00:00", Confidence: 0.8},
	)
	_, ok := repo.Complete(session.Id)
	require.True(t, ok)

	note, err := svc.Generate(context.Background(), &dto.GenerateSOAPRequest{SessionId: session.Id})
	require.NoError(t, err)
	assert.Equal(t, "Unknown Patient", note.PatientName)
	assert.Equal(t, "Medical concern discussed", note.ReasonForVisit)
	assert.NotEmpty(t, note.Subjective)
	assert.NotEmpty(t, note.Plan)
}
