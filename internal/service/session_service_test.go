package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"clinivoice-be/internal/apperrors"
	"clinivoice-be/internal/dto"
	"clinivoice-be/internal/repository/memory"
	"clinivoice-be/pkg/soap"
	"clinivoice-be/pkg/voice"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type stubTranscriber struct {
	text       string
	confidence float64
}

func (s stubTranscriber) Transcribe(ctx context.Context, audio []byte) (string, float64) {
	return s.text, s.confidence
}

type failingDecoder struct{}

func (failingDecoder) Decode(data []byte) ([]float64, int, error) {
	return nil, 0, assert.AnError
}

type serviceFixture struct {
	repo    *memory.SessionRepository
	service ISessionService
}

// newFixture wires a session service with a stubbed recognizer. The failing
// decoder forces the zero feature vector, so speaker attribution lands on
// Patient with confidence 0.6.
func newFixture(t *testing.T, transcriber voice.Transcriber) serviceFixture {
	t.Helper()

	repo := memory.NewSessionRepository()
	processor := voice.NewProcessor(
		transcriber,
		failingDecoder{},
		voice.NewExtractor(),
		voice.NewRuleBasedClassifier(),
		nopLogger{},
	)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	svc := NewSessionService(repo, processor, pubSub, nil, nopLogger{})
	return serviceFixture{repo: repo, service: svc}
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t, stubTranscriber{text: "I have a headache", confidence: 0.9})
	ctx := context.Background()

	started, err := f.service.Start(ctx, nil)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, started.SessionId)

	result, err := f.service.SubmitUtterance(ctx, started.SessionId, []byte("audio"))
	require.NoError(t, err)
	require.False(t, result.NoSpeech)
	require.NotNil(t, result.Message)
	assert.Equal(t, "I have a headache", result.Message.Text)
	assert.Equal(t, "Patient", result.Message.Speaker)
	assert.InDelta(t, (0.9+0.6)/2, result.Message.Confidence, 1e-9)

	stopped, err := f.service.Stop(ctx, &dto.StopSessionRequest{SessionId: started.SessionId})
	require.NoError(t, err)
	assert.Equal(t, started.SessionId, stopped.SessionId)
	assert.Equal(t, 1, stopped.MessageCount)
}

func TestStartSessionWithName(t *testing.T) {
	f := newFixture(t, stubTranscriber{})
	ctx := context.Background()

	started, err := f.service.Start(ctx, &dto.StartSessionRequest{SessionName: "Morning intake"})
	require.NoError(t, err)
	assert.Equal(t, "Morning intake", started.SessionName)

	active, err := f.service.ListActiveSessions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, active.Count)
	assert.Equal(t, "Morning intake", active.Sessions[0].SessionName)
}

func TestStopUnknownSession(t *testing.T) {
	f := newFixture(t, stubTranscriber{})

	_, err := f.service.Stop(context.Background(), &dto.StopSessionRequest{SessionId: uuid.New()})
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestStopTwiceFails(t *testing.T) {
	f := newFixture(t, stubTranscriber{})
	ctx := context.Background()

	started, err := f.service.Start(ctx, nil)
	require.NoError(t, err)

	_, err = f.service.Stop(ctx, &dto.StopSessionRequest{SessionId: started.SessionId})
	require.NoError(t, err)

	_, err = f.service.Stop(ctx, &dto.StopSessionRequest{SessionId: started.SessionId})
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestSubmitSilenceDoesNotAppend(t *testing.T) {
	f := newFixture(t, stubTranscriber{text: "", confidence: 0.0})
	ctx := context.Background()

	started, err := f.service.Start(ctx, nil)
	require.NoError(t, err)

	result, err := f.service.SubmitUtterance(ctx, started.SessionId, []byte("silence"))
	require.NoError(t, err)
	assert.True(t, result.NoSpeech)
	assert.Nil(t, result.Message)

	conversation, err := f.service.GetTranscript(ctx, started.SessionId)
	require.NoError(t, err)
	assert.Equal(t, 0, conversation.MessageCount)
}

func TestSubmitAfterStopFails(t *testing.T) {
	f := newFixture(t, stubTranscriber{text: "hello", confidence: 0.8})
	ctx := context.Background()

	started, err := f.service.Start(ctx, nil)
	require.NoError(t, err)
	_, err = f.service.Stop(ctx, &dto.StopSessionRequest{SessionId: started.SessionId})
	require.NoError(t, err)

	_, err = f.service.SubmitUtterance(ctx, started.SessionId, []byte("audio"))
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestSubmitUnknownSession(t *testing.T) {
	f := newFixture(t, stubTranscriber{text: "hello", confidence: 0.8})

	_, err := f.service.SubmitUtterance(context.Background(), uuid.New(), []byte("audio"))
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestGetTranscriptIsReadOnly(t *testing.T) {
	f := newFixture(t, stubTranscriber{text: "my knee hurts", confidence: 0.7})
	ctx := context.Background()

	started, err := f.service.Start(ctx, nil)
	require.NoError(t, err)
	_, err = f.service.SubmitUtterance(ctx, started.SessionId, []byte("audio"))
	require.NoError(t, err)

	first, err := f.service.GetTranscript(ctx, started.SessionId)
	require.NoError(t, err)
	second, err := f.service.GetTranscript(ctx, started.SessionId)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first.Messages, 1)
	assert.Equal(t, "my knee hurts", first.Messages[0].Text)
	assert.Equal(t, "active", first.Status)
}

func TestGetTranscriptUnknownSession(t *testing.T) {
	f := newFixture(t, stubTranscriber{})

	_, err := f.service.GetTranscript(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestConcurrentSubmitAndRead(t *testing.T) {
	f := newFixture(t, stubTranscriber{text: "hello there", confidence: 0.9})
	ctx := context.Background()

	started, err := f.service.Start(ctx, &dto.StartSessionRequest{})
	require.NoError(t, err)

	generator := soap.NewGenerator(nil, time.Second, 800, 0.3, nopLogger{})
	soapSvc := NewSOAPService(f.repo, generator, nopLogger{})

	// Seed one message so note generation has a transcript to work on.
	_, err = f.service.SubmitUtterance(ctx, started.SessionId, []byte("audio"))
	require.NoError(t, err)

	const writes = 50
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			f.service.SubmitUtterance(ctx, started.SessionId, []byte("audio"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			f.service.ListActiveSessions(ctx)
			f.service.GetTranscript(ctx, started.SessionId)
			soapSvc.Generate(ctx, &dto.GenerateSOAPRequest{SessionId: started.SessionId})
		}
	}()
	wg.Wait()

	conversation, err := f.service.GetTranscript(ctx, started.SessionId)
	require.NoError(t, err)
	assert.Equal(t, writes+1, conversation.MessageCount)
}

func TestListActiveSessions(t *testing.T) {
	f := newFixture(t, stubTranscriber{})
	ctx := context.Background()

	a, err := f.service.Start(ctx, nil)
	require.NoError(t, err)
	b, err := f.service.Start(ctx, nil)
	require.NoError(t, err)
	_, err = f.service.Stop(ctx, &dto.StopSessionRequest{SessionId: b.SessionId})
	require.NoError(t, err)

	active, err := f.service.ListActiveSessions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, active.Count)
	assert.Equal(t, a.SessionId, active.Sessions[0].SessionId)
	assert.Equal(t, "active", active.Sessions[0].Status)
}
