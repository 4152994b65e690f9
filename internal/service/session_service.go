package service

import (
	"context"
	"encoding/json"
	"time"

	"clinivoice-be/internal/apperrors"
	"clinivoice-be/internal/dto"
	"clinivoice-be/internal/entity"
	"clinivoice-be/internal/pkg/logger"
	"clinivoice-be/internal/repository/memory"
	"clinivoice-be/pkg/events"
	pkgNats "clinivoice-be/pkg/nats"
	"clinivoice-be/pkg/voice"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	// TopicMessageAppended carries live transcript updates to the broadcast consumer.
	TopicMessageAppended = "transcript.message.appended"

	messageTimestampFormat = "15:04:05"
)

// SubmitResult distinguishes an appended message from a silent submission
// without overloading the error return.
type SubmitResult struct {
	Message  *dto.SubmitUtteranceResponse
	NoSpeech bool
}

type ISessionService interface {
	Start(ctx context.Context, request *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	Stop(ctx context.Context, request *dto.StopSessionRequest) (*dto.StopSessionResponse, error)
	SubmitUtterance(ctx context.Context, sessionId uuid.UUID, audio []byte) (*SubmitResult, error)
	GetTranscript(ctx context.Context, sessionId uuid.UUID) (*dto.GetConversationResponse, error)
	ListActiveSessions(ctx context.Context) (*dto.ActiveSessionsResponse, error)
}

type sessionService struct {
	sessionRepo   *memory.SessionRepository
	processor     *voice.Processor
	pubSub        *gochannel.GoChannel
	natsPublisher *pkgNats.Publisher // nil when NATS is not configured
	logger        logger.ILogger
}

func NewSessionService(
	sessionRepo *memory.SessionRepository,
	processor *voice.Processor,
	pubSub *gochannel.GoChannel,
	natsPublisher *pkgNats.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		sessionRepo:   sessionRepo,
		processor:     processor,
		pubSub:        pubSub,
		natsPublisher: natsPublisher,
		logger:        log,
	}
}

func (s *sessionService) Start(ctx context.Context, request *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	var name string
	if request != nil {
		name = request.SessionName
	}

	session := &entity.ConversationSession{
		Id:        uuid.New(),
		Name:      name,
		Messages:  []entity.ConversationMessage{},
		StartTime: time.Now(),
		Status:    entity.SessionStatusActive,
	}
	s.sessionRepo.Save(session)

	s.publishEvent(ctx, events.NewSessionStartedEvent(session.Id, session.StartTime))
	s.logger.Info("SessionService", "Started new session", map[string]interface{}{"session_id": session.Id})

	return &dto.StartSessionResponse{SessionId: session.Id, SessionName: session.Name}, nil
}

func (s *sessionService) Stop(ctx context.Context, request *dto.StopSessionRequest) (*dto.StopSessionResponse, error) {
	session, ok := s.sessionRepo.Complete(request.SessionId)
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}

	s.publishEvent(ctx, events.NewSessionCompletedEvent(session.Id, len(session.Messages)))
	s.logger.Info("SessionService", "Stopped session", map[string]interface{}{
		"session_id":    session.Id,
		"message_count": len(session.Messages),
	})

	return &dto.StopSessionResponse{
		SessionId:    session.Id,
		MessageCount: len(session.Messages),
	}, nil
}

func (s *sessionService) SubmitUtterance(ctx context.Context, sessionId uuid.UUID, audio []byte) (*SubmitResult, error) {
	session, found := s.sessionRepo.Get(sessionId)
	if !found || session.Status != entity.SessionStatusActive {
		return nil, apperrors.ErrSessionNotFound
	}

	utterance := s.processor.Process(ctx, audio)
	if utterance.NoSpeech {
		return &SubmitResult{NoSpeech: true}, nil
	}

	msg := entity.ConversationMessage{
		Speaker:    utterance.Speaker,
		Text:       utterance.Text,
		Timestamp:  time.Now().Format(messageTimestampFormat),
		Confidence: utterance.Confidence,
	}
	if !s.sessionRepo.Append(sessionId, msg) {
		// The session was stopped between lookup and append.
		return nil, apperrors.ErrSessionNotFound
	}

	s.publishMessageAppended(sessionId, msg)
	s.logger.Info("SessionService", "Processed voice", map[string]interface{}{
		"session_id": sessionId,
		"speaker":    msg.Speaker,
		"confidence": msg.Confidence,
	})

	return &SubmitResult{
		Message: &dto.SubmitUtteranceResponse{
			Speaker:    string(msg.Speaker),
			Text:       msg.Text,
			Timestamp:  msg.Timestamp,
			Confidence: msg.Confidence,
		},
	}, nil
}

func (s *sessionService) GetTranscript(ctx context.Context, sessionId uuid.UUID) (*dto.GetConversationResponse, error) {
	session, found := s.sessionRepo.Get(sessionId)
	if !found {
		return nil, apperrors.ErrSessionNotFound
	}
	messages, _ := s.sessionRepo.Transcript(sessionId)

	responses := make([]dto.ConversationMessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = dto.ToConversationMessageResponse(msg)
	}

	return &dto.GetConversationResponse{
		SessionId:    sessionId,
		Status:       string(session.Status),
		Messages:     responses,
		MessageCount: len(responses),
	}, nil
}

func (s *sessionService) ListActiveSessions(ctx context.Context) (*dto.ActiveSessionsResponse, error) {
	active := s.sessionRepo.Active()

	summaries := make([]dto.SessionSummaryResponse, len(active))
	for i, session := range active {
		summaries[i] = dto.SessionSummaryResponse{
			SessionId:    session.Id,
			SessionName:  session.Name,
			StartTime:    session.StartTime,
			MessageCount: len(session.Messages),
			Status:       string(session.Status),
		}
	}

	return &dto.ActiveSessionsResponse{
		Sessions: summaries,
		Count:    len(summaries),
	}, nil
}

func (s *sessionService) publishMessageAppended(sessionId uuid.UUID, msg entity.ConversationMessage) {
	payload, err := json.Marshal(dto.PublishTranscriptMessage{
		SessionId: sessionId,
		Message:   dto.ToConversationMessageResponse(msg),
	})
	if err != nil {
		s.logger.Error("SessionService", "Failed to marshal transcript event", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.pubSub.Publish(TopicMessageAppended, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.logger.Error("SessionService", "Failed to publish transcript event", map[string]interface{}{"error": err.Error()})
	}
}

// publishEvent forwards lifecycle events to NATS when configured;
// publication is best-effort and never blocks the session operation.
func (s *sessionService) publishEvent(ctx context.Context, event events.Event) {
	if s.natsPublisher == nil {
		return
	}
	if err := s.natsPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("SessionService", "Failed to publish session event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
