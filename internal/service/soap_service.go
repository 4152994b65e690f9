package service

import (
	"context"

	"clinivoice-be/internal/apperrors"
	"clinivoice-be/internal/dto"
	"clinivoice-be/internal/pkg/logger"
	"clinivoice-be/internal/repository/memory"
	"clinivoice-be/pkg/soap"
)

const defaultPatientName = "Unknown Patient"

type ISOAPService interface {
	Generate(ctx context.Context, request *dto.GenerateSOAPRequest) (*dto.SOAPNoteResponse, error)
}

type soapService struct {
	sessionRepo *memory.SessionRepository
	generator   *soap.Generator
	logger      logger.ILogger
}

func NewSOAPService(sessionRepo *memory.SessionRepository, generator *soap.Generator, log logger.ILogger) ISOAPService {
	return &soapService{
		sessionRepo: sessionRepo,
		generator:   generator,
		logger:      log,
	}
}

// Generate works on both active and completed sessions. An empty
// transcript is the only rejected input; after that point generation
// always yields a note, falling back internally when the completion
// collaborator is degraded.
func (s *soapService) Generate(ctx context.Context, request *dto.GenerateSOAPRequest) (*dto.SOAPNoteResponse, error) {
	session, found := s.sessionRepo.Get(request.SessionId)
	if !found {
		return nil, apperrors.ErrSessionNotFound
	}
	if len(session.Messages) == 0 {
		return nil, apperrors.ErrEmptyConversation
	}

	patientName := request.PatientName
	if patientName == "" {
		patientName = defaultPatientName
	}

	note := s.generator.Generate(ctx, session, patientName)

	s.logger.Info("SOAPService", "Generated SOAP note", map[string]interface{}{
		"session_id": session.Id,
		"source":     note.Source,
		"confidence": note.ConfidenceScore,
	})

	return dto.ToSOAPNoteResponse(note), nil
}
