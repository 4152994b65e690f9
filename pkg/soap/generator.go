package soap

import (
	"context"
	"time"

	"clinivoice-be/internal/entity"
	"clinivoice-be/internal/pkg/logger"
	"clinivoice-be/pkg/llm"

	"github.com/google/uuid"
)

const noteDateFormat = "02-Jan-2006"

// Generator turns a conversation into a SOAP note. It never returns an
// error: any failure inside the generation pipeline degrades to a fallback
// note, and the note's Source field records which path produced it.
type Generator struct {
	provider    llm.LLMProvider
	timeout     time.Duration
	maxTokens   int
	temperature float64
	logger      logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, timeout time.Duration, maxTokens int, temperature float64, log logger.ILogger) *Generator {
	return &Generator{
		provider:    provider,
		timeout:     timeout,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      log,
	}
}

// Generate assumes a non-empty transcript; the service layer rejects empty
// sessions before calling here.
func (g *Generator) Generate(ctx context.Context, session *entity.ConversationSession, patientName string) (note *entity.SOAPNote) {
	now := time.Now()

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("SOAPGenerator", "Note assembly failed, using note-level fallback", map[string]interface{}{
				"session_id": session.Id,
				"panic":      r,
			})
			note = FallbackNote(patientName, session.Id, now)
		}
	}()

	transcript := FormatTranscript(session.Messages)
	sections, source := g.generateSections(ctx, session.Id, session.Messages)
	info := ExtractPatientInfo(transcript)

	return &entity.SOAPNote{
		PatientName:     patientName,
		Date:            now.Format(noteDateFormat),
		AgeGender:       info.AgeGender,
		ReasonForVisit:  info.ReasonForVisit,
		Subjective:      orFallback(sections.Subjective, FallbackSections().Subjective),
		Objective:       orFallback(sections.Objective, FallbackSections().Objective),
		Assessment:      orFallback(sections.Assessment, FallbackSections().Assessment),
		Plan:            orFallback(sections.Plan, FallbackSections().Plan),
		ConversationId:  session.Id,
		GeneratedAt:     now,
		ConfidenceScore: sections.Confidence,
		Source:          source,
	}
}

func (g *Generator) generateSections(ctx context.Context, sessionId uuid.UUID, messages []entity.ConversationMessage) (Sections, entity.NoteSource) {
	if g.provider == nil {
		return FallbackSections(), entity.NoteSourceSectionFallback
	}

	builder := NewPromptBuilder(messages)

	// The completion call is a blocking round-trip with no retry; the
	// deadline is imposed here so a stalled collaborator degrades to the
	// fallback instead of hanging the request.
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	reply, err := g.provider.Chat(callCtx, []llm.Message{
		{Role: "system", Content: builder.SystemPrompt()},
		{Role: "user", Content: builder.UserPrompt()},
	},
		llm.WithTemperature(g.temperature),
		llm.WithMaxTokens(g.maxTokens),
	)
	if err != nil {
		g.logger.Warn("SOAPGenerator", "Completion call failed, using section fallback", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return FallbackSections(), entity.NoteSourceSectionFallback
	}

	sections := ParseSections(reply)
	if sections.Subjective == "" && sections.Objective == "" && sections.Assessment == "" && sections.Plan == "" {
		g.logger.Warn("SOAPGenerator", "Reply contained no section labels, using section fallback", map[string]interface{}{
			"session_id": sessionId,
		})
		return FallbackSections(), entity.NoteSourceSectionFallback
	}
	return sections, entity.NoteSourceAI
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
