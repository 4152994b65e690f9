package soap

import (
	"time"

	"clinivoice-be/internal/entity"

	"github.com/google/uuid"
)

// FallbackSections is the section-level fallback: used when the completion
// collaborator is absent, unreachable, or its reply yields nothing usable.
func FallbackSections() Sections {
	return Sections{
		Subjective: "Patient reported symptoms and concerns during consultation. See conversation log for details.",
		Objective:  "Clinical observations and examination findings to be documented.",
		Assessment: "Medical assessment based on patient consultation.",
		Plan:       "Treatment plan and follow-up recommendations to be determined.",
		Confidence: 0.5,
	}
}

// FallbackNote is the note-level fallback for when generation fails
// outright: a complete note with shorter generic sections.
func FallbackNote(patientName string, conversationId uuid.UUID, now time.Time) *entity.SOAPNote {
	return &entity.SOAPNote{
		PatientName:     patientName,
		Date:            now.Format(noteDateFormat),
		Subjective:      "Patient consultation completed. See conversation log.",
		Objective:       "Clinical findings to be documented.",
		Assessment:      "Medical assessment pending.",
		Plan:            "Treatment plan to be determined.",
		ConversationId:  conversationId,
		GeneratedAt:     now,
		ConfidenceScore: 0.3,
		Source:          entity.NoteSourceNoteFallback,
	}
}
