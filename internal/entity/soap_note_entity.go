package entity

import (
	"time"

	"github.com/google/uuid"
)

// NoteSource records how a SOAP note was produced. The confidence score
// alone cannot distinguish a model-written note from a deterministic
// fallback, so provenance is carried explicitly.
type NoteSource string

const (
	NoteSourceAI              NoteSource = "ai"
	NoteSourceSectionFallback NoteSource = "section_fallback"
	NoteSourceNoteFallback    NoteSource = "note_fallback"
)

// SOAPNote is a four-section clinical note synthesized from a conversation.
// All four sections are always non-empty, including on fallback paths.
type SOAPNote struct {
	PatientName    string
	Date           string
	AgeGender      string
	ReasonForVisit string

	Subjective string
	Objective  string
	Assessment string
	Plan       string

	ConversationId  uuid.UUID
	GeneratedAt     time.Time
	ConfidenceScore float64
	Source          NoteSource
}
