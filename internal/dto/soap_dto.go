package dto

import (
	"time"

	"clinivoice-be/internal/entity"

	"github.com/google/uuid"
)

type GenerateSOAPRequest struct {
	SessionId   uuid.UUID `json:"session_id" validate:"required"`
	PatientName string    `json:"patient_name"`
}

type SOAPNoteResponse struct {
	PatientName    string `json:"patient_name"`
	Date           string `json:"date"`
	AgeGender      string `json:"age_gender,omitempty"`
	ReasonForVisit string `json:"reason_for_visit,omitempty"`

	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`

	ConversationId  uuid.UUID `json:"conversation_id"`
	GeneratedAt     time.Time `json:"generated_at"`
	ConfidenceScore float64   `json:"confidence_score"`
	Source          string    `json:"source"`
}

func ToSOAPNoteResponse(note *entity.SOAPNote) *SOAPNoteResponse {
	return &SOAPNoteResponse{
		PatientName:     note.PatientName,
		Date:            note.Date,
		AgeGender:       note.AgeGender,
		ReasonForVisit:  note.ReasonForVisit,
		Subjective:      note.Subjective,
		Objective:       note.Objective,
		Assessment:      note.Assessment,
		Plan:            note.Plan,
		ConversationId:  note.ConversationId,
		GeneratedAt:     note.GeneratedAt,
		ConfidenceScore: note.ConfidenceScore,
		Source:          string(note.Source),
	}
}
