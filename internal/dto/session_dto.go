package dto

import (
	"time"

	"clinivoice-be/internal/entity"

	"github.com/google/uuid"
)

type StartSessionRequest struct {
	SessionName string `json:"session_name,omitempty"`
}

type StartSessionResponse struct {
	SessionId   uuid.UUID `json:"session_id"`
	SessionName string    `json:"session_name,omitempty"`
}

type StopSessionRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}

type StopSessionResponse struct {
	SessionId    uuid.UUID `json:"session_id"`
	MessageCount int       `json:"message_count"`
}

type ConversationMessageResponse struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Timestamp  string  `json:"timestamp"`
	Confidence float64 `json:"confidence"`
}

type SubmitUtteranceResponse struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Timestamp  string  `json:"timestamp"`
	Confidence float64 `json:"confidence"`
}

type GetConversationResponse struct {
	SessionId    uuid.UUID                     `json:"session_id"`
	Status       string                        `json:"status"`
	Messages     []ConversationMessageResponse `json:"messages"`
	MessageCount int                           `json:"message_count"`
}

type SessionSummaryResponse struct {
	SessionId    uuid.UUID `json:"session_id"`
	SessionName  string    `json:"session_name,omitempty"`
	StartTime    time.Time `json:"start_time"`
	MessageCount int       `json:"message_count"`
	Status       string    `json:"status"`
}

type ActiveSessionsResponse struct {
	Sessions []SessionSummaryResponse `json:"sessions"`
	Count    int                      `json:"count"`
}

// PublishTranscriptMessage is the payload carried on the in-process event
// bus between the session service and the websocket broadcaster.
type PublishTranscriptMessage struct {
	SessionId uuid.UUID                   `json:"session_id"`
	Message   ConversationMessageResponse `json:"message"`
}

func ToConversationMessageResponse(msg entity.ConversationMessage) ConversationMessageResponse {
	return ConversationMessageResponse{
		Speaker:    string(msg.Speaker),
		Text:       msg.Text,
		Timestamp:  msg.Timestamp,
		Confidence: msg.Confidence,
	}
}
