package entity

import (
	"time"

	"github.com/google/uuid"
)

// Speaker identifies which side of the consultation produced an utterance.
type Speaker string

const (
	SpeakerDoctor  Speaker = "Doctor"
	SpeakerPatient Speaker = "Patient"
)

// SessionStatus is the lifecycle state of a conversation session.
// Transitions only run active -> completed, never backward.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
)

// ConversationMessage is a single transcribed utterance. Immutable once
// created; Timestamp carries wall-clock second precision ("15:04:05").
type ConversationMessage struct {
	Speaker    Speaker
	Text       string
	Timestamp  string
	Confidence float64
}

// ConversationSession is an append-only transcript plus lifecycle metadata.
// Messages are owned by the session and are never shared across sessions.
type ConversationSession struct {
	Id uuid.UUID
	// Name is an optional caller-supplied label; empty when the start
	// request carried none.
	Name      string
	Messages  []ConversationMessage
	StartTime time.Time
	EndTime   *time.Time
	Status    SessionStatus
}
