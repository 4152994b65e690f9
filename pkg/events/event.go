package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_STARTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used by the session lifecycle
// events below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewSessionStartedEvent(sessionId uuid.UUID, startTime time.Time) Event {
	return BaseEvent{
		Type: "SESSION_STARTED",
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"start_time": startTime,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionCompletedEvent(sessionId uuid.UUID, messageCount int) Event {
	return BaseEvent{
		Type: "SESSION_COMPLETED",
		Data: map[string]interface{}{
			"session_id":    sessionId.String(),
			"message_count": messageCount,
		},
		OccurredAt: time.Now(),
	}
}
