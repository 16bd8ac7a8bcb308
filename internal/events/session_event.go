package events

import (
	"time"

	"github.com/google/uuid"

	"tasweeq/internal/models"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	SessionStateChanged = "events:session:state"
	CredentialRequired  = "events:credential:required"
)

// SessionEvent is the payload pushed to the frontend on every session change.
type SessionEvent struct {
	ID        string               `json:"id"`
	Type      EventType            `json:"type"`
	Message   string               `json:"message"`
	Timestamp time.Time            `json:"timestamp"`
	State     *models.SessionState `json:"state,omitempty"`
}

func CreateSessionEvent(eventType EventType, message string) SessionEvent {
	return SessionEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewStateEvent wraps a state transition. The event type follows the status
// so the runtime logger can pick a level.
func NewStateEvent(state models.SessionState) SessionEvent {
	eventType := EventInfo
	switch state.Status {
	case models.StatusError:
		eventType = EventError
	case models.StatusSuccess:
		eventType = EventSuccess
	}
	evt := CreateSessionEvent(eventType, string(state.Status))
	evt.State = &state
	return evt
}

// NewCredentialRequired asks the frontend to open the key selection dialog.
func NewCredentialRequired(message string) SessionEvent {
	return CreateSessionEvent(EventWarn, message)
}
