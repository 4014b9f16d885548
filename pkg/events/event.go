package events

import "time"

const (
	TypeNotification       = "NOTIFICATION"
	TypeSessionStarted     = "SESSION_STARTED"
	TypeSessionCleared     = "SESSION_CLEARED"
	TypeAgentActivated     = "AGENT_ACTIVATED"
	TypeInventoryLoaded    = "INVENTORY_LOADED"
	TypeDocumentUploaded   = "DOCUMENT_UPLOADED"
	TypeDocumentRemoved    = "DOCUMENT_REMOVED"
	TypeQuestionAnswered   = "QUESTION_ANSWERED"
	TypeQuestionFailed     = "QUESTION_FAILED"
	TypeExportSaved        = "EXPORT_SAVED"
	TypeNavigationRedirect = "NAVIGATION_REDIRECT"
)

const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelError   = "error"
)

// Event defines the contract for all client events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "AGENT_ACTIVATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

// Notification is a transient, non-blocking user-facing message.
func Notification(level, message string, data map[string]interface{}) BaseEvent {
	payload := map[string]interface{}{"level": level, "message": message}
	for k, v := range data {
		payload[k] = v
	}
	return NewEvent(TypeNotification, payload)
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
