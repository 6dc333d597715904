package events

import "time"

// Event types published on the bus.
const (
	TypeDocumentIndexed = "DOCUMENT_INDEXED"
	TypeQueryAnswered   = "QUERY_ANSWERED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_INDEXED").
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

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewDocumentIndexed reports that a document replaced the active index.
func NewDocumentIndexed(userId, source, generationId string, chunks int, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeDocumentIndexed,
		Data: map[string]interface{}{
			"user_id":       userId,
			"source":        source,
			"generation_id": generationId,
			"chunks":        chunks,
			"occurred_at":   at,
		},
		OccurredAt: at,
	}
}
