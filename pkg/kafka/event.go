package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Subject names the thing an event is about. Its ID is the partition key.
type Subject struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// Event is the envelope for every message the storefront publishes.
type Event struct {
	ID            string          `json:"event_id"`
	Type          string          `json:"event_type"`
	Subject       Subject         `json:"subject"`
	Source        string          `json:"source"`
	OccurredAt    time.Time       `json:"occurred_at"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent encodes data and stamps the envelope with a fresh ID and the
// current UTC time.
func NewEvent(eventType, source string, subject Subject, data any) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Subject:    subject,
		Source:     source,
		OccurredAt: time.Now().UTC(),
		Data:       raw,
	}, nil
}

// WithCorrelationID sets the correlation ID on the event.
func (e *Event) WithCorrelationID(id string) *Event {
	e.CorrelationID = id
	return e
}

// Key is the Kafka message key.
func (e *Event) Key() []byte {
	return []byte(e.Subject.ID)
}

// Headers returns the routing headers consumers filter on without decoding
// the body.
func (e *Event) Headers() []kafka.Header {
	h := []kafka.Header{
		{Key: "event_type", Value: []byte(e.Type)},
		{Key: "source", Value: []byte(e.Source)},
	}
	if e.CorrelationID != "" {
		h = append(h, kafka.Header{Key: "correlation_id", Value: []byte(e.CorrelationID)})
	}
	return h
}

// Decode unmarshals the payload into target.
func (e *Event) Decode(target any) error {
	return json.Unmarshal(e.Data, target)
}
