// Package events defines the domain events the scoring service emits.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	// TypeFallbackUsed is emitted when an operation was answered by the
	// local heuristics instead of the ML service.
	TypeFallbackUsed = "fallback_used"
	// TypeDefaultUsed is emitted when even the heuristic path failed and
	// the minimal default result was returned.
	TypeDefaultUsed = "default_used"
	// TypeBriefStandardized is emitted after a brief has been analysed.
	TypeBriefStandardized = "brief_standardized"
	// TypeBreakerOpened is emitted when the ML circuit breaker trips.
	TypeBreakerOpened = "ml_breaker_opened"
)

// Event is one published domain event. Key is the cache key of the request
// that produced it, so every event about the same request lands on the same
// partition.
type Event struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Operation  string                 `json:"operation,omitempty"`
	Key        string                 `json:"key,omitempty"`
	Reason     string                 `json:"reason,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// New builds an Event with a fresh id and the current time.
func New(eventType, operation, key string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Operation:  operation,
		Key:        key,
		OccurredAt: time.Now().UTC(),
	}
}

// With returns a copy of e carrying the extra attribute.
func (e Event) With(name string, value interface{}) Event {
	attrs := make(map[string]interface{}, len(e.Attributes)+1)
	for k, v := range e.Attributes {
		attrs[k] = v
	}
	attrs[name] = value
	e.Attributes = attrs
	return e
}

//Personal.AI order the ending
