// Package events provides the generic event infrastructure for run event emission.
// It defines the Envelope type for wrapping events with consistent metadata
// and the EventSink interface for event storage/transmission.
package events

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Envelope wraps run events with consistent metadata for downstream processing.
// It can hold any event payload while keeping the standard fields needed for
// routing, deduplication and correlation across a batch run.
type Envelope struct {
	// ID uniquely identifies this event instance.
	ID string `json:"id"`

	// Type identifies the event for routing and processing.
	// Examples: "usage.team_processed", "usage.team_failed"
	Type string `json:"type"`

	// Source identifies the component that emitted this event.
	Source string `json:"source"`

	// Version enables schema evolution. Starts at "1.0.0".
	Version string `json:"version"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp"`

	// IdempotencyKey is deterministic for a run, event type and subject, so a
	// re-emitted event can be dropped by consumers.
	IdempotencyKey string `json:"idempotency_key"`

	// RunID identifies the batch run that emitted this event.
	RunID string `json:"run_id"`

	// Payload contains the event data as JSON. Schema varies by Type and Version.
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope builds an envelope for payload. subject distinguishes events of
// the same type within one run and feeds the idempotency key.
func NewEnvelope(eventType, source, runID, subject string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Envelope{
		ID:             uuid.NewString(),
		Type:           eventType,
		Source:         source,
		Version:        "1.0.0",
		Timestamp:      time.Now().UTC(),
		IdempotencyKey: GenerateIdempotencyKey(runID, ":"+eventType+":"+subject),
		RunID:          runID,
		Payload:        data,
	}, nil
}

// GenerateIdempotencyKey returns the hex SHA-256 of key followed by suffix.
func GenerateIdempotencyKey(key, suffix string) string {
	hasher := sha256.New()
	hasher.Write([]byte(key + suffix))
	return hex.EncodeToString(hasher.Sum(nil))
}

// EventSink defines the interface for emitting events to downstream consumers.
// Implementations could include message queues, files or plain log output.
type EventSink interface {
	// Append adds an event to the sink with best-effort delivery.
	//
	// Returns error if the event cannot be recorded, but callers should
	// not fail their primary operation due to event sink failures.
	Append(ctx context.Context, envelope Envelope) error
}

// NoOpEventSink is a null implementation of EventSink for testing or when events are disabled.
// All Append calls succeed immediately without side effects.
type NoOpEventSink struct{}

// Append implements EventSink.Append with no-op behavior.
func (n *NoOpEventSink) Append(_ context.Context, _ Envelope) error {
	return nil // Always succeeds
}

// NewNoOpEventSink creates a new no-op event sink.
func NewNoOpEventSink() EventSink {
	return &NoOpEventSink{}
}
