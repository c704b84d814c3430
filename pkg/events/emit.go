package events

import (
	"context"
	"log/slog"
	"time"
)

// Emission retry policy.
const (
	DefaultEmitAttempts   = 2
	DefaultEmitRetryDelay = 200 * time.Millisecond
)

// Emitter delivers events on a best-effort basis. Sink failures are logged
// and never returned to the caller.
type Emitter struct {
	sink       EventSink
	logger     *slog.Logger
	attempts   int
	retryDelay time.Duration
}

// NewEmitter wraps sink. A nil sink disables emission.
func NewEmitter(sink EventSink, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		sink:       sink,
		logger:     logger,
		attempts:   DefaultEmitAttempts,
		retryDelay: DefaultEmitRetryDelay,
	}
}

// WithRetryDelay sets the wait between attempts.
func (e *Emitter) WithRetryDelay(d time.Duration) *Emitter {
	e.retryDelay = d
	return e
}

// EmitSafe appends envelope, retrying once after a short delay.
// It reports whether the event was delivered.
func (e *Emitter) EmitSafe(ctx context.Context, envelope Envelope, description string) bool {
	if e == nil || e.sink == nil {
		return false
	}

	var lastErr error
	for attempt := 0; attempt < e.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(e.retryDelay):
			case <-ctx.Done():
				e.logger.Error("event emission cancelled",
					"event", description,
					"event_type", envelope.Type)
				return false
			}
		}

		if err := e.sink.Append(ctx, envelope); err != nil {
			lastErr = err
			continue
		}

		e.logger.Debug("event emitted",
			"event", description,
			"event_type", envelope.Type,
			"idempotency_key", envelope.IdempotencyKey)
		return true
	}

	e.logger.Error("failed to emit event",
		"event", description,
		"event_type", envelope.Type,
		"attempts", e.attempts,
		"error", lastErr)
	return false
}
