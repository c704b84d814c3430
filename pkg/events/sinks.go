package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// LogSink writes each event as a structured log record.
type LogSink struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogSink returns a sink logging events at level through logger.
func NewLogSink(logger *slog.Logger, level slog.Level) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "events"), level: level}
}

// Append logs the envelope. It never fails.
func (s *LogSink) Append(ctx context.Context, envelope Envelope) error {
	s.logger.Log(ctx, s.level, "event",
		"event_type", envelope.Type,
		"source", envelope.Source,
		"run_id", envelope.RunID,
		"idempotency_key", envelope.IdempotencyKey,
		"payload", string(envelope.Payload))
	return nil
}

// JSONLSink appends events to a writer as one JSON object per line.
// Events whose idempotency key was already written are dropped.
type JSONLSink struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	seen   map[string]struct{}
}

// NewJSONLSink writes events to w.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{w: w, seen: make(map[string]struct{})}
}

// OpenJSONLSink appends events to the file at path, creating it if needed.
func OpenJSONLSink(path string) (*JSONLSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	sink := NewJSONLSink(f)
	sink.closer = f
	return sink, nil
}

// Append writes envelope as a single line.
func (s *JSONLSink) Append(ctx context.Context, envelope Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if envelope.IdempotencyKey != "" {
		if _, dup := s.seen[envelope.IdempotencyKey]; dup {
			return nil
		}
	}
	if _, err := s.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	if envelope.IdempotencyKey != "" {
		s.seen[envelope.IdempotencyKey] = struct{}{}
	}
	return nil
}

// Close closes the underlying file when the sink owns one.
func (s *JSONLSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
