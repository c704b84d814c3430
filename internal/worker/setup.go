// Package worker provides initialization and setup for usage report runs.
// It turns a validated configuration into the concrete season source,
// publishers and event sink, keeping the batch and output packages free of
// configuration concerns.
package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ahrav/go-usage/internal/configuration"
	"github.com/ahrav/go-usage/internal/ingest"
	"github.com/ahrav/go-usage/internal/output"
	"github.com/ahrav/go-usage/pkg/events"
)

// InitializeSource opens the configured season source.
// The caller must close the returned source.
func InitializeSource(ctx context.Context, cfg configuration.InputConfig, logger *slog.Logger) (ingest.Source, error) {
	src, err := ingest.Open(ctx, cfg.Path, ingest.Options{Table: cfg.Table, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize season source: %w", err)
	}
	return src, nil
}

// InitializeRedis connects to Redis when it is configured. It returns a nil
// client when Redis is disabled.
func InitializeRedis(ctx context.Context, cfg configuration.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// InitializePublisher builds the report publisher: always the output
// directory, plus Redis when client is non-nil.
func InitializePublisher(cfg *configuration.Config, client redis.Cmdable, logger *slog.Logger) output.Publisher {
	files := output.NewFilePublisher(cfg.Output.Dir, logger)
	if client == nil {
		return files
	}
	return output.MultiPublisher{
		files,
		output.NewRedisPublisher(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL, logger),
	}
}

// InitializeEventSink returns a JSONL sink when an events path is configured
// and a log sink otherwise. The closer is nil when there is nothing to close.
func InitializeEventSink(cfg configuration.ObservabilityConfig, logger *slog.Logger) (events.EventSink, io.Closer, error) {
	if cfg.EventsPath == "" {
		return events.NewLogSink(logger, slog.LevelDebug), nil, nil
	}
	sink, err := events.OpenJSONLSink(cfg.EventsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize event sink: %w", err)
	}
	return sink, sink, nil
}
