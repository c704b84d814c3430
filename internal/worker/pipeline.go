package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ahrav/go-usage/internal/aggregation"
	"github.com/ahrav/go-usage/internal/batch"
	"github.com/ahrav/go-usage/internal/configuration"
	"github.com/ahrav/go-usage/internal/ingest"
	"github.com/ahrav/go-usage/internal/output"
	"github.com/ahrav/go-usage/pkg/events"
)

// Pipeline is a fully wired usage run.
type Pipeline struct {
	cfg    *configuration.Config
	source ingest.Source
	runner *batch.Runner
	redis  *redis.Client
	closer io.Closer
	logger *slog.Logger
}

// NewPipeline validates cfg and wires every component of a run. Close must
// be called to release the source, Redis client and event log.
func NewPipeline(ctx context.Context, cfg *configuration.Config, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		cfg = configuration.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{cfg: cfg, logger: logger}

	agg, err := aggregation.NewAggregator(cfg.Dimensions(), logger)
	if err != nil {
		return nil, err
	}

	if p.source, err = InitializeSource(ctx, cfg.Input, logger); err != nil {
		return nil, err
	}
	if p.redis, err = InitializeRedis(ctx, cfg.Redis); err != nil {
		_ = p.Close()
		return nil, err
	}

	var sink events.EventSink
	if sink, p.closer, err = InitializeEventSink(cfg.Observability, logger); err != nil {
		_ = p.Close()
		return nil, err
	}

	var publisherClient redis.Cmdable
	if p.redis != nil {
		publisherClient = p.redis
	}
	p.runner, err = batch.NewRunner(
		agg,
		InitializePublisher(cfg, publisherClient, logger),
		events.NewEmitter(sink, logger),
		batch.Options{Workers: cfg.Batch.Workers, WriteEmpty: cfg.Output.WriteEmpty},
		logger,
	)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return p, nil
}

// Run loads the season table, processes every selected team and, when
// enabled, merges the published reports into the output index.
//
// A schema error in the source is fatal and returned before any team is
// processed. Per-team failures are only recorded in the summary.
func (p *Pipeline) Run(ctx context.Context) (*batch.Summary, error) {
	rows, err := p.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load season data: %w", err)
	}
	stats := p.source.Stats()
	p.logger.Info("loaded season data",
		"path", p.cfg.Input.Path,
		"rows", stats.Rows,
		"malformed_cells", stats.Malformed)

	summary, err := p.runner.Run(ctx, rows, p.cfg.Season.Teams, p.cfg.Season.Year)
	if err != nil {
		return summary, err
	}

	if p.cfg.Output.WriteIndex {
		path, err := output.WriteIndex(p.cfg.Output.Dir, summary.Index())
		if err != nil {
			return summary, err
		}
		p.logger.Info("wrote index", "path", path)
	}
	return summary, nil
}

// Close releases the pipeline's resources.
func (p *Pipeline) Close() error {
	var errs []error
	if p.source != nil {
		errs = append(errs, p.source.Close())
	}
	if p.redis != nil {
		errs = append(errs, p.redis.Close())
	}
	if p.closer != nil {
		errs = append(errs, p.closer.Close())
	}
	return errors.Join(errs...)
}
