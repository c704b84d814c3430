// Package batch runs the usage aggregation over many teams of one season.
// Teams are independent: each is aggregated and published on its own, a
// failure is recorded against that team alone, and the run reports one
// status per team when it finishes.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-usage/internal/aggregation"
	"github.com/ahrav/go-usage/internal/domain"
	"github.com/ahrav/go-usage/internal/output"
	"github.com/ahrav/go-usage/pkg/events"
)

// Event types emitted by a run.
const (
	EventTeamProcessed = "usage.team_processed"
	EventTeamSkipped   = "usage.team_skipped"
	EventTeamFailed    = "usage.team_failed"
	EventRunCompleted  = "usage.run_completed"
)

// eventSource names the runner in emitted envelopes.
const eventSource = "usage-batch"

// ErrNoRows indicates a team with no rows for the selected season.
var ErrNoRows = errors.New("no rows for team and season")

// Options tune a Runner.
type Options struct {
	Workers    int  `validate:"min=1,max=64"`
	WriteEmpty bool // Publish empty reports for teams without rows
}

// Runner aggregates and publishes reports for a list of teams.
// It is safe to reuse across runs; each Run gets its own run ID.
type Runner struct {
	agg     *aggregation.Aggregator
	pub     output.Publisher
	emitter *events.Emitter
	opts    Options
	logger  *slog.Logger
}

// NewRunner wires a runner. A nil emitter disables events.
func NewRunner(
	agg *aggregation.Aggregator,
	pub output.Publisher,
	emitter *events.Emitter,
	opts Options,
	logger *slog.Logger,
) (*Runner, error) {
	if agg == nil {
		return nil, fmt.Errorf("%w: aggregator is required", domain.ErrInvalidConfig)
	}
	if pub == nil {
		return nil, fmt.Errorf("%w: publisher is required", domain.ErrInvalidConfig)
	}
	if err := domain.ValidateStruct(opts); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		agg:     agg,
		pub:     pub,
		emitter: emitter,
		opts:    opts,
		logger:  logger.With("component", "batch"),
	}, nil
}

// TeamsForYear returns every team with at least one row in year, upper-cased
// and sorted.
func TeamsForYear(rows []domain.PlayerSeasonRow, year int) []string {
	seen := make(map[string]struct{})
	for i := range rows {
		team := normalizeTeam(rows[i].Team)
		if team == "" || rows[i].Year != year {
			continue
		}
		seen[team] = struct{}{}
	}
	teams := make([]string, 0, len(seen))
	for t := range seen {
		teams = append(teams, t)
	}
	slices.Sort(teams)
	return teams
}

// Run builds and publishes a report for each team in year. An empty team
// list means every team present in rows for that year.
//
// Per-team failures never abort the run; they are recorded in the summary.
// The returned error is non-nil only when ctx ends before every team was
// handled, in which case unhandled teams are recorded as errored.
func (r *Runner) Run(ctx context.Context, rows []domain.PlayerSeasonRow, teams []string, year int) (*Summary, error) {
	if len(teams) == 0 {
		teams = TeamsForYear(rows, year)
	} else {
		teams = normalizeTeams(teams)
	}

	summary := &Summary{
		RunID:   uuid.NewString(),
		Year:    year,
		Started: time.Now(),
		Results: make([]TeamResult, len(teams)),
	}
	logger := r.logger.With("run_id", summary.RunID, "year", year)
	logger.Info("starting usage run", "teams", len(teams), "rows", len(rows), "workers", r.opts.Workers)

	byTeam := groupByTeam(rows, year)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, team := range teams {
		if err := gctx.Err(); err != nil {
			summary.Results[i] = TeamResult{Team: team, Year: year, Status: StatusErrored, Err: err}
			continue
		}
		g.Go(func() error {
			sel := aggregation.Selector{Team: team, Year: year}
			summary.Results[i] = r.processTeam(gctx, summary.RunID, sel, byTeam[team], logger)
			return nil
		})
	}
	_ = g.Wait()

	summary.Finished = time.Now()
	processed, skipped, errored := summary.Counts()
	logger.Info("usage run finished",
		"processed", processed,
		"skipped", skipped,
		"errored", errored,
		"duration", summary.Finished.Sub(summary.Started))
	r.emit(ctx, summary.RunID, EventRunCompleted, fmt.Sprintf("%d", year), runPayload{
		Year:      year,
		Processed: processed,
		Skipped:   skipped,
		Errored:   errored,
	})

	return summary, ctx.Err()
}

// processTeam aggregates and publishes one team. Panics are recovered and
// reported as an errored result.
func (r *Runner) processTeam(
	ctx context.Context,
	runID string,
	sel aggregation.Selector,
	rows []domain.PlayerSeasonRow,
	logger *slog.Logger,
) (result TeamResult) {
	start := time.Now()
	result = TeamResult{Team: sel.Team, Year: sel.Year, Rows: len(rows)}
	logger = logger.With("team", sel.Team)

	defer func() {
		if rec := recover(); rec != nil {
			result.Status = StatusErrored
			result.Err = fmt.Errorf("panic while processing %s: %v", sel, rec)
		}
		result.Duration = time.Since(start)
		r.report(ctx, runID, result, logger)
	}()

	if err := ctx.Err(); err != nil {
		result.Status = StatusErrored
		result.Err = err
		return result
	}

	report := r.agg.Aggregate(rows, sel)
	result.Players = len(report.Batting.Players)

	if len(rows) == 0 {
		result.Status = StatusSkipped
		result.Err = ErrNoRows
		if !r.opts.WriteEmpty {
			return result
		}
	}

	loc, err := r.pub.Publish(ctx, report)
	result.Location = loc
	if err != nil {
		result.Status = StatusErrored
		result.Err = fmt.Errorf("publish %s: %w", sel, err)
		return result
	}
	if result.Status == "" {
		result.Status = StatusProcessed
	}
	return result
}

// report logs a team outcome and emits its event.
func (r *Runner) report(ctx context.Context, runID string, res TeamResult, logger *slog.Logger) {
	payload := teamPayload{
		Team:       res.Team,
		Year:       res.Year,
		Status:     res.Status,
		Location:   res.Location,
		Rows:       res.Rows,
		DurationMS: res.Duration.Milliseconds(),
	}
	if res.Err != nil {
		payload.Error = res.Err.Error()
	}

	var eventType string
	switch res.Status {
	case StatusProcessed:
		eventType = EventTeamProcessed
		logger.Info("team processed", "location", res.Location, "rows", res.Rows, "duration", res.Duration)
	case StatusSkipped:
		eventType = EventTeamSkipped
		logger.Warn("team skipped", "reason", res.Err)
	default:
		eventType = EventTeamFailed
		logger.Error("team failed", "error", res.Err)
	}

	subject := aggregation.Selector{Team: res.Team, Year: res.Year}.String()
	r.emit(ctx, runID, eventType, subject, payload)
}

func (r *Runner) emit(ctx context.Context, runID, eventType, subject string, payload any) {
	if r.emitter == nil {
		return
	}
	env, err := events.NewEnvelope(eventType, eventSource, runID, subject, payload)
	if err != nil {
		r.logger.Error("failed to build event", "event_type", eventType, "error", err)
		return
	}
	// Outcome events still go out when the run is being cancelled.
	r.emitter.EmitSafe(context.WithoutCancel(ctx), env, eventType+"["+subject+"]")
}

func groupByTeam(rows []domain.PlayerSeasonRow, year int) map[string][]domain.PlayerSeasonRow {
	out := make(map[string][]domain.PlayerSeasonRow)
	for i := range rows {
		if rows[i].Year != year {
			continue
		}
		team := normalizeTeam(rows[i].Team)
		out[team] = append(out[team], rows[i])
	}
	return out
}

func normalizeTeam(team string) string {
	return strings.ToUpper(strings.TrimSpace(team))
}

// normalizeTeams upper-cases teams and drops blanks and repeats, keeping the
// first occurrence order.
func normalizeTeams(teams []string) []string {
	seen := make(map[string]struct{}, len(teams))
	out := make([]string, 0, len(teams))
	for _, t := range teams {
		t = normalizeTeam(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
