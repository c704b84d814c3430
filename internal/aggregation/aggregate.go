package aggregation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahrav/go-usage/internal/domain"
)

// Selector picks the team and season a report is built for.
type Selector struct {
	Team string `json:"team" validate:"required"`
	Year int    `json:"year" validate:"gt=0"`
}

// Validate checks the selector's struct constraints.
func (s *Selector) Validate() error { return domain.ValidateStruct(s) }

// String formats the selector as TEAM/YEAR for logs.
func (s Selector) String() string { return fmt.Sprintf("%s/%d", s.Team, s.Year) }

// Aggregator builds team usage reports from an in-memory season table.
// It holds only its immutable dimension table and is safe for concurrent use.
type Aggregator struct {
	dims   domain.DimensionSet
	logger *slog.Logger
}

// NewAggregator validates dims and returns an aggregator over them.
// A nil logger falls back to the default slog logger.
func NewAggregator(dims domain.DimensionSet, logger *slog.Logger) (*Aggregator, error) {
	if err := dims.Validate(); err != nil {
		return nil, fmt.Errorf("aggregator dimensions: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		dims:   dims,
		logger: logger.With("component", "aggregator"),
	}, nil
}

// Dimensions returns the dimension table the aggregator buckets by.
func (a *Aggregator) Dimensions() domain.DimensionSet { return a.dims }

// FilterRows returns the rows belonging to the selected team and year, in order.
func FilterRows(rows []domain.PlayerSeasonRow, sel Selector) []domain.PlayerSeasonRow {
	var out []domain.PlayerSeasonRow
	for i := range rows {
		if rows[i].Matches(sel.Team, sel.Year) {
			out = append(out, rows[i])
		}
	}
	return out
}

// Aggregate builds the usage report for sel.
//
// A team or year with no rows is not an error: the result is an empty report
// (no positions, empty batting and pitching player lists). Position buckets
// with zero usage are omitted; batting and pitching sections are always
// present and carry empty player lists when they have no usage.
func (a *Aggregator) Aggregate(rows []domain.PlayerSeasonRow, sel Selector) domain.TeamUsageReport {
	team := strings.ToUpper(strings.TrimSpace(sel.Team))
	report := domain.NewEmptyReport(team, sel.Year)

	selected := FilterRows(rows, sel)
	if len(selected) == 0 {
		a.logger.Debug("no rows for selection", "team", team, "year", sel.Year)
		return report
	}

	for _, dim := range a.dims.Positions {
		bucket, ok := BuildBucket(selected, dim)
		if !ok {
			a.logger.Debug("bucket omitted", "team", team, "dimension", dim.Key)
			continue
		}
		report.Positions = append(report.Positions, domain.NewPositionUsage(bucket))
	}

	if bucket, ok := BuildBucket(selected, a.dims.Batting); ok {
		report.Batting = domain.NewBattingUsage(bucket)
	}
	if bucket, ok := BuildBucket(selected, a.dims.Pitching); ok {
		report.Pitching.All = domain.NewPitchingBucket(bucket)
	}
	if bucket, ok := BuildBucket(selected, a.dims.Relief); ok {
		report.Pitching.ReliefOnly = domain.NewPitchingBucket(bucket)
	}

	a.logger.Debug("aggregated team",
		"team", team,
		"year", sel.Year,
		"rows", len(selected),
		"positions", len(report.Positions),
		"batters", len(report.Batting.Players),
		"pitchers", len(report.Pitching.All.Players))

	return report
}
