package batch

import (
	"fmt"
	"time"

	"github.com/ahrav/go-usage/internal/output"
)

// Status is the outcome of one team in a run.
type Status string

// Team outcomes.
const (
	StatusProcessed Status = "processed"
	StatusSkipped   Status = "skipped"
	StatusErrored   Status = "errored"
)

// TeamResult records what happened to one team.
type TeamResult struct {
	Team     string
	Year     int
	Status   Status
	Location string // Where the report was published, if anywhere
	Rows     int
	Players  int // Batting entries in the report, Other included
	Duration time.Duration
	Err      error
}

// Line renders the result as a one-line status.
func (r TeamResult) Line() string {
	switch r.Status {
	case StatusProcessed:
		return fmt.Sprintf("%s %d processed -> %s", r.Team, r.Year, r.Location)
	case StatusSkipped:
		if r.Location != "" {
			return fmt.Sprintf("%s %d skipped (empty report -> %s)", r.Team, r.Year, r.Location)
		}
		return fmt.Sprintf("%s %d skipped: %v", r.Team, r.Year, r.Err)
	default:
		return fmt.Sprintf("%s %d errored: %v", r.Team, r.Year, r.Err)
	}
}

// Summary collects the results of a run in team order.
type Summary struct {
	RunID    string
	Year     int
	Started  time.Time
	Finished time.Time
	Results  []TeamResult
}

// Counts returns the number of processed, skipped and errored teams.
func (s *Summary) Counts() (processed, skipped, errored int) {
	for _, r := range s.Results {
		switch r.Status {
		case StatusProcessed:
			processed++
		case StatusSkipped:
			skipped++
		default:
			errored++
		}
	}
	return processed, skipped, errored
}

// AllErrored reports whether the run had teams and every one of them failed.
func (s *Summary) AllErrored() bool {
	if len(s.Results) == 0 {
		return false
	}
	_, _, errored := s.Counts()
	return errored == len(s.Results)
}

// Lines renders one status line per team followed by a totals line.
func (s *Summary) Lines() []string {
	lines := make([]string, 0, len(s.Results)+1)
	for _, r := range s.Results {
		lines = append(lines, r.Line())
	}
	processed, skipped, errored := s.Counts()
	lines = append(lines, fmt.Sprintf("%d processed, %d skipped, %d errored", processed, skipped, errored))
	return lines
}

// Index returns an index of the teams whose reports were published.
func (s *Summary) Index() *output.Index {
	ix := output.NewIndex()
	for _, r := range s.Results {
		if r.Location == "" || r.Status == StatusErrored {
			continue
		}
		ix.Add(r.Team, r.Year)
	}
	return ix
}
