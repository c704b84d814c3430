// Package output publishes finished team usage reports: as JSON files with
// an index for the static front end, and optionally into Redis for services
// that read reports by key.
package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ahrav/go-usage/internal/domain"
)

// Publisher delivers one team report. The returned location identifies
// where the report landed (a file path or a key).
type Publisher interface {
	Publish(ctx context.Context, report domain.TeamUsageReport) (string, error)
}

// ReportFileName returns the file name for a team's season report,
// e.g. CHC_2025_usage.json.
func ReportFileName(team string, year int) string {
	return fmt.Sprintf("%s_%d_usage.json", strings.ToUpper(strings.TrimSpace(team)), year)
}

// EncodeReport renders a report as 2-space indented JSON with a trailing
// newline.
func EncodeReport(report domain.TeamUsageReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return nil, fmt.Errorf("encode %s/%d report: %w", report.Team, report.Year, err)
	}
	return buf.Bytes(), nil
}

// MultiPublisher publishes to each publisher in order. Every publisher is
// attempted; failures are joined.
type MultiPublisher []Publisher

// Publish returns the locations joined by ", ".
func (m MultiPublisher) Publish(ctx context.Context, report domain.TeamUsageReport) (string, error) {
	var (
		locations []string
		errs      []error
	)
	for _, p := range m {
		loc, err := p.Publish(ctx, report)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		locations = append(locations, loc)
	}
	return strings.Join(locations, ", "), errors.Join(errs...)
}
