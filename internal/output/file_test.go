package output

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-usage/internal/domain"
)

func sampleReport(team string, year int) domain.TeamUsageReport {
	r := domain.NewEmptyReport(team, year)
	r.Batting = domain.BattingUsage{
		TotalPA:  45,
		TeamWOBA: domain.Float(0.31),
		Players: []domain.BattingPlayer{
			{Name: "A", PA: 25, Percent: 55.6, WOBA: domain.Float(0.3)},
			{Name: domain.OtherName, PA: 20, Percent: 44.4},
		},
	}
	return r
}

func TestReportFileName(t *testing.T) {
	assert.Equal(t, "CHC_2025_usage.json", ReportFileName("chc ", 2025))
}

func TestEncodeReport(t *testing.T) {
	data, err := EncodeReport(sampleReport("CHC", 2025))
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n  \"team\": \"CHC\"")
	assert.Equal(t, byte('\n'), data[len(data)-1])

	var decoded domain.TeamUsageReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 45, decoded.Batting.TotalPA)
	assert.Nil(t, decoded.Batting.Players[1].WOBA)
}

func TestFilePublisher(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	pub := NewFilePublisher(dir, nil)
	assert.Equal(t, dir, pub.Dir())

	path, err := pub.Publish(context.Background(), sampleReport("CHC", 2025))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "CHC_2025_usage.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded domain.TeamUsageReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "CHC", decoded.Team)

	// Rewriting replaces the file and leaves no temp files behind.
	updated := sampleReport("CHC", 2025)
	updated.Batting.TotalPA = 99
	_, err = pub.Publish(context.Background(), updated)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 99, decoded.Batting.TotalPA)
}

func TestFilePublisher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFilePublisher(t.TempDir(), nil).Publish(ctx, sampleReport("CHC", 2025))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFilePublisher_UnwritableDir(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := NewFilePublisher(filepath.Join(blocker, "data"), nil).Publish(context.Background(), sampleReport("CHC", 2025))
	assert.Error(t, err)
}

type stubPublisher struct {
	loc   string
	err   error
	calls int
}

func (s *stubPublisher) Publish(_ context.Context, _ domain.TeamUsageReport) (string, error) {
	s.calls++
	return s.loc, s.err
}

func TestMultiPublisher(t *testing.T) {
	boom := errors.New("boom")
	first := &stubPublisher{loc: "a.json"}
	failing := &stubPublisher{err: boom}
	last := &stubPublisher{loc: "usage:CHC:2025"}

	loc, err := MultiPublisher{first, failing, last}.Publish(context.Background(), sampleReport("CHC", 2025))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "a.json, usage:CHC:2025", loc)
	assert.Equal(t, 1, last.calls, "later publishers still run")

	loc, err = MultiPublisher{first}.Publish(context.Background(), sampleReport("CHC", 2025))
	require.NoError(t, err)
	assert.Equal(t, "a.json", loc)
}
