package worker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-usage/internal/batch"
	"github.com/ahrav/go-usage/internal/configuration"
	"github.com/ahrav/go-usage/internal/domain"
	"github.com/ahrav/go-usage/internal/output"
	"github.com/ahrav/go-usage/pkg/events"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// seasonCSV renders rows in RequiredColumns order. Each row gives name, team,
// year and then cells keyed by column.
func seasonCSV(rows ...map[domain.Column]string) string {
	cols := domain.RequiredColumns()
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(c))
	}
	b.WriteByte('\n')
	for _, r := range rows {
		for i, c := range cols {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(r[c])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func testConfig(t *testing.T, csv string) *configuration.Config {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "season_data.csv")
	require.NoError(t, os.WriteFile(input, []byte(csv), 0o600))

	cfg := configuration.DefaultConfig()
	cfg.Input.Path = input
	cfg.Output.Dir = filepath.Join(dir, "data")
	cfg.Observability.EventsPath = filepath.Join(dir, "events.jsonl")
	return cfg
}

func TestPipeline_Run(t *testing.T) {
	cfg := testConfig(t, seasonCSV(
		map[domain.Column]string{domain.ColName: "A", domain.ColTeam: "CHC", domain.ColYear: "2025",
			domain.ColPA: "25", domain.ColWOBA: ".300", domain.ColIP: "", domain.ColStarts: ""},
		map[domain.Column]string{domain.ColName: "B", domain.ColTeam: "CHC", domain.ColYear: "2025",
			domain.ColPA: "15", domain.ColWOBA: ".250"},
		map[domain.Column]string{domain.ColName: "C", domain.ColTeam: "CHC", domain.ColYear: "2025",
			domain.ColPA: "5", domain.ColWOBA: ".400"},
		map[domain.Column]string{domain.ColName: "D", domain.ColTeam: "NYY", domain.ColYear: "2025",
			domain.ColIP: "50", domain.ColStarts: "0", domain.ColERA: "3.00"},
		map[domain.Column]string{domain.ColName: "E", domain.ColTeam: "SEA", domain.ColYear: "2024",
			domain.ColPA: "300"},
	))

	p, err := NewPipeline(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Results, 2)
	for _, res := range summary.Results {
		assert.Equal(t, batch.StatusProcessed, res.Status, res.Line())
	}

	data, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "CHC_2025_usage.json"))
	require.NoError(t, err)
	var report domain.TeamUsageReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 45, report.Batting.TotalPA)
	require.Len(t, report.Batting.Players, 2)
	assert.Equal(t, domain.OtherName, report.Batting.Players[1].Name)
	assert.InDelta(t, 44.4, report.Batting.Players[1].Percent, 1e-9)

	ix, err := output.ReadIndex(cfg.Output.Dir)
	require.NoError(t, err)
	assert.Equal(t, map[string][]int{"CHC": {2025}, "NYY": {2025}}, ix.Teams)

	require.NoError(t, p.Close())
	f, err := os.Open(cfg.Observability.EventsPath)
	require.NoError(t, err)
	defer f.Close()

	types := map[string]int{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var env events.Envelope
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &env))
		assert.Equal(t, summary.RunID, env.RunID)
		types[env.Type]++
	}
	assert.Equal(t, map[string]int{batch.EventTeamProcessed: 2, batch.EventRunCompleted: 1}, types)
}

func TestPipeline_SchemaErrorIsFatal(t *testing.T) {
	cfg := testConfig(t, "Name,Team,Year,PA\nA,CHC,2025,10\n")

	p, err := NewPipeline(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	summary, err := p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
	assert.Nil(t, summary)
	assert.NoDirExists(t, cfg.Output.Dir)
}

func TestNewPipeline_InvalidConfig(t *testing.T) {
	cfg := configuration.DefaultConfig()
	cfg.Batch.Workers = 0

	_, err := NewPipeline(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNewPipeline_UnsupportedSource(t *testing.T) {
	cfg := configuration.DefaultConfig()
	cfg.Input.Path = "season.parquet"

	_, err := NewPipeline(context.Background(), cfg, quietLogger())
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
}

func TestInitializePublisher(t *testing.T) {
	cfg := configuration.DefaultConfig()
	cfg.Output.Dir = t.TempDir()

	pub := InitializePublisher(cfg, nil, nil)
	assert.IsType(t, &output.FilePublisher{}, pub)
}

func TestInitializeRedis_Disabled(t *testing.T) {
	client, err := InitializeRedis(context.Background(), configuration.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestInitializeEventSink(t *testing.T) {
	sink, closer, err := InitializeEventSink(configuration.ObservabilityConfig{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &events.LogSink{}, sink)
	assert.Nil(t, closer)

	path := filepath.Join(t.TempDir(), "events.jsonl")
	sink, closer, err = InitializeEventSink(configuration.ObservabilityConfig{EventsPath: path}, nil)
	require.NoError(t, err)
	assert.IsType(t, &events.JSONLSink{}, sink)
	require.NotNil(t, closer)
	require.NoError(t, closer.Close())
	assert.FileExists(t, path)

	_, _, err = InitializeEventSink(configuration.ObservabilityConfig{
		EventsPath: filepath.Join(t.TempDir(), "missing", "events.jsonl"),
	}, nil)
	assert.Error(t, err)
}
