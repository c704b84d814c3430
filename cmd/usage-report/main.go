// Package main provides the usage-report command, which reads a season table
// and writes one usage report per team plus an index.
//
// Configuration starts from defaults, is overlaid with USAGE_* environment
// variables, and finally with any flags given on the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ahrav/go-usage/internal/configuration"
	"github.com/ahrav/go-usage/internal/worker"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], environ(os.Environ()), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one report run and returns the process exit code.
func run(ctx context.Context, args []string, env map[string]string, stdout, stderr io.Writer) int {
	cfg, err := configuration.Load(env)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if err := parseFlags(cfg, args, stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger := configuration.NewLogger(cfg.Observability, stderr)

	p, err := worker.NewPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start run", "error", err)
		return exitFailure
	}
	defer func() {
		if err := p.Close(); err != nil {
			logger.Warn("failed to release resources", "error", err)
		}
	}()

	summary, err := p.Run(ctx)
	if summary != nil {
		for _, line := range summary.Lines() {
			fmt.Fprintln(stdout, line)
		}
	}
	if err != nil {
		logger.Error("run failed", "error", err)
		return exitFailure
	}
	if summary.AllErrored() {
		logger.Error("every team failed", "teams", len(summary.Results))
		return exitFailure
	}
	return exitOK
}

// parseFlags applies command-line flags on top of cfg. Each flag defaults to
// the current value, so flags that are not given leave cfg unchanged.
func parseFlags(cfg *configuration.Config, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("usage-report", flag.ContinueOnError)
	fs.SetOutput(stderr)

	input := fs.String("input", cfg.Input.Path, "Season data: .csv/.tsv file, .db/.sqlite file, sqlite:// or postgres:// URL")
	table := fs.String("table", cfg.Input.Table, "Table name for database sources")
	out := fs.String("out", cfg.Output.Dir, "Output directory for team reports")
	year := fs.Int("year", cfg.Season.Year, "Season year")
	teams := fs.String("teams", strings.Join(cfg.Season.Teams, ","), "Comma-separated team codes (default: every team in the season)")
	workers := fs.Int("workers", cfg.Batch.Workers, "Teams processed concurrently")
	writeEmpty := fs.Bool("write-empty", cfg.Output.WriteEmpty, "Write reports for teams with no rows")
	noIndex := fs.Bool("no-index", !cfg.Output.WriteIndex, "Do not update index.json")
	redisAddr := fs.String("redis", cfg.Redis.Addr, "Redis address for publishing reports (empty disables)")
	redisTTL := fs.Duration("redis-ttl", cfg.Redis.TTL, "Expiry of reports in Redis (0 keeps them)")
	logLevel := fs.String("log-level", cfg.Observability.LogLevel, "Log level: debug, info, warn, error")
	logFormat := fs.String("log-format", cfg.Observability.LogFormat, "Log format: text or json")
	eventsPath := fs.String("events", cfg.Observability.EventsPath, "Append run events to this JSONL file")
	posThreshold := fs.Float64("position-threshold", cfg.Thresholds.Position, "Innings below which fielders fold into Other")
	batThreshold := fs.Float64("batting-threshold", cfg.Thresholds.Batting, "Plate appearances below which batters fold into Other")
	pitchThreshold := fs.Float64("pitching-threshold", cfg.Thresholds.Pitching, "Innings pitched below which pitchers fold into Other")
	reliefThreshold := fs.Float64("relief-threshold", cfg.Thresholds.Relief, "Relief innings below which relievers fold into Other")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg.Input.Path = *input
	cfg.Input.Table = *table
	cfg.Output.Dir = *out
	cfg.Output.WriteEmpty = *writeEmpty
	cfg.Output.WriteIndex = !*noIndex
	cfg.Season.Year = *year
	cfg.Season.Teams = splitTeams(*teams)
	cfg.Batch.Workers = *workers
	cfg.Redis.Addr = *redisAddr
	cfg.Redis.TTL = *redisTTL
	cfg.Observability.LogLevel = *logLevel
	cfg.Observability.LogFormat = *logFormat
	cfg.Observability.EventsPath = *eventsPath
	cfg.Thresholds.Position = *posThreshold
	cfg.Thresholds.Batting = *batThreshold
	cfg.Thresholds.Pitching = *pitchThreshold
	cfg.Thresholds.Relief = *reliefThreshold
	return nil
}

func splitTeams(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// environ turns KEY=VALUE pairs into the map the env parser reads.
func environ(pairs []string) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		if key, value, ok := strings.Cut(kv, "="); ok {
			out[key] = value
		}
	}
	return out
}
