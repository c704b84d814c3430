// Package ingest loads the player-season table from its storage. A table can
// live in a CSV/TSV export, a SQLite file or a Postgres database; every source
// yields the same domain rows and enforces the same required-column schema.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ahrav/go-usage/internal/domain"
)

// Source loads every player-season row from one location.
type Source interface {
	// Load reads the whole table. A missing required column is reported as a
	// *SchemaError before any row is returned.
	Load(ctx context.Context) ([]domain.PlayerSeasonRow, error)
	// Stats describes the most recent Load.
	Stats() LoadStats
	Close() error
}

// LoadStats counts what a load read.
// Malformed counts cells that were neither a number nor a missing marker;
// they load as nil and their row is kept.
type LoadStats struct {
	Rows      int `json:"rows"`
	Malformed int `json:"malformed"`
}

// SchemaError reports the required columns a source lacks.
type SchemaError struct {
	Source  string
	Missing []domain.Column
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = string(c)
	}
	return fmt.Sprintf("%s: %v: %s", e.Source, domain.ErrMissingColumn, strings.Join(names, ", "))
}

// Unwrap lets errors.Is match domain.ErrMissingColumn.
func (e *SchemaError) Unwrap() error { return domain.ErrMissingColumn }

// Options tune how Open builds a source.
type Options struct {
	Table  string // Table to read for database sources
	Logger *slog.Logger
}

// Open picks a source for location:
//
//	*.csv, *.txt         comma-separated file
//	*.tsv                tab-separated file
//	*.db, *.sqlite*      SQLite file, also sqlite://path
//	postgres://, postgresql://  Postgres connection URL
func Open(ctx context.Context, location string, opts Options) (Source, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := strings.TrimSpace(location)
	lower := strings.ToLower(loc)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return OpenPostgres(ctx, loc, opts.Table, logger)
	case strings.HasPrefix(lower, "sqlite://"):
		return OpenSQLite(ctx, loc[len("sqlite://"):], opts.Table, logger)
	}

	switch strings.ToLower(filepath.Ext(loc)) {
	case ".csv", ".txt":
		return NewCSVSource(loc, ',', logger), nil
	case ".tsv":
		return NewCSVSource(loc, '\t', logger), nil
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(ctx, loc, opts.Table, logger)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, location)
	}
}
