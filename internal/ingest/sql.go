package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "github.com/lib/pq"  // registers the "postgres" driver
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/ahrav/go-usage/internal/domain"
)

// identPattern accepts a table name, optionally schema-qualified.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ErrInvalidTable indicates a table name that is not a plain SQL identifier.
var ErrInvalidTable = errors.New("invalid table name")

// SQLSource reads the season table from a database.
type SQLSource struct {
	db     *sql.DB
	table  string
	name   string
	logger *slog.Logger
	stats  LoadStats
}

// NewSQLSource wraps an open database. The caller keeps ownership of db
// unless it closes the source.
func NewSQLSource(db *sql.DB, table, name string, logger *slog.Logger) (*SQLSource, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLSource{
		db:     db,
		table:  table,
		name:   name,
		logger: logger.With("component", "ingest", "source", name, "table", table),
	}, nil
}

// OpenSQLite opens the SQLite file at path. The file must already exist.
func OpenSQLite(ctx context.Context, path, table string, logger *slog.Logger) (*SQLSource, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	cleanPath := filepath.Clean(path)
	if _, err := os.Stat(cleanPath); err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	db, err := sql.Open("sqlite", cleanPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	return connect(ctx, db, table, cleanPath, "sqlite", logger)
}

// OpenPostgres connects to the Postgres database at url.
func OpenPostgres(ctx context.Context, url, table string, logger *slog.Logger) (*SQLSource, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	return connect(ctx, db, table, "postgres", "postgres", logger)
}

func connect(ctx context.Context, db *sql.DB, table, name, driver string, logger *slog.Logger) (*SQLSource, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", driver, err)
	}
	src, err := NewSQLSource(db, table, name, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return src, nil
}

// Load reads every row of the table.
func (s *SQLSource) Load(ctx context.Context) ([]domain.PlayerSeasonRow, error) {
	query := "SELECT * FROM " + quoteIdent(s.table)
	rs, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rs.Close()

	header, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", s.table, err)
	}
	idx, err := resolveHeader(s.name+":"+s.table, header)
	if err != nil {
		return nil, err
	}

	dec := decoder{idx: idx}
	values := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range values {
		ptrs[i] = &values[i]
	}

	var rows []domain.PlayerSeasonRow
	for rs.Next() {
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		rows = append(rows, dec.decode(func(i int) any { return values[i] }))
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}

	s.stats = LoadStats{Rows: len(rows), Malformed: dec.malformed}
	if s.stats.Malformed > 0 {
		s.logger.Warn("malformed cells loaded as missing", "cells", s.stats.Malformed)
	}
	s.logger.Debug("loaded season table", "rows", s.stats.Rows)
	return rows, nil
}

// Stats describes the most recent Load.
func (s *SQLSource) Stats() LoadStats { return s.stats }

// Close closes the underlying database.
func (s *SQLSource) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func quoteIdent(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = `"` + p + `"`
	}
	return strings.Join(parts, ".")
}
