package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ahrav/go-usage/internal/domain"
)

// ctxCheckInterval is how many records are read between context checks.
const ctxCheckInterval = 1024

// CSVSource reads a delimited season export with a header row.
type CSVSource struct {
	path   string
	comma  rune
	logger *slog.Logger
	stats  LoadStats
}

// NewCSVSource returns a source for the file at path split on comma.
func NewCSVSource(path string, comma rune, logger *slog.Logger) *CSVSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVSource{
		path:   path,
		comma:  comma,
		logger: logger.With("component", "ingest", "source", path),
	}
}

// Load reads every row in the file.
func (s *CSVSource) Load(ctx context.Context) ([]domain.PlayerSeasonRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open season csv: %w", err)
	}
	defer f.Close()

	rows, stats, err := ReadCSV(ctx, f, s.path, s.comma)
	s.stats = stats
	if err != nil {
		return nil, err
	}
	if stats.Malformed > 0 {
		s.logger.Warn("malformed cells loaded as missing", "cells", stats.Malformed)
	}
	s.logger.Debug("loaded season csv", "rows", stats.Rows)
	return rows, nil
}

// Stats describes the most recent Load.
func (s *CSVSource) Stats() LoadStats { return s.stats }

// Close is a no-op; the file is closed when Load returns.
func (s *CSVSource) Close() error { return nil }

// ReadCSV decodes a delimited table from r. name identifies the input in
// errors. Records shorter than the header read their absent cells as missing.
func ReadCSV(ctx context.Context, r io.Reader, name string, comma rune) ([]domain.PlayerSeasonRow, LoadStats, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, LoadStats{}, &SchemaError{Source: name, Missing: domain.RequiredColumns()}
	}
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read header of %s: %w", name, err)
	}

	idx, err := resolveHeader(name, header)
	if err != nil {
		return nil, LoadStats{}, err
	}

	dec := decoder{idx: idx}
	var rows []domain.PlayerSeasonRow
	for {
		if len(rows)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, LoadStats{}, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("read %s: %w", name, err)
		}
		if blank(record) {
			continue
		}

		rows = append(rows, dec.decode(func(i int) any {
			if i < len(record) {
				return record[i]
			}
			return ""
		}))
	}

	return rows, LoadStats{Rows: len(rows), Malformed: dec.malformed}, nil
}

func blank(record []string) bool {
	for _, c := range record {
		if c != "" {
			return false
		}
	}
	return true
}
