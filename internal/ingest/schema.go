package ingest

import (
	"fmt"
	"strings"

	"github.com/ahrav/go-usage/internal/domain"
)

// columnIndex maps each required column to its position in a header.
type columnIndex map[domain.Column]int

// resolveHeader locates the required columns in header. Names are matched
// after trimming, exactly first and then case-insensitively. A leading UTF-8
// byte order mark is ignored.
func resolveHeader(source string, header []string) (columnIndex, error) {
	exact := make(map[string]int, len(header))
	folded := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := exact[name]; !dup {
			exact[name] = i
		}
		if _, dup := folded[strings.ToLower(name)]; !dup {
			folded[strings.ToLower(name)] = i
		}
	}

	idx := make(columnIndex)
	var missing []domain.Column
	for _, col := range domain.RequiredColumns() {
		if i, ok := exact[string(col)]; ok {
			idx[col] = i
			continue
		}
		if i, ok := folded[strings.ToLower(string(col))]; ok {
			idx[col] = i
			continue
		}
		missing = append(missing, col)
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: source, Missing: missing}
	}
	return idx, nil
}

// decoder turns one raw record into a row, counting malformed cells.
type decoder struct {
	idx       columnIndex
	malformed int
}

// cell extracts the value at col's position from a record.
type cell func(i int) any

func (d *decoder) decode(at cell) domain.PlayerSeasonRow {
	row := domain.PlayerSeasonRow{
		Name: strings.TrimSpace(text(at(d.idx[domain.ColName]))),
		Team: strings.TrimSpace(text(at(d.idx[domain.ColTeam]))),
	}
	if year := domain.IntPtr(d.number(at(d.idx[domain.ColYear]))); year != nil {
		row.Year = *year
	}
	for _, col := range domain.NumericColumns {
		row.Set(col, d.number(at(d.idx[col])))
	}
	return row
}

// number converts a cell, counting it as malformed when it holds text that
// is neither a number nor a missing marker.
func (d *decoder) number(v any) *float64 {
	n := domain.OptionalNumberFrom(v)
	if n != nil {
		return n
	}
	switch x := v.(type) {
	case string:
		if !domain.IsMissing(x) {
			d.malformed++
		}
	case []byte:
		if !domain.IsMissing(string(x)) {
			d.malformed++
		}
	}
	return nil
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
