package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-usage/internal/domain"
)

// newSeasonDB creates a SQLite file holding a season table with the given
// columns and returns its path.
func newSeasonDB(t *testing.T, table string, cols []domain.Column, rows [][]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "season.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	defs := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		typ := "REAL"
		if c == domain.ColName || c == domain.ColTeam {
			typ = "TEXT"
		}
		defs[i] = fmt.Sprintf("%q %s", string(c), typ)
		marks[i] = "?"
	}
	_, err = db.Exec(fmt.Sprintf("CREATE TABLE %q (%s)", table, strings.Join(defs, ", ")))
	require.NoError(t, err)

	insert := fmt.Sprintf("INSERT INTO %q VALUES (%s)", table, strings.Join(marks, ", "))
	for _, r := range rows {
		_, err = db.Exec(insert, r...)
		require.NoError(t, err)
	}
	return path
}

// dbRow builds a row in RequiredColumns order; numeric columns absent from
// cells are NULL.
func dbRow(name, team string, year any, cells map[domain.Column]any) []any {
	out := []any{name, team, year}
	for _, c := range domain.NumericColumns {
		out = append(out, cells[c])
	}
	return out
}

func TestSQLSource_SQLite(t *testing.T) {
	path := newSeasonDB(t, "season_data", domain.RequiredColumns(), [][]any{
		dbRow("Ace", "CHC", 2025, map[domain.Column]any{
			domain.ColIP: 190.2, domain.ColStarts: 32, domain.ColERA: 2.95,
		}),
		dbRow("Closer", "CHC", int64(2025), map[domain.Column]any{
			domain.ColIP: "62", domain.ColStarts: 0, domain.ColFIP: "n/a", domain.ColXFIP: "oops",
		}),
	})

	src, err := Open(context.Background(), "sqlite://"+path, Options{Table: "season_data"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	rows, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	ace := rows[0]
	assert.Equal(t, "Ace", ace.Name)
	assert.Equal(t, "CHC", ace.Team)
	assert.Equal(t, 2025, ace.Year)
	require.NotNil(t, ace.IP)
	assert.InDelta(t, 190.2, *ace.IP, 1e-9)
	assert.False(t, ace.IsReliever())
	assert.Nil(t, ace.PA)

	closer := rows[1]
	assert.True(t, closer.IsReliever())
	require.NotNil(t, closer.IP)
	assert.InDelta(t, 62.0, *closer.IP, 0)
	assert.Nil(t, closer.FIP)
	assert.Nil(t, closer.XFIP)

	assert.Equal(t, LoadStats{Rows: 2, Malformed: 1}, src.Stats())
}

func TestSQLSource_MissingColumn(t *testing.T) {
	cols := domain.RequiredColumns()
	path := newSeasonDB(t, "season_data", cols[:len(cols)-1], nil)

	src, err := Open(context.Background(), path, Options{Table: "season_data"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	_, err = src.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []domain.Column{domain.ColXFIP}, schemaErr.Missing)
}

func TestSQLSource_MissingTable(t *testing.T) {
	path := newSeasonDB(t, "season_data", domain.RequiredColumns(), nil)

	src, err := OpenSQLite(context.Background(), path, "other_table", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	_, err = src.Load(context.Background())
	assert.Error(t, err)
}

func TestSQLSource_InvalidTable(t *testing.T) {
	path := newSeasonDB(t, "season_data", domain.RequiredColumns(), nil)

	for _, table := range []string{"", "season data", `x"; DROP TABLE y; --`, "a.b.c", "1abc"} {
		_, err := OpenSQLite(context.Background(), path, table, nil)
		assert.ErrorIs(t, err, ErrInvalidTable, "table %q", table)
	}

	src, err := OpenSQLite(context.Background(), path, "main.season_data", nil)
	require.NoError(t, err)
	require.NoError(t, src.Close())
}

func TestOpenSQLite_MissingFile(t *testing.T) {
	_, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "absent.db"), "season_data", nil)
	assert.Error(t, err)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"season_data"`, quoteIdent("season_data"))
	assert.Equal(t, `"public"."season_data"`, quoteIdent("public.season_data"))
}
