package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// IndexFileName is the name of the report index inside the output directory.
const IndexFileName = "index.json"

// Index lists the seasons and teams that have published reports.
// Years holds every season in ascending order; Teams maps each team to its
// seasons in ascending order.
type Index struct {
	Years []int            `json:"years"`
	Teams map[string][]int `json:"teams"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{Years: []int{}, Teams: map[string][]int{}}
}

// Add records that team has a report for year.
func (ix *Index) Add(team string, year int) {
	team = strings.ToUpper(strings.TrimSpace(team))
	ix.Years = insertSorted(ix.Years, year)
	ix.Teams[team] = insertSorted(ix.Teams[team], year)
}

// Merge adds every entry of other.
func (ix *Index) Merge(other *Index) {
	for team, years := range other.Teams {
		for _, y := range years {
			ix.Add(team, y)
		}
	}
	for _, y := range other.Years {
		ix.Years = insertSorted(ix.Years, y)
	}
}

func insertSorted(s []int, v int) []int {
	i, found := slices.BinarySearch(s, v)
	if found {
		return s
	}
	return slices.Insert(s, i, v)
}

// ReadIndex loads dir/index.json. A missing file yields an empty index.
// Both the current shape and the older {"TEAM": [years]} map are accepted.
func ReadIndex(dir string) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(dir, IndexFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return NewIndex(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return ParseIndex(data)
}

// ParseIndex decodes an index document in either accepted shape.
func ParseIndex(data []byte) (*Index, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}

	ix := NewIndex()
	_, hasYears := raw["years"]
	_, hasTeams := raw["teams"]
	if hasYears || hasTeams {
		var cur Index
		if err := json.Unmarshal(data, &cur); err != nil {
			return nil, fmt.Errorf("decode index: %w", err)
		}
		if cur.Teams == nil {
			cur.Teams = map[string][]int{}
		}
		ix.Merge(&cur)
		return ix, nil
	}

	for team, msg := range raw {
		var years []int
		if err := json.Unmarshal(msg, &years); err != nil {
			return nil, fmt.Errorf("decode index entry %q: %w", team, err)
		}
		for _, y := range years {
			ix.Add(team, y)
		}
	}
	return ix, nil
}

// WriteIndex merges ix into dir/index.json and returns the file path.
func WriteIndex(dir string, ix *Index) (string, error) {
	merged, err := ReadIndex(dir)
	if err != nil {
		return "", err
	}
	merged.Merge(ix)

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode index: %w", err)
	}
	path := filepath.Join(dir, IndexFileName)
	if err := writeFileAtomic(path, append(data, '\n')); err != nil {
		return "", err
	}
	return path, nil
}
