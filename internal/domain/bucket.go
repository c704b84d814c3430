package domain

// UsageEntry is one row of a bucket: either a single player at or above the
// dimension threshold, or the synthetic "Other" entry folding every player below it.
type UsageEntry struct {
	Name string `json:"name"`

	// Usage is the unrounded usage amount.
	Usage float64 `json:"usage"`

	// Percent is Usage's share of the bucket total, rounded for display.
	Percent float64 `json:"percent"`

	// Count is the value of the dimension's count column (summed for "Other").
	Count *float64 `json:"count"`

	// Rates holds each rate metric rounded to its display precision. For a
	// player it is the row's own value; for "Other" the count-weighted average.
	Rates map[Column]*float64 `json:"rates"`

	Other bool `json:"other"`
}

// Rate returns the entry's value for col, nil when absent.
func (e *UsageEntry) Rate(col Column) *float64 { return e.Rates[col] }

// UsageBucket is the bucketed result of one dimension for one team.
type UsageBucket struct {
	Dimension Dimension `json:"dimension"`

	// Total is the unrounded sum of usage over every row with positive usage.
	Total float64 `json:"total"`

	// TeamRates are count-weighted averages over every qualifying row.
	TeamRates map[Column]*float64 `json:"team_rates"`

	// Entries lists majors in input order followed by "Other", if any.
	Entries []UsageEntry `json:"entries"`
}

// TeamRate returns the bucket's team-level value for col, nil when absent.
func (b *UsageBucket) TeamRate(col Column) *float64 { return b.TeamRates[col] }

// Other returns the bucket's "Other" entry, or nil when every row is a major.
func (b *UsageBucket) Other() *UsageEntry {
	if n := len(b.Entries); n > 0 && b.Entries[n-1].Other {
		return &b.Entries[n-1]
	}
	return nil
}
