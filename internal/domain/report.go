package domain

import "math"

// TeamUsageReport is the JSON document written for one team and year.
type TeamUsageReport struct {
	Team      string          `json:"team"`
	Year      int             `json:"year"`
	Positions []PositionUsage `json:"positions"`
	Batting   BattingUsage    `json:"batting"`
	Pitching  PitchingUsage   `json:"pitching"`
}

// PositionUsage summarizes one defensive position (or DH).
type PositionUsage struct {
	Position  string           `json:"position"`
	// Unit is "inn" for defensive positions and "PA" for DH, whose
	// TotalInn and usage values are plate appearances.
	Unit      string           `json:"unit"`
	TotalInn  float64          `json:"total_inn"`
	TeamWOBA  *float64         `json:"team_wOBA"`
	TeamXWOBA *float64         `json:"team_xwOBA"`
	Players   []PositionPlayer `json:"players"`
}

// PositionPlayer is one entry of a position bucket.
type PositionPlayer struct {
	Name    string   `json:"name"`
	Usage   float64  `json:"usage"`
	Percent float64  `json:"percent"`
	PA      *int     `json:"PA"`
	WOBA    *float64 `json:"wOBA"`
	XWOBA   *float64 `json:"xwOBA"`
}

// BattingUsage is the plate-appearance bucket.
type BattingUsage struct {
	TotalPA   int             `json:"total_PA"`
	TeamWOBA  *float64        `json:"team_wOBA"`
	TeamXWOBA *float64        `json:"team_xwOBA"`
	Players   []BattingPlayer `json:"players"`
}

// BattingPlayer is one entry of the batting bucket.
type BattingPlayer struct {
	Name    string   `json:"name"`
	PA      int      `json:"PA"`
	Percent float64  `json:"percent"`
	WOBA    *float64 `json:"wOBA"`
	XWOBA   *float64 `json:"xwOBA"`
}

// PitchingUsage holds the all-pitchers and relief-only buckets.
type PitchingUsage struct {
	All        PitchingBucket `json:"all"`
	ReliefOnly PitchingBucket `json:"relief_only"`
}

// PitchingBucket is an innings-pitched bucket.
type PitchingBucket struct {
	TotalIP  float64        `json:"total_ip"`
	TeamERA  *float64       `json:"team_ERA"`
	TeamFIP  *float64       `json:"team_FIP"`
	TeamXFIP *float64       `json:"team_xFIP"`
	Players  []PitcherUsage `json:"players"`
}

// PitcherUsage is one entry of a pitching bucket.
type PitcherUsage struct {
	Name    string   `json:"name"`
	IP      float64  `json:"IP"`
	Percent float64  `json:"percent"`
	ERA     *float64 `json:"ERA"`
	FIP     *float64 `json:"FIP"`
	XFIP    *float64 `json:"xFIP"`
}

// NewEmptyReport returns a report with no usage. Slices are non-nil so they
// encode as [] rather than null.
func NewEmptyReport(team string, year int) TeamUsageReport {
	return TeamUsageReport{
		Team:      team,
		Year:      year,
		Positions: []PositionUsage{},
		Batting:   BattingUsage{Players: []BattingPlayer{}},
		Pitching: PitchingUsage{
			All:        PitchingBucket{Players: []PitcherUsage{}},
			ReliefOnly: PitchingBucket{Players: []PitcherUsage{}},
		},
	}
}

// IsEmpty reports whether no bucket in the report has any usage.
func (r *TeamUsageReport) IsEmpty() bool {
	return len(r.Positions) == 0 &&
		len(r.Batting.Players) == 0 &&
		len(r.Pitching.All.Players) == 0 &&
		len(r.Pitching.ReliefOnly.Players) == 0
}

// NewPositionUsage renders a position bucket.
func NewPositionUsage(b UsageBucket) PositionUsage {
	d := b.Dimension
	out := PositionUsage{
		Position:  d.Label,
		Unit:      d.Unit,
		TotalInn:  Round(b.Total, d.UsageDecimals),
		TeamWOBA:  b.TeamRate(ColWOBA),
		TeamXWOBA: b.TeamRate(ColXWOBA),
		Players:   make([]PositionPlayer, 0, len(b.Entries)),
	}
	for i := range b.Entries {
		e := &b.Entries[i]
		out.Players = append(out.Players, PositionPlayer{
			Name:    e.Name,
			Usage:   Round(e.Usage, d.UsageDecimals),
			Percent: e.Percent,
			PA:      IntPtr(e.Count),
			WOBA:    e.Rate(ColWOBA),
			XWOBA:   e.Rate(ColXWOBA),
		})
	}
	return out
}

// NewBattingUsage renders the batting bucket.
func NewBattingUsage(b UsageBucket) BattingUsage {
	out := BattingUsage{
		TotalPA:   int(math.Round(b.Total)),
		TeamWOBA:  b.TeamRate(ColWOBA),
		TeamXWOBA: b.TeamRate(ColXWOBA),
		Players:   make([]BattingPlayer, 0, len(b.Entries)),
	}
	for i := range b.Entries {
		e := &b.Entries[i]
		out.Players = append(out.Players, BattingPlayer{
			Name:    e.Name,
			PA:      int(math.Round(e.Usage)),
			Percent: e.Percent,
			WOBA:    e.Rate(ColWOBA),
			XWOBA:   e.Rate(ColXWOBA),
		})
	}
	return out
}

// NewPitchingBucket renders an innings-pitched bucket.
func NewPitchingBucket(b UsageBucket) PitchingBucket {
	d := b.Dimension
	out := PitchingBucket{
		TotalIP:  Round(b.Total, d.UsageDecimals),
		TeamERA:  b.TeamRate(ColERA),
		TeamFIP:  b.TeamRate(ColFIP),
		TeamXFIP: b.TeamRate(ColXFIP),
		Players:  make([]PitcherUsage, 0, len(b.Entries)),
	}
	for i := range b.Entries {
		e := &b.Entries[i]
		out.Players = append(out.Players, PitcherUsage{
			Name:    e.Name,
			IP:      Round(e.Usage, d.UsageDecimals),
			Percent: e.Percent,
			ERA:     e.Rate(ColERA),
			FIP:     e.Rate(ColFIP),
			XFIP:    e.Rate(ColXFIP),
		})
	}
	return out
}
