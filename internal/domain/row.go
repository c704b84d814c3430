// Package domain defines the player-season, dimension and report types used to
// build roster usage reports, together with the numeric helpers shared by the
// ingestion and aggregation layers.
//
// Every numeric field of a season row is optional. A nil pointer means the value
// was missing or unreadable in the source and is carried through to the report
// as JSON null; it is never treated as zero.
package domain

import "strings"

// PlayerSeasonRow holds one player's season totals for one team and year.
type PlayerSeasonRow struct {
	Name string `json:"name"`
	Team string `json:"team"`
	// Year is zero when the source value could not be read.
	Year int `json:"year"`

	PA     *float64 `json:"PA"`
	DHPA   *float64 `json:"DH_PA"`
	IP     *float64 `json:"IP"`
	Starts *float64 `json:"P_GS"`

	CatcherInn     *float64 `json:"C_Inn"`
	FirstBaseInn   *float64 `json:"FirstB_Inn"`
	SecondBaseInn  *float64 `json:"SecB_Inn"`
	ThirdBaseInn   *float64 `json:"ThirdB_Inn"`
	ShortstopInn   *float64 `json:"SS_Inn"`
	LeftFieldInn   *float64 `json:"LF_Inn"`
	CenterFieldInn *float64 `json:"CF_Inn"`
	RightFieldInn  *float64 `json:"RF_Inn"`

	WOBA  *float64 `json:"wOBA"`
	XWOBA *float64 `json:"xwOBA"`
	ERA   *float64 `json:"ERA"`
	FIP   *float64 `json:"FIP"`
	XFIP  *float64 `json:"xFIP"`
}

// field returns the address of the numeric field backing col, or nil when col
// is not a numeric column.
func (r *PlayerSeasonRow) field(col Column) **float64 {
	switch col {
	case ColPA:
		return &r.PA
	case ColDHPA:
		return &r.DHPA
	case ColIP:
		return &r.IP
	case ColStarts:
		return &r.Starts
	case ColCatcherInn:
		return &r.CatcherInn
	case ColFirstBaseInn:
		return &r.FirstBaseInn
	case ColSecondBaseInn:
		return &r.SecondBaseInn
	case ColThirdBaseInn:
		return &r.ThirdBaseInn
	case ColShortstopInn:
		return &r.ShortstopInn
	case ColLeftFieldInn:
		return &r.LeftFieldInn
	case ColCenterFieldInn:
		return &r.CenterFieldInn
	case ColRightFieldInn:
		return &r.RightFieldInn
	case ColWOBA:
		return &r.WOBA
	case ColXWOBA:
		return &r.XWOBA
	case ColERA:
		return &r.ERA
	case ColFIP:
		return &r.FIP
	case ColXFIP:
		return &r.XFIP
	default:
		return nil
	}
}

// Value returns the numeric value stored for col. Unknown or non-numeric
// columns report nil, the same as a missing value.
func (r *PlayerSeasonRow) Value(col Column) *float64 {
	f := r.field(col)
	if f == nil {
		return nil
	}
	return *f
}

// Set stores v for col and reports whether col is a numeric column.
func (r *PlayerSeasonRow) Set(col Column, v *float64) bool {
	f := r.field(col)
	if f == nil {
		return false
	}
	*f = v
	return true
}

// IsReliever reports whether the row has a known zero games-started count.
// Rows with a missing P_GS are not treated as relievers.
func (r *PlayerSeasonRow) IsReliever() bool {
	return r.Starts != nil && *r.Starts == 0
}

// Matches reports whether the row belongs to team and year.
// Team codes compare case-insensitively after trimming.
func (r *PlayerSeasonRow) Matches(team string, year int) bool {
	return r.Year == year && strings.EqualFold(strings.TrimSpace(r.Team), strings.TrimSpace(team))
}
