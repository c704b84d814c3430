// Package domain dimension describes the usage dimensions a roster report is
// built from. Each dimension is an explicit mapping from a usage column to the
// count column used as a weight, the rate metrics reported per entry and the
// threshold separating major contributors from the "Other" entry.
package domain

import (
	"errors"
	"fmt"
)

// DimensionKind groups dimensions by the report section they feed.
type DimensionKind string

const (
	// KindPosition feeds the positions list (defensive innings or DH PA).
	KindPosition DimensionKind = "position"

	// KindBatting feeds the batting section.
	KindBatting DimensionKind = "batting"

	// KindPitching feeds the pitching sections.
	KindPitching DimensionKind = "pitching"
)

// Display precision for each family of numbers.
const (
	UsageDecimals   = 1
	PercentDecimals = 1
	WOBADecimals    = 3
	ERADecimals     = 2
)

// OtherName is the display name of the aggregated below-threshold entry.
const OtherName = "Other"

// RateSpec names a rate metric reported for a dimension and its display precision.
type RateSpec struct {
	Column   Column `json:"column" validate:"required"`
	Decimals int    `json:"decimals" validate:"min=0,max=6"`
}

// Dimension is one bucketing rule: which column measures usage, which column
// weights the rate metrics, and where the major/minor split falls.
type Dimension struct {
	// Key identifies the dimension in logs and events.
	Key string `json:"key" validate:"required"`

	// Label is the display name written to the report ("C", "DH", ...).
	Label string `json:"label" validate:"required"`

	Kind DimensionKind `json:"kind" validate:"required,oneof=position batting pitching"`

	// Unit is the usage unit shown next to totals ("inn", "PA", "IP").
	Unit string `json:"unit" validate:"required"`

	UsageColumn Column `json:"usage_column" validate:"required"`

	// CountColumn weights every rate average and is summed into the "Other" count.
	CountColumn Column `json:"count_column" validate:"required"`

	Rates []RateSpec `json:"rates" validate:"dive"`

	// Threshold is the minimum usage for a row to be listed on its own.
	Threshold float64 `json:"threshold" validate:"min=0"`

	UsageDecimals int `json:"usage_decimals" validate:"min=0,max=6"`

	// RelieversOnly restricts the dimension to rows with zero games started.
	RelieversOnly bool `json:"relievers_only"`
}

// Validate checks the dimension's struct constraints.
func (d *Dimension) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidDimension, d.Key, err)
	}
	return nil
}

// Thresholds are the per-dimension cutoffs below which rows fold into "Other".
type Thresholds struct {
	Position float64 `json:"position" validate:"min=0"`
	Batting  float64 `json:"batting" validate:"min=0"`
	Pitching float64 `json:"pitching" validate:"min=0"`
	Relief   float64 `json:"relief" validate:"min=0"`
}

// DimensionSet is the full dimension table for one report.
type DimensionSet struct {
	// Positions are reported in order; DH comes last.
	Positions []Dimension `json:"positions"`
	Batting   Dimension   `json:"batting"`
	Pitching  Dimension   `json:"pitching"`
	Relief    Dimension   `json:"relief"`
}

// Validate checks every dimension in the set and joins the failures.
func (s *DimensionSet) Validate() error {
	var errs []error
	for i := range s.Positions {
		errs = append(errs, s.Positions[i].Validate())
	}
	errs = append(errs, s.Batting.Validate(), s.Pitching.Validate(), s.Relief.Validate())
	return errors.Join(errs...)
}

var (
	battingRates = []RateSpec{
		{Column: ColWOBA, Decimals: WOBADecimals},
		{Column: ColXWOBA, Decimals: WOBADecimals},
	}
	pitchingRates = []RateSpec{
		{Column: ColERA, Decimals: ERADecimals},
		{Column: ColFIP, Decimals: ERADecimals},
		{Column: ColXFIP, Decimals: ERADecimals},
	}
	defensivePositions = []struct {
		label string
		col   Column
	}{
		{"C", ColCatcherInn},
		{"1B", ColFirstBaseInn},
		{"2B", ColSecondBaseInn},
		{"3B", ColThirdBaseInn},
		{"SS", ColShortstopInn},
		{"LF", ColLeftFieldInn},
		{"CF", ColCenterFieldInn},
		{"RF", ColRightFieldInn},
	}
)

// StandardDimensions builds the season report dimension table for th.
// Defensive positions weight wOBA by PA; DH measures and weights by DH_PA and
// reuses the batting threshold; pitching rates are weighted by IP.
func StandardDimensions(th Thresholds) DimensionSet {
	set := DimensionSet{Positions: make([]Dimension, 0, len(defensivePositions)+1)}
	for _, p := range defensivePositions {
		set.Positions = append(set.Positions, Dimension{
			Key:           "position." + p.label,
			Label:         p.label,
			Kind:          KindPosition,
			Unit:          "inn",
			UsageColumn:   p.col,
			CountColumn:   ColPA,
			Rates:         battingRates,
			Threshold:     th.Position,
			UsageDecimals: UsageDecimals,
		})
	}
	set.Positions = append(set.Positions, Dimension{
		Key:           "position.DH",
		Label:         "DH",
		Kind:          KindPosition,
		Unit:          "PA",
		UsageColumn:   ColDHPA,
		CountColumn:   ColDHPA,
		Rates:         battingRates,
		Threshold:     th.Batting,
		UsageDecimals: 0,
	})
	set.Batting = Dimension{
		Key:           "batting",
		Label:         "Batters",
		Kind:          KindBatting,
		Unit:          "PA",
		UsageColumn:   ColPA,
		CountColumn:   ColPA,
		Rates:         battingRates,
		Threshold:     th.Batting,
		UsageDecimals: 0,
	}
	set.Pitching = Dimension{
		Key:           "pitching.all",
		Label:         "All Pitchers",
		Kind:          KindPitching,
		Unit:          "IP",
		UsageColumn:   ColIP,
		CountColumn:   ColIP,
		Rates:         pitchingRates,
		Threshold:     th.Pitching,
		UsageDecimals: UsageDecimals,
	}
	set.Relief = Dimension{
		Key:           "pitching.relief_only",
		Label:         "Relief Only",
		Kind:          KindPitching,
		Unit:          "IP",
		UsageColumn:   ColIP,
		CountColumn:   ColIP,
		Rates:         pitchingRates,
		Threshold:     th.Relief,
		UsageDecimals: UsageDecimals,
		RelieversOnly: true,
	}
	return set
}
