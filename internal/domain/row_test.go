package domain //nolint:testpackage // Need access to unexported validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerSeasonRow_ValueAndSet(t *testing.T) {
	var r PlayerSeasonRow

	for i, col := range NumericColumns {
		v := float64(i + 1)
		require.True(t, r.Set(col, &v), "column %s", col)
	}
	for i, col := range NumericColumns {
		got := r.Value(col)
		require.NotNil(t, got, "column %s", col)
		assert.InDelta(t, float64(i+1), *got, 1e-12, "column %s", col)
	}

	assert.False(t, r.Set(ColName, Float(1)))
	assert.Nil(t, r.Value(ColTeam))
	assert.Nil(t, r.Value(Column("Unknown")))

	require.True(t, r.Set(ColPA, nil))
	assert.Nil(t, r.PA)
}

func TestPlayerSeasonRow_IsReliever(t *testing.T) {
	assert.True(t, (&PlayerSeasonRow{Starts: Float(0)}).IsReliever())
	assert.False(t, (&PlayerSeasonRow{Starts: Float(3)}).IsReliever())
	assert.False(t, (&PlayerSeasonRow{}).IsReliever(), "unknown starts is not a reliever")
}

func TestPlayerSeasonRow_Matches(t *testing.T) {
	r := PlayerSeasonRow{Team: "CHC ", Year: 2025}

	assert.True(t, r.Matches("chc", 2025))
	assert.True(t, r.Matches(" CHC", 2025))
	assert.False(t, r.Matches("CHW", 2025))
	assert.False(t, r.Matches("CHC", 2024))
}

func TestRequiredColumns(t *testing.T) {
	cols := RequiredColumns()
	assert.Len(t, cols, len(NumericColumns)+3)
	assert.Equal(t, []Column{ColName, ColTeam, ColYear}, cols[:3])
	assert.Contains(t, cols, ColStarts)
	assert.Contains(t, cols, ColDHPA)
}

func TestStandardDimensions(t *testing.T) {
	th := Thresholds{Position: 10, Batting: 20, Pitching: 10, Relief: 1}
	set := StandardDimensions(th)

	require.NoError(t, set.Validate())
	require.Len(t, set.Positions, 9)

	var labels []string
	for _, d := range set.Positions {
		labels = append(labels, d.Label)
	}
	assert.Equal(t, []string{"C", "1B", "2B", "3B", "SS", "LF", "CF", "RF", "DH"}, labels)

	dh := set.Positions[8]
	assert.Equal(t, ColDHPA, dh.UsageColumn)
	assert.Equal(t, ColDHPA, dh.CountColumn)
	assert.InDelta(t, th.Batting, dh.Threshold, 0)

	assert.Equal(t, ColPA, set.Positions[0].CountColumn)
	assert.InDelta(t, th.Position, set.Positions[0].Threshold, 0)
	assert.Equal(t, ColIP, set.Pitching.CountColumn)
	assert.True(t, set.Relief.RelieversOnly)
	assert.False(t, set.Pitching.RelieversOnly)
	assert.InDelta(t, th.Relief, set.Relief.Threshold, 0)
}

func TestDimension_Validate(t *testing.T) {
	base := StandardDimensions(Thresholds{Position: 10, Batting: 20, Pitching: 10, Relief: 1}).Batting

	tests := []struct {
		name    string
		modify  func(*Dimension)
		wantErr bool
	}{
		{name: "valid", modify: func(_ *Dimension) {}},
		{name: "empty key", modify: func(d *Dimension) { d.Key = "" }, wantErr: true},
		{name: "unknown kind", modify: func(d *Dimension) { d.Kind = "fielding" }, wantErr: true},
		{name: "missing usage column", modify: func(d *Dimension) { d.UsageColumn = "" }, wantErr: true},
		{name: "missing count column", modify: func(d *Dimension) { d.CountColumn = "" }, wantErr: true},
		{name: "negative threshold", modify: func(d *Dimension) { d.Threshold = -1 }, wantErr: true},
		{name: "rate precision too high", modify: func(d *Dimension) {
			d.Rates = []RateSpec{{Column: ColWOBA, Decimals: 9}}
		}, wantErr: true},
		{name: "zero threshold keeps everyone", modify: func(d *Dimension) { d.Threshold = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			d.Rates = append([]RateSpec(nil), base.Rates...)
			tt.modify(&d)
			err := d.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDimension)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTeamUsageReport_Empty(t *testing.T) {
	r := NewEmptyReport("CHC", 2025)
	assert.True(t, r.IsEmpty())
	assert.NotNil(t, r.Positions)
	assert.NotNil(t, r.Batting.Players)
	assert.NotNil(t, r.Pitching.All.Players)
	assert.NotNil(t, r.Pitching.ReliefOnly.Players)

	r.Batting.Players = append(r.Batting.Players, BattingPlayer{Name: "A", PA: 10, Percent: 100})
	assert.False(t, r.IsEmpty())
}

func TestUsageBucket_Other(t *testing.T) {
	b := UsageBucket{Entries: []UsageEntry{{Name: "A"}}}
	assert.Nil(t, b.Other())

	b.Entries = append(b.Entries, UsageEntry{Name: OtherName, Other: true, Usage: 4})
	require.NotNil(t, b.Other())
	assert.InDelta(t, 4.0, b.Other().Usage, 0)

	assert.Nil(t, (&UsageBucket{}).Other())
}
