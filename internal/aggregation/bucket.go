package aggregation

import "github.com/ahrav/go-usage/internal/domain"

// BuildBucket buckets rows along dim.
//
// Only rows with positive usage qualify (and, for reliever-only dimensions,
// only rows with zero starts). Qualifying rows at or above the threshold become
// individual entries in input order; the rest fold into one trailing "Other"
// entry whose rates are count-weighted averages. The second result is false
// when no row qualifies: the bucket has no total to divide by and is omitted.
func BuildBucket(rows []domain.PlayerSeasonRow, dim domain.Dimension) (domain.UsageBucket, bool) {
	qualifying := make([]*domain.PlayerSeasonRow, 0, len(rows))
	var total float64
	for i := range rows {
		r := &rows[i]
		if dim.RelieversOnly && !r.IsReliever() {
			continue
		}
		u, ok := usageOf(r, dim)
		if !ok {
			continue
		}
		qualifying = append(qualifying, r)
		total += u
	}
	if total <= 0 {
		return domain.UsageBucket{}, false
	}

	bucket := domain.UsageBucket{
		Dimension: dim,
		Total:     total,
		TeamRates: weightedRates(qualifying, dim),
		Entries:   make([]domain.UsageEntry, 0, len(qualifying)),
	}

	var minor []*domain.PlayerSeasonRow
	var minorUsage float64
	for _, r := range qualifying {
		u, _ := usageOf(r, dim)
		if u < dim.Threshold {
			minor = append(minor, r)
			minorUsage += u
			continue
		}
		bucket.Entries = append(bucket.Entries, domain.UsageEntry{
			Name:  r.Name,
			Usage: u,
			Count: clonePtr(r.Value(dim.CountColumn)),
			Rates: ownRates(r, dim),
		})
	}

	if len(minor) > 0 {
		bucket.Entries = append(bucket.Entries, domain.UsageEntry{
			Name:  domain.OtherName,
			Usage: minorUsage,
			Count: SumPresent(column(minor, dim.CountColumn)),
			Rates: weightedRates(minor, dim),
			Other: true,
		})
	}

	for i := range bucket.Entries {
		bucket.Entries[i].Percent = domain.Round(bucket.Entries[i].Usage/total*100, domain.PercentDecimals)
	}
	return bucket, true
}

// usageOf returns the row's usage for dim and whether it qualifies (> 0).
func usageOf(r *domain.PlayerSeasonRow, dim domain.Dimension) (float64, bool) {
	u := r.Value(dim.UsageColumn)
	if u == nil || !isFinite(*u) || *u <= 0 {
		return 0, false
	}
	return *u, true
}

func column(rows []*domain.PlayerSeasonRow, col domain.Column) []*float64 {
	out := make([]*float64, len(rows))
	for i, r := range rows {
		out[i] = r.Value(col)
	}
	return out
}

// weightedRates averages every rate of dim over rows, weighted by the count column.
func weightedRates(rows []*domain.PlayerSeasonRow, dim domain.Dimension) map[domain.Column]*float64 {
	weights := column(rows, dim.CountColumn)
	out := make(map[domain.Column]*float64, len(dim.Rates))
	for _, spec := range dim.Rates {
		out[spec.Column] = domain.RoundPtr(WeightedAverage(column(rows, spec.Column), weights), spec.Decimals)
	}
	return out
}

func ownRates(r *domain.PlayerSeasonRow, dim domain.Dimension) map[domain.Column]*float64 {
	out := make(map[domain.Column]*float64, len(dim.Rates))
	for _, spec := range dim.Rates {
		out[spec.Column] = domain.RoundPtr(r.Value(spec.Column), spec.Decimals)
	}
	return out
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
