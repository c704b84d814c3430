// Package aggregation buckets player-season rows into per-dimension usage
// summaries and assembles them into a team usage report.
//
// The aggregation is a pure function of its inputs: no I/O, no shared state,
// and the same rows, selector and dimension table always produce the same
// report. Callers may run one Aggregator from many goroutines.
package aggregation

import "math"

// WeightedAverage returns Σ(value·weight)/Σweight over the pairs where both
// value and weight are present, finite and the weight is positive.
//
// Pairs with a missing value are skipped entirely, so a missing metric never
// biases the result toward zero. When no pair qualifies, or the qualifying
// weights sum to zero, the result is nil rather than NaN or 0.
func WeightedAverage(values, weights []*float64) *float64 {
	n := min(len(values), len(weights))

	var num, den float64
	for i := 0; i < n; i++ {
		v, w := values[i], weights[i]
		if v == nil || w == nil || !isFinite(*v) || !isFinite(*w) || *w <= 0 {
			continue
		}
		num += *v * *w
		den += *w
	}

	if den == 0 {
		return nil
	}
	avg := num / den
	if !isFinite(avg) {
		return nil
	}
	return &avg
}

// SumPresent adds every present, finite value. It returns nil when no value is
// present so an all-missing column stays missing.
func SumPresent(values []*float64) *float64 {
	var sum float64
	seen := false
	for _, v := range values {
		if v == nil || !isFinite(*v) {
			continue
		}
		sum += *v
		seen = true
	}
	if !seen {
		return nil
	}
	return &sum
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
