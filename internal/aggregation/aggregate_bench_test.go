package aggregation

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

// BenchmarkAggregate benchmarks report building for various roster sizes.
func BenchmarkAggregate(b *testing.B) {
	for _, n := range []int{26, 60, 250} {
		b.Run(fmt.Sprintf("Roster_%d", n), func(b *testing.B) {
			agg, err := NewAggregator(testDims, nil)
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			rows := randomRoster(rand.New(rand.NewPCG(1, uint64(n))), n)
			sel := Selector{Team: testTeam, Year: testYear}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_ = agg.Aggregate(rows, sel)
			}
		})
	}
}

// BenchmarkBuildBucket benchmarks a single batting bucket.
func BenchmarkBuildBucket(b *testing.B) {
	rows := randomRoster(rand.New(rand.NewPCG(7, 7)), 60)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = BuildBucket(rows, testDims.Batting)
	}
}
