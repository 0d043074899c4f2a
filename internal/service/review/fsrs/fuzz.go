package fsrs

import (
	"math"
	"math/rand"
)

// fuzzRange defines one tier of the 3-tier interval fuzz.
type fuzzRange struct {
	start, end float64
	factor     float64
}

// fuzzRanges matches the FSRS reference 3-tier fuzz.
var fuzzRanges = []fuzzRange{
	{2.5, 7.0, 0.15},
	{7.0, 20.0, 0.10},
	{20.0, math.MaxFloat64, 0.05},
}

// fuzzDelta computes the fuzz half-width for a given interval.
//
//	delta = 1.0 + Σ(factor * max(min(interval, end) - start, 0))
func fuzzDelta(interval float64) float64 {
	delta := 1.0
	for _, r := range fuzzRanges {
		delta += r.factor * math.Max(math.Min(interval, r.end)-r.start, 0)
	}
	return delta
}

// applyFuzz randomizes an interval inside its fuzz range to prevent review
// clustering. Intervals below 2.5 days are returned unchanged. The RNG is
// injected so tests can pin the permutation.
func applyFuzz(interval, maxDays int, rng *rand.Rand) int {
	if float64(interval) < 2.5 {
		return interval
	}

	ivl := float64(interval)
	delta := fuzzDelta(ivl)

	minIvl := max(2, int(math.Round(ivl-delta)))
	maxIvl := min(int(math.Round(ivl+delta)), maxDays)
	if minIvl > maxIvl {
		minIvl = maxIvl
	}

	return minIvl + rng.Intn(maxIvl-minIvl+1)
}
