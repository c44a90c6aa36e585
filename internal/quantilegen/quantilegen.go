// Package quantilegen generates deterministic value streams for tests
// and benchmarks of package quantile: sequential runs anchored at a
// known rank, and random streams anchored at a known quantile. It is
// test-only infrastructure, never imported by package quantile itself.
package quantilegen

import (
	"math/rand"

	"github.com/sitegui/space-efficient-quantile/quantile"
)

// SequentialOrder selects the direction a Sequential stream advances in.
type SequentialOrder int

const (
	Ascending SequentialOrder = iota
	Descending
)

// Sequential returns num values forming a strictly monotonic sequence
// (per order) positioned so that value lands at quantile q within the
// returned slice.
func Sequential(q, value float64, num int, order SequentialOrder) []float64 {
	if num <= 0 {
		panic("quantilegen: num must be positive")
	}
	rank, err := quantile.QuantileToRank(q, uint64(num))
	if err != nil {
		panic(err)
	}

	var direction, offset float64
	switch order {
	case Ascending:
		direction, offset = 1, -float64(rank)+1
	default:
		direction, offset = -1, float64(uint64(num)-rank)
	}

	out := make([]float64, num)
	for i := range out {
		out[i] = value + direction*float64(i) + offset
	}
	return out
}

// Random returns num values drawn from a seeded PRNG, positioned so
// that exactly quantile_to_rank(q, num)-1 of them fall strictly below
// value and the rest fall at or above it; value itself always appears
// exactly once, at a randomly chosen position in the output. This
// lets property tests seed a Summary with values of a known quantile
// without hand-computing ranks.
func Random(q, value float64, num int, seed uint64) []float64 {
	if num <= 0 {
		panic("quantilegen: num must be positive")
	}
	rank, err := quantile.QuantileToRank(q, uint64(num))
	if err != nil {
		panic(err)
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	remainingLesser := int(rank) - 1
	remaining := num - 1
	publishedValue := false

	out := make([]float64, 0, num)
	for remaining > 0 || !publishedValue {
		if !publishedValue {
			remainingRatio := 1 / float64(remaining+1)
			if rng.Float64() < remainingRatio {
				publishedValue = true
				out = append(out, value)
				continue
			}
		}

		ratio := float64(remainingLesser) / float64(remaining)
		remaining--
		if rng.Float64() >= ratio {
			out = append(out, value+rng.Float64())
		} else {
			remainingLesser--
			out = append(out, value-nextNonZero(rng))
		}
	}
	return out
}

func nextNonZero(rng *rand.Rand) float64 {
	r := rng.Float64()
	for r == 0 {
		r = rng.Float64()
	}
	return r
}
