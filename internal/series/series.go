// Package series generates the synthetic data the demo charts plot.
package series

import (
	"math"
	"math/rand"
)

// Floor is the smallest value a random walk may take.
const Floor = 0.5

// RandomWalk returns length values starting near start, each a uniform step
// of at most variance/2 from the previous one, never below Floor.
func RandomWalk(rng *rand.Rand, length int, start, variance float64) []float64 {
	if length <= 0 {
		return nil
	}
	out := make([]float64, length)
	current := start
	for i := range out {
		current += (rng.Float64() - 0.5) * variance
		out[i] = math.Max(Floor, current)
	}
	return out
}

// Story returns the static series drawn in the story sparklines.
func Story() [][]float64 {
	return [][]float64{
		{12, 14, 11, 9, 8, 7},
		{40, 38, 32, 28, 22, 18},
		{1, 1.5, 2.5, 3, 3.8, 4.2},
	}
}
