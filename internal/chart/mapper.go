// Package chart draws line charts and radial charts onto named surfaces.
package chart

import "math"

// Point is a position in logical pixels.
type Point struct {
	X, Y float64
}

// Extent returns the smallest and largest value. Both are 0 for an empty
// series.
func Extent(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Map spreads values evenly across width and scales them so the smallest
// value sits at the bottom (y = height) and the largest at the top (y = 0).
// A single value is placed at x = 0; a flat series lies on y = height.
func Map(values []float64, width, height float64) []Point {
	n := len(values)
	if n == 0 {
		return nil
	}
	step := 0.0
	if n > 1 {
		step = width / float64(n-1)
	}
	lo, hi := Extent(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	pts := make([]Point, n)
	for i, v := range values {
		pts[i] = Point{
			X: float64(i) * step,
			Y: height - (v-lo)/span*height,
		}
	}
	return pts
}
