package engine

import "math"

// Rect is a panel's position and size in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

const (
	panelMargin  = 24
	footerHeight = 16
)

// Layout places every panel for a window of w x h logical pixels. Panels
// that do not fit get a zero size rather than a negative one.
func Layout(w, h float64) map[string]Rect {
	m := float64(panelMargin)
	pos := func(v float64) float64 { return math.Max(v, 0) }

	radial := pos(math.Min(w, h) * 0.36)
	chartW, chartH := pos(w*0.4), pos(h*0.2)
	sparkW := pos((w - 4*m) / 3)
	sparkH := pos(h * 0.14)
	sparkY := h - m - footerHeight - sparkH

	out := map[string]Rect{
		Constellation: {0, 0, pos(w), pos(h)},
		HeroRadial:    {w - m - radial, m, radial, radial},
		VelocityChart: {m, m, chartW, chartH},
		LatencyChart:  {m, 2*m + chartH, chartW, chartH},
	}
	for i, name := range StorySparks {
		out[name] = Rect{m + float64(i)*(sparkW+m), sparkY, sparkW, sparkH}
	}
	return out
}
