package chart

import (
	"image/color"

	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/surface"
)

var log = logrus.StandardLogger()

// Lookup finds a surface by panel name.
type Lookup interface {
	Lookup(name string) (surface.Surface, bool)
}

// prepare resolves, reconciles and clears the named surface. It returns false
// when there is nothing to draw on.
func prepare(surfaces Lookup, name string, ratio float64) (surface.Surface, bool) {
	s, ok := surfaces.Lookup(name)
	if !ok {
		log.WithField("surface", name).Debug("Skipping absent surface")
		return nil, false
	}
	s.Reconcile(ratio)
	s.Clear()
	if s.Empty() {
		return nil, false
	}
	return s, true
}

// LineChart draws a polyline with a marker on every point.
type LineChart struct {
	surfaces Lookup

	// Ratio is the device pixel ratio applied on every render.
	Ratio        float64
	LineWidth    float64
	MarkerRadius float64
}

func NewLineChart(surfaces Lookup) *LineChart {
	return &LineChart{
		surfaces:     surfaces,
		Ratio:        1,
		LineWidth:    config.LineWidth,
		MarkerRadius: config.MarkerRadius,
	}
}

// Render redraws the named surface from scratch. It reports whether anything
// was drawn.
func (c *LineChart) Render(name string, values []float64, clr color.Color) bool {
	s, ok := prepare(c.surfaces, name, c.Ratio)
	if !ok {
		return false
	}
	w, h := s.Size()
	pts := Map(values, w, h)
	for i := 1; i < len(pts); i++ {
		s.StrokeLine(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, c.LineWidth, clr)
	}
	for _, p := range pts {
		s.FillCircle(p.X, p.Y, c.MarkerRadius, clr)
	}
	return true
}
