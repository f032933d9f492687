package chart

import (
	"image/color"
	"math"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/theme"
)

// Category is one spoke of a radial chart. Value is the fraction of the
// maximum radius the spoke reaches.
type Category struct {
	Name  string
	Value float64
	Color color.Color
}

// DefaultCategories are the scores shown in the hero panel.
func DefaultCategories() []Category {
	return []Category{
		{Name: "engineering", Value: 0.95, Color: theme.Cyan},
		{Name: "analytics", Value: 0.85, Color: theme.Blue},
		{Name: "storytelling", Value: 0.8, Color: theme.Magenta},
	}
}

// RadialChart draws guide rings and one spoke per category, the first
// pointing up and the rest evenly spaced clockwise.
type RadialChart struct {
	surfaces Lookup
	theme    theme.Reader

	Categories   []Category
	Ratio        float64
	Levels       int
	Margin       float64
	SpokeWidth   float64
	MarkerRadius float64
}

func NewRadialChart(surfaces Lookup, th theme.Reader) *RadialChart {
	return &RadialChart{
		surfaces:     surfaces,
		theme:        th,
		Categories:   DefaultCategories(),
		Ratio:        1,
		Levels:       config.RadialLevels,
		Margin:       config.RadialMargin,
		SpokeWidth:   config.RadialSpokeWidth,
		MarkerRadius: config.RadialMarkerRadius,
	}
}

// Spoke returns the tip of spoke i of n for the given centre and radius.
func Spoke(i, n int, cx, cy, r float64) Point {
	angle := 2*math.Pi/float64(n)*float64(i) - math.Pi/2
	return Point{
		X: cx + r*math.Cos(angle),
		Y: cy + r*math.Sin(angle),
	}
}

// Render redraws the named surface. It reports whether anything was drawn.
func (c *RadialChart) Render(name string) bool {
	s, ok := prepare(c.surfaces, name, c.Ratio)
	if !ok {
		return false
	}
	w, h := s.Size()
	cx, cy := w/2, h/2
	maxRadius := math.Min(cx, cy) - c.Margin
	if maxRadius <= 0 {
		return false
	}

	ring := theme.Current(c.theme).Ring
	for i := c.Levels; i >= 1; i-- {
		s.StrokeCircle(cx, cy, maxRadius/float64(c.Levels)*float64(i), 1, ring)
	}

	n := len(c.Categories)
	for i, cat := range c.Categories {
		v := math.Max(0, math.Min(1, cat.Value))
		tip := Spoke(i, n, cx, cy, maxRadius*v)
		s.StrokeLine(cx, cy, tip.X, tip.Y, c.SpokeWidth, cat.Color)
		s.FillCircle(tip.X, tip.Y, c.MarkerRadius, cat.Color)
	}
	return true
}
