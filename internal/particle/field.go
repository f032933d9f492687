// Package particle simulates the drifting nodes of the constellation
// background and the links drawn between nearby nodes.
package particle

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/surface"
	"github.com/iburimskiy/constellation/internal/theme"
)

type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity per frame
}

type Options struct {
	Count      int
	Speed      float64 // Velocity components are drawn from [-Speed/2, Speed/2)
	Threshold  float64 // Link distance
	NodeRadius float64
	LinkWidth  float64
}

func DefaultOptions() Options {
	return Options{
		Count:      config.ParticleCount,
		Speed:      config.ParticleSpeed,
		Threshold:  config.LinkThreshold,
		NodeRadius: config.NodeRadius,
		LinkWidth:  config.LinkWidth,
	}
}

// Field is a fixed pool of particles bouncing inside a rectangle.
type Field struct {
	Particles     []Particle
	Width, Height float64
	opts          Options
	theme         theme.Reader
}

// NewField seeds opts.Count particles at random positions inside w x h.
func NewField(rng *rand.Rand, opts Options, w, h float64, th theme.Reader) *Field {
	f := &Field{
		Particles: make([]Particle, opts.Count),
		Width:     w,
		Height:    h,
		opts:      opts,
		theme:     th,
	}
	for i := range f.Particles {
		f.Particles[i] = Particle{
			X:  rng.Float64() * w,
			Y:  rng.Float64() * h,
			VX: (rng.Float64() - 0.5) * opts.Speed,
			VY: (rng.Float64() - 0.5) * opts.Speed,
		}
	}
	return f
}

// Advance moves every particle one frame and reverses the velocity component
// of any axis on which it left the bounds. A particle already outside and
// heading back in keeps its velocity, so it cannot get stuck flipping on an
// edge.
func (f *Field) Advance() {
	for i := range f.Particles {
		p := &f.Particles[i]
		p.X += p.VX
		p.Y += p.VY
		if (p.X < 0 && p.VX < 0) || (p.X > f.Width && p.VX > 0) {
			p.VX = -p.VX
		}
		if (p.Y < 0 && p.VY < 0) || (p.Y > f.Height && p.VY > 0) {
			p.VY = -p.VY
		}
	}
}

// LinkAlpha fades a link linearly from 1 at distance 0 to 0 at the threshold.
func LinkAlpha(dist, threshold float64) float64 {
	if threshold <= 0 || dist >= threshold {
		return 0
	}
	return 1 - dist/threshold
}

// Links calls fn for every unordered pair closer than the threshold.
func (f *Field) Links(fn func(a, b Particle, alpha float64)) {
	ps := f.Particles
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if d < f.opts.Threshold {
				fn(ps[i], ps[j], LinkAlpha(d, f.opts.Threshold))
			}
		}
	}
}

// Resize changes the bounds and pulls particles left outside back onto the
// nearest edge, so a shrinking window never strands them. Zero-sized bounds
// leave the particles where they are; Step does not move them until the
// field has an area again.
func (f *Field) Resize(w, h float64) {
	f.Width, f.Height = math.Max(w, 0), math.Max(h, 0)
	if f.Width == 0 || f.Height == 0 {
		return
	}
	for i := range f.Particles {
		p := &f.Particles[i]
		p.X = math.Max(0, math.Min(p.X, f.Width))
		p.Y = math.Max(0, math.Min(p.Y, f.Height))
	}
}

// Step clears s, advances the field and draws nodes then links. Nothing
// moves while the surface is empty.
func (f *Field) Step(s surface.Surface) {
	s.Clear()
	if s.Empty() || f.Width <= 0 || f.Height <= 0 {
		return
	}
	pal := theme.Current(f.theme)
	f.Advance()
	for _, p := range f.Particles {
		s.FillCircle(p.X, p.Y, f.opts.NodeRadius, pal.Node)
	}
	f.Links(func(a, b Particle, alpha float64) {
		s.StrokeLine(a.X, a.Y, b.X, b.Y, f.opts.LinkWidth, surface.WithAlpha(pal.Link, alpha))
	})
}
