// Package engine drives the constellation: it owns the surfaces, the particle
// field and the chart renderers, and decides when each one is redrawn.
package engine

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/constellation/internal/chart"
	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/particle"
	"github.com/iburimskiy/constellation/internal/series"
	"github.com/iburimskiy/constellation/internal/surface"
	"github.com/iburimskiy/constellation/internal/theme"
)

var log = logrus.StandardLogger()

// Panel names.
const (
	Constellation = "constellation"
	HeroRadial    = "heroRadial"
	VelocityChart = "velocityChart"
	LatencyChart  = "latencyChart"
)

var StorySparks = []string{"storySpark-1", "storySpark-2", "storySpark-3"}

var storyColors = []color.Color{theme.Blue, theme.Cyan, theme.Magenta}

// Controller runs the particle field every frame and the charts on a timer
// and on resize. It is not safe for concurrent use; every call is expected
// from the host's single loop.
type Controller struct {
	cfg      config.Config
	theme    theme.Reader
	surfaces *surface.Registry
	field    *particle.Field
	line     *chart.LineChart
	radial   *chart.RadialChart
	rng      *rand.Rand
	now      func() time.Time

	width, height int
	ratio         float64
	placements    map[string]Rect
	lastCharts    time.Time
	running       bool
}

type Option func(*Controller)

// WithClock replaces time.Now for the chart timer.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// New builds a stopped controller sized to cfg.Width x cfg.Height. One
// surface is created with newSurface for the background and for every panel
// not hidden by the configuration.
func New(cfg config.Config, th theme.Reader, newSurface func() surface.Surface, opts ...Option) *Controller {
	c := &Controller{
		cfg:      cfg,
		theme:    th,
		surfaces: surface.NewRegistry(),
		now:      time.Now,
		ratio:    1,
	}
	for _, o := range opts {
		o(c)
	}
	if c.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		c.rng = rand.New(rand.NewSource(seed))
	}

	names := append([]string{Constellation, HeroRadial, VelocityChart, LatencyChart}, StorySparks...)
	for _, name := range names {
		if name != Constellation && cfg.Hidden(name) {
			log.WithField("surface", name).Info("Panel hidden")
			continue
		}
		c.surfaces.Register(name, newSurface())
	}

	c.line = chart.NewLineChart(c.surfaces)
	c.radial = chart.NewRadialChart(c.surfaces, th)

	opt := particle.DefaultOptions()
	opt.Count = cfg.Particles
	opt.Speed = cfg.Speed
	opt.Threshold = cfg.Threshold
	c.field = particle.NewField(c.rng, opt, float64(cfg.Width), float64(cfg.Height), th)

	c.layout(cfg.Width, cfg.Height, 1)
	return c
}

func (c *Controller) Surfaces() *surface.Registry { return c.surfaces }

func (c *Controller) Field() *particle.Field { return c.field }

func (c *Controller) Theme() theme.Reader { return c.theme }

// Size is the current logical window size and device pixel ratio.
func (c *Controller) Size() (w, h int, ratio float64) {
	return c.width, c.height, c.ratio
}

// Placement is where the named panel sits in the window.
func (c *Controller) Placement(name string) (Rect, bool) {
	r, ok := c.placements[name]
	return r, ok
}

// Start draws every chart once and arms the chart timer.
func (c *Controller) Start() {
	if c.running {
		return
	}
	c.running = true
	c.lastCharts = c.now()
	c.reconcileBackground()
	c.Repaint()
	log.WithFields(logrus.Fields{"width": c.width, "height": c.height}).Info("Render loop started")
}

// Stop makes Frame and Tick no-ops until the next Start.
func (c *Controller) Stop() {
	if !c.running {
		return
	}
	c.running = false
	log.Info("Render loop stopped")
}

func (c *Controller) Running() bool { return c.running }

// Frame advances and redraws the particle field once.
func (c *Controller) Frame() {
	if !c.running {
		return
	}
	if s, ok := c.surfaces.Lookup(Constellation); ok {
		c.field.Step(s)
	}
}

// Tick redraws the demo charts when the chart interval has elapsed. It
// reports whether it did.
func (c *Controller) Tick() bool {
	if !c.running {
		return false
	}
	now := c.now()
	if now.Sub(c.lastCharts) < c.cfg.ChartInterval {
		return false
	}
	c.lastCharts = now
	c.renderCharts()
	return true
}

// Resize applies a new window size and redraws every chart. Unchanged sizes
// are ignored; the return value reports whether anything changed.
func (c *Controller) Resize(w, h int, ratio float64) bool {
	if ratio <= 0 {
		ratio = 1
	}
	if w == c.width && h == c.height && ratio == c.ratio {
		return false
	}
	log.WithFields(logrus.Fields{"width": w, "height": h, "ratio": ratio}).Debug("Resize")
	c.layout(w, h, ratio)
	if c.running {
		c.Repaint()
	}
	return true
}

func (c *Controller) layout(w, h int, ratio float64) {
	c.width, c.height, c.ratio = max(w, 0), max(h, 0), ratio
	c.placements = Layout(float64(c.width), float64(c.height))
	for _, name := range c.surfaces.Names() {
		s, _ := c.surfaces.Lookup(name)
		r := c.placements[name]
		s.SetLogicalSize(r.W, r.H)
	}
	if c.running {
		c.reconcileBackground()
	}
	c.field.Resize(float64(c.width), float64(c.height))
	c.line.Ratio = ratio
	c.radial.Ratio = ratio
}

// reconcileBackground sizes the full-window surface. Panels are reconciled
// by their renderers.
func (c *Controller) reconcileBackground() {
	if s, ok := c.surfaces.Lookup(Constellation); ok {
		s.Reconcile(c.ratio)
	}
}

// Repaint redraws the radial chart, the story sparklines and the demo charts.
// The particle field picks up new bounds on its next frame.
func (c *Controller) Repaint() {
	c.radial.Render(HeroRadial)
	c.renderStory()
	c.renderCharts()
}

func (c *Controller) renderCharts() {
	pal := theme.Current(c.theme)
	c.line.Render(VelocityChart, series.RandomWalk(c.rng, c.cfg.ChartLength, 8, 1.2), pal.Velocity)
	c.line.Render(LatencyChart, series.RandomWalk(c.rng, c.cfg.ChartLength, 12, 2.5), pal.Latency)
}

func (c *Controller) renderStory() {
	for i, values := range series.Story() {
		c.line.Render(StorySparks[i], values, storyColors[i])
	}
}
