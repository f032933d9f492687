package engine

import (
	"context"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/particle"
	"github.com/iburimskiy/constellation/internal/surface"
	"github.com/iburimskiy/constellation/internal/theme"
)

// counted records how often a panel is cleared, which happens once per
// redraw.
type counted struct {
	*surface.Raster
	clears int
}

func (c *counted) Clear() { c.clears++; c.Raster.Clear() }

type fixture struct {
	ctrl  *Controller
	now   time.Time
	theme *theme.Store
}

func newFixture(t *testing.T, mutate func(*config.Config)) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.Width, cfg.Height = 800, 600
	if mutate != nil {
		mutate(&cfg)
	}
	f := &fixture{now: time.Unix(1_700_000_000, 0), theme: theme.Open("", theme.Light)}
	f.ctrl = New(cfg, f.theme, func() surface.Surface { return &counted{Raster: &surface.Raster{}} },
		WithClock(func() time.Time { return f.now }),
		WithRand(rand.New(rand.NewSource(1))),
	)
	return f
}

func (f *fixture) clears(t *testing.T, name string) int {
	t.Helper()
	s, ok := f.ctrl.Surfaces().Lookup(name)
	require.True(t, ok, name)
	return s.(*counted).clears
}

func (f *fixture) reset() {
	for _, name := range f.ctrl.Surfaces().Names() {
		s, _ := f.ctrl.Surfaces().Lookup(name)
		s.(*counted).clears = 0
	}
}

func charts() []string {
	return append([]string{HeroRadial, VelocityChart, LatencyChart}, StorySparks...)
}

func TestStartPaintsEveryChart(t *testing.T) {
	f := newFixture(t, nil)
	assert.False(t, f.ctrl.Running())
	f.ctrl.Frame()
	assert.Zero(t, f.clears(t, Constellation), "stopped controller does not draw")

	f.ctrl.Start()
	require.True(t, f.ctrl.Running())
	for _, name := range charts() {
		assert.Equal(t, 1, f.clears(t, name), name)
	}
	f.ctrl.Start()
	assert.Equal(t, 1, f.clears(t, HeroRadial), "second Start is a no-op")
}

func TestResizeRedrawsOnce(t *testing.T) {
	f := newFixture(t, nil)
	f.ctrl.Start()
	f.reset()

	require.True(t, f.ctrl.Resize(400, 300, 1))
	for _, name := range charts() {
		assert.Equal(t, 1, f.clears(t, name), name)
	}
	assert.Zero(t, f.clears(t, Constellation), "the field redraws on its next frame")

	field := f.ctrl.Field()
	assert.Equal(t, 400.0, field.Width)
	assert.Equal(t, 300.0, field.Height)
	for _, p := range field.Particles {
		assert.True(t, p.X >= 0 && p.X <= 400, "x %f", p.X)
		assert.True(t, p.Y >= 0 && p.Y <= 300, "y %f", p.Y)
	}

	s, _ := f.ctrl.Surfaces().Lookup(Constellation)
	w, h := s.Size()
	assert.Equal(t, 400.0, w)
	assert.Equal(t, 300.0, h)

	f.reset()
	assert.False(t, f.ctrl.Resize(400, 300, 1), "same size is ignored")
	assert.Zero(t, f.clears(t, HeroRadial))
}

func TestResizeRatio(t *testing.T) {
	f := newFixture(t, nil)
	f.ctrl.Start()
	require.True(t, f.ctrl.Resize(800, 600, 2))

	s, _ := f.ctrl.Surfaces().Lookup(VelocityChart)
	r := s.(*counted).Image()
	require.NotNil(t, r)
	p, ok := f.ctrl.Placement(VelocityChart)
	require.True(t, ok)
	assert.Equal(t, int(p.W*2), r.Bounds().Dx())
}

func TestTickFollowsInterval(t *testing.T) {
	f := newFixture(t, nil)
	assert.False(t, f.ctrl.Tick(), "stopped")
	f.ctrl.Start()
	f.reset()

	f.now = f.now.Add(3 * time.Second)
	assert.False(t, f.ctrl.Tick())
	f.now = f.now.Add(time.Second)
	assert.True(t, f.ctrl.Tick())
	assert.Equal(t, 1, f.clears(t, VelocityChart))
	assert.Equal(t, 1, f.clears(t, LatencyChart))
	assert.Zero(t, f.clears(t, HeroRadial), "timer only redraws the demo charts")

	assert.False(t, f.ctrl.Tick())
}

func TestFrameAndStop(t *testing.T) {
	f := newFixture(t, nil)
	f.ctrl.Start()
	before := f.ctrl.Field().Particles[0].X
	f.ctrl.Frame()
	assert.Equal(t, 1, f.clears(t, Constellation))
	assert.NotEqual(t, before, f.ctrl.Field().Particles[0].X)

	f.ctrl.Stop()
	f.ctrl.Frame()
	assert.False(t, f.ctrl.Tick())
	assert.Equal(t, 1, f.clears(t, Constellation))
}

func TestHiddenPanelsAreSkipped(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Hide = "heroRadial,storySpark-2" })
	_, ok := f.ctrl.Surfaces().Lookup(HeroRadial)
	assert.False(t, ok)
	assert.NotPanics(t, func() {
		f.ctrl.Start()
		f.ctrl.Resize(300, 200, 1)
		f.ctrl.Frame()
	})
	assert.Equal(t, 2, f.clears(t, StorySparks[0]))
}

func TestZeroSizeWindow(t *testing.T) {
	f := newFixture(t, nil)
	f.ctrl.Start()
	assert.NotPanics(t, func() {
		f.ctrl.Resize(0, 0, 1)
		f.ctrl.Frame()
		f.now = f.now.Add(time.Minute)
		f.ctrl.Tick()
	})
	s, _ := f.ctrl.Surfaces().Lookup(Constellation)
	assert.True(t, s.Empty())
}

func TestHideRestoreKeepsParticles(t *testing.T) {
	f := newFixture(t, nil)
	f.ctrl.Start()
	f.ctrl.Frame()
	before := append([]particle.Particle(nil), f.ctrl.Field().Particles...)

	f.ctrl.Resize(0, 0, 1)
	f.ctrl.Frame()
	f.ctrl.Frame()
	f.ctrl.Resize(800, 600, 1)
	after := f.ctrl.Field().Particles
	for i := range before {
		// restoring may pull a particle that was just past an edge back onto it
		assert.InDelta(t, before[i].X, after[i].X, 0.5, "particle %d", i)
		assert.InDelta(t, before[i].Y, after[i].Y, 0.5, "particle %d", i)
	}

	distinct := map[[2]float64]bool{}
	for _, p := range f.ctrl.Field().Particles {
		distinct[[2]float64{p.X, p.Y}] = true
	}
	assert.Len(t, distinct, len(before))
}

func TestFrameDrawsInCurrentTheme(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Threshold = 0 })
	f.ctrl.Start()

	// the pixel under the first particle well inside the window
	node := func() color.RGBA {
		f.ctrl.Frame()
		s, _ := f.ctrl.Surfaces().Lookup(Constellation)
		img := s.(*counted).Image()
		for _, p := range f.ctrl.Field().Particles {
			if p.X > 4 && p.X < 796 && p.Y > 4 && p.Y < 596 {
				return img.RGBAAt(int(p.X), int(p.Y))
			}
		}
		t.Fatal("no particle inside the window")
		return color.RGBA{}
	}

	light := node()
	require.NoError(t, f.theme.Set(theme.Dark))
	dark := node()
	assert.Less(t, light.R, uint8(30), "light node %v", light)
	assert.Greater(t, dark.R, uint8(40), "dark node %v", dark)
	assert.Greater(t, dark.G, light.G)
}

func TestLayoutFitsWindow(t *testing.T) {
	for _, size := range [][2]float64{{1024, 640}, {400, 300}, {60, 40}} {
		for name, r := range Layout(size[0], size[1]) {
			assert.GreaterOrEqual(t, r.W, 0.0, name)
			assert.GreaterOrEqual(t, r.H, 0.0, name)
		}
	}
	l := Layout(1024, 640)
	assert.Equal(t, Rect{0, 0, 1024, 640}, l[Constellation])
	assert.LessOrEqual(t, l[HeroRadial].X+l[HeroRadial].W, 1024.0)
}

func TestRunHeadlessSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height = 320, 200
	cfg.Seed = 3
	c := New(cfg, theme.Static(theme.Dark), NewRasterSurface)
	path := filepath.Join(t.TempDir(), "frame.png")

	err := RunHeadless(context.Background(), c, HeadlessConfig{Hz: 1000, Ticks: 3, Snapshot: path})
	require.NoError(t, err)
	assert.False(t, c.Running())

	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()
	img, err := png.Decode(fh)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRunHeadlessCancel(t *testing.T) {
	c := New(config.Default(), theme.Static(theme.Light), NewRasterSurface)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunHeadless(ctx, c, HeadlessConfig{Hz: 60})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunHeadlessCancelWritesSnapshot(t *testing.T) {
	c := New(config.Default(), theme.Static(theme.Dark), NewRasterSurface)
	path := filepath.Join(t.TempDir(), "interrupted.png")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunHeadless(ctx, c, HeadlessConfig{Hz: 60, Snapshot: path})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
