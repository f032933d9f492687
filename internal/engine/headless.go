package engine

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"time"

	"golang.org/x/image/draw"

	"github.com/iburimskiy/constellation/internal/surface"
	"github.com/iburimskiy/constellation/internal/theme"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Hz       int
	Ticks    uint64
	Snapshot string
}

// NewRasterSurface is the surface factory for headless controllers.
func NewRasterSurface() surface.Surface {
	return &surface.Raster{}
}

// RunHeadless drives c from a ticker until ctx is done or cfg.Ticks frames
// have run. The snapshot, if configured, is written either way. c must have
// been built with NewRasterSurface for snapshots to include anything.
func RunHeadless(ctx context.Context, c *Controller, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	c.Start()
	defer c.Stop()

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			if err := snapshot(c, cfg.Snapshot); err != nil {
				return err
			}
			return ctx.Err()
		case <-t.C:
			c.Tick()
			c.Frame()
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return snapshot(c, cfg.Snapshot)
			}
		}
	}
}

// Snapshot composites every raster surface at its placement over the theme
// background, in physical pixels.
func Snapshot(c *Controller) *image.RGBA {
	w, h, ratio := c.Size()
	dst := image.NewRGBA(image.Rect(0, 0, int(math.Round(float64(w)*ratio)), int(math.Round(float64(h)*ratio))))
	bg := theme.Current(c.Theme()).Background
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, name := range c.Surfaces().Names() {
		s, _ := c.Surfaces().Lookup(name)
		r, ok := s.(*surface.Raster)
		if !ok || r.Empty() {
			continue
		}
		p, _ := c.Placement(name)
		at := image.Pt(int(math.Round(p.X*ratio)), int(math.Round(p.Y*ratio)))
		src := r.Image()
		draw.Draw(dst, src.Bounds().Add(at), src, image.Point{}, draw.Over)
	}
	return dst
}

func snapshot(c *Controller, path string) error {
	if path == "" {
		return nil
	}
	return WriteSnapshot(c, path)
}

func WriteSnapshot(c *Controller, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := png.Encode(f, Snapshot(c)); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	log.WithField("path", path).Info("Snapshot written")
	return f.Close()
}
