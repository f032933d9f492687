// Package game hosts the engine in an ebiten window.
package game

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/engine"
	"github.com/iburimskiy/constellation/internal/surface"
	"github.com/iburimskiy/constellation/internal/theme"
)

var log = logrus.StandardLogger()

var footerFace = text.NewGoXFace(basicfont.Face7x13)

// Toggler is the theme store as the window sees it.
type Toggler interface {
	theme.Reader
	Toggle() (theme.Mode, error)
}

type game struct {
	ctrl  *engine.Controller
	theme Toggler

	// pending resize from Layout, applied at the top of Update
	outW, outH int
	scale      float64
	resized    bool

	// input edge detection
	prevKey map[ebiten.Key]bool
}

// NewSurface is the surface factory for windowed controllers.
func NewSurface() surface.Surface {
	return newEbitenSurface()
}

// Run opens the window and blocks until it is closed. ctrl must have been
// built with NewSurface; it is started on the first update.
func Run(cfg config.Config, ctrl *engine.Controller, th Toggler) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{
		ctrl:    ctrl,
		theme:   th,
		prevKey: map[ebiten.Key]bool{},
	}
	defer ctrl.Stop()
	return ebiten.RunGame(g)
}

func (g *game) Update() error {
	if g.resized {
		g.resized = false
		g.ctrl.Resize(g.outW, g.outH, g.scale)
	}
	// Images are only touched once the loop runs.
	if !g.ctrl.Running() {
		g.ctrl.Start()
	}

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyT) {
		mode, err := g.theme.Toggle()
		if err != nil {
			log.WithError(err).Warn("Theme not saved")
		}
		log.WithField("theme", mode).Info("Theme toggled")
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.ctrl.Tick()
	g.ctrl.Frame()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	pal := theme.Current(g.theme)
	screen.Fill(pal.Background)

	_, _, ratio := g.ctrl.Size()
	surfaces := g.ctrl.Surfaces()
	for _, name := range surfaces.Names() {
		s, _ := surfaces.Lookup(name)
		es, ok := s.(*ebitenSurface)
		if !ok || es.img == nil {
			continue
		}
		r, _ := g.ctrl.Placement(name)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(math.Round(r.X*ratio), math.Round(r.Y*ratio))
		screen.DrawImage(es.img, op)
	}

	_, h, _ := g.ctrl.Size()
	footer := fmt.Sprintf("(c) %d  theme: %s  T: toggle  Esc/Q: quit", time.Now().Year(), g.theme.Mode())
	op := &text.DrawOptions{}
	op.GeoM.Scale(ratio, ratio)
	op.GeoM.Translate(12*ratio, float64(h-16)*ratio)
	op.ColorScale.ScaleWithColor(pal.Text)
	text.Draw(screen, footer, footerFace, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if outsideWidth != g.outW || outsideHeight != g.outH || scale != g.scale {
		g.outW, g.outH, g.scale = outsideWidth, outsideHeight, scale
		g.resized = true
	}
	return int(math.Round(float64(outsideWidth) * scale)), int(math.Round(float64(outsideHeight) * scale))
}
