package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/constellation/internal/surface"
)

// ebitenSurface is a surface backed by an offscreen *ebiten.Image.
type ebitenSurface struct {
	surface.Geometry
	img *ebiten.Image
}

func newEbitenSurface() surface.Surface {
	return &ebitenSurface{}
}

func (e *ebitenSurface) Reconcile(ratio float64) {
	pw, ph := e.Physical(ratio)
	if e.img != nil {
		b := e.img.Bounds()
		if b.Dx() == pw && b.Dy() == ph {
			return
		}
		e.img.Deallocate()
		e.img = nil
	}
	if pw <= 0 || ph <= 0 {
		return
	}
	e.img = ebiten.NewImage(pw, ph)
}

func (e *ebitenSurface) Empty() bool { return e.img == nil }

func (e *ebitenSurface) Clear() {
	if e.img != nil {
		e.img.Clear()
	}
}

func (e *ebitenSurface) FillCircle(cx, cy, r float64, clr color.Color) {
	if e.img == nil {
		return
	}
	s := e.Scale()
	vector.DrawFilledCircle(e.img, float32(cx*s), float32(cy*s), float32(r*s), clr, true)
}

func (e *ebitenSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	if e.img == nil {
		return
	}
	s := e.Scale()
	vector.StrokeLine(e.img, float32(x0*s), float32(y0*s), float32(x1*s), float32(y1*s), float32(width*s), clr, true)
}

func (e *ebitenSurface) StrokeCircle(cx, cy, r, width float64, clr color.Color) {
	if e.img == nil {
		return
	}
	s := e.Scale()
	vector.StrokeCircle(e.img, float32(cx*s), float32(cy*s), float32(r*s), float32(width*s), clr, true)
}
