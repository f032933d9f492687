// Package surface provides named raster drawing targets with a logical size
// and a device pixel ratio, and the registry renderers look them up in.
package surface

import (
	"image/color"
	"math"
)

// Surface is a drawing target. All coordinates and lengths passed to it are
// logical pixels; the surface scales them by its device pixel ratio.
type Surface interface {
	// Size is the logical size.
	Size() (w, h float64)
	SetLogicalSize(w, h float64)
	// Reconcile resizes the physical buffer to the logical size times ratio
	// and resets the transform to a uniform scale of ratio.
	Reconcile(ratio float64)
	Scale() float64
	// Empty reports a zero-sized physical buffer. Draw calls on an empty
	// surface do nothing.
	Empty() bool

	Clear()
	FillCircle(cx, cy, r float64, clr color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
	StrokeCircle(cx, cy, r, width float64, clr color.Color)
}

// Geometry is the size bookkeeping shared by the backends. Embed it to get
// Size, SetLogicalSize and Scale.
type Geometry struct {
	w, h  float64
	ratio float64
}

func (g *Geometry) Size() (float64, float64) { return g.w, g.h }

func (g *Geometry) SetLogicalSize(w, h float64) {
	g.w, g.h = math.Max(w, 0), math.Max(h, 0)
}

func (g *Geometry) Scale() float64 {
	if g.ratio <= 0 {
		return 1
	}
	return g.ratio
}

// Physical sets the ratio and returns the buffer size for it.
func (g *Geometry) Physical(ratio float64) (int, int) {
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	g.ratio = ratio
	return int(math.Round(g.w * ratio)), int(math.Round(g.h * ratio))
}

// WithAlpha multiplies the alpha of clr by a, clamped to [0, 1].
func WithAlpha(clr color.Color, a float64) color.Color {
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * clamp01(a)))
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Registry maps panel names to surfaces. Names keep registration order so
// compositing is stable.
type Registry struct {
	byName map[string]Surface
	names  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]Surface{}}
}

// Register adds or replaces the surface for name.
func (r *Registry) Register(name string, s Surface) {
	if _, ok := r.byName[name]; !ok {
		r.names = append(r.names, name)
	}
	r.byName[name] = s
}

// Lookup returns the surface for name, or false when the panel is absent.
func (r *Registry) Lookup(name string) (Surface, bool) {
	s, ok := r.byName[name]
	return s, ok
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}
