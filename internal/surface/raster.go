package surface

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// Raster is a software surface backed by an *image.RGBA. It is what the
// headless host and the tests draw on.
type Raster struct {
	Geometry
	img *image.RGBA
	rz  *vector.Rasterizer
}

func NewRaster(w, h float64) *Raster {
	r := &Raster{}
	r.SetLogicalSize(w, h)
	return r
}

func (r *Raster) Reconcile(ratio float64) {
	pw, ph := r.Physical(ratio)
	if pw <= 0 || ph <= 0 {
		r.img, r.rz = nil, nil
		return
	}
	if r.img != nil && r.img.Rect.Dx() == pw && r.img.Rect.Dy() == ph {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
	r.rz = vector.NewRasterizer(pw, ph)
}

func (r *Raster) Empty() bool { return r.img == nil }

// Image is the physical buffer, nil while the surface is empty.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Clear() {
	if r.img == nil {
		return
	}
	clear(r.img.Pix)
}

func (r *Raster) FillCircle(cx, cy, rad float64, clr color.Color) {
	if r.img == nil || rad <= 0 {
		return
	}
	r.fill(clr, func() {
		r.polygon(circlePoints(cx, cy, rad, r.Scale()), false)
	})
}

func (r *Raster) StrokeCircle(cx, cy, rad, width float64, clr color.Color) {
	if r.img == nil || rad <= 0 || width <= 0 {
		return
	}
	outer := rad + width/2
	inner := rad - width/2
	r.fill(clr, func() {
		r.polygon(circlePoints(cx, cy, outer, r.Scale()), false)
		if inner > 0 {
			r.polygon(circlePoints(cx, cy, inner, r.Scale()), true)
		}
	})
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	if r.img == nil || width <= 0 {
		return
	}
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	// Unit normal scaled to half the stroke width.
	nx, ny := -dy/l*width/2, dx/l*width/2
	r.fill(clr, func() {
		r.polygon([][2]float64{
			{x0 + nx, y0 + ny},
			{x1 + nx, y1 + ny},
			{x1 - nx, y1 - ny},
			{x0 - nx, y0 - ny},
		}, false)
	})
}

func (r *Raster) fill(clr color.Color, path func()) {
	b := r.img.Bounds()
	r.rz.Reset(b.Dx(), b.Dy())
	path()
	r.rz.Draw(r.img, b, image.NewUniform(clr), image.Point{})
}

// polygon adds a closed contour in logical coordinates. Reversed contours
// cut holes out of the ones around them.
func (r *Raster) polygon(pts [][2]float64, reverse bool) {
	if len(pts) < 3 {
		return
	}
	s := r.Scale()
	at := func(i int) (float32, float32) {
		if reverse {
			i = len(pts) - 1 - i
		}
		return float32(pts[i][0] * s), float32(pts[i][1] * s)
	}
	r.rz.MoveTo(at(0))
	for i := 1; i < len(pts); i++ {
		r.rz.LineTo(at(i))
	}
	r.rz.ClosePath()
}

// circlePoints approximates a circle with enough segments to look round at
// the given scale.
func circlePoints(cx, cy, rad, scale float64) [][2]float64 {
	n := int(math.Ceil(rad * scale * 2))
	n = max(16, min(n, 256))
	pts := make([][2]float64, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = [2]float64{cx + rad*math.Cos(a), cy + rad*math.Sin(a)}
	}
	return pts
}
