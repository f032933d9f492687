package theme

import (
	"image/color"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette is every colour a renderer picks by mode.
type Palette struct {
	Background color.Color
	Text       color.Color

	Node color.Color // particle markers
	Link color.Color // particle links, before distance fading
	Ring color.Color // radial guide rings

	Velocity color.Color
	Latency  color.Color
}

var (
	Cyan    = drawing.ColorFromHex("5cf2e2")
	Blue    = drawing.ColorFromHex("53a6ff")
	Magenta = drawing.ColorFromHex("f27fd3")
)

var palettes = map[Mode]Palette{
	Light: {
		Background: drawing.ColorFromHex("f4f7fd"),
		Text:       drawing.ColorFromHex("1b2437"),
		Node:       drawing.Color{R: 11, G: 187, B: 163, A: 204},
		Link:       drawing.Color{R: 22, G: 109, B: 242, A: 64},
		Ring:       drawing.ColorFromHex("d9e4ff"),
		Velocity:   drawing.ColorFromHex("166df2"),
		Latency:    drawing.ColorFromHex("0bbba3"),
	},
	Dark: {
		Background: drawing.ColorFromHex("0a1220"),
		Text:       drawing.ColorFromHex("d7e3f7"),
		Node:       drawing.Color{R: 92, G: 242, B: 226, A: 204},
		Link:       drawing.Color{R: 83, G: 166, B: 255, A: 51},
		Ring:       drawing.ColorFromHex("1c2a42"),
		Velocity:   Cyan,
		Latency:    Blue,
	},
}

func PaletteFor(m Mode) Palette {
	return palettes[m]
}

// Current is the palette of whatever mode r reports right now.
func Current(r Reader) Palette {
	return PaletteFor(r.Mode())
}
