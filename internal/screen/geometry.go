package screen

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/linled/coffee-kiosk/internal/types"
)

type segment struct{ x0, y0, x1, y1 float32 }

// borderPath returns the part of r perimeter covered by fraction 0..1,
// clockwise from top-left corner.
func borderPath(r image.Rectangle, fraction float64) []segment {
	if fraction <= 0 || r.Empty() {
		return nil
	}
	if fraction > 1 {
		fraction = 1
	}
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	edges := [4]segment{
		{x0, y0, x1, y0},
		{x1, y0, x1, y1},
		{x1, y1, x0, y1},
		{x0, y1, x0, y0},
	}
	w, h := float32(r.Dx()), float32(r.Dy())
	lens := [4]float32{w, h, w, h}
	left := float32(fraction) * 2 * (w + h)
	out := make([]segment, 0, 4)
	for i, e := range edges {
		if left <= 0 {
			break
		}
		if left >= lens[i] {
			out = append(out, e)
			left -= lens[i]
			continue
		}
		k := left / lens[i]
		out = append(out, segment{e.x0, e.y0, e.x0 + (e.x1-e.x0)*k, e.y0 + (e.y1-e.y0)*k})
		left = 0
	}
	return out
}

// inset shrinks r by m on every side, never below a point.
func inset(r image.Rectangle, m int) image.Rectangle {
	if 2*m > r.Dx() {
		m = r.Dx() / 2
	}
	if 2*m > r.Dy() {
		m = r.Dy() / 2
	}
	return r.Inset(m)
}

// fitScale is uniform scale to cover dst with src, cropping overflow.
func fitScale(src, dst image.Point) float64 {
	if src.X <= 0 || src.Y <= 0 {
		return 1
	}
	sx := float64(dst.X) / float64(src.X)
	sy := float64(dst.Y) / float64(src.Y)
	if sx > sy {
		return sx
	}
	return sy
}

var keymap = map[ebiten.Key]types.Key{
	ebiten.KeyO:          types.KeyOptions,
	ebiten.KeyArrowLeft:  types.KeyLeft,
	ebiten.KeyArrowRight: types.KeyRight,
	ebiten.KeyEscape:     types.KeyQuit,
}

func mapKey(k ebiten.Key) types.Key {
	if v, ok := keymap[k]; ok {
		return v
	}
	return types.KeyNone
}
