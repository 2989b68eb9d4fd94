package pixel

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// Reduce returns a copy of m quantized to at most n colors using median
// cut. Fully transparent pixels are left transparent rather than being
// mapped into the palette.
//
// Reduce is an explicit preprocessing step for sheets holding more
// colors than a packed mode can index; compilation itself never reduces
// colors on its own.
func Reduce(m image.Image, n int) image.Image {
	if n < 1 {
		n = 1
	}

	b := m.Bounds()
	out := image.NewNRGBA(b)

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, n), m)
	if len(p) == 0 {
		draw.Draw(out, b, m, b.Min, draw.Src)
		return out
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			nc := color.NRGBAModel.Convert(p.Convert(c)).(color.NRGBA)
			nc.A = c.A
			out.SetNRGBA(x, y, nc)
		}
	}

	return out
}
