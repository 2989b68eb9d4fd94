/*
Package pixel implements sprite pixel extraction from a sprite sheet.

Rectangles may run past the sheet edges; any pixel outside the sheet is
synthesized as fully transparent so an extracted buffer always matches
the declared rectangle size. A pixel is active if and only if its alpha
channel is non-zero; color channels of inactive pixels carry no meaning
downstream.
*/
package pixel

import (
	"image"
	"image/color"
)

// Buffer is a width by height block of straight-alpha RGBA samples cut
// from a sheet, row-major. Buffers are read-only once extracted.
type Buffer struct {
	Width  int
	Height int
	Pix    []color.NRGBA
}

// At returns the sample at (x, y).
func (b *Buffer) At(x, y int) color.NRGBA {
	return b.Pix[y*b.Width+x]
}

// Active reports whether the pixel at (x, y) has non-zero alpha.
func (b *Buffer) Active(x, y int) bool {
	return b.At(x, y).A > 0
}

// Extract copies the rectangle r out of m. Positions outside the bounds
// of m read as transparent black, so extraction never fails for
// rectangles that overhang the sheet.
func Extract(m image.Image, r image.Rectangle) *Buffer {
	w, h := r.Dx(), r.Dy()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	buf := &Buffer{
		Width:  w,
		Height: h,
		Pix:    make([]color.NRGBA, w*h),
	}

	bounds := m.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := image.Pt(r.Min.X+x, r.Min.Y+y)
			if !p.In(bounds) {
				continue
			}
			buf.Pix[y*w+x] = color.NRGBAModel.Convert(m.At(p.X, p.Y)).(color.NRGBA)
		}
	}

	return buf
}
