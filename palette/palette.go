/*
Package palette implements color discovery and palette index resolution
for sprite compilation.

Colors are discovered by scanning a sprite buffer in row-major order;
the order a color is first seen fixes its layer or palette index. In
packed modes index 0 is reserved for transparency and is never a
visible color, so a palette with capacity N offers N-1 usable colors.
*/
package palette

import (
	"fmt"

	"github.com/PixelRoot32-Game-Engine/PixelRoot32-Sprite-Sheet-Compiler/pixel"
)

// RGB is an opaque color key. Alpha never takes part in color identity;
// pixels with zero alpha are filtered out before this point.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("RGB(%d, %d, %d)", c.R, c.G, c.B)
}

// Palette is an ordered list of colors. Entry 0 is the transparent
// slot: its color value is kept for emission but never matched against
// pixels. Insertion order is significant as it defines the index each
// color packs to.
type Palette struct {
	colors []RGB
	index  map[RGB]int
}

// New returns a palette holding the given entries in order, entry 0
// being the transparent slot. Duplicate visible colors keep their first
// index.
func New(colors ...RGB) *Palette {
	p := &Palette{
		colors: append([]RGB(nil), colors...),
		index:  make(map[RGB]int, len(colors)),
	}
	for i := 1; i < len(p.colors); i++ {
		c := p.colors[i]
		if _, ok := p.index[c]; !ok {
			p.index[c] = i
		}
	}
	return p
}

// Len returns the total number of slots including the transparent one.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Color returns the color stored at slot i.
func (p *Palette) Color(i int) RGB {
	return p.colors[i]
}

// Colors returns a copy of all slots in index order.
func (p *Palette) Colors() []RGB {
	return append([]RGB(nil), p.colors...)
}

// Lookup returns the index of an exact visible color match. The
// transparent slot never matches.
func (p *Palette) Lookup(c RGB) (int, bool) {
	i, ok := p.index[c]
	return i, ok
}

// Nearest returns the visible slot closest to c by unweighted
// per-channel Euclidean distance. Ties resolve to the lowest index so
// output stays deterministic. A palette with no visible slots returns
// the transparent index 0.
func (p *Palette) Nearest(c RGB) int {
	best, bestDist := 0, int(^uint(0)>>1)
	for i := 1; i < len(p.colors); i++ {
		d := dist(c, p.colors[i])
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDiff(a, b uint8) int {
	d := int(a) - int(b)
	return d * d
}

func dist(a, b RGB) int {
	return sqDiff(a.R, b.R) + sqDiff(a.G, b.G) + sqDiff(a.B, b.B)
}

// OverflowError reports a sprite whose distinct color count exceeds
// what a packed mode can index.
type OverflowError struct {
	Found    int
	Capacity int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("palette: %d distinct colors exceed capacity %d (%d usable)",
		e.Found, e.Capacity, e.Capacity-1)
}

// Discover returns the distinct colors among buf's active pixels in
// row-major first-occurrence order.
func Discover(buf *pixel.Buffer) []RGB {
	seen := make(map[RGB]struct{})
	var colors []RGB
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			s := buf.At(x, y)
			if s.A == 0 {
				continue
			}
			c := RGB{s.R, s.G, s.B}
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				colors = append(colors, c)
			}
		}
	}
	return colors
}

// FromBuffer builds a sprite-local palette from buf's active pixels in
// first-occurrence order, reserving slot 0 for transparency. capacity
// is the total slot count of the packed mode. The one hard failure in
// the pipeline: more distinct colors than usable slots is an
// OverflowError.
func FromBuffer(buf *pixel.Buffer, capacity int) (*Palette, error) {
	colors := Discover(buf)
	if len(colors) > capacity-1 {
		return nil, &OverflowError{Found: len(colors), Capacity: capacity}
	}
	return New(append([]RGB{{}}, colors...)...), nil
}

// Layer is a boolean bitmap isolating the pixels of one color within a
// sprite. Bits holds one value per pixel in row-major order, 0 or 1.
type Layer struct {
	Color RGB
	Bits  []uint8
}

// Layers builds one Layer per distinct color of buf, in discovery
// order. A pixel is set in a layer iff it is active and matches that
// layer's color exactly. A sprite with no active pixels yields no
// layers; that is not an error.
func Layers(buf *pixel.Buffer) []Layer {
	colors := Discover(buf)
	if len(colors) == 0 {
		return nil
	}

	index := make(map[RGB]int, len(colors))
	layers := make([]Layer, len(colors))
	for i, c := range colors {
		index[c] = i
		layers[i] = Layer{
			Color: c,
			Bits:  make([]uint8, buf.Width*buf.Height),
		}
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			s := buf.At(x, y)
			if s.A == 0 {
				continue
			}
			layers[index[RGB{s.R, s.G, s.B}]].Bits[y*buf.Width+x] = 1
		}
	}

	return layers
}

// Resolve maps every pixel of buf to a palette index. Inactive pixels
// take the reserved transparent index 0. Active pixels match their
// exact palette entry when present; off-palette colors fall back to
// the nearest visible entry so they still compile. Nearest lookups are
// memoized for the duration of the call only.
func Resolve(buf *pixel.Buffer, p *Palette) []uint8 {
	out := make([]uint8, buf.Width*buf.Height)
	memo := make(map[RGB]int)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			s := buf.At(x, y)
			if s.A == 0 {
				continue
			}
			c := RGB{s.R, s.G, s.B}
			i, ok := p.index[c]
			if !ok {
				if i, ok = memo[c]; !ok {
					i = p.Nearest(c)
					memo[c] = i
				}
			}
			out[y*buf.Width+x] = uint8(i)
		}
	}
	return out
}
