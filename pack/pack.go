/*
Package pack implements the bit packer that turns per-pixel values into
the 16-bit words consumed by the PixelRoot32 engine.

Values pack MSB-first: the first pixel of a row occupies the top bits
of the first word and later pixels fill successively lower bits. Rows
never share a word; when a row does not fill its last word the unused
low-order bits are zero. For 1bpp this means bit 15 is the leftmost
pixel of each 16-pixel group. The layout is a compatibility contract
with the engine renderer and must not change.
*/
package pack

// WordBits is the width of one emitted word.
const WordBits = 16

// PixelsPerWord returns how many bpp-bit values fit in one word.
func PixelsPerWord(bpp int) int {
	return WordBits / bpp
}

// WordsPerRow returns the number of words a row of width pixels packs
// to at bpp bits per pixel.
func WordsPerRow(width, bpp int) int {
	ppw := PixelsPerWord(bpp)
	return (width + ppw - 1) / ppw
}

// Row packs a single row of values, bpp bits each, into words.
func Row(vals []uint8, bpp int) []uint16 {
	ppw := PixelsPerWord(bpp)
	words := make([]uint16, WordsPerRow(len(vals), bpp))
	mask := uint16(1<<bpp - 1)
	for i, v := range vals {
		shift := uint(WordBits - bpp - (i%ppw)*bpp)
		words[i/ppw] |= (uint16(v) & mask) << shift
	}
	return words
}

// Rows packs a row-major width by height buffer of values, one row at a
// time so rows never share a word.
func Rows(vals []uint8, width, height, bpp int) []uint16 {
	words := make([]uint16, 0, WordsPerRow(width, bpp)*height)
	for y := 0; y < height; y++ {
		words = append(words, Row(vals[y*width:(y+1)*width], bpp)...)
	}
	return words
}
