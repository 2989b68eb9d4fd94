/*
Package header implements the C header emitter.

It serializes packed words into static const uint16_t array
declarations plus cosmetic comment blocks. The emitter never inspects
pixel semantics; it only sees word sequences and naming metadata, so
any producer of words can reuse it.
*/
package header

import (
	"fmt"
	"io"
)

// Array is one emitted declaration: a name and its words in row-major
// order. An optional palette block is printed immediately before the
// declaration, used by the dynamic packed modes where every sprite
// carries its own palette.
type Array struct {
	Name    string
	Words   []uint16
	Palette []PaletteEntry
}

// PaletteEntry is one line of a palette comment block.
type PaletteEntry struct {
	Index int
	Label string
}

// Document is everything the emitter needs for one header file. A
// non-nil Palette is printed once after the preamble and describes a
// palette shared by every array.
type Document struct {
	Mode    string
	Palette []PaletteEntry
	Arrays  []Array
}

// LayerName returns the array name for one layer of a layered sprite.
func LayerName(prefix string, sprite, layer int) string {
	return name(prefix, fmt.Sprintf("SPRITE_%d_LAYER_%d", sprite, layer))
}

// PackedName returns the array name for a packed sprite; suffix is the
// bit-depth tag, "2BPP" or "4BPP".
func PackedName(prefix string, sprite int, suffix string) string {
	return name(prefix, fmt.Sprintf("SPRITE_%d_%s", sprite, suffix))
}

func name(prefix, base string) string {
	if prefix == "" {
		return base
	}
	return prefix + "_" + base
}

type encoder struct {
	w io.Writer
}

func (e *encoder) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(e.w, format, args...)
	return err
}

func (e *encoder) palette(entries []PaletteEntry) error {
	if err := e.printf("// Palette (%d colors + transparent):\n", len(entries)-1); err != nil {
		return err
	}
	for _, p := range entries {
		if err := e.printf("// Index %d: %s\n", p.Index, p.Label); err != nil {
			return err
		}
	}
	return e.printf("\n")
}

func (e *encoder) array(a Array) error {
	if a.Palette != nil {
		if err := e.palette(a.Palette); err != nil {
			return err
		}
	}
	if err := e.printf("static const uint16_t %s[] = {\n", a.Name); err != nil {
		return err
	}
	for _, w := range a.Words {
		if err := e.printf("    0x%04X,\n", w); err != nil {
			return err
		}
	}
	return e.printf("};\n\n")
}

// Encode writes doc to w in the engine's header format. Arrays are
// written in the order given; ordering is the caller's contract.
func Encode(w io.Writer, doc Document) error {
	e := &encoder{w: w}

	if err := e.printf("// Generated by pr32-sprite-compiler\n// Engine: PixelRoot32\n// Mode: %s\n\n", doc.Mode); err != nil {
		return err
	}

	if doc.Palette != nil {
		if err := e.palette(doc.Palette); err != nil {
			return err
		}
	}

	for _, a := range doc.Arrays {
		if err := e.array(a); err != nil {
			return err
		}
	}

	return nil
}
