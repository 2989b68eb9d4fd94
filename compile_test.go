package sprc

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixelRoot32-Game-Engine/PixelRoot32-Sprite-Sheet-Compiler/header"
	"github.com/PixelRoot32-Game-Engine/PixelRoot32-Sprite-Sheet-Compiler/palette"
)

func fill(m *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetNRGBA(x, y, c)
		}
	}
}

func grid16() Grid {
	return Grid{CellWidth: 16, CellHeight: 16}
}

func TestCompileLayeredTransparentSprite(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))

	res, err := New(nil, 0).Compile(m, grid16(), []SpriteRect{{W: 1, H: 1}}, Options{Mode: Layered1bpp})
	require.NoError(t, err)
	require.Len(t, res.Sprites, 1)
	assert.Empty(t, res.Sprites[0].Arrays)
	assert.Empty(t, res.Sprites[0].Layers)
}

func TestCompileLayeredSingleColor(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 32, 16))
	fill(m, m.Bounds(), color.NRGBA{R: 255, A: 255})

	g := Grid{CellWidth: 32, CellHeight: 16}
	res, err := New(nil, 0).Compile(m, g, []SpriteRect{{W: 1, H: 1}}, Options{Mode: Layered1bpp})
	require.NoError(t, err)

	sp := res.Sprites[0]
	require.Len(t, sp.Arrays, 1)
	assert.Equal(t, "SPRITE_0_LAYER_0", sp.Arrays[0].Name)
	assert.Equal(t, []palette.RGB{{R: 255}}, sp.Layers)

	// 2 words per 32-pixel row, 16 rows, every word fully set
	require.Len(t, sp.Arrays[0].Words, 32)
	for _, w := range sp.Arrays[0].Words {
		assert.Equal(t, uint16(0xFFFF), w)
	}
}

func TestCompileLayeredLayerOrder(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	m.SetNRGBA(5, 0, color.NRGBA{G: 255, A: 255})
	m.SetNRGBA(0, 3, color.NRGBA{R: 255, A: 255})

	res, err := New(nil, 0).Compile(m, grid16(), []SpriteRect{{W: 1, H: 1}}, Options{Mode: Layered1bpp})
	require.NoError(t, err)

	// Row-major scan sees green first
	sp := res.Sprites[0]
	require.Len(t, sp.Arrays, 2)
	assert.Equal(t, []palette.RGB{{G: 255}, {R: 255}}, sp.Layers)
	assert.Equal(t, uint16(0x0400), sp.Arrays[0].Words[0])
	assert.Equal(t, uint16(0x8000), sp.Arrays[1].Words[3])
}

func TestCompilePackedDynamicOverflow(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < 5; i++ {
		m.SetNRGBA(i, 0, color.NRGBA{R: uint8(10 * i), A: 255})
	}

	_, err := New(nil, 0).Compile(m, grid16(), []SpriteRect{{W: 1, H: 1}}, Options{Mode: Packed2bpp})
	require.Error(t, err)

	index, ok := IsSpriteError(err)
	require.True(t, ok)
	assert.Equal(t, 0, index)

	var oe *palette.OverflowError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, 5, oe.Found)
	assert.Equal(t, 4, oe.Capacity)
}

func TestCompilePacked4bppPredefined(t *testing.T) {
	// 9x1 sprite, one active pixel at x=8 matching palette index 2
	m := image.NewNRGBA(image.Rect(0, 0, 9, 1))
	m.SetNRGBA(8, 0, color.NRGBA{G: 255, A: 255})

	pal := palette.New(palette.RGB{}, palette.RGB{R: 255}, palette.RGB{G: 255})
	g := Grid{CellWidth: 9, CellHeight: 1}

	res, err := New(nil, 0).Compile(m, g, []SpriteRect{{W: 1, H: 1}}, Options{Mode: Packed4bpp, Palette: pal})
	require.NoError(t, err)

	sp := res.Sprites[0]
	require.Len(t, sp.Arrays, 1)
	assert.Equal(t, "SPRITE_0_4BPP", sp.Arrays[0].Name)
	assert.Equal(t, []uint16{0x0000, 0x0000, 0x2000}, sp.Arrays[0].Words)
}

func TestCompilePredefinedPaletteTooLarge(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))

	_, err := New(nil, 0).Compile(m, grid16(), []SpriteRect{{W: 1, H: 1}},
		Options{Mode: Packed2bpp, Palette: palette.Named("PALETTE_NES")})
	require.Error(t, err)

	var oe *palette.OverflowError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, 4, oe.Capacity)
}

func TestCompileInvalidGeometry(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))

	_, err := New(nil, 0).Compile(m, Grid{CellWidth: 0, CellHeight: 16}, nil, Options{})
	require.Error(t, err)

	var ge *GeometryError
	assert.True(t, errors.As(err, &ge))
}

func TestCompileInvalidSpriteRect(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 32, 16))

	_, err := New(nil, 0).Compile(m, grid16(), []SpriteRect{{W: 1, H: 1}, {X: 1, W: 0, H: 1}}, Options{Mode: Layered1bpp})
	require.Error(t, err)

	index, ok := IsSpriteError(err)
	require.True(t, ok)
	assert.Equal(t, 1, index)

	var re *RectError
	assert.True(t, errors.As(err, &re))
}

func TestCompileOutOfBoundsRect(t *testing.T) {
	// A sprite half off the sheet compiles with transparent padding
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	fill(m, m.Bounds(), color.NRGBA{B: 255, A: 255})

	res, err := New(nil, 0).Compile(m, grid16(), []SpriteRect{{X: 0, Y: 0, W: 2, H: 1}}, Options{Mode: Layered1bpp})
	require.NoError(t, err)

	sp := res.Sprites[0]
	assert.Equal(t, 32, sp.Width)
	require.Len(t, sp.Arrays, 1)
	// Left word of each row fully set, right word all padding
	assert.Equal(t, uint16(0xFFFF), sp.Arrays[0].Words[0])
	assert.Equal(t, uint16(0x0000), sp.Arrays[0].Words[1])
}

func TestCompileLayerCountWarning(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < 5; i++ {
		m.SetNRGBA(i, 0, color.NRGBA{R: uint8(50 * i), A: 255})
	}

	res, err := New(nil, 0).Compile(m, grid16(), []SpriteRect{{W: 1, H: 1}}, Options{Mode: Layered1bpp})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "5 layers")
}

func TestCompileNamePrefix(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	fill(m, m.Bounds(), color.NRGBA{R: 255, A: 255})

	res, err := New(nil, 0).Compile(m, grid16(), []SpriteRect{{W: 1, H: 1}}, Options{Mode: Layered1bpp, Prefix: "PLAYER"})
	require.NoError(t, err)
	assert.Equal(t, "PLAYER_SPRITE_0_LAYER_0", res.Sprites[0].Arrays[0].Name)
}

func sampleSheet() (*image.NRGBA, Grid, []SpriteRect) {
	m := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	fill(m, image.Rect(0, 0, 16, 16), color.NRGBA{R: 255, A: 255})
	fill(m, image.Rect(16, 0, 32, 16), color.NRGBA{G: 255, A: 255})
	fill(m, image.Rect(32, 16, 48, 32), color.NRGBA{B: 255, A: 255})
	fill(m, image.Rect(48, 16, 64, 24), color.NRGBA{R: 255, G: 255, A: 255})

	g := grid16()
	return m, g, g.FillSheet(64, 32)
}

func TestCompileOrderPreserved(t *testing.T) {
	m, g, rects := sampleSheet()

	res, err := New(nil, 0).Compile(m, g, rects, Options{Mode: Layered1bpp})
	require.NoError(t, err)
	require.Len(t, res.Sprites, 8)

	// Transparent cells emit no arrays; the rest follow input order
	var names []string
	for _, a := range res.Document().Arrays {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{
		"SPRITE_0_LAYER_0",
		"SPRITE_1_LAYER_0",
		"SPRITE_6_LAYER_0",
		"SPRITE_7_LAYER_0",
	}, names)
}

func TestCompileParallelMatchesSequential(t *testing.T) {
	m, g, rects := sampleSheet()

	seq, err := New(nil, 1).Compile(m, g, rects, Options{Mode: Layered1bpp})
	require.NoError(t, err)

	par, err := New(nil, 4).Compile(m, g, rects, Options{Mode: Layered1bpp})
	require.NoError(t, err)

	var a, b bytes.Buffer
	require.NoError(t, header.Encode(&a, seq.Document()))
	require.NoError(t, header.Encode(&b, par.Document()))
	assert.Equal(t, a.String(), b.String())
}

func TestCompileParallelPropagatesSpriteError(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	rects := []SpriteRect{{W: 1, H: 1}, {X: 1, W: 1, H: 1}, {X: 2, W: 0, H: 1}, {X: 3, W: 1, H: 1}}

	_, err := New(nil, 4).Compile(m, grid16(), rects, Options{Mode: Layered1bpp})
	require.Error(t, err)

	index, ok := IsSpriteError(err)
	require.True(t, ok)
	assert.Equal(t, 2, index)
}

func TestExportIdempotent(t *testing.T) {
	m, g, rects := sampleSheet()
	dir := t.TempDir()

	c := New(nil, 0)
	first := filepath.Join(dir, "a.h")
	second := filepath.Join(dir, "b.h")

	_, err := c.Export(first, m, g, rects, Options{Mode: Layered1bpp})
	require.NoError(t, err)
	_, err = c.Export(second, m, g, rects, Options{Mode: Layered1bpp})
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestExportHeaderContent(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	fill(m, m.Bounds(), color.NRGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "sprites.h")

	_, err := New(nil, 0).Export(path, m, grid16(), []SpriteRect{{W: 1, H: 1}},
		Options{Mode: Packed2bpp, Palette: palette.Named("PALETTE_GB")})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(b)
	assert.True(t, strings.HasPrefix(content, "// Generated by pr32-sprite-compiler\n// Engine: PixelRoot32\n// Mode: 2bpp\n\n"))
	assert.Contains(t, content, "// Palette (3 colors + transparent):\n")
	assert.Contains(t, content, "// Index 0: Transparent\n")
	assert.Contains(t, content, "static const uint16_t SPRITE_0_2BPP[] = {\n")
}

func TestExportWriteError(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))

	_, err := New(nil, 0).Export(filepath.Join(t.TempDir(), "missing", "sprites.h"),
		m, grid16(), []SpriteRect{{W: 1, H: 1}}, Options{Mode: Layered1bpp})
	require.Error(t, err)

	var we *WriteError
	assert.True(t, errors.As(err, &we))
}

func TestDocumentDynamicPalettePerSprite(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 32, 16))
	fill(m, image.Rect(0, 0, 16, 16), color.NRGBA{R: 255, A: 255})
	fill(m, image.Rect(16, 0, 32, 16), color.NRGBA{G: 255, A: 255})

	g := grid16()
	res, err := New(nil, 0).Compile(m, g, g.FillSheet(32, 16), Options{Mode: Packed2bpp})
	require.NoError(t, err)

	doc := res.Document()
	require.Len(t, doc.Arrays, 2)
	assert.Nil(t, doc.Palette)
	require.Len(t, doc.Arrays[0].Palette, 2)
	assert.Equal(t, "RGB(255, 0, 0)", doc.Arrays[0].Palette[1].Label)
	assert.Equal(t, "RGB(0, 255, 0)", doc.Arrays[1].Palette[1].Label)
}
