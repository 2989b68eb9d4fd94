package sprc

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/PixelRoot32-Game-Engine/PixelRoot32-Sprite-Sheet-Compiler/header"
	"github.com/PixelRoot32-Game-Engine/PixelRoot32-Sprite-Sheet-Compiler/pack"
	"github.com/PixelRoot32-Game-Engine/PixelRoot32-Sprite-Sheet-Compiler/palette"
	"github.com/PixelRoot32-Game-Engine/PixelRoot32-Sprite-Sheet-Compiler/pixel"
)

// Layered sprites above this many layers trigger a performance warning.
const maxFastLayers = 4

// Options selects how a sheet compiles.
type Options struct {
	Mode Mode

	// Palette supplies a predefined palette for the packed modes. When
	// nil each sprite discovers its own palette. Ignored by layered
	// mode.
	Palette *palette.Palette

	// Prefix is prepended to every array name, e.g. "PLAYER" yields
	// PLAYER_SPRITE_0_LAYER_0.
	Prefix string
}

// Sprite is the compiled output for one sprite rectangle.
type Sprite struct {
	Index  int
	Width  int
	Height int

	// Arrays in layer order; a single array in the packed modes.
	Arrays []header.Array

	// Layers holds the color of each layer in index order, layered
	// mode only.
	Layers []palette.RGB

	// Palette the packed indices refer to, packed modes only.
	Palette *palette.Palette
}

// Result is one full compilation: an entry per input sprite, in input
// order, plus any non-fatal warnings.
type Result struct {
	Mode     Mode
	Sprites  []Sprite
	Warnings []string

	// Predefined palette shared by every sprite, nil when each sprite
	// discovered its own.
	Palette *palette.Palette
}

// Compile encodes every sprite of m in input order. The source image
// and grid are shared read-only across sprites; sprites share no other
// state, so the configured worker count never changes the result.
func (c *Compiler) Compile(m image.Image, grid Grid, rects []SpriteRect, opts Options) (*Result, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	if opts.Palette != nil && opts.Mode.Capacity() > 0 && opts.Palette.Len() > opts.Mode.Capacity() {
		return nil, &palette.OverflowError{
			Found:    opts.Palette.Len() - 1,
			Capacity: opts.Mode.Capacity(),
		}
	}

	res := &Result{
		Mode:    opts.Mode,
		Sprites: make([]Sprite, len(rects)),
	}
	if opts.Mode != Layered1bpp {
		res.Palette = opts.Palette
	}

	warnings := make([][]string, len(rects))

	var err error
	if c.workers > 1 {
		err = c.compileParallel(m, grid, rects, opts, res, warnings)
	} else {
		err = c.compileSequential(m, grid, rects, opts, res, warnings)
	}
	if err != nil {
		return nil, err
	}

	for _, w := range warnings {
		res.Warnings = append(res.Warnings, w...)
	}

	return res, nil
}

func (c *Compiler) compileSequential(m image.Image, grid Grid, rects []SpriteRect, opts Options, res *Result, warnings [][]string) error {
	for i, r := range rects {
		sp, warns, err := c.compileSprite(m, grid, i, r, opts)
		if err != nil {
			return err
		}
		res.Sprites[i] = sp
		warnings[i] = warns
	}
	return nil
}

// compileParallel fans sprites out over a fixed set of workers. Each
// worker writes only its own sprite's slot, so the slices need no
// locking, and reassembly by index keeps the observable ordering
// contract intact.
func (c *Compiler) compileParallel(m image.Image, grid Grid, rects []SpriteRect, opts Options, res *Result, warnings [][]string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type job struct {
		index int
		rect  SpriteRect
	}

	jobs := make(chan job)
	go func() {
		defer close(jobs)
		for i, r := range rects {
			select {
			case jobs <- job{index: i, rect: r}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var errcList []<-chan error
	for w := 0; w < c.workers; w++ {
		errc := make(chan error, 1)
		errcList = append(errcList, errc)
		go func() {
			defer close(errc)
			for j := range jobs {
				sp, warns, err := c.compileSprite(m, grid, j.index, j.rect, opts)
				if err != nil {
					errc <- err
					return
				}
				res.Sprites[j.index] = sp
				warnings[j.index] = warns
			}
		}()
	}

	return waitForPipeline(errcList...)
}

func waitForPipeline(errs ...<-chan error) error {
	for err := range mergeErrors(errs...) {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func (c *Compiler) compileSprite(m image.Image, grid Grid, index int, r SpriteRect, opts Options) (Sprite, []string, error) {
	if err := r.validate(); err != nil {
		return Sprite{}, nil, &SpriteError{Index: index, Err: err}
	}

	buf := pixel.Extract(m, grid.Resolve(r))
	sp := Sprite{
		Index:  index,
		Width:  buf.Width,
		Height: buf.Height,
	}

	var warns []string
	switch opts.Mode {
	case Layered1bpp:
		layers := palette.Layers(buf)
		if len(layers) > maxFastLayers {
			warns = append(warns, fmt.Sprintf(
				"sprite %d: %d layers; more than %d may degrade render performance on ESP32, consider 4bpp packed mode",
				index, len(layers), maxFastLayers))
		}
		for li, l := range layers {
			sp.Layers = append(sp.Layers, l.Color)
			sp.Arrays = append(sp.Arrays, header.Array{
				Name:  header.LayerName(opts.Prefix, index, li),
				Words: pack.Rows(l.Bits, buf.Width, buf.Height, 1),
			})
		}

	case Packed2bpp, Packed4bpp:
		pal := opts.Palette
		if pal == nil {
			var err error
			pal, err = palette.FromBuffer(buf, opts.Mode.Capacity())
			if err != nil {
				return Sprite{}, nil, &SpriteError{Index: index, Err: err}
			}
		}
		sp.Palette = pal
		sp.Arrays = []header.Array{{
			Name:  header.PackedName(opts.Prefix, index, opts.Mode.suffix()),
			Words: pack.Rows(palette.Resolve(buf, pal), buf.Width, buf.Height, opts.Mode.Bpp()),
		}}
	}

	c.logger.Printf("sprite %d: %dx%d px, %d array(s)\n", index, buf.Width, buf.Height, len(sp.Arrays))

	return sp, warns, nil
}

// Document flattens the result into the emitter's input form: arrays in
// sprite order then layer order, with palette comment blocks for the
// packed modes. A predefined palette is printed once; dynamic palettes
// are printed per sprite.
func (r *Result) Document() header.Document {
	doc := header.Document{Mode: r.Mode.String()}
	if r.Palette != nil {
		doc.Palette = paletteEntries(r.Palette)
	}

	for _, sp := range r.Sprites {
		for i, a := range sp.Arrays {
			if r.Mode != Layered1bpp && r.Palette == nil && i == 0 && sp.Palette != nil {
				a.Palette = paletteEntries(sp.Palette)
			}
			doc.Arrays = append(doc.Arrays, a)
		}
	}

	return doc
}

func paletteEntries(p *palette.Palette) []header.PaletteEntry {
	entries := make([]header.PaletteEntry, 0, p.Len())
	entries = append(entries, header.PaletteEntry{Index: 0, Label: "Transparent"})
	for i := 1; i < p.Len(); i++ {
		entries = append(entries, header.PaletteEntry{Index: i, Label: p.Color(i).String()})
	}
	return entries
}

// Export compiles the sheet and writes the resulting header to path,
// overwriting any existing file. The write is best effort; on failure
// the file may be truncated and the caller gets a WriteError.
func (c *Compiler) Export(path string, m image.Image, grid Grid, rects []SpriteRect, opts Options) (*Result, error) {
	res, err := c.Compile(m, grid, rects, opts)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}

	if err := header.Encode(f, res.Document()); err != nil {
		f.Close()
		return nil, &WriteError{Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}

	c.logger.Printf("generated %s: %d sprites, mode %s\n", path, len(res.Sprites), opts.Mode)

	return res, nil
}

// IsSpriteError reports whether err is attributed to a single sprite
// and returns that sprite's index. Callers use it to implement
// skip-or-abort policies.
func IsSpriteError(err error) (int, bool) {
	var se *SpriteError
	if errors.As(err, &se) {
		return se.Index, true
	}
	return 0, false
}
