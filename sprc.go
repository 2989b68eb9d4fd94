/*
Package sprc compiles raster sprite sheets into PixelRoot32 engine
headers.

A sheet is sliced into sprite rectangles on a cell grid and each sprite
is encoded either as one boolean bitmap per distinct color (layered
1bpp) or as palette-indexed packed pixels (2bpp/4bpp). Pixel rows are
bit-packed into 16-bit words and emitted as static const uint16_t array
declarations ready for inclusion in engine code.
*/
package sprc

import (
	"io"
	"log"
)

// Compiler turns sprite sheets into engine headers. Use New; the zero
// value has no logger.
type Compiler struct {
	logger  *log.Logger
	workers int
}

// New returns a Compiler that logs progress to logger. workers sets how
// many sprites are compiled concurrently; any value below 2 selects the
// sequential path. Output is identical either way.
func New(logger *log.Logger, workers int) *Compiler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Compiler{
		logger:  logger,
		workers: workers,
	}
}
