package sprc

import "fmt"

// GeometryError reports a grid with non-positive cell dimensions. The
// geometry is shared by every sprite, so this is fatal for the whole
// compile call.
type GeometryError struct {
	Grid Grid
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("sprc: invalid grid geometry %dx%d", e.Grid.CellWidth, e.Grid.CellHeight)
}

// RectError reports a sprite rectangle with non-positive size in grid
// cells.
type RectError struct {
	Rect SpriteRect
}

func (e *RectError) Error() string {
	return fmt.Sprintf("sprc: invalid sprite rect %dx%d cells", e.Rect.W, e.Rect.H)
}

// SpriteError attributes a failure to a single sprite so callers can
// report exactly which sprite failed and decide whether to skip it or
// abort the run.
type SpriteError struct {
	Index int
	Err   error
}

func (e *SpriteError) Error() string {
	return fmt.Sprintf("sprc: sprite %d: %v", e.Index, e.Err)
}

func (e *SpriteError) Unwrap() error {
	return e.Err
}

// WriteError reports a failed header write. Write failures are not
// assumed transient; there is no retry.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("sprc: write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
