package sprc

import "fmt"

// Mode selects the pixel representation a sheet compiles to.
type Mode int

const (
	// Layered1bpp encodes one boolean bitmap per distinct sprite color.
	Layered1bpp Mode = iota
	// Packed2bpp encodes 2-bit palette indices, 4 palette slots.
	Packed2bpp
	// Packed4bpp encodes 4-bit palette indices, 16 palette slots.
	Packed4bpp
)

// ParseMode maps the command-line mode names to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "layered":
		return Layered1bpp, nil
	case "2bpp":
		return Packed2bpp, nil
	case "4bpp":
		return Packed4bpp, nil
	}
	return 0, fmt.Errorf("sprc: unknown mode %q", s)
}

func (m Mode) String() string {
	switch m {
	case Packed2bpp:
		return "2bpp"
	case Packed4bpp:
		return "4bpp"
	}
	return "layered"
}

// Bpp returns the bits stored per pixel.
func (m Mode) Bpp() int {
	switch m {
	case Packed2bpp:
		return 2
	case Packed4bpp:
		return 4
	}
	return 1
}

// Capacity returns the total palette slot count of a packed mode,
// including the reserved transparent slot 0. Layered mode has no
// palette and returns 0.
func (m Mode) Capacity() int {
	switch m {
	case Packed2bpp:
		return 4
	case Packed4bpp:
		return 16
	}
	return 0
}

// suffix is the uppercase array-name suffix used by packed modes.
func (m Mode) suffix() string {
	switch m {
	case Packed2bpp:
		return "2BPP"
	case Packed4bpp:
		return "4BPP"
	}
	return ""
}
