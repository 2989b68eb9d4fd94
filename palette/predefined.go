package palette

// Predefined palettes usable with the packed modes. Slot 0 is the
// transparent slot in every palette; PALETTE_GB fits 2bpp exactly while
// the 16-slot palettes need 4bpp.
var predefined = map[string][]RGB{
	"PALETTE_NES": {
		{},
		{R: 124, G: 124, B: 124},
		{R: 0, G: 0, B: 252},
		{R: 0, G: 0, B: 188},
		{R: 68, G: 40, B: 188},
		{R: 148, G: 0, B: 132},
		{R: 168, G: 0, B: 32},
		{R: 168, G: 16, B: 0},
		{R: 136, G: 20, B: 0},
		{R: 80, G: 48, B: 0},
		{R: 0, G: 120, B: 0},
		{R: 0, G: 104, B: 0},
		{R: 0, G: 88, B: 0},
		{R: 0, G: 64, B: 88},
		{R: 188, G: 188, B: 188},
		{R: 252, G: 252, B: 252},
	},
	"PALETTE_GB": {
		{},
		{R: 139, G: 172, B: 15},
		{R: 48, G: 98, B: 48},
		{R: 15, G: 56, B: 15},
	},
	"PALETTE_GBC": {
		{},
		{R: 255, G: 255, B: 255},
		{R: 170, G: 170, B: 170},
		{R: 85, G: 85, B: 85},
		{R: 0, G: 0, B: 0},
		{R: 255, G: 0, B: 0},
		{R: 255, G: 128, B: 0},
		{R: 255, G: 255, B: 0},
		{R: 0, G: 200, B: 0},
		{R: 0, G: 96, B: 0},
		{R: 0, G: 255, B: 255},
		{R: 0, G: 0, B: 255},
		{R: 0, G: 0, B: 128},
		{R: 128, G: 0, B: 255},
		{R: 255, G: 128, B: 192},
		{R: 128, G: 64, B: 0},
	},
	"PALETTE_PICO8": {
		{},
		{R: 29, G: 43, B: 83},
		{R: 126, G: 37, B: 83},
		{R: 0, G: 135, B: 81},
		{R: 171, G: 82, B: 54},
		{R: 95, G: 87, B: 79},
		{R: 194, G: 195, B: 199},
		{R: 255, G: 241, B: 232},
		{R: 255, G: 0, B: 77},
		{R: 255, G: 163, B: 0},
		{R: 255, G: 236, B: 39},
		{R: 0, G: 228, B: 54},
		{R: 41, G: 173, B: 255},
		{R: 131, G: 118, B: 156},
		{R: 255, G: 119, B: 168},
		{R: 255, G: 204, B: 170},
	},
	"PALETTE_PR32": {
		{},
		{R: 255, G: 255, B: 255},
		{R: 192, G: 192, B: 192},
		{R: 128, G: 128, B: 128},
		{R: 64, G: 64, B: 64},
		{R: 0, G: 0, B: 0},
		{R: 224, G: 32, B: 32},
		{R: 240, G: 144, B: 48},
		{R: 248, G: 224, B: 56},
		{R: 64, G: 192, B: 64},
		{R: 16, G: 96, B: 48},
		{R: 48, G: 128, B: 224},
		{R: 24, G: 40, B: 96},
		{R: 144, G: 64, B: 176},
		{R: 248, G: 176, B: 192},
		{R: 128, G: 80, B: 32},
	},
}

var names = []string{
	"PALETTE_NES",
	"PALETTE_GB",
	"PALETTE_GBC",
	"PALETTE_PICO8",
	"PALETTE_PR32",
}

// Names returns the predefined palette names in stable order.
func Names() []string {
	return append([]string(nil), names...)
}

// Named returns a fresh copy of the predefined palette with the given
// name, or nil if no such palette exists.
func Named(name string) *Palette {
	colors, ok := predefined[name]
	if !ok {
		return nil
	}
	return New(colors...)
}
