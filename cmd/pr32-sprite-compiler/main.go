package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	sprc "github.com/PixelRoot32-Game-Engine/PixelRoot32-Sprite-Sheet-Compiler"
	"github.com/PixelRoot32-Game-Engine/PixelRoot32-Sprite-Sheet-Compiler/palette"
	"github.com/PixelRoot32-Game-Engine/PixelRoot32-Sprite-Sheet-Compiler/pixel"
	"github.com/urfave/cli/v2"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const defaultOut = "sprites.h"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func parseGrid(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("grid must be WxH, got %q", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func parseOffset(s string) (int, int, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("offset must be X,Y, got %q", s)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func parseSprite(s string) (sprc.SpriteRect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return sprc.SpriteRect{}, fmt.Errorf("sprite must be gx,gy,gw,gh, got %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return sprc.SpriteRect{}, err
		}
		v[i] = n
	}
	return sprc.SpriteRect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

func compileAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	mode, err := sprc.ParseMode(c.String("mode"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	grid := sprc.Grid{}
	if s := c.String("grid"); s != "" {
		grid.CellWidth, grid.CellHeight, err = parseGrid(s)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
	} else {
		// Assume square cells when guessing from the sheet width
		grid.CellWidth = sprc.DetectCellSize(img.Bounds().Dx())
		grid.CellHeight = grid.CellWidth
		fmt.Printf("INFO: Auto-detected grid size: %dx%d\n", grid.CellWidth, grid.CellHeight)
	}

	grid.OffsetX, grid.OffsetY, err = parseOffset(c.String("offset"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var rects []sprc.SpriteRect
	if defs := c.StringSlice("sprite"); len(defs) > 0 {
		for _, d := range defs {
			r, err := parseSprite(d)
			if err != nil {
				return cli.NewExitError(err, 1)
			}
			rects = append(rects, r)
		}
	} else {
		rects = grid.FillSheet(img.Bounds().Dx(), img.Bounds().Dy())
		fmt.Printf("INFO: Auto-generated %d sprites.\n", len(rects))
	}

	var pal *palette.Palette
	if name := c.String("palette"); name != "" {
		if pal = palette.Named(name); pal == nil {
			return cli.NewExitError(fmt.Errorf("unknown palette %q", name), 1)
		}
	}

	if n := c.Int("reduce"); n > 0 {
		img = pixel.Reduce(img, n)
		logger.Printf("reduced sheet to at most %d colors\n", n)
	}

	out := c.String("out")
	compiler := sprc.New(logger, c.Int("workers"))
	res, err := compiler.Export(out, img, grid, rects, sprc.Options{
		Mode:    mode,
		Palette: pal,
		Prefix:  c.String("prefix"),
	})
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
	}
	fmt.Printf("OK: generated %s\n", out)

	return nil
}

func palettesAction(c *cli.Context) error {
	for _, name := range palette.Names() {
		p := palette.Named(name)
		fmt.Printf("%s: %d colors + transparent\n", name, p.Len()-1)
	}
	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "pr32-sprite-compiler"
	app.Usage = "PixelRoot32 sprite sheet compiler"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "compile",
			Usage:       "Compile a sprite sheet to a C header",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "grid",
					Usage: "grid cell size WxH (e.g. 16x16), auto-detected when omitted",
				},
				&cli.StringFlag{
					Name:  "offset",
					Value: "0,0",
					Usage: "grid offset X,Y",
				},
				&cli.StringSliceFlag{
					Name:  "sprite",
					Usage: "sprite definition gx,gy,gw,gh in grid units, repeatable",
				},
				&cli.StringFlag{
					Name:  "mode",
					Value: "layered",
					Usage: "export mode: layered, 2bpp, or 4bpp",
				},
				&cli.StringFlag{
					Name:  "palette",
					Usage: "predefined palette name for packed modes",
				},
				&cli.StringFlag{
					Name:  "prefix",
					Usage: "array name prefix",
				},
				&cli.StringFlag{
					Name:  "out",
					Value: defaultOut,
					Usage: "output header file",
				},
				&cli.IntFlag{
					Name:  "reduce",
					Usage: "quantize the sheet to at most N colors before compiling",
				},
				&cli.IntFlag{
					Name:  "workers",
					Usage: "number of concurrent sprite workers",
				},
			},
			Action: compileAction,
		},
		{
			Name:        "palettes",
			Usage:       "List the predefined palettes",
			Description: "",
			Action:      palettesAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
