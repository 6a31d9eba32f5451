/*
NAME
  main.go

DESCRIPTION
  iffpng is a CLI driver that decodes an IFF bitmap file and re-encodes it
  as PNG, wiring the core (package iff) to the standard library's
  image/png package as the PNG back-end named in spec.md §6. Argument
  parsing, file-existence checks, and success messaging are explicitly out
  of the core's scope (spec.md §1); this is the external collaborator that
  supplies them, shaped like ausocean-av's cmd/.../main.go drivers (flag
  parsing, a thin run() error, lumberjack-backed structured logging).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// iffpng decodes an IFF bitmap file (ILBM, PBM, ACBM, RGBN, RGB8, DEEP,
// FAXX or YUVN) and writes it out as a PNG file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/ausocean/utils/logging"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	iff "github.com/ausocean/iffimage"
	"github.com/ausocean/iffimage/analyse"
	"github.com/ausocean/iffimage/decodeopts"
)

// Logging configuration, matching ausocean-av's cmd/*/main.go convention.
const (
	logPath      = "iffpng.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = false
)

func main() {
	in := flag.String("in", "", "path to the input IFF file")
	out := flag.String("out", "", "path to the output PNG file")
	strictEOL := flag.Bool("strict-eol", false, "require a leading EOL on every FAXX line")
	allowMMR := flag.Bool("allow-mmr", false, "treat FAXX MMR input as MR")
	opaqueBlack := flag.Bool("opaque-transparent-black", false, "suppress tRNS when the transparent index is 0")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "iffpng: -in and -out are both required")
		os.Exit(2)
	}

	logWriter := &lumberjack.Logger{Filename: logPath, MaxSize: logMaxSize, MaxBackups: logMaxBackup, MaxAge: logMaxAge}
	defer logWriter.Close()
	log := logging.New(logVerbosity, logWriter, logSuppress)

	if err := run(*in, *out, log, *strictEOL, *allowMMR, *opaqueBlack); err != nil {
		log.Error("iffpng failed", "error", err.Error())
		fmt.Fprintf(os.Stderr, "iffpng: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("iffpng: wrote %s\n", *out)
}

func run(inPath, outPath string, log logging.Logger, strictEOL, allowMMR, opaqueBlack bool) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	img, err := iff.Open(f,
		decodeopts.WithLogger(log),
		decodeopts.WithStrictEOL(strictEOL),
		decodeopts.WithAllowMMRAsMR(allowMMR),
		decodeopts.WithOpaqueTransparentBlack(opaqueBlack),
	)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", inPath, err)
	}
	log.Info("parsed FORM container", "form", string(img.Form), "width", img.BMHD.Width, "height", img.BMHD.Height)

	if err := img.Decode(); err != nil {
		return fmt.Errorf("decoding %q: %w", inPath, err)
	}
	log.Info("decoded raster", "width", img.Width, "height", img.Height, "hasAlpha", img.HasAlpha)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	return png.Encode(out, toGoImage(img))
}

// toGoImage builds an image.Image matching the derived PNG configuration:
// image.Paletted for indexed output (including the palette-index shadow
// buffer passthrough spec.md §4.5 asks for, avoiding re-quantisation),
// image.Gray for grayscale, and image.NRGBA/image.RGBA otherwise.
func toGoImage(img *iff.Image) image.Image {
	bounds := image.Rect(0, 0, img.Width, img.Height)

	switch img.PNGConfig.ColorType {
	case analyse.ColorPalette:
		pal := make(color.Palette, len(img.PNGConfig.Palette))
		for i, c := range img.PNGConfig.Palette {
			a := uint8(0xff)
			if img.PNGConfig.HasTRNS && i == img.PNGConfig.TRNSIndex {
				a = 0
			}
			pal[i] = color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
		}
		p := image.NewPaletted(bounds, pal)
		copy(p.Pix, img.Indices)
		return p

	case analyse.ColorGray:
		g := image.NewGray(bounds)
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				g.SetGray(x, y, color.Gray{Y: img.Pix[(y*img.Width+x)*3]})
			}
		}
		return g

	case analyse.ColorRGBA:
		r := image.NewNRGBA(bounds)
		copy(r.Pix, img.Pix)
		return r

	default: // analyse.ColorRGB.
		r := image.NewRGBA(bounds)
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				off := (y*img.Width + x) * 3
				r.Set(x, y, color.RGBA{R: img.Pix[off], G: img.Pix[off+1], B: img.Pix[off+2], A: 0xff})
			}
		}
		return r
	}
}
