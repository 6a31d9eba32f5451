/*
NAME
  analyse.go

DESCRIPTION
  analyse.go implements the format analyser and PNG-config deriver, spec.md
  §4.5: post-decode, it refines the grayscale/indexed/alpha flags a format
  decoder reports, then computes the PNG colour type, bit depth, a copied
  (4-bit-upscaled where needed) palette, and tRNS policy for indexed
  output. Closest teacher precedent is codec/h264/h264dec/sps.go's pattern
  of deriving dependent fields from an already-parsed header; no repo in
  the example pack owns this exact "pick an output pixel format" role.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package analyse derives the PNG re-encoding configuration (colour type,
// bit depth, palette, transparency) from a decoded format.Result and its
// source headers, per spec.md §4.5.
package analyse

import (
	"github.com/ausocean/iffimage/decodeopts"
	"github.com/ausocean/iffimage/format"
	"github.com/ausocean/iffimage/header"
)

// ColorType mirrors the PNG colour types this core can target.
type ColorType int

const (
	ColorGray ColorType = iota
	ColorPalette
	ColorRGB
	ColorRGBA
)

// Flags holds the refined grayscale/indexed/alpha analyser flags, spec.md
// §4.5.
type Flags struct {
	IsGrayscale bool
	IsIndexed   bool
	HasAlpha    bool
}

// DeriveFlags refines a format.Result's own flags against the palette: an
// indexed image is grayscale iff every palette entry has R==G==B.
func DeriveFlags(res format.Result, pal *header.Palette) Flags {
	f := Flags{
		IsIndexed: res.IsIndexed,
		HasAlpha:  res.HasAlpha,
	}
	switch {
	case res.IsIndexed && pal != nil:
		f.IsGrayscale = paletteIsGrayscale(pal)
	default:
		f.IsGrayscale = res.IsGrayscale
	}
	return f
}

func paletteIsGrayscale(pal *header.Palette) bool {
	for i := 0; i < pal.Len(); i++ {
		c := pal.At(i)
		if c.R != c.G || c.G != c.B {
			return false
		}
	}
	return true
}

// Config is the PNG configuration descriptor handed to the external PNG
// back-end (spec.md §6).
type Config struct {
	ColorType    ColorType
	BitDepth     int
	Palette      []header.RGB // copied, 4-bit-upscaled if needed; nil unless ColorPalette.
	HasAlpha     bool
	HasTRNS      bool
	TRNSIndex    int // valid only if HasTRNS.
}

// bitDepthFor rounds the minimum bits needed to represent n distinct
// values up to one of PNG's {1,2,4,8} indexed/gray bit depths.
func bitDepthFor(n int) int {
	bits := 1
	for (1 << uint(bits)) < n {
		bits++
	}
	switch {
	case bits <= 1:
		return 1
	case bits <= 2:
		return 2
	case bits <= 4:
		return 4
	default:
		return 8
	}
}

// DeriveConfig computes the PNG colour type/bit depth/palette/tRNS for a
// decoded image, per spec.md §4.5.
func DeriveConfig(res format.Result, pal *header.Palette, nPlanes int, masking header.Masking, transparentColor int, opts decodeopts.Options) Config {
	flags := DeriveFlags(res, pal)

	switch {
	case res.IsHAM, res.IsEHB, !res.IsIndexed && nonIndexedTrueColour(res):
		if flags.HasAlpha {
			return Config{ColorType: ColorRGBA, BitDepth: 8, HasAlpha: true}
		}
		return Config{ColorType: ColorRGB, BitDepth: 8}

	case res.IsIndexed && pal != nil:
		cfg := deriveIndexedConfig(res, pal, flags, masking, transparentColor, opts)
		return cfg

	case !res.IsIndexed && flags.IsGrayscale:
		return Config{ColorType: ColorGray, BitDepth: clampDepth(nPlanes)}

	default:
		if flags.HasAlpha {
			return Config{ColorType: ColorRGBA, BitDepth: 8, HasAlpha: true}
		}
		return Config{ColorType: ColorRGB, BitDepth: 8}
	}
}

// nonIndexedTrueColour reports whether res is one of the always-true-
// colour formats (RGBN/RGB8/DEEP/YUVN): it has pixel data but was never
// marked indexed, HAM or EHB.
func nonIndexedTrueColour(res format.Result) bool {
	return !res.IsIndexed && !res.IsHAM && !res.IsEHB && !res.IsGrayscale
}

func deriveIndexedConfig(res format.Result, pal *header.Palette, flags Flags, masking header.Masking, transparentColor int, opts decodeopts.Options) Config {
	cfg := Config{BitDepth: bitDepthFor(pal.Len()), TRNSIndex: -1}
	if flags.IsGrayscale {
		cfg.ColorType = ColorGray
	} else {
		cfg.ColorType = ColorPalette
		copied := make([]header.RGB, pal.Len())
		for i := range copied {
			copied[i] = pal.At(i)
		}
		cfg.Palette = copied
	}

	if masking != header.MskHasTransparentColor || res.Indices == nil {
		return cfg
	}
	if opts.OpaqueTransparentBlack && transparentColor == 0 {
		return cfg
	}
	for _, idx := range res.Indices {
		if int(idx) == transparentColor {
			cfg.HasTRNS = true
			cfg.TRNSIndex = transparentColor
			break
		}
	}
	return cfg
}

func clampDepth(n int) int {
	switch {
	case n <= 1:
		return 1
	case n <= 2:
		return 2
	case n <= 4:
		return 4
	default:
		return 8
	}
}
