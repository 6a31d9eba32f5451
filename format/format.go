/*
NAME
  format.go

DESCRIPTION
  format.go declares the shared input/output contract every per-FORM-type
  decoder in this package implements, and Dispatch, which selects one of
  the eight decoders from the detected FORM type plus CAMG mode bits, per
  spec.md §4.9/"Dispatch over a closed set of variants".

AUTHOR
  iffimage contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package format holds the eight IFF bitmap pixel decoders (ILBM, PBM,
// ACBM, RGBN, RGB8, DEEP, FAXX, YUVN) and the dispatcher that selects
// among them. Each decoder is a plain function over Params, returning a
// Result; there is no decoder interface; the set of FORM types is closed
// and a vtable would only obscure that (spec.md §9).
package format

import (
	"io"

	"github.com/ausocean/iffimage/chunk"
	"github.com/ausocean/iffimage/decodeopts"
	"github.com/ausocean/iffimage/header"
	"github.com/ausocean/iffimage/ifferr"
)

// Params is everything a format decoder needs: the parsed headers and a
// reader positioned at the data chunk's first payload byte.
type Params struct {
	Form     chunk.FormType
	BMHD     header.BMHD
	Palette  *header.Palette
	Viewport header.ViewportMode
	DGBL     header.DGBL
	DPEL     header.DPEL
	FXHD     header.FXHD
	YCHD     header.YCHD

	// Stop is the data chunk reader (BODY/ABIT/PAGE/DBOD/DATY), positioned
	// at its first payload byte, limited to its declared length.
	Stop io.Reader

	// DrainAndNext lets the YUVN decoder finish reading Stop (DATY) and
	// then pull the DATU/DATV/DATA chunks that follow it in the stream.
	// Nil for every other FORM type.
	DrainAndNext func() (tag string, data []byte, err error)

	Opts decodeopts.Options
}

// Result is the decoded raster plus the flags spec.md §3/§4.5 need to
// drive the format analyser.
type Result struct {
	Width, Height int
	// Pix is row-major, top row first, 3 bytes/pixel (RGB) or 4 (RGBA).
	Pix []byte
	HasAlpha bool

	// Indices is the palette-index shadow buffer, width*height bytes, nil
	// for non-indexed formats.
	Indices []byte

	IsIndexed   bool
	IsHAM       bool
	IsEHB       bool
	IsGrayscale bool // only set true here when unambiguous without a palette (e.g. 1-plane ILBM, FAXX).

	// PartialFAX is set when a FAXX MH/MR decode hit a bitstream error and
	// padded the remainder of the raster with white, per spec.md §7/§9.
	PartialFAX bool
}

// Dispatch selects and runs the decoder for p.Form, resolving the
// ILBM/HAM/EHB sub-mode split from p.Viewport.
func Dispatch(p Params) (Result, error) {
	switch p.Form {
	case chunk.FormILBM:
		switch {
		case p.Viewport.HasAny(header.VMHAM):
			return decodeHAM(p)
		case p.Viewport.HasAny(header.VMExtraHalfBrite):
			return decodeEHB(p)
		default:
			return decodeILBM(p)
		}
	case chunk.FormPBM:
		return decodePBM(p)
	case chunk.FormACBM:
		return decodeACBM(p)
	case chunk.FormRGBN:
		return decodeRGBN(p)
	case chunk.FormRGB8:
		return decodeRGB8(p)
	case chunk.FormDEEP:
		return decodeDEEP(p)
	case chunk.FormFAXX:
		return decodeFAXX(p)
	case chunk.FormYUVN:
		return decodeYUVN(p)
	default:
		return Result{}, ifferr.Newf(ifferr.Unsupported, "format: no decoder registered for FORM %q", p.Form)
	}
}

func allocRaster(w, h int, alpha bool, opts decodeopts.Options) ([]byte, error) {
	bpp := 3
	if alpha {
		bpp = 4
	}
	n := w * h * bpp
	if opts.MaxRasterBytes > 0 && n > opts.MaxRasterBytes {
		return nil, ifferr.Newf(ifferr.NoMem, "format: raster of %d bytes exceeds MaxRasterBytes %d", n, opts.MaxRasterBytes)
	}
	return make([]byte, n), nil
}
