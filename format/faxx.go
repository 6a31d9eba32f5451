/*
NAME
  faxx.go

DESCRIPTION
  faxx.go implements the FAXX (ITU-T T.4 facsimile) pixel decoder, spec.md
  §4.4.9. FAXX is always 1-bit; a black/white 2-entry palette is
  synthesised since FAXX never carries a CMAP chunk. The line codec itself
  lives in the fax package.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package format

import (
	"github.com/ausocean/iffimage/fax"
	"github.com/ausocean/iffimage/header"
	"github.com/ausocean/iffimage/ifferr"
)

// faxPalette is the synthesised 2-entry black/white palette spec.md
// §4.4.9 requires when no CMAP is present (FAXX never registers one).
var faxPalette = header.Palette{Entries: []header.RGB{
	{R: 0xff, G: 0xff, B: 0xff}, // index 0: white.
	{R: 0x00, G: 0x00, B: 0x00}, // index 1: black.
}}

func decodeFAXX(p Params) (Result, error) {
	w, h := int(p.FXHD.Width), int(p.FXHD.Height)
	if w <= 0 || h <= 0 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "faxx: non-positive dimensions %dx%d", w, h)
	}

	rows, partial, err := fax.Decode(p.Stop, w, h, p.FXHD.Compression, p.Opts)
	if err != nil {
		return Result{}, err
	}

	pix, err := allocRaster(w, h, false, p.Opts)
	if err != nil {
		return Result{}, err
	}
	indices := make([]byte, w*h)

	for y, row := range rows {
		for x, idx := range row {
			indices[y*w+x] = idx
			c := faxPalette.At(int(idx))
			off := (y*w + x) * 3
			pix[off], pix[off+1], pix[off+2] = c.R, c.G, c.B
		}
	}

	return Result{
		Width: w, Height: h,
		Pix: pix,
		Indices:     indices,
		IsIndexed:   true,
		IsGrayscale: true,
		PartialFAX:  partial,
	}, nil
}
