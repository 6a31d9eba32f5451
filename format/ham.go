/*
NAME
  ham.go

DESCRIPTION
  ham.go implements the HAM (Hold-and-Modify) ILBM sub-mode decoder,
  spec.md §4.4.2.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package format

import (
	"github.com/ausocean/iffimage/header"
	"github.com/ausocean/iffimage/ifferr"
)

const (
	hamCodeUsePalette   = 0
	hamCodeModifyBlue   = 1
	hamCodeModifyRed    = 2
	hamCodeModifyGreen  = 3
)

func decodeHAM(p Params) (Result, error) {
	nPlanes := int(p.BMHD.NPlanes)
	if nPlanes < 6 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "ham: requires nPlanes >= 6, got %d", nPlanes)
	}
	if p.Palette == nil {
		return Result{}, ifferr.New(ifferr.BadFile, "ham: requires an indexed palette")
	}
	w, h := int(p.BMHD.Width), int(p.BMHD.Height)
	if w <= 0 || h <= 0 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "ham: non-positive dimensions %dx%d", w, h)
	}

	hamBits := nPlanes - 2
	hamMask := (1 << uint(hamBits)) - 1
	hamShift := uint(8 - hamBits)

	hasAlpha := p.BMHD.Masking == header.MskHasMask
	pix, err := allocRaster(w, h, hasAlpha, p.Opts)
	if err != nil {
		return Result{}, err
	}
	bpp := 3
	if hasAlpha {
		bpp = 4
	}

	pr := newPlaneRowReader(p.Stop, w, p.BMHD.Compression == header.CmpByteRun1)
	for y := 0; y < h; y++ {
		row, err := readILBMRow(pr, w, nPlanes, p.BMHD.Masking)
		if err != nil {
			return Result{}, err
		}
		// Carry resets to black at the start of each row (spec.md
		// §4.4.2).
		var r, g, b uint8
		for x := 0; x < w; x++ {
			v := int(row.Indices[x])
			code := v >> uint(hamBits)
			val := v & hamMask
			switch code {
			case hamCodeUsePalette:
				c := p.Palette.At(val)
				r, g, b = c.R, c.G, c.B
			case hamCodeModifyBlue:
				b = (b & byte((1<<hamShift)-1)) | byte(val<<hamShift)
			case hamCodeModifyRed:
				r = (r & byte((1<<hamShift)-1)) | byte(val<<hamShift)
			case hamCodeModifyGreen:
				g = (g & byte((1<<hamShift)-1)) | byte(val<<hamShift)
			}
			off := (y*w + x) * bpp
			pix[off], pix[off+1], pix[off+2] = r, g, b
			if hasAlpha {
				if row.Alpha != nil {
					pix[off+3] = row.Alpha[x]
				} else {
					pix[off+3] = 0xff
				}
			}
		}
	}

	return Result{
		Width: w, Height: h,
		Pix: pix, HasAlpha: hasAlpha,
		IsIndexed: false, // HAM output is true-colour, per spec.md §4.5.
		IsHAM:     true,
	}, nil
}
