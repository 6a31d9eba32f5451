/*
NAME
  ehb.go

DESCRIPTION
  ehb.go implements the EHB (Extra Half-Brite) ILBM sub-mode decoder,
  spec.md §4.4.3. Indices 0-31 look up the palette directly; indices 32-63
  halve the colour looked up at palette[index-32], per spec.md §9's
  resolution of the EHB Open Question.

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

func decodeEHB(p Params) (Result, error) {
	nPlanes := int(p.BMHD.NPlanes)
	if nPlanes != 6 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "ehb: requires nPlanes == 6, got %d", nPlanes)
	}
	if p.Palette == nil {
		return Result{}, ifferr.New(ifferr.BadFile, "ehb: requires an indexed palette")
	}
	w, h := int(p.BMHD.Width), int(p.BMHD.Height)
	if w <= 0 || h <= 0 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "ehb: non-positive dimensions %dx%d", w, h)
	}

	hasAlpha := p.BMHD.Masking == header.MskHasMask
	pix, err := allocRaster(w, h, hasAlpha, p.Opts)
	if err != nil {
		return Result{}, err
	}
	bpp := 3
	if hasAlpha {
		bpp = 4
	}
	indices := make([]byte, w*h)

	pr := newPlaneRowReader(p.Stop, w, p.BMHD.Compression == header.CmpByteRun1)
	for y := 0; y < h; y++ {
		row, err := readILBMRow(pr, w, nPlanes, p.BMHD.Masking)
		if err != nil {
			return Result{}, err
		}
		for x := 0; x < w; x++ {
			idx := int(row.Indices[x])
			indices[y*w+x] = clampIndexByte(idx, p.Palette)
			c := ehbColor(idx, p.Palette)
			off := (y*w + x) * bpp
			pix[off], pix[off+1], pix[off+2] = c.R, c.G, c.B
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
		Indices:     indices,
		IsIndexed:   true,
		IsEHB:       true,
	}, nil
}

func ehbColor(idx int, pal *header.Palette) header.RGB {
	if idx < 32 {
		return pal.At(idx)
	}
	c := pal.At(idx - 32)
	return header.RGB{R: c.R / 2, G: c.G / 2, B: c.B / 2}
}
