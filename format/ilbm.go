/*
NAME
  ilbm.go

DESCRIPTION
  ilbm.go implements the plain ILBM (interleaved bitmap) pixel decoder,
  spec.md §4.4.1.

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

func decodeILBM(p Params) (Result, error) {
	w, h := int(p.BMHD.Width), int(p.BMHD.Height)
	if w <= 0 || h <= 0 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "ilbm: non-positive dimensions %dx%d", w, h)
	}
	hasAlpha := p.BMHD.Masking == header.MskHasMask
	if p.BMHD.Masking == header.MskHasTransparentColor && p.Palette != nil {
		if int(p.BMHD.TransparentColor) >= p.Palette.Len() {
			return Result{}, ifferr.Newf(ifferr.BadFile, "ilbm: transparent colour index %d out of palette range", p.BMHD.TransparentColor)
		}
	}

	pix, err := allocRaster(w, h, hasAlpha, p.Opts)
	if err != nil {
		return Result{}, err
	}
	bpp := 3
	if hasAlpha {
		bpp = 4
	}

	pr := newPlaneRowReader(p.Stop, w, p.BMHD.Compression == header.CmpByteRun1)
	nPlanes := int(p.BMHD.NPlanes)
	isIndexed := p.Palette != nil
	var indices []byte
	grayMax := (1 << uint(nPlanes)) - 1
	if isIndexed {
		indices = make([]byte, w*h)
	}

	for y := 0; y < h; y++ {
		row, err := readILBMRow(pr, w, nPlanes, p.BMHD.Masking)
		if err != nil {
			return Result{}, err
		}
		for x := 0; x < w; x++ {
			idx := int(row.Indices[x])
			var c header.RGB
			if isIndexed {
				indices[y*w+x] = clampIndexByte(idx, p.Palette)
				c = p.Palette.At(idx)
			} else {
				g := grayLevel(idx, grayMax)
				c = header.RGB{R: g, G: g, B: g}
			}
			off := (y*w + x) * bpp
			pix[off] = c.R
			pix[off+1] = c.G
			pix[off+2] = c.B
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
		IsIndexed:   isIndexed,
		IsGrayscale: !isIndexed,
	}, nil
}

// grayLevel scales a plane-derived index (0..max) to a full 0-255 gray
// level, for the no-CMAP ILBM case where there is no palette to consult
// (spec.md §8's "1-plane uncompressed ILBM with no CMAP decodes as
// grayscale" boundary).
func grayLevel(idx, max int) byte {
	if max <= 0 {
		return 0
	}
	if idx < 0 {
		idx = 0
	}
	if idx > max {
		idx = max
	}
	return byte(idx * 255 / max)
}

// clampIndexByte clamps idx into [0, palette.Len()-1] for the shadow
// buffer, matching the RGB lookup's own clamping (spec.md §4.4.1).
func clampIndexByte(idx int, pal *header.Palette) byte {
	if pal == nil || pal.Len() == 0 {
		if idx < 0 {
			idx = 0
		}
		if idx > 255 {
			idx = 255
		}
		return byte(idx)
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= pal.Len() {
		idx = pal.Len() - 1
	}
	return byte(idx)
}
