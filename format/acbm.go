/*
NAME
  acbm.go

DESCRIPTION
  acbm.go implements the ACBM (Amiga Contiguous Bitmap) pixel decoder,
  spec.md §4.4.5: the same bitplane pixel layout as ILBM, but stored
  plane-major (all rows of plane 0, then all rows of plane 1, ...) instead
  of row-major/interleaved, and never compressed.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package format

import (
	"io"

	"github.com/ausocean/iffimage/header"
	"github.com/ausocean/iffimage/ifferr"
	"github.com/ausocean/iffimage/plane"
)

func decodeACBM(p Params) (Result, error) {
	if p.BMHD.Compression != header.CmpNone {
		return Result{}, ifferr.New(ifferr.BadFile, "acbm: compression is forbidden")
	}
	w, h := int(p.BMHD.Width), int(p.BMHD.Height)
	if w <= 0 || h <= 0 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "acbm: non-positive dimensions %dx%d", w, h)
	}
	nPlanes := int(p.BMHD.NPlanes)
	hasAlpha := p.BMHD.Masking == header.MskHasMask
	totalPlanes := nPlanes
	if hasAlpha {
		totalPlanes++
	}

	rowBytes := plane.RowBytes(w)
	planeSize := rowBytes * h
	planes := make([][]byte, totalPlanes)
	for i := 0; i < totalPlanes; i++ {
		buf := make([]byte, planeSize)
		if _, err := io.ReadFull(p.Stop, buf); err != nil {
			return Result{}, ifferr.Wrap(ifferr.BadFile, err, "acbm: reading plane-major data")
		}
		planes[i] = buf
	}

	pix, err := allocRaster(w, h, hasAlpha, p.Opts)
	if err != nil {
		return Result{}, err
	}
	bpp := 3
	if hasAlpha {
		bpp = 4
	}
	indices := make([]byte, w*h)

	for y := 0; y < h; y++ {
		rowPlanes := make([][]byte, nPlanes)
		for i := 0; i < nPlanes; i++ {
			rowPlanes[i] = planes[i][y*rowBytes : (y+1)*rowBytes]
		}
		rowIdx := plane.AssembleRow(rowPlanes, w)

		var rowAlpha []byte
		if hasAlpha {
			maskRow := planes[nPlanes][y*rowBytes : (y+1)*rowBytes]
			rowAlpha = make([]byte, w)
			for x := 0; x < w; x++ {
				bit := (maskRow[x>>3] >> uint(7-(x&7))) & 1
				if bit != 0 {
					rowAlpha[x] = 0xff
				}
			}
		}

		for x := 0; x < w; x++ {
			idx := int(rowIdx[x])
			indices[y*w+x] = clampIndexByte(idx, p.Palette)
			var c header.RGB
			if p.Palette != nil {
				c = p.Palette.At(idx)
			}
			off := (y*w + x) * bpp
			pix[off], pix[off+1], pix[off+2] = c.R, c.G, c.B
			if hasAlpha {
				pix[off+3] = rowAlpha[x]
			}
		}
	}

	return Result{
		Width: w, Height: h,
		Pix: pix, HasAlpha: hasAlpha,
		Indices:     indices,
		IsIndexed:   true,
		IsGrayscale: nPlanes == 1 && p.Palette == nil,
	}, nil
}
