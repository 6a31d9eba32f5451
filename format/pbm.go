/*
NAME
  pbm.go

DESCRIPTION
  pbm.go implements the PBM (packed/chunky bitmap) pixel decoder, spec.md
  §4.4.4: one palette-index byte per pixel per row, rather than ILBM's
  interleaved bitplanes.

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
	"github.com/ausocean/iffimage/rle"
)

func decodePBM(p Params) (Result, error) {
	w, h := int(p.BMHD.Width), int(p.BMHD.Height)
	if w <= 0 || h <= 0 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "pbm: non-positive dimensions %dx%d", w, h)
	}
	hasAlpha := p.BMHD.Masking == header.MskHasMask
	compressed := p.BMHD.Compression == header.CmpByteRun1

	pix, err := allocRaster(w, h, hasAlpha, p.Opts)
	if err != nil {
		return Result{}, err
	}
	bpp := 3
	if hasAlpha {
		bpp = 4
	}
	indices := make([]byte, w*h)

	readRow := func() ([]byte, error) {
		if compressed {
			return rle.Decode(p.Stop, w)
		}
		buf := make([]byte, w)
		if _, err := io.ReadFull(p.Stop, buf); err != nil {
			return nil, ifferr.Wrap(ifferr.BadFile, err, "pbm: reading uncompressed row")
		}
		return buf, nil
	}

	for y := 0; y < h; y++ {
		row, err := readRow()
		if err != nil {
			return Result{}, err
		}
		var maskRow []byte
		if hasAlpha {
			maskRow, err = readRow()
			if err != nil {
				return Result{}, err
			}
		}
		for x := 0; x < w; x++ {
			idx := int(row[x])
			indices[y*w+x] = clampIndexByte(idx, p.Palette)
			var c header.RGB
			if p.Palette != nil {
				c = p.Palette.At(idx)
			}
			off := (y*w + x) * bpp
			pix[off], pix[off+1], pix[off+2] = c.R, c.G, c.B
			if hasAlpha {
				if maskRow != nil && maskRow[x] != 0 {
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
		IsGrayscale: p.Palette == nil,
	}, nil
}
