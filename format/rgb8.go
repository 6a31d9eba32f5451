/*
NAME
  rgb8.go

DESCRIPTION
  rgb8.go implements the RGB8 true-colour ILBM variant, spec.md §4.4.7:
  24 or 25 bitplanes, 8 bits per channel, assembled the same way as RGBN
  but with a full byte per component instead of a nibble; a 25th plane
  (alpha) is consumed and discarded.

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

func decodeRGB8(p Params) (Result, error) {
	nPlanes := int(p.BMHD.NPlanes)
	if nPlanes != 24 && nPlanes != 25 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "rgb8: requires nPlanes in {24,25}, got %d", nPlanes)
	}
	w, h := int(p.BMHD.Width), int(p.BMHD.Height)
	if w <= 0 || h <= 0 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "rgb8: non-positive dimensions %dx%d", w, h)
	}

	pix, err := allocRaster(w, h, false, p.Opts)
	if err != nil {
		return Result{}, err
	}

	pr := newPlaneRowReader(p.Stop, w, p.BMHD.Compression == header.CmpByteRun1)
	for y := 0; y < h; y++ {
		rows := make([][]byte, nPlanes)
		for i := 0; i < nPlanes; i++ {
			row, err := pr.next()
			if err != nil {
				return Result{}, err
			}
			rows[i] = row
		}
		for x := 0; x < w; x++ {
			red := byteFromPlanes(rows[0:8], x)
			green := byteFromPlanes(rows[8:16], x)
			blue := byteFromPlanes(rows[16:24], x)
			off := (y*w + x) * 3
			pix[off] = red
			pix[off+1] = green
			pix[off+2] = blue
		}
	}

	return Result{
		Width: w, Height: h,
		Pix: pix,
	}, nil
}

// byteFromPlanes is nibbleFromPlanes generalised to 8 planes.
func byteFromPlanes(rows [][]byte, x int) byte {
	var v byte
	for p, row := range rows {
		byt := row[x>>3]
		bit := (byt >> uint(7-(x&7))) & 1
		if bit != 0 {
			v |= 1 << uint(p)
		}
	}
	return v
}
