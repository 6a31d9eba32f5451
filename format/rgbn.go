/*
NAME
  rgbn.go

DESCRIPTION
  rgbn.go implements the RGBN true-colour ILBM variant, spec.md §4.4.6:
  12 or 13 bitplanes, 4 bits per channel, planes 0-3 forming the red
  nibble, 4-7 green, 8-11 blue; a 13th plane (alpha) is consumed and
  discarded.

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

func decodeRGBN(p Params) (Result, error) {
	nPlanes := int(p.BMHD.NPlanes)
	if nPlanes != 12 && nPlanes != 13 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "rgbn: requires nPlanes in {12,13}, got %d", nPlanes)
	}
	w, h := int(p.BMHD.Width), int(p.BMHD.Height)
	if w <= 0 || h <= 0 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "rgbn: non-positive dimensions %dx%d", w, h)
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
		// The 13th plane, when present, is an alpha plane that RGBN does
		// not surface; it has already been read and discarded above.
		for x := 0; x < w; x++ {
			red := nibbleFromPlanes(rows[0:4], x)
			green := nibbleFromPlanes(rows[4:8], x)
			blue := nibbleFromPlanes(rows[8:12], x)
			off := (y*w + x) * 3
			pix[off] = red * 17
			pix[off+1] = green * 17
			pix[off+2] = blue * 17
		}
	}

	return Result{
		Width: w, Height: h,
		Pix: pix,
	}, nil
}

// nibbleFromPlanes reads bit (7 - (x mod 8)) of byte (x>>3) from each of 4
// plane rows and assembles them into a 4-bit value, plane 0 contributing
// bit 0.
func nibbleFromPlanes(rows [][]byte, x int) byte {
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
