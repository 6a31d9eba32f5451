/*
NAME
  deep.go

DESCRIPTION
  deep.go implements the DEEP true-colour decoder, spec.md §4.4.8: pixel
  layout is declared by DPEL rather than fixed, but practical files use 24
  planes divisible by three, treated as red/green/blue thirds. Compression
  modes other than none and ByteRun1 are recognised but signalled
  Unsupported rather than decoded.

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

func decodeDEEP(p Params) (Result, error) {
	switch p.DGBL.Compression {
	case header.DeepCmpNone, header.DeepCmpByteRun1:
	default:
		return Result{}, ifferr.Newf(ifferr.Unsupported, "deep: compression mode %d not decoded", p.DGBL.Compression)
	}

	w, h := int(p.DGBL.DisplayWidth), int(p.DGBL.DisplayHeight)
	if w <= 0 || h <= 0 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "deep: non-positive dimensions %dx%d", w, h)
	}
	nPlanes := p.DPEL.TotalBits()
	if nPlanes == 0 || nPlanes%3 != 0 {
		return Result{}, ifferr.Newf(ifferr.BadFile, "deep: DPEL declares %d planes, not divisible by 3", nPlanes)
	}
	bitsPerChannel := nPlanes / 3

	pix, err := allocRaster(w, h, false, p.Opts)
	if err != nil {
		return Result{}, err
	}

	pr := newPlaneRowReader(p.Stop, w, p.DGBL.Compression == header.DeepCmpByteRun1)
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
			red := channelFromPlanes(rows[0:bitsPerChannel], x)
			green := channelFromPlanes(rows[bitsPerChannel:2*bitsPerChannel], x)
			blue := channelFromPlanes(rows[2*bitsPerChannel:3*bitsPerChannel], x)
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

// channelFromPlanes assembles len(rows) bits (plane 0 lowest) into a value
// and rescales it to the full 8-bit range, so full-white stays 0xFF at any
// bit depth (the same intent as RGBN's nibble*17 upscale, generalised).
func channelFromPlanes(rows [][]byte, x int) byte {
	bits := len(rows)
	if bits == 0 {
		return 0
	}
	var v uint32
	for p, row := range rows {
		byt := row[x>>3]
		bit := (byt >> uint(7-(x&7))) & 1
		if bit != 0 {
			v |= 1 << uint(p)
		}
	}
	if bits == 8 {
		return byte(v)
	}
	if bits > 8 {
		return byte(v >> uint(bits-8))
	}
	maxVal := uint32(1<<uint(bits)) - 1
	return byte(v * 255 / maxVal)
}
