/*
NAME
  fax.go

DESCRIPTION
  fax.go decodes the FXHD facsimile header chunk.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package header

import (
	"encoding/binary"

	"github.com/ausocean/iffimage/ifferr"
)

// FaxCompression selects the FAXX sub-codec (spec.md §4.4.9).
type FaxCompression uint8

const (
	FaxNone FaxCompression = 0
	FaxMH   FaxCompression = 1
	FaxMR   FaxCompression = 2
	FaxMMR  FaxCompression = 4
)

// FXHD is the facsimile bitmap header.
type FXHD struct {
	Width, Height uint16
	LineLength    uint16
	VRes          uint16
	Compression   FaxCompression
}

const fxhdLen = 20 // 2+2+2+2+1+11 padding

// ReadFXHD decodes an FXHD chunk body.
func ReadFXHD(b []byte) (FXHD, error) {
	if len(b) < fxhdLen {
		return FXHD{}, ifferr.Newf(ifferr.BadFile, "FXHD: expected %d bytes, got %d", fxhdLen, len(b))
	}
	var h FXHD
	h.Width = binary.BigEndian.Uint16(b[0:2])
	h.Height = binary.BigEndian.Uint16(b[2:4])
	h.LineLength = binary.BigEndian.Uint16(b[4:6])
	h.VRes = binary.BigEndian.Uint16(b[6:8])
	h.Compression = FaxCompression(b[8])
	// Remaining 11 bytes are padding.
	return h, nil
}
