/*
NAME
  deep.go

DESCRIPTION
  deep.go decodes the DEEP header chunks: DGBL, DPEL, and the optional
  DLOC/DCHG/TVDC extension chunks. DLOC/DCHG/TVDC have no fixed layout in
  spec.md §6 (the spec only requires that they be "parsed into records but
  not acted on at decode time") so they are kept as opaque byte records
  here rather than guessed field-by-field.

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

// DeepCompression is the DGBL compression field. Only None and ByteRun1
// are decoded; the rest are recognised but yield Unsupported at decode
// time per spec.md §4.4.8.
type DeepCompression uint16

const (
	DeepCmpNone       DeepCompression = 0
	DeepCmpByteRun1   DeepCompression = 1
	DeepCmpHuffman    DeepCompression = 2
	DeepCmpDynHuffman DeepCompression = 3
	DeepCmpJPEG       DeepCompression = 4
	DeepCmpTVDC       DeepCompression = 5
)

// DGBL is the DEEP global display header.
type DGBL struct {
	DisplayWidth, DisplayHeight uint16
	Compression                 DeepCompression
	XAspect, YAspect             uint8
}

const dgblLen = 8

// ReadDGBL decodes a DGBL chunk body.
func ReadDGBL(b []byte) (DGBL, error) {
	if len(b) < dgblLen {
		return DGBL{}, ifferr.Newf(ifferr.BadFile, "DGBL: expected %d bytes, got %d", dgblLen, len(b))
	}
	var h DGBL
	h.DisplayWidth = binary.BigEndian.Uint16(b[0:2])
	h.DisplayHeight = binary.BigEndian.Uint16(b[2:4])
	h.Compression = DeepCompression(binary.BigEndian.Uint16(b[4:6]))
	h.XAspect = b[6]
	h.YAspect = b[7]
	return h, nil
}

// ChannelDescriptor is one DPEL element: a channel type tag and its bit
// depth.
type ChannelDescriptor struct {
	Type     uint16
	BitDepth uint16
}

// DPEL is the DEEP per-channel pixel layout descriptor.
type DPEL struct {
	Elements []ChannelDescriptor
}

// ReadDPEL decodes a DPEL chunk body: a uint32 element count followed by
// that many {type, bitdepth} uint16 pairs.
func ReadDPEL(b []byte) (DPEL, error) {
	if len(b) < 4 {
		return DPEL{}, ifferr.Newf(ifferr.BadFile, "DPEL: expected at least 4 bytes, got %d", len(b))
	}
	n := binary.BigEndian.Uint32(b[0:4])
	need := 4 + int(n)*4
	if len(b) < need {
		return DPEL{}, ifferr.Newf(ifferr.BadFile, "DPEL: declares %d elements, needs %d bytes, got %d", n, need, len(b))
	}
	d := DPEL{Elements: make([]ChannelDescriptor, n)}
	for i := 0; i < int(n); i++ {
		off := 4 + i*4
		d.Elements[i] = ChannelDescriptor{
			Type:     binary.BigEndian.Uint16(b[off : off+2]),
			BitDepth: binary.BigEndian.Uint16(b[off+2 : off+4]),
		}
	}
	return d, nil
}

// TotalBits returns the sum of all channel bit depths, used to derive
// nPlanes for the DEEP decoder.
func (d DPEL) TotalBits() int {
	total := 0
	for _, e := range d.Elements {
		total += int(e.BitDepth)
	}
	return total
}

// DLOC is the DEEP display-location/timing extension. Its on-disk layout
// is not specified by spec.md; the raw payload is retained unparsed for
// passthrough and potential future use, per spec.md §4.4.8's "parsed into
// records but not acted upon" guidance.
type DLOC struct {
	Raw []byte
}

// ReadDLOC stores the chunk body opaquely.
func ReadDLOC(b []byte) DLOC {
	raw := make([]byte, len(b))
	copy(raw, b)
	return DLOC{Raw: raw}
}

// DCHG is the DEEP animation-change extension, stored opaquely for the
// same reason as DLOC.
type DCHG struct {
	Raw []byte
}

// ReadDCHG stores the chunk body opaquely.
func ReadDCHG(b []byte) DCHG {
	raw := make([]byte, len(b))
	copy(raw, b)
	return DCHG{Raw: raw}
}

// TVDC is the TVPaint dynamic-Huffman compression table extension, stored
// opaquely: spec.md §4.4.8 only requires it be parsed into a record, not
// that its entries be decoded.
type TVDC struct {
	Raw []byte
}

// ReadTVDC stores the chunk body opaquely.
func ReadTVDC(b []byte) TVDC {
	raw := make([]byte, len(b))
	copy(raw, b)
	return TVDC{Raw: raw}
}
