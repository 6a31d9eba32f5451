/*
NAME
  header.go

DESCRIPTION
  header.go interprets the fixed-layout, big-endian IFF header chunks named
  in spec.md §6 into typed Go records. Every field is decoded one at a time
  from a byte slice; none of these types are ever overlaid onto raw bytes,
  so compiler-chosen struct padding can never corrupt interpretation.

AUTHOR
  iffimage contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package header decodes the fixed-layout big-endian IFF header chunks:
// BMHD, CAMG, CMAP, FXHD, YCHD, DGBL, DPEL, DLOC, DCHG and TVDC.
package header

import (
	"encoding/binary"

	"github.com/ausocean/iffimage/ifferr"
)

// Masking is the BMHD masking field (spec.md §3/§6).
type Masking uint8

const (
	MskNone                 Masking = 0
	MskHasMask              Masking = 1
	MskHasTransparentColor  Masking = 2
	MskLasso                Masking = 3
)

// Compression is the BMHD compression field.
type Compression uint8

const (
	CmpNone     Compression = 0
	CmpByteRun1 Compression = 1
)

// BMHD is the bitmap header shared by ILBM, PBM, ACBM, RGBN and RGB8.
type BMHD struct {
	Width, Height         uint16
	XOrigin, YOrigin      int16
	NPlanes               uint8
	Masking               Masking
	Compression           Compression
	Pad                   uint8
	TransparentColor      uint16
	XAspect, YAspect      uint8
	PageWidth, PageHeight int16
}

// bmhdLen is the fixed on-disk size of a BMHD chunk.
const bmhdLen = 20

// ReadBMHD decodes a BMHD chunk body. An undersized body is BadFile per
// spec.md §4.1.
func ReadBMHD(b []byte) (BMHD, error) {
	if len(b) < bmhdLen {
		return BMHD{}, ifferr.Newf(ifferr.BadFile, "BMHD: expected %d bytes, got %d", bmhdLen, len(b))
	}
	var h BMHD
	h.Width = binary.BigEndian.Uint16(b[0:2])
	h.Height = binary.BigEndian.Uint16(b[2:4])
	h.XOrigin = int16(binary.BigEndian.Uint16(b[4:6]))
	h.YOrigin = int16(binary.BigEndian.Uint16(b[6:8]))
	h.NPlanes = b[8]
	h.Masking = Masking(b[9])
	h.Compression = Compression(b[10])
	h.Pad = b[11]
	h.TransparentColor = binary.BigEndian.Uint16(b[12:14])
	h.XAspect = b[14]
	h.YAspect = b[15]
	h.PageWidth = int16(binary.BigEndian.Uint16(b[16:18]))
	h.PageHeight = int16(binary.BigEndian.Uint16(b[18:20]))
	return h, nil
}

// ViewportMode is the CAMG chunk's bitset. Only the bits spec.md §6 names
// are interpreted; the rest are preserved but ignored.
type ViewportMode uint32

const (
	VMLace            ViewportMode = 0x0004
	VMExtraHalfBrite  ViewportMode = 0x0080
	VMHAM             ViewportMode = 0x0800
	VMHires           ViewportMode = 0x8000
)

// HasAny reports whether any of the given bits are set.
func (m ViewportMode) HasAny(bits ViewportMode) bool { return m&bits != 0 }

const camgLen = 4

// ReadCAMG decodes a CAMG chunk body.
func ReadCAMG(b []byte) (ViewportMode, error) {
	if len(b) < camgLen {
		return 0, ifferr.Newf(ifferr.BadFile, "CAMG: expected %d bytes, got %d", camgLen, len(b))
	}
	return ViewportMode(binary.BigEndian.Uint32(b[0:4])), nil
}

// RGB is a single palette entry.
type RGB struct {
	R, G, B uint8
}

// Upscale4Bit returns the colour with each component widened from a 4-bit
// value left-shifted into the high nibble (v|v>>4), matching spec.md §3's
// 4-bit palette upscale rule.
func (c RGB) Upscale4Bit() RGB {
	return RGB{
		R: c.R | c.R>>4,
		G: c.G | c.G>>4,
		B: c.B | c.B>>4,
	}
}

// Palette is an ordered CMAP colour table.
type Palette struct {
	Entries []RGB
	// FourBit is true when every stored byte has its low nibble zero,
	// meaning values need Upscale4Bit() applied before use.
	FourBit bool
}

// Len returns the number of palette entries.
func (p Palette) Len() int { return len(p.Entries) }

// At returns entry i, upscaled if the palette is 4-bit. Out-of-range i is
// clamped to the last entry, per spec.md §4.4.1's clamp-on-decode rule.
func (p Palette) At(i int) RGB {
	if len(p.Entries) == 0 {
		return RGB{}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(p.Entries) {
		i = len(p.Entries) - 1
	}
	c := p.Entries[i]
	if p.FourBit {
		c = c.Upscale4Bit()
	}
	return c
}

// ReadCMAP decodes a CMAP chunk body of N RGB triples and detects whether
// the palette holds 4-bit values in the high nibble (every byte's low
// nibble zero), which then need upscaling.
func ReadCMAP(b []byte) (Palette, error) {
	if len(b)%3 != 0 || len(b) == 0 {
		return Palette{}, ifferr.Newf(ifferr.BadFile, "CMAP: length %d is not a positive multiple of 3", len(b))
	}
	n := len(b) / 3
	p := Palette{Entries: make([]RGB, n), FourBit: true}
	for i := 0; i < n; i++ {
		c := RGB{R: b[i*3], G: b[i*3+1], B: b[i*3+2]}
		if c.R&0x0f != 0 || c.G&0x0f != 0 || c.B&0x0f != 0 {
			p.FourBit = false
		}
		p.Entries[i] = c
	}
	return p, nil
}
