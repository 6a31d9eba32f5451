/*
NAME
  yuv.go

DESCRIPTION
  yuv.go decodes the YCHD YUV header chunk.

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

// YUVMode is the YCHD subsampling/channel mode (spec.md §3).
type YUVMode uint8

const (
	YUVMode444A YUVMode = 0
	YUVMode422  YUVMode = 1
	YUVMode411  YUVMode = 2
	YUVMode211  YUVMode = 3
	YUVMode410  YUVMode = 8
	YUVMode420  YUVMode = 9
	YUVMode44   YUVMode = 10
)

// TVNorm is the YCHD norm field.
type TVNorm uint8

const (
	NormNTSC TVNorm = 0
	NormPAL  TVNorm = 1
	NormSECAM TVNorm = 2
)

// YCHD is the YUV bitmap header.
type YCHD struct {
	Width, Height           uint16
	PageWidth, PageHeight   uint16
	LeftEdge, TopEdge       uint16
	AspectX, AspectY        uint8
	Compress                uint8
	Flags                   uint8
	Mode                    YUVMode
	Norm                    TVNorm
	Reserved2               int16
	Reserved3               int32
}

const ychdLen = 24

// ReadYCHD decodes a YCHD chunk body.
func ReadYCHD(b []byte) (YCHD, error) {
	if len(b) < ychdLen {
		return YCHD{}, ifferr.Newf(ifferr.BadFile, "YCHD: expected %d bytes, got %d", ychdLen, len(b))
	}
	var h YCHD
	h.Width = binary.BigEndian.Uint16(b[0:2])
	h.Height = binary.BigEndian.Uint16(b[2:4])
	h.PageWidth = binary.BigEndian.Uint16(b[4:6])
	h.PageHeight = binary.BigEndian.Uint16(b[6:8])
	h.LeftEdge = binary.BigEndian.Uint16(b[8:10])
	h.TopEdge = binary.BigEndian.Uint16(b[10:12])
	h.AspectX = b[12]
	h.AspectY = b[13]
	h.Compress = b[14]
	h.Flags = b[15]
	h.Mode = YUVMode(b[16])
	h.Norm = TVNorm(b[17])
	h.Reserved2 = int16(binary.BigEndian.Uint16(b[18:20]))
	h.Reserved3 = int32(binary.BigEndian.Uint32(b[20:24]))
	return h, nil
}

// Interlaced reports whether Flags marks this image as interlaced, which
// per spec.md §3 requires height%2==0.
func (h YCHD) Interlaced() bool {
	const interlaceBit = 0x01
	return h.Flags&interlaceBit != 0
}
