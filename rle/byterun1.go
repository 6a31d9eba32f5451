/*
NAME
  byterun1.go

DESCRIPTION
  byterun1.go implements the ByteRun1 (PackBits-style) run-length codec used
  throughout IFF bitmap data chunks.

AUTHOR
  iffimage contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package rle implements the ByteRun1 compression scheme used by ILBM,
// PBM, RGBN, RGB8 and DEEP data chunks.
package rle

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/iffimage/ifferr"
)

// Decode reads a ByteRun1-compressed stream from r and returns exactly n
// decompressed bytes.
//
// Control byte c read from the stream:
//
//	0 <= c <= 127: the next c+1 bytes are emitted literally.
//	c == 128:      no-op.
//	129 <= c <= 255: the next byte is emitted 257-c times.
//
// Emitting more than n bytes, or exhausting the source before n bytes are
// emitted, is a BadFile error.
func Decode(r io.Reader, n int) ([]byte, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, 1)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, ifferr.Wrap(ifferr.BadFile, err, "byterun1: source exhausted before reaching requested length")
		}
		c := int8(buf[0])
		switch {
		case c >= 0:
			count := int(c) + 1
			if len(out)+count > n {
				return nil, ifferr.Newf(ifferr.BadFile, "byterun1: literal run overflows requested length %d", n)
			}
			lit := make([]byte, count)
			if _, err := io.ReadFull(r, lit); err != nil {
				return nil, ifferr.Wrap(ifferr.BadFile, err, "byterun1: source exhausted mid-literal-run")
			}
			out = append(out, lit...)
		case c == -128:
			// No-op control byte (128 as int8 is -128).
		default:
			count := 257 - int(uint8(c))
			if len(out)+count > n {
				return nil, ifferr.Newf(ifferr.BadFile, "byterun1: repeat run overflows requested length %d", n)
			}
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, ifferr.Wrap(ifferr.BadFile, err, "byterun1: source exhausted before repeat byte")
			}
			for i := 0; i < count; i++ {
				out = append(out, buf[0])
			}
		}
	}
	if len(out) != n {
		return nil, errors.Errorf("byterun1: decoded %d bytes, expected %d", len(out), n)
	}
	return out, nil
}
