/*
NAME
  ilbm_common.go

DESCRIPTION
  ilbm_common.go provides the row reader shared by the ILBM, HAM and EHB
  decoders (spec.md §4.3/§4.4.1-4.4.3): each row is nPlanes bitplane rows,
  optionally followed by one mask plane row, each either raw or
  ByteRun1-compressed to exactly rowbytes(w) bytes.

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
	"github.com/ausocean/iffimage/rle"
)

// planeRowReader reads successive plane rows (each rowbytes(w) bytes) from
// r, decompressing with ByteRun1 when compressed is true.
type planeRowReader struct {
	r          io.Reader
	rowBytes   int
	compressed bool
}

func newPlaneRowReader(r io.Reader, w int, compressed bool) *planeRowReader {
	return &planeRowReader{r: r, rowBytes: plane.RowBytes(w), compressed: compressed}
}

func (pr *planeRowReader) next() ([]byte, error) {
	if pr.compressed {
		return rle.Decode(pr.r, pr.rowBytes)
	}
	buf := make([]byte, pr.rowBytes)
	if _, err := io.ReadFull(pr.r, buf); err != nil {
		return nil, ifferr.Wrap(ifferr.BadFile, err, "ilbm: reading uncompressed plane row")
	}
	return buf, nil
}

// ilbmRow holds one decoded row: chunky indices (each < 2^nPlanes) and,
// when the bitmap carries a mask plane, a parallel 0x00/0xFF alpha row.
type ilbmRow struct {
	Indices []byte
	Alpha   []byte // nil if no mask plane.
}

// readILBMRow reads and assembles one row of nPlanes bitplanes (plus an
// optional mask plane per BMHD.Masking) from pr.
func readILBMRow(pr *planeRowReader, w, nPlanes int, masking header.Masking) (ilbmRow, error) {
	planes := make([][]byte, nPlanes)
	for i := 0; i < nPlanes; i++ {
		row, err := pr.next()
		if err != nil {
			return ilbmRow{}, err
		}
		planes[i] = row
	}
	out := ilbmRow{Indices: plane.AssembleRow(planes, w)}
	if masking == header.MskHasMask {
		maskRow, err := pr.next()
		if err != nil {
			return ilbmRow{}, err
		}
		alpha := make([]byte, w)
		for c := 0; c < w; c++ {
			bit := (maskRow[c>>3] >> uint(7-(c&7))) & 1
			if bit != 0 {
				alpha[c] = 0xff
			}
		}
		out.Alpha = alpha
	}
	return out, nil
}
