/*
NAME
  plane.go

DESCRIPTION
  plane.go assembles N bitplanes of packed, word-aligned row data into
  chunky per-pixel indices, and provides the inverse bitplane encoder used
  only by tests to exercise the assembler's round-trip property.

AUTHOR
  iffimage contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package plane assembles IFF bitplane rows into chunky per-pixel index
// rows, MSB-first, 8 pixels per byte.
package plane

// RowBytes returns the number of bytes a single bitplane row of width w
// occupies, rounded up to a 16-bit word per spec.md §4.3.
func RowBytes(w int) int {
	return ((w + 15) >> 4) << 1
}

// AssembleRow ORs the bits of nPlanes plane rows (each RowBytes(w) bytes,
// MSB-first) into a chunky index row of w bytes, one index per pixel, bit
// i of plane p becoming bit p of pixel i's index.
//
// planes[p] must be at least RowBytes(w) bytes long. The returned slice has
// length w.
func AssembleRow(planes [][]byte, w int) []byte {
	out := make([]byte, w)
	for p, row := range planes {
		if p >= 32 {
			break // indices are capped at 32-bit width by construction elsewhere.
		}
		for c := 0; c < w; c++ {
			byt := row[c>>3]
			bit := (byt >> uint(7-(c&7))) & 1
			if bit != 0 {
				out[c] |= 1 << uint(p)
			}
		}
	}
	return out
}

// EncodeRow is the inverse of AssembleRow: given a chunky index row of w
// values each < 2^nPlanes, it produces nPlanes plane rows of RowBytes(w)
// bytes each. Used by tests to verify AssembleRow's round-trip property
// (spec.md §8 property 5); the production decoders never need to encode.
func EncodeRow(indices []byte, nPlanes int) [][]byte {
	w := len(indices)
	rb := RowBytes(w)
	planes := make([][]byte, nPlanes)
	for p := range planes {
		planes[p] = make([]byte, rb)
	}
	for c, idx := range indices {
		for p := 0; p < nPlanes; p++ {
			if idx&(1<<uint(p)) != 0 {
				planes[p][c>>3] |= 1 << uint(7-(c&7))
			}
		}
	}
	return planes
}
