/*
NAME
  decode.go

DESCRIPTION
  decode.go is the fax package's entry point: spec.md §4.4.9's FXHD
  compression selector dispatches to the uncompressed, MH or MR line
  decoders. On a mid-stream bitstream error (invalid code or premature
  EOF) the remainder of the raster is padded white and the overall call
  still succeeds, per spec.md §7's explicit partial-data tolerance design.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package fax implements the ITU-T T.4 Modified Huffman and Modified READ
// facsimile line codecs used by the FAXX format decoder.
package fax

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/iffimage/decodeopts"
	"github.com/ausocean/iffimage/header"
	"github.com/ausocean/iffimage/ifferr"
	"github.com/ausocean/iffimage/internal/bitio"
	"github.com/ausocean/iffimage/plane"
)

// errInvalidCode is returned by readCode/readMode when no table entry
// matches within the maximum code length; it is never surfaced to the
// caller directly, only used to trigger the partial-decode recovery path.
var errInvalidCode = errors.New("fax: invalid or unrecognised code")

// Decode decodes height lines of width pixels from r per the FXHD
// compression mode, returning one 0/1 (white/black) index row per line and
// whether a mid-stream error forced white-padding of the remainder.
func Decode(r io.Reader, width, height int, mode header.FaxCompression, opts decodeopts.Options) ([][]byte, bool, error) {
	if width <= 0 || height <= 0 {
		return nil, false, ifferr.Newf(ifferr.BadFile, "fax: non-positive dimensions %dx%d", width, height)
	}
	switch mode {
	case header.FaxNone:
		rows, err := decodeUncompressed(r, width, height)
		return rows, false, err
	case header.FaxMH:
		return decodeCompressed(r, width, height, false, true, opts)
	case header.FaxMR:
		return decodeCompressed(r, width, height, true, true, opts)
	case header.FaxMMR:
		if !opts.AllowMMRAsMR {
			return nil, false, ifferr.New(ifferr.Unsupported, "fax: MMR compression sub-codec is not supported")
		}
		return decodeCompressed(r, width, height, true, false, opts)
	default:
		return nil, false, ifferr.Newf(ifferr.Unsupported, "fax: unknown compression mode %d", mode)
	}
}

func decodeUncompressed(r io.Reader, width, height int) ([][]byte, error) {
	rowBytes := plane.RowBytes(width)
	rows := make([][]byte, height)
	buf := make([]byte, rowBytes)
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, ifferr.Wrap(ifferr.BadFile, err, "fax: reading uncompressed row")
		}
		row := make([]byte, width)
		for x := 0; x < width; x++ {
			bit := (buf[x>>3] >> uint(7-(x&7))) & 1
			row[x] = bit
		}
		rows[y] = row
	}
	return rows, nil
}

// decodeCompressed decodes height MH/MR/MMR-coded lines. twoD selects
// whether non-first lines may be MR-coded (true for MR and MMR); useEOL
// selects whether each line is preceded by an EOL marker (false for MMR).
func decodeCompressed(r io.Reader, width, height int, twoD, useEOL bool, opts decodeopts.Options) ([][]byte, bool, error) {
	br := bitio.NewReader(r)
	rows := make([][]byte, height)
	partial := false

	for y := 0; y < height; y++ {
		if partial {
			rows[y] = whiteRow(width)
			continue
		}

		if useEOL {
			if err := skipEOL(br, opts.StrictEOL); err != nil {
				partial = true
				rows[y] = whiteRow(width)
				continue
			}
		}

		var row []byte
		var err error
		switch {
		case y == 0 || !twoD:
			row, err = decodeMHLine(br, width)
		default:
			var tag bool
			tag, err = br.ReadBit()
			if err == nil {
				if !tag {
					row, err = decodeMHLine(br, width)
				} else {
					row, err = decodeMRLine(br, width, rows[y-1])
				}
			}
		}

		if err != nil {
			partial = true
			rows[y] = padWhite(row, width)
			continue
		}
		rows[y] = row
	}
	return rows, partial, nil
}

func whiteRow(width int) []byte {
	return make([]byte, width) // zero value is pixWhite.
}

// padWhite extends a partially decoded row to width with white pixels.
func padWhite(row []byte, width int) []byte {
	full := make([]byte, width)
	copy(full, row)
	return full
}

// skipEOL consumes an EOL marker (optional leading fill zero bits, then
// eleven zero bits, then a one bit). In strict mode fewer than eleven
// leading zero bits before the one is an error; in lenient mode any
// number of zero bits followed by a one is accepted.
func skipEOL(br *bitio.Reader, strict bool) error {
	const eolZeros = 11
	zeros := 0
	for {
		bit, err := br.ReadBit()
		if err != nil {
			return err
		}
		if !bit {
			zeros++
			continue
		}
		if strict && zeros < eolZeros {
			return errInvalidCode
		}
		return nil
	}
}
