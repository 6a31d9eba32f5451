/*
NAME
  mh.go

DESCRIPTION
  mh.go implements the ITU-T T.4 Modified Huffman (1D) run-length line
  decoder, spec.md §4.4.9. A line is a sequence of alternating white/black
  runs, starting white, until the decoded pixel count reaches the line
  width; runs of 64 or more are makeup code(s) followed by one terminating
  code for the residue.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fax

import (
	"strings"

	"github.com/ausocean/iffimage/internal/bitio"
)

const maxCodeBits = 13

// white/black pixel values in the decoded index row (spec.md §4.4.9).
const (
	pixWhite = 0
	pixBlack = 1
)

// readCode reads one prefix-free code from br against table, returning its
// run length.
func readCode(br *bitio.Reader, table codeTable) (int, error) {
	var code strings.Builder
	for n := 0; n < maxCodeBits; n++ {
		bit, err := br.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit {
			code.WriteByte('1')
		} else {
			code.WriteByte('0')
		}
		if run, ok := table[code.String()]; ok {
			return run, nil
		}
	}
	return 0, errInvalidCode
}

// readRun reads one full run (possibly several makeup codes followed by a
// terminating code) for the given colour.
func readRun(br *bitio.Reader, black bool) (int, error) {
	table := whiteCodes
	if black {
		table = blackCodes
	}
	total := 0
	for {
		run, err := readCode(br, table)
		if err != nil {
			return 0, err
		}
		total += run
		if run < 64 {
			return total, nil
		}
		// Makeup code: accumulate and read the next code for this colour.
	}
}

// decodeMHLine decodes one 1D Modified Huffman line of exactly width
// pixels into a 0/1 index row, white first.
func decodeMHLine(br *bitio.Reader, width int) ([]byte, error) {
	row := make([]byte, 0, width)
	black := false
	for len(row) < width {
		run, err := readRun(br, black)
		if err != nil {
			return row, err
		}
		if len(row)+run > width {
			run = width - len(row)
		}
		val := byte(pixWhite)
		if black {
			val = pixBlack
		}
		for i := 0; i < run; i++ {
			row = append(row, val)
		}
		black = !black
	}
	return row, nil
}
