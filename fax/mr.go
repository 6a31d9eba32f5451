/*
NAME
  mr.go

DESCRIPTION
  mr.go implements the ITU-T T.4 Modified READ (2D) line decoder, spec.md
  §4.4.9: each line after the first references the previous decoded line's
  colour transitions ("changing elements") and is coded as a sequence of
  vertical/horizontal/pass mode operations relative to them.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fax

import (
	"github.com/ausocean/iffimage/internal/bitio"
)

// mode2D is one 2D line-coding operation (spec.md §4.4.9).
type mode2D int

const (
	modePass mode2D = iota
	modeHoriz
	modeV0
	modeVR1
	modeVL1
	modeVR2
	modeVL2
	modeVR3
	modeVL3
)

// modeCodes maps the prefix-free 2D mode code bit strings to mode2D
// values.
var modeCodes = map[string]mode2D{
	"0001":    modePass,
	"001":     modeHoriz,
	"1":       modeV0,
	"011":     modeVR1,
	"010":     modeVL1,
	"000011":  modeVR2,
	"000010":  modeVL2,
	"0000011": modeVR3,
	"0000010": modeVL3,
}

const maxModeBits = 7

func readMode(br *bitio.Reader) (mode2D, error) {
	var code []byte
	for n := 0; n < maxModeBits; n++ {
		bit, err := br.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit {
			code = append(code, '1')
		} else {
			code = append(code, '0')
		}
		if m, ok := modeCodes[string(code)]; ok {
			return m, nil
		}
	}
	return 0, errInvalidCode
}

// changingElements returns the positions in row where the colour differs
// from the preceding pixel, treating an imaginary white pixel as
// preceding position 0 (spec.md §4.4.9's "changing element" definition).
func changingElements(row []byte, width int) []int {
	var ce []int
	prev := byte(pixWhite)
	for i := 0; i < width; i++ {
		if row[i] != prev {
			ce = append(ce, i)
			prev = row[i]
		}
	}
	return ce
}

// colourAt returns the colour (pixWhite/pixBlack) that changing element k
// introduces: transitions always start white->black, so even indices
// introduce black and odd indices introduce white.
func colourAt(k int) byte {
	if k%2 == 0 {
		return pixBlack
	}
	return pixWhite
}

// findB1 returns the index into ce of b1: the first changing element to
// the right of a0 whose colour is opposite a0Colour. Returns len(ce) if
// none exists (the imaginary edge at width).
func findB1(ce []int, a0 int, a0Colour byte) int {
	i := 0
	for i < len(ce) && ce[i] <= a0 {
		i++
	}
	if i < len(ce) && colourAt(i) == a0Colour {
		i++
	}
	return i
}

// elementAt returns ce[i] if in range, else width (the virtual line-end
// changing element).
func elementAt(ce []int, i, width int) int {
	if i < len(ce) {
		return ce[i]
	}
	return width
}

// fillRun paints [from, to) in colour c into row, clamping to width.
func fillRun(row []byte, from, to int, c byte, width int) {
	if from < 0 {
		from = 0
	}
	if to > width {
		to = width
	}
	for i := from; i < to; i++ {
		row[i] = c
	}
}

// decodeMRLine decodes one 2D Modified READ line of exactly width pixels,
// referencing the previous decoded line ref.
func decodeMRLine(br *bitio.Reader, width int, ref []byte) ([]byte, error) {
	ce := changingElements(ref, width)
	row := make([]byte, width)
	a0 := -1
	a0Colour := byte(pixWhite)

	for a0 < width {
		m, err := readMode(br)
		if err != nil {
			return row, err
		}

		bi := findB1(ce, a0, a0Colour)
		b1 := elementAt(ce, bi, width)
		b2 := elementAt(ce, bi+1, width)

		switch m {
		case modePass:
			fillRun(row, a0, b2, a0Colour, width)
			a0 = b2
			// colour unchanged.

		case modeHoriz:
			run1, err := readRun(br, a0Colour == pixBlack)
			if err != nil {
				return row, err
			}
			run2, err := readRun(br, a0Colour != pixBlack)
			if err != nil {
				return row, err
			}
			start := a0
			if start < 0 {
				start = 0
			}
			a1 := start + run1
			a2 := a1 + run2
			fillRun(row, start, a1, a0Colour, width)
			fillRun(row, a1, a2, oppositeColour(a0Colour), width)
			a0 = a2
			// colour unchanged (two transitions cancel out).

		default:
			a1 := verticalA1(m, b1)
			fillRun(row, a0, a1, a0Colour, width)
			a0 = a1
			a0Colour = oppositeColour(a0Colour)
		}
	}
	return row, nil
}

func oppositeColour(c byte) byte {
	if c == pixWhite {
		return pixBlack
	}
	return pixWhite
}

// verticalA1 resolves a1 for the six vertical modes as an offset from b1.
func verticalA1(m mode2D, b1 int) int {
	switch m {
	case modeV0:
		return b1
	case modeVR1:
		return b1 + 1
	case modeVL1:
		return b1 - 1
	case modeVR2:
		return b1 + 2
	case modeVL2:
		return b1 - 2
	case modeVR3:
		return b1 + 3
	case modeVL3:
		return b1 - 3
	default:
		return b1
	}
}
