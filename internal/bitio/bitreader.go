/*
NAME
  bitreader.go

DESCRIPTION
  bitreader.go provides an MSB-first bit reader over a byte source, used by
  the FAXX MH/MR line decoders. Adapted from ausocean-av's
  codec/h264/h264dec/bits.BitReader: same ReadBits/PeekBits shift-register
  core, with ReadBit, AlignByte and Exhausted added.

AUTHOR
  iffimage contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bitio provides a bit reader implementation that can read or peek
// from an io.Reader data source, MSB-first.
package bitio

import (
	"bufio"
	"io"
)

type bytePeeker interface {
	io.ByteReader
	Peek(int) ([]byte, error)
}

// Reader is a bit reader that provides methods for reading bits from an
// io.Reader source, most-significant-bit first.
type Reader struct {
	r     bytePeeker
	n     uint64
	bits  int
	nRead int
	eof   bool
}

// NewReader returns a new Reader over r.
func NewReader(r io.Reader) *Reader {
	byter, ok := r.(bytePeeker)
	if !ok {
		byter = bufio.NewReader(r)
	}
	return &Reader{r: byter}
}

// ReadBits reads n bits from the source and returns them in the
// least-significant part of a uint64.
//
// For example, with a source of []byte{0x8f, 0xe3} (1000 1111, 1110 0011),
// consecutive reads yield:
//
//	n = 4, res = 0x8 (1000)
//	n = 2, res = 0x3 (0011)
//	n = 4, res = 0xf (1111)
//	n = 6, res = 0x23 (0010 0011)
func (r *Reader) ReadBits(n int) (uint64, error) {
	for n > r.bits {
		b, err := r.r.ReadByte()
		if err == io.EOF {
			r.eof = true
			return 0, io.ErrUnexpectedEOF
		}
		if err != nil {
			return 0, err
		}
		r.nRead++
		r.n <<= 8
		r.n |= uint64(b)
		r.bits += 8
	}
	res := (r.n >> uint(r.bits-n)) & ((1 << uint(n)) - 1)
	r.bits -= n
	return res, nil
}

// ReadBit reads a single bit, returning true for 1 and false for 0.
func (r *Reader) ReadBit() (bool, error) {
	v, err := r.ReadBits(1)
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

// PeekBits returns the next n bits without advancing through the source.
func (r *Reader) PeekBits(n int) (uint64, error) {
	need := (n - r.bits + 7) / 8
	if need < 0 {
		need = 0
	}
	byt, err := r.r.Peek(need)
	if err != nil && err != io.EOF {
		return 0, err
	}
	bits := r.bits
	n2 := r.n
	for i := 0; bits < n && i < len(byt); i++ {
		n2 <<= 8
		n2 |= uint64(byt[i])
		bits += 8
	}
	if bits < n {
		return 0, io.ErrUnexpectedEOF
	}
	return (n2 >> uint(bits-n)) & ((1 << uint(n)) - 1), nil
}

// ByteAligned reports whether the reader position is at the start of a
// byte.
func (r *Reader) ByteAligned() bool {
	return r.bits == 0
}

// AlignByte discards bits until the reader is byte-aligned.
func (r *Reader) AlignByte() {
	r.bits = 0
}

// Off returns the number of unread bits buffered from the current byte
// boundary.
func (r *Reader) Off() int {
	return r.bits
}

// BytesRead returns the number of bytes consumed from the underlying
// source so far.
func (r *Reader) BytesRead() int {
	return r.nRead
}

// Exhausted reports whether the reader has already hit end-of-stream,
// which distinguishes "ran out of input" from other read errors.
func (r *Reader) Exhausted() bool {
	return r.eof
}
