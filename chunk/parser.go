/*
NAME
  parser.go

DESCRIPTION
  parser.go walks a single IFF FORM container: {4-byte tag "FORM", 4-byte
  big-endian length, 4-byte FORM type, sub-chunks}. Each sub-chunk is
  {4-byte tag, 4-byte big-endian length, length bytes of payload, 0 or 1
  pad byte}. Traversal stops at the FORM type's registered stop chunk,
  leaving a reader positioned at its first payload byte for the caller
  (spec.md §4.1). Modelled on container/mts's stream-walk-and-dispatch
  loop, generalised from a fixed 188-byte MPEG-TS packet to IFF's
  variable-length tagged chunks.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package chunk implements the IFF FORM chunk-stream parser: it classifies
// each sub-chunk as a property, collection, or stop chunk per spec.md
// §4.1, and hands the caller a byte-reader positioned at the stop chunk's
// payload.
package chunk

import (
	"encoding/binary"
	"io"

	"github.com/ausocean/iffimage/ifferr"
)

const tagLen = 4

// Parser walks one FORM container.
type Parser struct {
	r    io.Reader
	Form FormType
	reg  registration

	// Properties holds the last-wins buffered payload for each property
	// tag encountered before the stop chunk.
	Properties map[string][]byte

	// Collections holds the ordered buffered payloads for each collection
	// tag encountered before the stop chunk.
	Collections map[string][][]byte

	// StopTag and StopLen name the stop chunk that halted traversal.
	StopTag string
	StopLen uint32

	// Stop is a reader over the stop chunk's payload, positioned at its
	// first byte. Exactly StopLen bytes may be read from it.
	Stop io.Reader

	stopLimit *io.LimitedReader
}

// Open reads the FORM header (tag, length, FORM type) and prepares a
// Parser for Scan. An unrecognised FORM type is Unsupported.
func Open(r io.Reader) (*Parser, error) {
	tag, err := readTag(r)
	if err != nil {
		return nil, ifferr.Wrap(ifferr.BadFile, err, "chunk: reading FORM tag")
	}
	if tag != "FORM" {
		return nil, ifferr.Newf(ifferr.BadFile, "chunk: expected FORM tag, got %q", tag)
	}
	if _, err := readLen(r); err != nil {
		return nil, ifferr.Wrap(ifferr.BadFile, err, "chunk: reading FORM length")
	}
	formTag, err := readTag(r)
	if err != nil {
		return nil, ifferr.Wrap(ifferr.BadFile, err, "chunk: reading FORM type")
	}
	reg, ok := registry[FormType(formTag)]
	if !ok {
		return nil, ifferr.Newf(ifferr.Unsupported, "chunk: unsupported FORM type %q", formTag)
	}
	return &Parser{
		r:           r,
		Form:        FormType(formTag),
		reg:         reg,
		Properties:  make(map[string][]byte),
		Collections: make(map[string][][]byte),
	}, nil
}

// Scan walks sub-chunks until the registered stop chunk is reached,
// buffering property and collection chunks along the way. It returns
// BadFile if the stop chunk is never reached or a required property is
// missing once it is.
func (p *Parser) Scan() error {
	for {
		tag, length, err := readTagLen(p.r)
		if err == io.EOF {
			return ifferr.Newf(ifferr.BadFile, "chunk: stream ended before stop chunk %q for FORM %q", p.reg.stop, p.Form)
		}
		if err != nil {
			return ifferr.Wrap(ifferr.BadFile, err, "chunk: reading sub-chunk header")
		}

		switch p.reg.roleOf(tag) {
		case roleStop:
			p.StopTag = tag
			p.StopLen = length
			p.stopLimit = &io.LimitedReader{R: p.r, N: int64(length)}
			p.Stop = p.stopLimit
			return p.checkRequired()

		case roleProperty:
			buf, err := readPayload(p.r, length)
			if err != nil {
				return err
			}
			p.Properties[tag] = buf

		case roleCollection:
			buf, err := readPayload(p.r, length)
			if err != nil {
				return err
			}
			p.Collections[tag] = append(p.Collections[tag], buf)

		default:
			// Unregistered tag for this FORM type: skip it. IFF readers
			// have always had to tolerate unknown chunks from newer
			// writers.
			if _, err := io.CopyN(io.Discard, p.r, int64(length)); err != nil {
				return ifferr.Wrap(ifferr.BadFile, err, "chunk: skipping unknown chunk")
			}
			consumePad(p.r, length)
		}
	}
}

func (p *Parser) checkRequired() error {
	for _, tag := range p.reg.required {
		if _, ok := p.Properties[tag]; !ok {
			return ifferr.Newf(ifferr.BadFile, "chunk: missing required property chunk %q for FORM %q", tag, p.Form)
		}
	}
	return nil
}

// DrainStop discards any unread bytes of the stop chunk's payload and
// consumes its pad byte, leaving the underlying stream positioned at the
// next sub-chunk tag. Used by decoders (YUVN) that must keep reading
// chunks after the registered stop chunk.
func (p *Parser) DrainStop() error {
	if p.stopLimit == nil {
		return nil
	}
	if _, err := io.Copy(io.Discard, p.stopLimit); err != nil {
		return ifferr.Wrap(ifferr.BadFile, err, "chunk: draining stop chunk")
	}
	consumePad(p.r, p.StopLen)
	return nil
}

// NextRawChunk reads one more chunk directly from the stream without role
// classification, fully buffering its payload. Used by the YUVN decoder to
// pull the DATU/DATV/DATA chunks that follow its DATY stop chunk.
func (p *Parser) NextRawChunk() (tag string, data []byte, err error) {
	tag, length, err := readTagLen(p.r)
	if err == io.EOF {
		return "", nil, io.EOF
	}
	if err != nil {
		return "", nil, ifferr.Wrap(ifferr.BadFile, err, "chunk: reading raw chunk header")
	}
	data, err = readPayload(p.r, length)
	if err != nil {
		return "", nil, err
	}
	return tag, data, nil
}

func readTag(r io.Reader) (string, error) {
	b := make([]byte, tagLen)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func readLen(r io.Reader) (uint32, error) {
	b := make([]byte, 4)
	if _, err := io.ReadFull(r, b); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func readTagLen(r io.Reader) (string, uint32, error) {
	tag, err := readTag(r)
	if err != nil {
		return "", 0, err
	}
	length, err := readLen(r)
	if err != nil {
		return "", 0, err
	}
	return tag, length, nil
}

func readPayload(r io.Reader, length uint32) ([]byte, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ifferr.Wrap(ifferr.BadFile, err, "chunk: reading chunk payload")
	}
	consumePad(r, length)
	return buf, nil
}

// consumePad reads the word-alignment pad byte when length is odd.
// A missing pad byte at end of file is tolerated per spec.md §4.1.
func consumePad(r io.Reader, length uint32) {
	if length%2 == 0 {
		return
	}
	var pad [1]byte
	io.ReadFull(r, pad[:])
}
