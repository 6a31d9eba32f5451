package fax

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/iffimage/decodeopts"
	"github.com/ausocean/iffimage/header"
)

// packBits turns a string of '0'/'1' characters into MSB-first packed
// bytes, right-padded with zero bits to a byte boundary.
func packBits(bits string) []byte {
	n := (len(bits) + 7) / 8
	out := make([]byte, n)
	for i, c := range bits {
		if c == '1' {
			out[i/8] |= 1 << uint(7-(i%8))
		}
	}
	return out
}

func TestDecodeMHScenario6(t *testing.T) {
	// spec.md Scenario 6: width=8, row 0 is a single 8-pixel white run,
	// row 1 starts with a 0-length white run then an 8-pixel black run.
	const eol = "00000000001"
	bits := eol + "10011" + // row 0: white run of 8.
		eol + "00110101" + "000101" // row 1: white run of 0, black run of 8.
	body := packBits(bits)

	rows, partial, err := Decode(bytes.NewReader(body), 8, 2, header.FaxMH, decodeopts.Default())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if partial {
		t.Fatal("expected a clean decode, got partial")
	}
	want := [][]byte{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 1},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUncompressed(t *testing.T) {
	// width=8 -> rowbytes=2; one row with bit 0 set (MSB) -> black pixel 0.
	body := []byte{0x80, 0x00}
	rows, partial, err := Decode(bytes.NewReader(body), 8, 1, header.FaxNone, decodeopts.Default())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if partial {
		t.Fatal("expected a clean decode")
	}
	want := [][]byte{{1, 0, 0, 0, 0, 0, 0, 0}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePartialOnTruncatedStream(t *testing.T) {
	// A lone EOL with no row data at all: the first row decode runs out
	// of input immediately, so the whole raster should come back white
	// and partial, without an error.
	body := packBits("00000000001")
	rows, partial, err := Decode(bytes.NewReader(body), 4, 2, header.FaxMH, decodeopts.Default())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !partial {
		t.Fatal("expected partial decode")
	}
	want := [][]byte{{0, 0, 0, 0}, {0, 0, 0, 0}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMR2LineRun(t *testing.T) {
	// Row 0 (MH): all white, width 4 -> terminating code for run 4 ("1011").
	// Row 1 (MR, tag 1): V0 mode ("1") against an all-white reference line
	// means a1 is vertically aligned with b1; since the reference line has
	// no changing elements, b1 is the virtual edge at width, so the whole
	// line stays white, matching row 0.
	const eol = "00000000001"
	bits := eol + "1011" + // row 0: MH, white run of 4.
		eol + "1" + "1" // row 1: MR tag, then a single V0 mode code.
	body := packBits(bits)

	rows, partial, err := Decode(bytes.NewReader(body), 4, 2, header.FaxMR, decodeopts.Default())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if partial {
		t.Fatal("expected a clean decode")
	}
	want := [][]byte{{0, 0, 0, 0}, {0, 0, 0, 0}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMMRUnsupportedByDefault(t *testing.T) {
	_, _, err := Decode(bytes.NewReader(nil), 4, 1, header.FaxMMR, decodeopts.Default())
	if err == nil {
		t.Fatal("expected Unsupported error for MMR without AllowMMRAsMR")
	}
}
