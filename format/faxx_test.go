package format

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/iffimage/decodeopts"
	"github.com/ausocean/iffimage/header"
)

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

func TestDecodeFAXX(t *testing.T) {
	const eol = "00000000001"
	bits := eol + "10011" // one row, width 8: white run of 8.
	body := packBits(bits)

	p := Params{
		Form: "FAXX",
		FXHD: header.FXHD{Width: 8, Height: 1, Compression: header.FaxMH},
		Stop: bytes.NewReader(body),
		Opts: decodeopts.Default(),
	}
	res, err := decodeFAXX(p)
	if err != nil {
		t.Fatalf("decodeFAXX: %v", err)
	}
	if res.PartialFAX {
		t.Fatal("expected a clean decode")
	}
	if !res.IsIndexed || !res.IsGrayscale {
		t.Fatal("expected an indexed, grayscale result")
	}
	wantIdx := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if diff := cmp.Diff(wantIdx, res.Indices); diff != "" {
		t.Errorf("indices mismatch (-want +got):\n%s", diff)
	}
	wantPix := bytes.Repeat([]byte{0xff, 0xff, 0xff}, 8)
	if diff := cmp.Diff(wantPix, res.Pix); diff != "" {
		t.Errorf("pix mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFAXXBadDimensions(t *testing.T) {
	p := Params{
		FXHD: header.FXHD{Width: 0, Height: 4},
		Stop: bytes.NewReader(nil),
		Opts: decodeopts.Default(),
	}
	if _, err := decodeFAXX(p); err == nil {
		t.Fatal("expected an error for zero width")
	}
}
