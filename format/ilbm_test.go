package format

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/iffimage/decodeopts"
	"github.com/ausocean/iffimage/header"
)

// TestDecodeILBMScenario is spec.md Scenario 1: uncompressed 2x2 ILBM,
// 1 plane, 2-colour black/white palette.
func TestDecodeILBMScenario(t *testing.T) {
	// rowbytes(2) = 2, so each of the 2 rows needs a 2-byte plane row: row
	// 0 -> pixel0=1,pixel1=0 (0x80); row 1 -> pixel0=0,pixel1=1 (0x40).
	body := []byte{0x80, 0x00, 0x40, 0x00}
	pal := header.Palette{Entries: []header.RGB{
		{R: 0, G: 0, B: 0},
		{R: 0xff, G: 0xff, B: 0xff},
	}}
	p := Params{
		BMHD: header.BMHD{
			Width: 2, Height: 2, NPlanes: 1,
			Masking: header.MskNone, Compression: header.CmpNone,
		},
		Palette: &pal,
		Stop:    bytes.NewReader(body),
		Opts:    decodeopts.Default(),
	}

	res, err := decodeILBM(p)
	if err != nil {
		t.Fatalf("decodeILBM: %v", err)
	}
	want := []byte{
		0xff, 0xff, 0xff, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0xff, 0xff, 0xff,
	}
	if diff := cmp.Diff(want, res.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
	if !res.IsIndexed {
		t.Error("expected IsIndexed true")
	}
}

// TestDecodeILBMNoCMAPIsGrayscale covers spec.md's boundary: a 1-plane
// uncompressed ILBM with no CMAP chunk decodes as grayscale rather than a
// black-on-black indexed raster.
func TestDecodeILBMNoCMAPIsGrayscale(t *testing.T) {
	body := []byte{0x80, 0x00, 0x40, 0x00}
	p := Params{
		BMHD: header.BMHD{
			Width: 2, Height: 2, NPlanes: 1,
			Masking: header.MskNone, Compression: header.CmpNone,
		},
		Palette: nil,
		Stop:    bytes.NewReader(body),
		Opts:    decodeopts.Default(),
	}

	res, err := decodeILBM(p)
	if err != nil {
		t.Fatalf("decodeILBM: %v", err)
	}
	if res.IsIndexed {
		t.Error("expected IsIndexed false with no CMAP")
	}
	if !res.IsGrayscale {
		t.Error("expected IsGrayscale true with no CMAP")
	}
	want := []byte{
		0xff, 0xff, 0xff, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0xff, 0xff, 0xff,
	}
	if diff := cmp.Diff(want, res.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeILBMRejectsBadDimensions(t *testing.T) {
	p := Params{
		BMHD: header.BMHD{Width: 0, Height: 2, NPlanes: 1},
		Opts: decodeopts.Default(),
	}
	if _, err := decodeILBM(p); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestDecodeILBMTransparentColourOutOfRange(t *testing.T) {
	pal := header.Palette{Entries: []header.RGB{{}, {}}}
	p := Params{
		BMHD: header.BMHD{
			Width: 1, Height: 1, NPlanes: 1,
			Masking:          header.MskHasTransparentColor,
			TransparentColor: 5,
		},
		Palette: &pal,
		Stop:    bytes.NewReader([]byte{0x80}),
		Opts:    decodeopts.Default(),
	}
	if _, err := decodeILBM(p); err == nil {
		t.Fatal("expected error for out-of-range transparent colour")
	}
}
