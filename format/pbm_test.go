package format

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/iffimage/decodeopts"
	"github.com/ausocean/iffimage/header"
)

func TestDecodePBMCompressed(t *testing.T) {
	// spec.md Scenario 5: width=6, ByteRun1-compressed row
	// fe 05 02 01 02 03 decodes to 05 05 05 01 02 03 (0xFE -> repeat run
	// of 257-254=3).
	body := []byte{0xFE, 0x05, 0x02, 0x01, 0x02, 0x03}
	pal := header.Palette{Entries: []header.RGB{
		{R: 0, G: 0, B: 0},
		{R: 1, G: 1, B: 1},
		{R: 2, G: 2, B: 2},
		{R: 3, G: 3, B: 3},
		{R: 4, G: 4, B: 4},
		{R: 5, G: 5, B: 5},
	}}
	p := Params{
		BMHD: header.BMHD{
			Width: 6, Height: 1,
			Masking:     header.MskNone,
			Compression: header.CmpByteRun1,
		},
		Palette: &pal,
		Stop:    bytes.NewReader(body),
		Opts:    decodeopts.Default(),
	}

	res, err := decodePBM(p)
	if err != nil {
		t.Fatalf("decodePBM: %v", err)
	}
	want := []byte{5, 5, 5, 1, 2, 3}
	if diff := cmp.Diff(want, res.Indices); diff != "" {
		t.Errorf("indices mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePBMUncompressedWithMask(t *testing.T) {
	// One row, width 4, index bytes followed by a literal mask row.
	body := []byte{
		1, 0, 2, 0, // indices
		0xff, 0x00, 0xff, 0x00, // mask: pixels 0 and 2 opaque
	}
	pal := header.Palette{Entries: []header.RGB{
		{R: 0, G: 0, B: 0},
		{R: 10, G: 10, B: 10},
		{R: 20, G: 20, B: 20},
	}}
	p := Params{
		BMHD: header.BMHD{
			Width: 4, Height: 1,
			Masking:     header.MskHasMask,
			Compression: header.CmpNone,
		},
		Palette: &pal,
		Stop:    bytes.NewReader(body),
		Opts:    decodeopts.Default(),
	}

	res, err := decodePBM(p)
	if err != nil {
		t.Fatalf("decodePBM: %v", err)
	}
	if !res.HasAlpha {
		t.Fatal("expected HasAlpha true")
	}
	if res.Pix[3] != 0xff || res.Pix[7] != 0x00 || res.Pix[11] != 0xff || res.Pix[15] != 0x00 {
		t.Errorf("unexpected alpha channel: %v", res.Pix)
	}
}

func TestDecodePBMBadDimensions(t *testing.T) {
	p := Params{
		BMHD: header.BMHD{Width: 0, Height: 1},
		Opts: decodeopts.Default(),
	}
	if _, err := decodePBM(p); err == nil {
		t.Fatal("expected error for zero width")
	}
}
