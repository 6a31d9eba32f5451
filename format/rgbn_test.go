package format

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/iffimage/decodeopts"
	"github.com/ausocean/iffimage/header"
)

func TestDecodeRGBNSinglePixel(t *testing.T) {
	// 1x1 image, 13 planes. Red nibble = 0b0001 (plane0 set), green = 0,
	// blue = 0, 13th (alpha) plane set but must be discarded.
	rows := make([]byte, 13)
	rows[0] = 0x80 // plane 0 bit for the single pixel.
	rows[12] = 0x80
	body := packPlanes(rows, 2)

	p := Params{
		BMHD: header.BMHD{
			Width: 1, Height: 1, NPlanes: 13,
			Compression: header.CmpNone,
		},
		Stop: bytes.NewReader(body),
		Opts: decodeopts.Default(),
	}

	res, err := decodeRGBN(p)
	if err != nil {
		t.Fatalf("decodeRGBN: %v", err)
	}
	want := []byte{17, 0, 0} // nibble 1 upscaled by *17.
	if diff := cmp.Diff(want, res.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRGBNRejectsBadPlaneCount(t *testing.T) {
	p := Params{
		BMHD: header.BMHD{Width: 1, Height: 1, NPlanes: 10},
		Opts: decodeopts.Default(),
	}
	if _, err := decodeRGBN(p); err == nil {
		t.Fatal("expected error for invalid plane count")
	}
}
