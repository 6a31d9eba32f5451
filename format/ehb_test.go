package format

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/iffimage/decodeopts"
	"github.com/ausocean/iffimage/header"
)

// TestDecodeEHBScenario is spec.md Scenario 4: palette[20] = (80, 40, 20),
// input index 52 (20+32) halves each component to (40, 20, 10).
func TestDecodeEHBScenario(t *testing.T) {
	entries := make([]header.RGB, 32)
	entries[20] = header.RGB{R: 80, G: 40, B: 20}
	pal := header.Palette{Entries: entries}

	idx := 52
	planeBits := make([]byte, 6)
	for plane := 0; plane < 6; plane++ {
		if idx>>uint(plane)&1 != 0 {
			planeBits[plane] = 0x80
		}
	}
	body := packPlanes(planeBits, 2)

	p := Params{
		BMHD: header.BMHD{
			Width: 1, Height: 1, NPlanes: 6,
			Masking: header.MskNone, Compression: header.CmpNone,
		},
		Palette: &pal,
		Stop:    bytes.NewReader(body),
		Opts:    decodeopts.Default(),
	}

	res, err := decodeEHB(p)
	if err != nil {
		t.Fatalf("decodeEHB: %v", err)
	}
	want := []byte{40, 20, 10}
	if diff := cmp.Diff(want, res.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
	if !res.IsEHB || !res.IsIndexed {
		t.Error("expected IsEHB and IsIndexed true")
	}
}

func TestDecodeEHBRejectsWrongPlaneCount(t *testing.T) {
	p := Params{
		BMHD:    header.BMHD{Width: 1, Height: 1, NPlanes: 5},
		Palette: &header.Palette{Entries: []header.RGB{{}}},
		Opts:    decodeopts.Default(),
	}
	if _, err := decodeEHB(p); err == nil {
		t.Fatal("expected error for nPlanes != 6")
	}
}
