package analyse

import (
	"testing"

	"github.com/ausocean/iffimage/decodeopts"
	"github.com/ausocean/iffimage/format"
	"github.com/ausocean/iffimage/header"
)

func TestDeriveFlagsGrayscalePalette(t *testing.T) {
	pal := &header.Palette{Entries: []header.RGB{
		{R: 0, G: 0, B: 0},
		{R: 0x80, G: 0x80, B: 0x80},
		{R: 0xff, G: 0xff, B: 0xff},
	}}
	res := format.Result{IsIndexed: true}
	flags := DeriveFlags(res, pal)
	if !flags.IsGrayscale {
		t.Fatal("expected an R==G==B palette to be detected as grayscale")
	}
}

func TestDeriveFlagsColourPalette(t *testing.T) {
	pal := &header.Palette{Entries: []header.RGB{
		{R: 0, G: 0, B: 0},
		{R: 0xff, G: 0, B: 0},
	}}
	res := format.Result{IsIndexed: true}
	flags := DeriveFlags(res, pal)
	if flags.IsGrayscale {
		t.Fatal("expected a palette with a coloured entry to not be grayscale")
	}
}

func TestDeriveConfigIndexedWithTRNS(t *testing.T) {
	pal := &header.Palette{Entries: []header.RGB{
		{R: 0, G: 0, B: 0},
		{R: 0xff, G: 0, B: 0},
		{R: 0, G: 0xff, B: 0},
	}}
	res := format.Result{IsIndexed: true, Indices: []byte{0, 1, 2, 1}}
	cfg := DeriveConfig(res, pal, 2, header.MskHasTransparentColor, 1, decodeopts.Default())
	if cfg.ColorType != ColorPalette {
		t.Fatalf("ColorType = %v, want ColorPalette", cfg.ColorType)
	}
	if !cfg.HasTRNS || cfg.TRNSIndex != 1 {
		t.Fatalf("HasTRNS/TRNSIndex = %v/%d, want true/1", cfg.HasTRNS, cfg.TRNSIndex)
	}
}

func TestDeriveConfigIndexedGrayscaleStillChecksTRNS(t *testing.T) {
	// A grayscale-detected palette should still pick up tRNS: the tRNS
	// scan must not be skipped just because the ColorType ends up Gray.
	pal := &header.Palette{Entries: []header.RGB{
		{R: 0, G: 0, B: 0},
		{R: 0xff, G: 0xff, B: 0xff},
	}}
	res := format.Result{IsIndexed: true, Indices: []byte{0, 1, 1, 0}}
	cfg := DeriveConfig(res, pal, 1, header.MskHasTransparentColor, 1, decodeopts.Default())
	if cfg.ColorType != ColorGray {
		t.Fatalf("ColorType = %v, want ColorGray", cfg.ColorType)
	}
	if !cfg.HasTRNS || cfg.TRNSIndex != 1 {
		t.Fatalf("HasTRNS/TRNSIndex = %v/%d, want true/1", cfg.HasTRNS, cfg.TRNSIndex)
	}
}

func TestDeriveConfigNoCMAPILBMIsGray(t *testing.T) {
	// spec.md's boundary: a 1-plane ILBM with no CMAP reports
	// IsIndexed=false/IsGrayscale=true, and must route to ColorGray
	// rather than falling through to the true-colour default.
	res := format.Result{IsIndexed: false, IsGrayscale: true}
	cfg := DeriveConfig(res, nil, 1, header.MskNone, 0, decodeopts.Default())
	if cfg.ColorType != ColorGray {
		t.Fatalf("ColorType = %v, want ColorGray", cfg.ColorType)
	}
	if cfg.BitDepth != 1 {
		t.Fatalf("BitDepth = %d, want 1", cfg.BitDepth)
	}
}

func TestDeriveConfigOpaqueTransparentBlackSuppressesTRNS(t *testing.T) {
	pal := &header.Palette{Entries: []header.RGB{
		{R: 0, G: 0, B: 0},
		{R: 0xff, G: 0, B: 0},
	}}
	res := format.Result{IsIndexed: true, Indices: []byte{0, 1}}
	opts := decodeopts.Apply(decodeopts.WithOpaqueTransparentBlack(true))
	cfg := DeriveConfig(res, pal, 2, header.MskHasTransparentColor, 0, opts)
	if cfg.HasTRNS {
		t.Fatal("expected tRNS to be suppressed when transparent index is 0 and OpaqueTransparentBlack is set")
	}
}

func TestDeriveConfigHAMIsTrueColour(t *testing.T) {
	res := format.Result{IsHAM: true}
	cfg := DeriveConfig(res, nil, 6, header.MskNone, 0, decodeopts.Default())
	if cfg.ColorType != ColorRGB || cfg.BitDepth != 8 {
		t.Fatalf("got %+v, want RGB/8 for a HAM result", cfg)
	}
}

func TestBitDepthFor(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 4},
		{16, 4},
		{17, 8},
		{256, 8},
	}
	for _, tt := range tests {
		if got := bitDepthFor(tt.n); got != tt.want {
			t.Errorf("bitDepthFor(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
