package format

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/iffimage/decodeopts"
	"github.com/ausocean/iffimage/header"
	"github.com/ausocean/iffimage/ifferr"
)

func TestDecodeYUVNFullResolution(t *testing.T) {
	// A 2x1 image, mode 444A (no subsampling): luma 235 with chroma
	// 128/128 (no colour shift) should convert to gray RGB (235,235,235).
	luma := []byte{235, 235}
	chunks := []struct {
		tag  string
		data []byte
	}{
		{"DATU", []byte{128, 128}},
		{"DATV", []byte{128, 128}},
	}
	i := 0
	p := Params{
		YCHD: header.YCHD{Width: 2, Height: 1, Mode: header.YUVMode444A},
		Stop: bytes.NewReader(luma),
		DrainAndNext: func() (string, []byte, error) {
			if i >= len(chunks) {
				return "", nil, io.EOF
			}
			c := chunks[i]
			i++
			return c.tag, c.data, nil
		},
		Opts: decodeopts.Default(),
	}

	res, err := decodeYUVN(p)
	if err != nil {
		t.Fatalf("decodeYUVN: %v", err)
	}
	if res.HasAlpha {
		t.Fatal("expected no alpha plane")
	}
	want := []byte{235, 235, 235, 235, 235, 235}
	if diff := cmp.Diff(want, res.Pix); diff != "" {
		t.Errorf("pix mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeYUVNMissingChromaIsBadFile(t *testing.T) {
	p := Params{
		YCHD: header.YCHD{Width: 2, Height: 1, Mode: header.YUVMode444A},
		Stop: bytes.NewReader([]byte{0, 0}),
		DrainAndNext: func() (string, []byte, error) {
			return "", nil, io.EOF
		},
		Opts: decodeopts.Default(),
	}
	if _, err := decodeYUVN(p); err == nil {
		t.Fatal("expected an error for missing DATU/DATV")
	}
}

func TestDecodeYUVN411RequiresWidthMultipleOf4(t *testing.T) {
	p := Params{
		YCHD: header.YCHD{Width: 6, Height: 1, Mode: header.YUVMode411},
		Stop: bytes.NewReader(nil),
		Opts: decodeopts.Default(),
	}
	if _, err := decodeYUVN(p); err == nil {
		t.Fatal("expected a BadFile error for width not a multiple of 4")
	}
}

func TestDecodeYUVNCompressedIsUnsupported(t *testing.T) {
	p := Params{
		YCHD: header.YCHD{Width: 2, Height: 1, Mode: header.YUVMode444A, Compress: 1},
		Stop: bytes.NewReader(nil),
		Opts: decodeopts.Default(),
	}
	_, err := decodeYUVN(p)
	if err == nil {
		t.Fatal("expected an error for compressed YUVN")
	}
	if code := ifferr.CodeOf(err); code != ifferr.Unsupported {
		t.Fatalf("CodeOf(err) = %v, want Unsupported", code)
	}
}
