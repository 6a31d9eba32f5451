package rle

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/iffimage/ifferr"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		n       int
		want    []byte
		wantErr bool
	}{
		{
			name: "scenario 2 from spec: literal then repeat",
			// 0x01 -> literal run of 2 (AA BB); 0xFF -> repeat run of
			// 257-255=2 (CC CC).
			in:   []byte{0x01, 0xAA, 0xBB, 0xFF, 0xCC},
			n:    4,
			want: []byte{0xAA, 0xBB, 0xCC, 0xCC},
		},
		{
			name: "pbm scenario: repeat then literal",
			// 0xFE -> repeat run of 257-254=3 (05 05 05); then a literal
			// run of 3 (01 02 03).
			in:   []byte{0xFE, 0x05, 0x02, 0x01, 0x02, 0x03},
			n:    6,
			want: []byte{0x05, 0x05, 0x05, 0x01, 0x02, 0x03},
		},
		{
			name: "no-op control byte is skipped",
			in:   []byte{0x80, 0x00, 0x01, 0x02},
			n:    1,
			want: []byte{0x01},
		},
		{
			name:    "overflow is BadFile",
			in:      []byte{0x05, 1, 2, 3, 4, 5, 6, 7},
			n:       2,
			wantErr: true,
		},
		{
			name:    "exhausted source is BadFile",
			in:      []byte{0x01, 0xAA},
			n:       4,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(bytes.NewReader(tt.in), tt.n)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if code := ifferr.CodeOf(err); code != ifferr.BadFile {
					t.Errorf("expected BadFile code, got %v", code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
