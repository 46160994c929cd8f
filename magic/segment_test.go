package magic

import (
	"bytes"
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		literal string
		want    []byte
		wantErr bool
	}{
		{literal: "FF D8 FF", want: []byte{0xFF, 0xD8, 0xFF}},
		{literal: "ffd8ff", want: []byte{0xFF, 0xD8, 0xFF}},
		{literal: " 4D\t5A\n", want: []byte{0x4D, 0x5A}},
		{literal: "", want: []byte{}},
		{literal: "F", wantErr: true},
		{literal: "ZZ", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseHex(tt.literal)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.literal, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !bytes.Equal(got, tt.want) {
			t.Errorf("ParseHex(%q) = %X, want %X", tt.literal, got, tt.want)
		}
	}
}

func TestHexSegment_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("HexSegment() with malformed literal should panic")
		}
	}()
	HexSegment(0, "XYZ")
}

func TestSegment_Eligible(t *testing.T) {
	seg := HexSegment(8, "57 45 42 50")

	if seg.End() != 12 {
		t.Errorf("End() = %d, want 12", seg.End())
	}
	if !seg.eligible(12) {
		t.Error("eligible(12) = false, want true")
	}
	if seg.eligible(11) {
		t.Error("eligible(11) = true, want false")
	}
	if seg.eligible(0) {
		t.Error("eligible(0) = true, want false")
	}
}

func TestSegment_EligibleFarOffset(t *testing.T) {
	tests := []struct {
		name    string
		seg     Segment
		fitsMax bool
	}{
		{"max offset", Segment{Offset: math.MaxInt, Pattern: []byte{0x01}}, false},
		{"max offset long pattern", Segment{Offset: math.MaxInt - 1, Pattern: []byte{0x01, 0x02, 0x03}}, false},
		{"offset past size", Segment{Offset: 1 << 30, Pattern: []byte{0x01}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seg.eligible(math.MaxInt64); got != tt.fitsMax {
				t.Errorf("eligible(MaxInt64) = %v, want %v", got, tt.fitsMax)
			}
			if tt.seg.eligible(1 << 20) {
				t.Error("eligible(1MiB) = true, want false")
			}
			if tt.seg.End() < tt.seg.Offset {
				t.Errorf("End() = %d wrapped below Offset %d", tt.seg.End(), tt.seg.Offset)
			}
		})
	}

	if got := (Segment{Offset: math.MaxInt, Pattern: []byte{0x01}}).End(); got != math.MaxInt {
		t.Errorf("End() = %d, want math.MaxInt", got)
	}
}

func TestSignature_Span(t *testing.T) {
	sig := NewSignature(LabelAVI, HexSegment(0, "52 49 46 46"), HexSegment(8, "41 56 49 20 4C 49 53 54"))
	if sig.Span() != 16 {
		t.Errorf("Span() = %d, want 16", sig.Span())
	}
	far := NewSignature("x/far", HexSegment(0, "01"), NewSegment(math.MaxInt, []byte{0x02}))
	if far.Span() != math.MaxInt {
		t.Errorf("far Span() = %d, want math.MaxInt", far.Span())
	}
	if (Signature{}).Span() != 0 {
		t.Errorf("empty Span() = %d, want 0", (Signature{}).Span())
	}
}

func TestSignature_String(t *testing.T) {
	sig := NewSignature(LabelWebP, HexSegment(0, "52 49 46 46"), HexSegment(8, "57 45 42 50"))
	want := "image/webp [0:52494646 8:57454250]"
	if sig.String() != want {
		t.Errorf("String() = %q, want %q", sig.String(), want)
	}
}

func TestSignature_Equal(t *testing.T) {
	a := NewSignature("x/a", HexSegment(0, "01 02"))
	tests := []struct {
		name  string
		other Signature
		want  bool
	}{
		{"same", NewSignature("x/a", HexSegment(0, "01 02")), true},
		{"label", NewSignature("x/b", HexSegment(0, "01 02")), false},
		{"offset", NewSignature("x/a", HexSegment(1, "01 02")), false},
		{"pattern", NewSignature("x/a", HexSegment(0, "01 03")), false},
		{"segments", NewSignature("x/a", HexSegment(0, "01 02"), HexSegment(4, "00")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
