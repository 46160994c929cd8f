package magic

import (
	"bytes"
	"testing"
)

func TestDefault(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same instance")
	}
	if Default().Registry() != DefaultRegistry() {
		t.Error("Default() should use DefaultRegistry()")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	got, err := ClassifyBytes([]byte{0x4D, 0x5A, 0x00})
	if err != nil {
		t.Fatalf("ClassifyBytes() error = %v", err)
	}
	if got != LabelExe {
		t.Errorf("ClassifyBytes() = %v, want %v", got, LabelExe)
	}

	if _, err := ClassifyBytes(nil); !IsInvalidInput(err) {
		t.Errorf("ClassifyBytes(nil) error = %v, want %v", err, ErrInvalidInput)
	}

	// The default registry is process-wide, so use a label nothing else registers.
	RegisterSignatures(
		NewSignature("test/default-a", HexSegment(0, "DE FA 01")),
		NewSignature("test/default-b", HexSegment(0, "DE FA 02")),
	)
	RegisterSignature(NewSignature("test/default-c", HexSegment(0, "DE FA 03")))

	got, err = ClassifyStream(bytes.NewReader([]byte{0xDE, 0xFA, 0x02, 0xFF}))
	if err != nil {
		t.Fatalf("ClassifyStream() error = %v", err)
	}
	if got != "test/default-b" {
		t.Errorf("ClassifyStream() = %v, want test/default-b", got)
	}

	got, _ = ClassifyBytes([]byte{0xDE, 0xFA, 0x03})
	if got != "test/default-c" {
		t.Errorf("ClassifyBytes() = %v, want test/default-c", got)
	}
}
