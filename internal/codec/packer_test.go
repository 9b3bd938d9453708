package codec

import (
	"bytes"
	"testing"
)

func TestPackStatic(t *testing.T) {
	symbols, err := Frame([]byte("hello"), 4)
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	got, err := PackStatic(symbols)
	if err != nil {
		t.Fatalf("PackStatic failed: %v", err)
	}
	// Repacking base64 symbols restores the original bytes; the marker 2 lands in the last byte.
	want := []byte{'h', 'e', 'l', 'l', 'o', 2}
	if !bytes.Equal(got, want) {
		t.Errorf("PackStatic: got %v, want %v", got, want)
	}
}

func TestPackStatic_Unaligned(t *testing.T) {
	if _, err := PackStatic([]byte{1, 2, 3}); err == nil {
		t.Error("PackStatic should reject a stream that is not a multiple of 4")
	}
}

func TestUnpackStatic_Inverse(t *testing.T) {
	symbols := make([]byte, 64)
	for i := range symbols {
		symbols[i] = byte(i)
	}
	packed, err := PackStatic(symbols)
	if err != nil {
		t.Fatalf("PackStatic failed: %v", err)
	}
	if len(packed) != 48 {
		t.Fatalf("packed length: got %d, want 48", len(packed))
	}
	got, err := UnpackStatic(packed)
	if err != nil {
		t.Fatalf("UnpackStatic failed: %v", err)
	}
	if !bytes.Equal(got, symbols) {
		t.Errorf("UnpackStatic: got %v, want %v", got, symbols)
	}
}

func TestUnpackStatic_PartialTriple(t *testing.T) {
	if _, err := UnpackStatic([]byte{1, 2, 3, 4}); err == nil {
		t.Error("UnpackStatic should reject a partial RGB triple")
	}
}
