package imaging

import (
	"fmt"
	"testing"
)

func TestGenerateCarrier(t *testing.T) {
	for _, smooth := range []float64{0, 1.5} {
		img, err := GenerateCarrier(40, 30, smooth)
		if err != nil {
			t.Fatalf("GenerateCarrier(smooth=%g) failed: %v", smooth, err)
		}
		if err := img.Validate(); err != nil {
			t.Fatalf("generated carrier invalid: %v", err)
		}
		if img.Width != 40 || img.Height != 30 {
			t.Errorf("dimensions: got %dx%d, want 40x30", img.Width, img.Height)
		}

		distinct := make(map[byte]bool)
		for _, b := range img.Pix {
			distinct[b] = true
		}
		if len(distinct) < 16 {
			t.Errorf("smooth=%g: only %d distinct channel values, expected noise", smooth, len(distinct))
		}
	}
}

func TestGenerateCarrier_BlurKeepsOpaque(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 3}, {7, 5}, {64, 64}, {256, 256}}
	for _, size := range sizes {
		for _, smooth := range []float64{0.5, 1.5, 2, 2.5, 3, 10} {
			w, h := size[0], size[1]
			t.Run(fmt.Sprintf("%dx%d/blur=%g", w, h, smooth), func(t *testing.T) {
				img, err := GenerateCarrier(w, h, smooth)
				if err != nil {
					t.Fatalf("GenerateCarrier failed: %v", err)
				}
				if img.Width != w || img.Height != h {
					t.Errorf("dimensions: got %dx%d, want %dx%d", img.Width, img.Height, w, h)
				}
				if len(img.Pix) != w*h*3 {
					t.Errorf("pixel buffer: got %d bytes, want %d", len(img.Pix), w*h*3)
				}
			})
		}
	}
}

func TestGenerateCarrier_InvalidArgs(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		smooth        float64
	}{
		{"zero width", 0, 10, 0},
		{"negative height", 10, -1, 0},
		{"too large", MaxCarrierSide + 1, 10, 0},
		{"negative blur", 10, 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateCarrier(tt.width, tt.height, tt.smooth); err == nil {
				t.Error("expected error")
			}
		})
	}
}
