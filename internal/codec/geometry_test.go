package codec

import "testing"

func TestStaticGeometry(t *testing.T) {
	tests := []struct {
		n                      int
		width, height, padding int
	}{
		{6, 2, 1, 0},   // empty payload: header + one packed triple
		{9, 2, 2, 3},   // 3 pixels on a 2x2 canvas, last pixel blank
		{12, 2, 2, 0},  // exact square
		{57, 5, 4, 3},  // days fixture: 19 pixels, last row trimmed
		{75, 5, 5, 0},  // exact 5x5
		{78, 6, 5, 12}, // 26 pixels on 6x6: one blank row trimmed, 4 blank pixels kept
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		w, h, pad := StaticGeometry(tt.n)
		if w != tt.width || h != tt.height || pad != tt.padding {
			t.Errorf("StaticGeometry(%d): got %dx%d pad %d, want %dx%d pad %d",
				tt.n, w, h, pad, tt.width, tt.height, tt.padding)
		}
		if tt.n > 0 && tt.n+pad != w*h*3 {
			t.Errorf("StaticGeometry(%d): %d+%d bytes does not fill %dx%d", tt.n, tt.n, pad, w, h)
		}
	}
}
