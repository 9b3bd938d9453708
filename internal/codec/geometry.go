package codec

import "math"

// StaticGeometry computes the canvas for a static buffer of n bytes.
//
// The smallest square of side pixels holding n bytes is chosen, then fully
// blank trailing rows are dropped, so the image may end up shorter than it is
// wide. padding is the number of zero bytes to append so the buffer fills
// width*height pixels exactly.
func StaticGeometry(n int) (width, height, padding int) {
	pixels := (n + channels - 1) / channels
	side := int(math.Ceil(math.Sqrt(float64(pixels))))
	for side*side < pixels {
		side++
	}
	for side > 0 && (side-1)*(side-1) >= pixels {
		side--
	}
	if side == 0 {
		return 0, 0, 0
	}

	rowBytes := side * channels
	blank := side*rowBytes - n
	blankRows := blank / rowBytes
	return side, side - blankRows, blank % rowBytes
}
