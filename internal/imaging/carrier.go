package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/noise"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixcodec/internal/codec"
)

// MaxCarrierSide bounds each dimension of a generated carrier.
const MaxCarrierSide = 8192

// GenerateCarrier synthesizes a color noise image to use as a hidden-mode
// carrier when the caller has no photograph at hand.
//
// Parameters:
//   - width, height: Carrier size in pixels (1 to MaxCarrierSide).
//   - smooth: Gaussian blur sigma applied to the noise. 0 keeps raw uniform
//     noise; 1-3 gives a softer, more natural texture. Edges are clamped, so
//     the carrier stays fully opaque at any sigma.
//
// The noise is random, so two calls never produce the same carrier.
func GenerateCarrier(width, height int, smooth float64) (*codec.Image, error) {
	if width <= 0 || height <= 0 || width > MaxCarrierSide || height > MaxCarrierSide {
		return nil, fmt.Errorf("carrier size %dx%d outside 1..%d", width, height, MaxCarrierSide)
	}
	if smooth < 0 {
		return nil, fmt.Errorf("blur radius must not be negative, got %g", smooth)
	}

	var img image.Image = noise.Generate(width, height, &noise.Options{NoiseFn: noise.Uniform, Monochrome: false})
	if smooth > 0 {
		img = imaging.Blur(img, smooth)
	}
	return FromImage(img)
}
