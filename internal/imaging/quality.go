package imaging

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixcodec/internal/codec"
)

// DistortionResult summarizes how far an encoded image drifted from its carrier.
type DistortionResult struct {
	// MeanDeltaE is the average CIEDE2000 color difference per pixel.
	// Values below about 1.0 are imperceptible to most viewers.
	MeanDeltaE float64 `json:"mean_delta_e"`

	// MaxDeltaE is the largest CIEDE2000 difference of any single pixel.
	MaxDeltaE float64 `json:"max_delta_e"`

	// ChangedPixels counts pixels whose RGB value differs at all.
	ChangedPixels int `json:"changed_pixels"`

	// TotalPixels is width × height.
	TotalPixels int `json:"total_pixels"`

	// PSNR is the peak signal-to-noise ratio in dB over all channel bytes.
	// It is +Inf for identical images and reported as 0 in that case.
	PSNR float64 `json:"psnr_db"`
}

// CompareCarrier measures the perceptual difference between a carrier and
// the image produced from it.
//
// Both buffers must have identical dimensions. Pixel colors are converted to
// CIE L*a*b* and compared with the CIEDE2000 formula.
func CompareCarrier(carrier, encoded *codec.Image) (*DistortionResult, error) {
	if carrier.Width != encoded.Width || carrier.Height != encoded.Height {
		return nil, fmt.Errorf("dimension mismatch: carrier %dx%d, encoded %dx%d",
			carrier.Width, carrier.Height, encoded.Width, encoded.Height)
	}
	if len(carrier.Pix) != len(encoded.Pix) {
		return nil, fmt.Errorf("buffer length mismatch: %d vs %d", len(carrier.Pix), len(encoded.Pix))
	}

	result := &DistortionResult{TotalPixels: len(carrier.Pix) / 3}
	var sumDeltaE, sumSquares float64

	for i := 0; i+2 < len(carrier.Pix); i += 3 {
		a, b := carrier.Pix[i:i+3], encoded.Pix[i:i+3]
		for c := 0; c < 3; c++ {
			d := float64(a[c]) - float64(b[c])
			sumSquares += d * d
		}
		if a[0] == b[0] && a[1] == b[1] && a[2] == b[2] {
			continue
		}
		result.ChangedPixels++
		de := toColorful(a).DistanceCIEDE2000(toColorful(b))
		sumDeltaE += de
		if de > result.MaxDeltaE {
			result.MaxDeltaE = de
		}
	}

	if result.TotalPixels > 0 {
		result.MeanDeltaE = round(sumDeltaE/float64(result.TotalPixels), 4)
	}
	result.MaxDeltaE = round(result.MaxDeltaE, 4)
	if sumSquares > 0 {
		mse := sumSquares / float64(len(carrier.Pix))
		result.PSNR = round(10*math.Log10(255*255/mse), 2)
	}
	return result, nil
}

func toColorful(rgb []byte) colorful.Color {
	return colorful.Color{
		R: float64(rgb[0]) / 255.0,
		G: float64(rgb[1]) / 255.0,
		B: float64(rgb[2]) / 255.0,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
