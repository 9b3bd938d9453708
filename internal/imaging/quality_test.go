package imaging

import (
	"testing"

	"github.com/ironsheep/pixcodec/internal/codec"
)

func TestCompareCarrier_Identical(t *testing.T) {
	img := gradientBuffer(10, 10)
	res, err := CompareCarrier(img, img)
	if err != nil {
		t.Fatalf("CompareCarrier failed: %v", err)
	}
	if res.ChangedPixels != 0 || res.MeanDeltaE != 0 || res.MaxDeltaE != 0 || res.PSNR != 0 {
		t.Errorf("identical images should report no distortion: %+v", res)
	}
	if res.TotalPixels != 100 {
		t.Errorf("TotalPixels: got %d, want 100", res.TotalPixels)
	}
}

func TestCompareCarrier_HiddenEncode(t *testing.T) {
	carrier := gradientBuffer(32, 32)
	encoded, err := codec.Encode("the quick brown fox", codec.ModeHidden, 2, carrier)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	res, err := CompareCarrier(carrier, encoded)
	if err != nil {
		t.Fatalf("CompareCarrier failed: %v", err)
	}
	if res.ChangedPixels == 0 {
		t.Error("hidden encode should change some pixels")
	}
	if res.MaxDeltaE <= 0 || res.MeanDeltaE > res.MaxDeltaE {
		t.Errorf("inconsistent deltaE: %+v", res)
	}
	// Low 2 bits of each channel change at most by 3 (header pixel by 7).
	if res.PSNR < 35 {
		t.Errorf("PSNR too low for depth-2 embedding: %.2f dB", res.PSNR)
	}
}

func TestCompareCarrier_Mismatch(t *testing.T) {
	if _, err := CompareCarrier(gradientBuffer(4, 4), gradientBuffer(4, 5)); err == nil {
		t.Error("expected dimension mismatch error")
	}
}
