package codec

import (
	"fmt"
	"unicode/utf8"
)

// Image is a row-major RGB pixel buffer, 3 bytes per pixel with no alpha.
type Image struct {
	Pix    []byte
	Width  int
	Height int
}

// Validate checks that the buffer length matches the dimensions.
func (img *Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", img.Width, img.Height)
	}
	if want := img.Width * img.Height * channels; len(img.Pix) != want {
		return fmt.Errorf("pixel buffer has %d bytes, %dx%d RGB needs %d",
			len(img.Pix), img.Width, img.Height, want)
	}
	return nil
}

// Encode converts text into a pixel buffer. See EncodeBytes.
func Encode(text string, mode Mode, depth int, carrier *Image) (*Image, error) {
	return EncodeBytes([]byte(text), mode, depth, carrier)
}

// EncodeBytes converts a raw payload into a pixel buffer.
//
// In static mode depth must be 8 (0 is accepted as an alias) and carrier is
// ignored; the result is the smallest near-square canvas holding the header
// and the packed symbols. In hidden mode depth must be 2, 4 or 6 and carrier
// is required; the result has the carrier's dimensions and the carrier itself
// is left untouched.
func EncodeBytes(payload []byte, mode Mode, depth int, carrier *Image) (*Image, error) {
	switch mode {
	case ModeStatic:
		if depth != StaticDepth && depth != 0 {
			return nil, &NotSupportedError{Mode: mode, Depth: depth}
		}
		return encodeStatic(payload)
	case ModeHidden:
		return encodeHidden(payload, depth, carrier)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, uint8(mode))
	}
}

func encodeStatic(payload []byte) (*Image, error) {
	symbols, err := Frame(payload, 4)
	if err != nil {
		return nil, err
	}
	packed, err := PackStatic(symbols)
	if err != nil {
		return nil, err
	}

	n := HeaderSize + len(packed)
	width, height, padding := StaticGeometry(n)
	pix := make([]byte, n+padding)
	tag := Header{Mode: ModeStatic, Depth: StaticDepth, Version: FormatVersion}.Bytes()
	copy(pix, tag[:])
	copy(pix[HeaderSize:], packed)

	return &Image{Pix: pix, Width: width, Height: height}, nil
}

func encodeHidden(payload []byte, depth int, carrier *Image) (*Image, error) {
	align, err := HiddenAlignment(depth)
	if err != nil {
		return nil, err
	}
	if carrier == nil {
		return nil, ErrCarrierRequired
	}
	if err := carrier.Validate(); err != nil {
		return nil, fmt.Errorf("carrier: %w", err)
	}

	symbols, err := Frame(payload, align)
	if err != nil {
		return nil, err
	}
	pix, err := MergeHidden(carrier.Pix, symbols, depth)
	if err != nil {
		return nil, err
	}
	return &Image{Pix: pix, Width: carrier.Width, Height: carrier.Height}, nil
}

// Decode recovers text from a pixel buffer. Mode and depth are read from the
// meta header. A payload that is not valid UTF-8 yields an error matching
// ErrInvalidUTF8; use DecodeBytes for binary payloads.
func Decode(pix []byte) (string, error) {
	payload, err := DecodeBytes(pix)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(payload) {
		return "", decodeErr("payload", ErrInvalidUTF8)
	}
	return string(payload), nil
}

// DecodeBytes recovers the raw payload from a pixel buffer.
func DecodeBytes(pix []byte) ([]byte, error) {
	symbols, _, err := Symbols(pix)
	if err != nil {
		return nil, err
	}
	return Unframe(symbols)
}

// Symbols reads the meta header and unpacks the framed symbol stream, filler
// included, without unframing it.
func Symbols(pix []byte) ([]byte, Header, error) {
	h, err := ReadHeader(pix)
	if err != nil {
		return nil, h, err
	}

	switch h.Mode {
	case ModeStatic:
		if h.Depth != StaticDepth {
			return nil, h, decodeErr("static header", &NotSupportedError{Mode: h.Mode, Depth: h.Depth})
		}
		symbols, err := UnpackStatic(pix[HeaderSize:])
		return symbols, h, err
	default:
		symbols, err := ExtractHidden(pix, h.Depth)
		if err != nil {
			return nil, h, decodeErr("hidden header", err)
		}
		return symbols, h, nil
	}
}
