package codec

import "fmt"

// Plan describes the space a payload needs before anything is encoded.
type Plan struct {
	Mode    Mode `json:"mode"`
	Depth   int  `json:"depth"`
	Symbols int  `json:"symbols"` // framed symbol count, marker and filler included

	// RequiredBytes is the buffer size the payload occupies, header included.
	RequiredBytes int `json:"required_bytes"`

	// AvailableBytes is the carrier size for hidden mode, or the padded
	// canvas size for static mode.
	AvailableBytes int `json:"available_bytes"`

	Width  int  `json:"width"`
	Height int  `json:"height"`
	Fits   bool `json:"fits"`
}

// FramedLength returns len(Frame(payload, align)) for a payload of n bytes.
func FramedLength(n, align int) int {
	groups := (n + 2) / 3
	pads := (3 - n%3) % 3
	symbols := groups*4 - pads + 1
	if align > 1 && symbols%align != 0 {
		symbols += align - symbols%align
	}
	return symbols
}

// PlanCapacity sizes a payload of n bytes for the given mode and depth. For
// hidden mode, carrier supplies the available space; a nil carrier plans
// against zero bytes.
func PlanCapacity(n int, mode Mode, depth int, carrier *Image) (*Plan, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative payload length %d", n)
	}
	switch mode {
	case ModeStatic:
		if depth != StaticDepth && depth != 0 {
			return nil, &NotSupportedError{Mode: mode, Depth: depth}
		}
		symbols := FramedLength(n, 4)
		required := HeaderSize + symbols/4*3
		width, height, padding := StaticGeometry(required)
		return &Plan{
			Mode:           mode,
			Depth:          StaticDepth,
			Symbols:        symbols,
			RequiredBytes:  required,
			AvailableBytes: required + padding,
			Width:          width,
			Height:         height,
			Fits:           true,
		}, nil
	case ModeHidden:
		align, err := HiddenAlignment(depth)
		if err != nil {
			return nil, err
		}
		symbols := FramedLength(n, align)
		plan := &Plan{
			Mode:          mode,
			Depth:         depth,
			Symbols:       symbols,
			RequiredBytes: RequiredCarrierBytes(symbols, depth),
		}
		if carrier != nil {
			plan.AvailableBytes = len(carrier.Pix)
			plan.Width = carrier.Width
			plan.Height = carrier.Height
		}
		plan.Fits = plan.AvailableBytes >= plan.RequiredBytes
		return plan, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, uint8(mode))
	}
}

// MaxPayload returns the largest payload, in bytes, that fits in a carrier of
// carrierBytes at a hidden-mode depth.
func MaxPayload(carrierBytes, depth int) (int, error) {
	align, err := HiddenAlignment(depth)
	if err != nil {
		return 0, err
	}
	if carrierBytes <= HeaderSize {
		return 0, nil
	}
	// Each symbol needs 6/depth carrier bytes; invert, then step down until it fits.
	n := (carrierBytes - HeaderSize) * depth / symbolBits * 3 / 4
	for n > 0 && RequiredCarrierBytes(FramedLength(n, align), depth) > carrierBytes {
		n--
	}
	if RequiredCarrierBytes(FramedLength(n, align), depth) > carrierBytes {
		return 0, nil
	}
	return n, nil
}
