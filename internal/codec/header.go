package codec

import (
	"fmt"
	"strings"
)

// Mode selects how the payload is carried by the pixel buffer.
type Mode uint8

const (
	// ModeStatic synthesizes a dedicated image holding only the payload.
	ModeStatic Mode = 1
	// ModeHidden merges the payload into the low bits of a carrier image.
	ModeHidden Mode = 2
)

// FormatVersion is the wire format version written into every header.
const FormatVersion = 1

// HeaderSize is the number of bytes occupied by the meta header.
const HeaderSize = 3

// StaticDepth is the channel bit width used by static mode.
const StaticDepth = 8

const tagMask = 0x07

// ParseMode converts a mode name ("static" or "hidden") into a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "static":
		return ModeStatic, nil
	case "hidden":
		return ModeHidden, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, name)
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m == ModeStatic || m == ModeHidden
}

func (m Mode) String() string {
	switch m {
	case ModeStatic:
		return "static"
	case ModeHidden:
		return "hidden"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// MarshalText lets modes appear by name in JSON and YAML.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText parses a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Header is the meta tag that prefixes every pixel buffer.
type Header struct {
	Mode    Mode `json:"mode"`
	Depth   int  `json:"depth"`
	Version int  `json:"version"`
}

// Bytes returns the three tag bytes, each masked to its low 3 bits.
// A depth of 8 is stored as 0.
func (h Header) Bytes() [HeaderSize]byte {
	return [HeaderSize]byte{
		byte(h.Mode) & tagMask,
		byte(h.Depth%8) & tagMask,
		byte(h.Version) & tagMask,
	}
}

// Blend writes the tag into dst by replacing the low 3 bits of the carrier's
// first three bytes. The carrier's top 5 bits at that pixel are preserved.
func (h Header) Blend(dst, carrier []byte) {
	tag := h.Bytes()
	for i := range tag {
		dst[i] = (carrier[i] &^ tagMask) | tag[i]
	}
}

// ReadHeader extracts the meta header from the first pixel of buf.
func ReadHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, decodeErr(fmt.Sprintf("buffer of %d bytes has no meta header", len(buf)), nil)
	}
	depth := int(buf[1] & tagMask)
	if depth == 0 {
		depth = 8
	}
	h := Header{
		Mode:    Mode(buf[0] & tagMask),
		Depth:   depth,
		Version: int(buf[2] & tagMask),
	}
	if !h.Mode.Valid() {
		return h, decodeErr("unknown mode tag", fmt.Errorf("%w: %d", ErrInvalidMode, uint8(h.Mode)))
	}
	if h.Version != FormatVersion {
		return h, decodeErr(fmt.Sprintf("unsupported format version %d", h.Version), nil)
	}
	return h, nil
}
