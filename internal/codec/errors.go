package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSymbol reports a character or code outside the 64-symbol alphabet.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrDecode reports a buffer that cannot be turned back into a payload.
	ErrDecode = errors.New("decode failed")

	// ErrInvalidUTF8 reports a decoded payload that is not valid UTF-8 text.
	// DecodeBytes returns the raw payload for such buffers.
	ErrInvalidUTF8 = errors.New("payload is not valid UTF-8")

	// ErrCapacity reports a carrier too small for the payload.
	ErrCapacity = errors.New("carrier capacity exceeded")

	// ErrNotSupported reports a mode/depth combination with no packing scheme.
	ErrNotSupported = errors.New("not supported")

	// ErrCarrierRequired reports a hidden-mode encode without a carrier.
	ErrCarrierRequired = errors.New("hidden mode requires a carrier image")

	// ErrInvalidMode reports an unrecognized mode name or tag.
	ErrInvalidMode = errors.New("invalid mode")
)

// SymbolError identifies the offending position of an alphabet lookup failure.
type SymbolError struct {
	Index int  // position in the character or symbol stream
	Value byte // the character (forward lookup) or code (reverse lookup)
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %#02x at index %d", e.Value, e.Index)
}

func (e *SymbolError) Is(target error) bool { return target == ErrInvalidSymbol }

// DecodeError wraps every failure raised while turning pixels back into a payload.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "decode failed: " + e.Reason
	}
	return fmt.Sprintf("decode failed: %s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// CapacityError reports how many carrier bytes a hidden-mode encode needed.
type CapacityError struct {
	Depth     int
	Symbols   int
	Required  int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("carrier too small: %d symbols at depth %d need %d bytes, carrier has %d",
		e.Symbols, e.Depth, e.Required, e.Available)
}

func (e *CapacityError) Is(target error) bool { return target == ErrCapacity }

// NotSupportedError reports a depth that the requested mode cannot pack.
type NotSupportedError struct {
	Mode  Mode
	Depth int
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("depth %d not supported in %s mode", e.Depth, e.Mode)
}

func (e *NotSupportedError) Is(target error) bool { return target == ErrNotSupported }

func decodeErr(reason string, err error) error {
	return &DecodeError{Reason: reason, Err: err}
}
