// Package codec converts arbitrary payloads into RGB pixel buffers and back.
//
// Two modes are supported:
//   - Static: a dedicated image is synthesized whose pixels carry nothing but
//     the payload.
//   - Hidden: the payload is merged into the low-order bits of each channel of
//     a caller-supplied carrier image, leaving the carrier's high-order bits
//     (and therefore its appearance) intact.
//
// # Pipeline
//
// Encoding runs the payload through four stages:
//
//  1. Standard base64 encoding of the raw bytes.
//  2. Framing: each base64 character becomes a 6-bit symbol, the stripped '='
//     padding is recorded in a trailing pad marker, and zero filler aligns the
//     stream to the destination packer.
//  3. Packing: symbols are repacked into 8-bit channels (static) or spread over
//     the low depth bits of carrier channels (hidden).
//  4. A 3-byte meta header (mode, depth, version) is placed in front of the
//     pixel data, or blended into the carrier's first pixel in hidden mode.
//
// Decoding reads the meta header first, so callers never pass mode or depth.
//
// # Wire Format
//
// The first three bytes of every buffer produced by this package are:
//
//	byte 0: mode     (low 3 bits: 1=static, 2=hidden)
//	byte 1: depth    (low 3 bits: bit width, 0 means 8)
//	byte 2: version  (low 3 bits: currently 1)
//
// # Thread Safety
//
// Every function is a pure transformation over in-memory buffers. The alphabet
// tables are built during package initialization and never mutated, so all
// functions are safe for concurrent use. Carrier buffers are only read.
//
// # Error Handling
//
// Failures are reported through typed errors that match a sentinel with
// errors.Is: ErrInvalidSymbol, ErrDecode, ErrInvalidUTF8, ErrCapacity,
// ErrNotSupported, ErrCarrierRequired and ErrInvalidMode. Capacity and depth
// checks happen before any output is produced, so a failed encode never
// yields a partial buffer.
package codec
