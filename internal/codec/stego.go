package codec

import "fmt"

const (
	symbolBits   = 6
	channels     = 3
	minStegoBits = 2 // trailing carrier bytes always lose at least this many low bits
)

// bitLayout describes how 6-bit symbols are spread over the low bits of
// carrier channels.
//
// Symbols are treated as one MSB-first bit stream and cut into groups of
// depth bits, one group per channel byte. An accumulator carries the bits of
// a symbol that straddles two channels. Only depths where one pixel triple
// holds a whole number of symbols are accepted, so the accumulator is empty at
// every pixel boundary and a stream aligned to symbolsPerTriple fills an exact
// number of pixels:
//
//	depth 2: 1 symbol per triple, three 2-bit groups (R, G, B)
//	depth 4: 2 symbols per triple, the second symbol starts in G
//	depth 6: 3 symbols per triple, one per channel
type bitLayout struct {
	depth            int
	symbolsPerTriple int
}

// stegoLayout returns the packing layout for a hidden-mode depth.
func stegoLayout(depth int) (bitLayout, error) {
	if depth < 2 || depth > symbolBits || (channels*depth)%symbolBits != 0 {
		return bitLayout{}, &NotSupportedError{Mode: ModeHidden, Depth: depth}
	}
	return bitLayout{depth: depth, symbolsPerTriple: channels * depth / symbolBits}, nil
}

func (l bitLayout) mask() byte { return byte(1<<l.depth) - 1 }

// carrierBytes returns how many channel bytes n symbols occupy.
func (l bitLayout) carrierBytes(n int) int {
	return (n*symbolBits + l.depth - 1) / l.depth
}

// trailingMask covers the low bits cleared on carrier bytes past the payload.
// It always spans at least minStegoBits and never less than depth, so the
// extractor reads zero filler after the pad marker.
func (l bitLayout) trailingMask() byte {
	bits := l.depth
	if bits < minStegoBits {
		bits = minStegoBits
	}
	return byte(1<<bits) - 1
}

// merge writes symbols into the low bits of carrier, starting at offset, and
// returns the next unwritten offset. dst and carrier must be the same length
// and symbols must be aligned to symbolsPerTriple.
func (l bitLayout) merge(dst, carrier []byte, offset int, symbols []byte) int {
	mask := l.mask()
	var acc uint32
	var held int
	i := offset
	for _, s := range symbols {
		acc = acc<<symbolBits | uint32(s&0x3F)
		held += symbolBits
		for held >= l.depth {
			held -= l.depth
			group := byte(acc>>held) & mask
			dst[i] = carrier[i]&^mask | group
			i++
		}
		acc &= 1<<held - 1
	}
	return i
}

// extract reads the low bits of every byte in pix and regroups them into
// 6-bit symbols. Incomplete trailing bits are discarded.
func (l bitLayout) extract(pix []byte) []byte {
	mask := l.mask()
	out := make([]byte, 0, len(pix)*l.depth/symbolBits)
	var acc uint32
	var held int
	for _, b := range pix {
		acc = acc<<l.depth | uint32(b&mask)
		held += l.depth
		if held >= symbolBits {
			held -= symbolBits
			out = append(out, byte(acc>>held)&0x3F)
			acc &= 1<<held - 1
		}
	}
	return out
}

// MergeHidden embeds a framed symbol stream into a copy of the carrier.
//
// The meta header is blended into the first pixel, the symbols are merged
// into the low depth bits of the following channel bytes, and the remaining
// carrier bytes are copied with their low bits cleared. The carrier is never
// modified. The capacity check runs before any output is allocated.
func MergeHidden(carrier []byte, symbols []byte, depth int) ([]byte, error) {
	layout, err := stegoLayout(depth)
	if err != nil {
		return nil, err
	}
	if len(symbols)%layout.symbolsPerTriple != 0 {
		return nil, fmt.Errorf("depth %d needs a multiple of %d symbols, got %d",
			depth, layout.symbolsPerTriple, len(symbols))
	}
	if len(carrier)%channels != 0 {
		return nil, fmt.Errorf("carrier of %d bytes is not whole RGB triples", len(carrier))
	}
	required := RequiredCarrierBytes(len(symbols), depth)
	if len(carrier) < required {
		return nil, &CapacityError{
			Depth:     depth,
			Symbols:   len(symbols),
			Required:  required,
			Available: len(carrier),
		}
	}

	out := make([]byte, len(carrier))
	Header{Mode: ModeHidden, Depth: depth, Version: FormatVersion}.Blend(out, carrier)
	next := layout.merge(out, carrier, HeaderSize, symbols)

	cleared := layout.trailingMask()
	for i := next; i < len(carrier); i++ {
		out[i] = carrier[i] &^ cleared
	}
	return out, nil
}

// ExtractHidden recovers the symbol stream from a hidden-mode buffer at the
// given depth. The header pixel is skipped.
func ExtractHidden(pix []byte, depth int) ([]byte, error) {
	layout, err := stegoLayout(depth)
	if err != nil {
		return nil, err
	}
	if len(pix) < HeaderSize {
		return nil, decodeErr("hidden buffer shorter than meta header", nil)
	}
	return layout.extract(pix[HeaderSize:]), nil
}

// HiddenAlignment returns the framing alignment for a hidden-mode depth.
func HiddenAlignment(depth int) (int, error) {
	layout, err := stegoLayout(depth)
	if err != nil {
		return 0, err
	}
	return layout.symbolsPerTriple, nil
}

// RequiredCarrierBytes returns the carrier size needed to hold n symbols at
// depth, header included. The depth is not validated.
func RequiredCarrierBytes(n, depth int) int {
	if depth <= 0 {
		return HeaderSize
	}
	return HeaderSize + bitLayout{depth: depth}.carrierBytes(n)
}
