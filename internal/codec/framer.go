package codec

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const padChar = '='

// Frame converts a raw payload into a symbol stream.
//
// The payload is base64 encoded, every non-padding character is mapped to its
// 6-bit code, and a pad marker (number of stripped '=' plus one) is appended.
// The stream is then right-padded with zero filler until its length is a
// multiple of align. Callers pick align for the destination packer: 4 for
// static packing, symbols-per-pixel-triple for hidden packing.
func Frame(payload []byte, align int) ([]byte, error) {
	if align < 1 {
		return nil, fmt.Errorf("frame alignment must be positive, got %d", align)
	}
	text := base64.StdEncoding.EncodeToString(payload)

	symbols := make([]byte, 0, len(text)+align)
	marker := byte(1)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == padChar {
			marker++
			continue
		}
		code, err := Forward(c)
		if err != nil {
			if se, ok := err.(*SymbolError); ok {
				se.Index = i
			}
			return nil, err
		}
		symbols = append(symbols, code)
	}
	symbols = append(symbols, marker)

	for len(symbols)%align != 0 {
		symbols = append(symbols, 0)
	}
	return symbols, nil
}

// Unframe is the inverse of Frame. Trailing zero filler is skipped until the
// pad marker is found; the symbols before it are mapped back to base64 text.
// The input slice is not modified.
func Unframe(symbols []byte) ([]byte, error) {
	end := len(symbols) - 1
	for end >= 0 && symbols[end] == 0 {
		end--
	}
	if end < 0 {
		return nil, decodeErr("no pad marker in symbol stream", nil)
	}
	marker := symbols[end]
	if marker < 1 || marker > 3 {
		return nil, decodeErr(fmt.Sprintf("pad marker %d at index %d out of range", marker, end), nil)
	}

	var sb strings.Builder
	sb.Grow(end + int(marker) - 1)
	for i, code := range symbols[:end] {
		c, err := Reverse(code)
		if err != nil {
			if se, ok := err.(*SymbolError); ok {
				se.Index = i
			}
			return nil, decodeErr("symbol outside alphabet", err)
		}
		sb.WriteByte(c)
	}
	for i := byte(1); i < marker; i++ {
		sb.WriteByte(padChar)
	}

	payload, err := base64.StdEncoding.DecodeString(sb.String())
	if err != nil {
		return nil, decodeErr("base64", err)
	}
	return payload, nil
}
