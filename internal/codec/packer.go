package codec

import "fmt"

// PackStatic repacks every 4 symbols into 3 full 8-bit channel bytes.
// len(symbols) must be a multiple of 4, which Frame guarantees for align 4.
func PackStatic(symbols []byte) ([]byte, error) {
	if len(symbols)%4 != 0 {
		return nil, fmt.Errorf("static packing needs a multiple of 4 symbols, got %d", len(symbols))
	}
	out := make([]byte, 0, len(symbols)/4*3)
	for i := 0; i < len(symbols); i += 4 {
		s0, s1, s2, s3 := symbols[i], symbols[i+1], symbols[i+2], symbols[i+3]
		out = append(out,
			s0<<2|s1>>4,
			(s1&0x0F)<<4|s2>>2,
			(s2&0x03)<<6|s3,
		)
	}
	return out, nil
}

// UnpackStatic is the inverse of PackStatic, yielding 4 symbols per 3 bytes.
func UnpackStatic(pix []byte) ([]byte, error) {
	if len(pix)%3 != 0 {
		return nil, decodeErr(fmt.Sprintf("static pixel data of %d bytes is not whole RGB triples", len(pix)), nil)
	}
	out := make([]byte, 0, len(pix)/3*4)
	for i := 0; i < len(pix); i += 3 {
		b0, b1, b2 := pix[i], pix[i+1], pix[i+2]
		out = append(out,
			b0>>2,
			(b0&0x03)<<4|b1>>4,
			(b1&0x0F)<<2|b2>>6,
			b2&0x3F,
		)
	}
	return out, nil
}
