package codec

// Alphabet is the ordered symbol alphabet. A character's index is its 6-bit code.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const invalidCode = 0xFF

// forwardTable maps a character byte to its code, invalidCode when absent.
var forwardTable = func() (t [256]byte) {
	for i := range t {
		t[i] = invalidCode
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = byte(i)
	}
	return t
}()

// reverseTable maps a code back to its character.
var reverseTable = func() (t [64]byte) {
	copy(t[:], Alphabet)
	return t
}()

// Forward returns the 6-bit code of an alphabet character.
func Forward(c byte) (byte, error) {
	code := forwardTable[c]
	if code == invalidCode {
		return 0, &SymbolError{Value: c}
	}
	return code, nil
}

// Reverse returns the alphabet character for a 6-bit code.
func Reverse(code byte) (byte, error) {
	if int(code) >= len(reverseTable) {
		return 0, &SymbolError{Value: code}
	}
	return reverseTable[code], nil
}
