package codec

import (
	"errors"
	"sync"
	"testing"
)

func TestAlphabet_RoundTrip(t *testing.T) {
	if len(Alphabet) != 64 {
		t.Fatalf("alphabet has %d characters, want 64", len(Alphabet))
	}
	for i := 0; i < len(Alphabet); i++ {
		c := Alphabet[i]
		code, err := Forward(c)
		if err != nil {
			t.Fatalf("Forward(%q) failed: %v", c, err)
		}
		if int(code) != i {
			t.Errorf("Forward(%q): got %d, want %d", c, code, i)
		}
		back, err := Reverse(code)
		if err != nil {
			t.Fatalf("Reverse(%d) failed: %v", code, err)
		}
		if back != c {
			t.Errorf("Reverse(Forward(%q)): got %q", c, back)
		}
	}
}

func TestForward_Invalid(t *testing.T) {
	for _, c := range []byte{'=', '-', '_', ' ', 0, 0xFF} {
		_, err := Forward(c)
		if !errors.Is(err, ErrInvalidSymbol) {
			t.Errorf("Forward(%#02x): got %v, want ErrInvalidSymbol", c, err)
		}
	}
}

func TestReverse_Invalid(t *testing.T) {
	for _, code := range []byte{64, 100, 255} {
		_, err := Reverse(code)
		if !errors.Is(err, ErrInvalidSymbol) {
			t.Errorf("Reverse(%d): got %v, want ErrInvalidSymbol", code, err)
		}
		var se *SymbolError
		if !errors.As(err, &se) || se.Value != code {
			t.Errorf("Reverse(%d): error does not carry the offending code: %v", code, err)
		}
	}
}

func TestAlphabet_ConcurrentLookups(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < len(Alphabet); i++ {
				code, err := Forward(Alphabet[i])
				if err != nil || int(code) != i {
					t.Errorf("Forward(%q): got %d, %v", Alphabet[i], code, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
