package checksum

import "testing"

func TestLuhn_TruePositives(t *testing.T) {
	cases := []string{
		"4532015112830366",       // visa
		"5500 0000 0000 0004",    // mastercard, spaced
		"3400 0000 0000 009",     // amex-length
	}
	for _, c := range cases {
		if !Luhn(c) {
			t.Errorf("Luhn(%q) = false, want true", c)
		}
	}
}

func TestLuhn_TrueNegatives(t *testing.T) {
	cases := []string{
		"4532015112830367", // bad check digit
		"1234567890123",    // random 13 digits
		"123",              // too short
	}
	for _, c := range cases {
		if Luhn(c) {
			t.Errorf("Luhn(%q) = true, want false", c)
		}
	}
}
