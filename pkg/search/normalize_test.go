package search

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"Mugs", "mugs"},
		{"Café", "cafe"},
		{"ÉLODIE", "elodie"},
		{"T-Shirts", "t-shirts"},
		{"crème brûlée", "creme brulee"},
		{"", ""},
		{"  Mixed  Case  ", "  mixed  case  "},
	}

	for _, tc := range testCases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Café", "MÜNCHEN", "plain", "Ñandú", "沖縄"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}
