package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"national format", "098765 43210", "+919876543210"},
		{"already e164", "+919876543210", "+919876543210"},
		{"with spaces", "  +91 98765 43210 ", "+919876543210"},
		{"invalid kept verbatim", "12", "12"},
		{"empty", "   ", ""},
	}

	for _, tc := range cases {
		if got := NormalizeE164(tc.input); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
