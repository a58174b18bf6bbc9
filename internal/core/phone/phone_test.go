package phone

import "testing"

func TestNormalize_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity e164", in: "+15551234567", out: "+15551234567"},
		{name: "trims whitespace", in: "  +1555  ", out: "+1555"},
		{name: "strips whatsapp prefix", in: "whatsapp:+15551234567", out: "+15551234567"},
		{name: "strips tel prefix", in: "tel:+442071838750", out: "+442071838750"},
		{name: "prefix is case insensitive", in: "WhatsApp:+1555", out: "+1555"},
		{name: "drops punctuation", in: "+1 (555) 123-4567", out: "+15551234567"},
		{name: "plus only valid at start", in: "1555+123", out: "1555123"},
		{name: "empty stays empty", in: "", out: ""},
		{name: "whitespace only", in: "   ", out: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}
