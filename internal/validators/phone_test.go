package validators

import "testing"

func TestIsPhoneValid(t *testing.T) {
	valid := []string{
		"0551234567",
		"0661234567",
		"0771234567",
		"+213551234567",
		"0551 23 45 67",
		"05-51-23-45-67",
		"(0551) 234567",
	}
	for _, p := range valid {
		if !IsPhoneValid(p) {
			t.Errorf("%q devrait être accepté", p)
		}
	}

	invalid := []string{
		"",
		"123",
		"0451234567",     // préfixe 04 hors plage mobile
		"055123456",      // trop court
		"05512345678",    // trop long
		"+33612345678",   // indicatif étranger
		"21355 1234567",  // indicatif sans +
		"zéro cinq cinq", // pas un numéro
	}
	for _, p := range invalid {
		if IsPhoneValid(p) {
			t.Errorf("%q devrait être refusé", p)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct{ in, want string }{
		{"0551 23 45 67", "0551234567"},
		{"05-51-23-45-67", "0551234567"},
		{"(0551)234567", "0551234567"},
		{"+213 551 234 567", "+213551234567"},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, attendu %q", tc.in, got, tc.want)
		}
	}
}
