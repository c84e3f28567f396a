package validation

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"9876543210":        "9876543210",
		"+91 98765-43210":   "+919876543210",
		" (022) 2345 6789 ": "02223456789",
	}
	for in, want := range cases {
		got, err := NormalizePhone(in)
		if err != nil {
			t.Fatalf("NormalizePhone(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}

	for _, bad := range []string{"", "12345", "98765x43210", "98+76543210", "1234567890123456"} {
		if _, err := NormalizePhone(bad); err == nil {
			t.Errorf("NormalizePhone(%q) should fail", bad)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	for _, ok := range []string{"asha@example.com", " Ravi.K+jobs@Mail.Example.IN "} {
		if err := ValidateEmail(ok); err != nil {
			t.Errorf("ValidateEmail(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "asha", "a@b@c.com", "@example.com", "asha@example", "as ha@example.com"} {
		if err := ValidateEmail(bad); err == nil {
			t.Errorf("ValidateEmail(%q) should fail", bad)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("plumber42"); err != nil {
		t.Fatalf("ValidatePassword: %v", err)
	}
	for _, bad := range []string{"short1", "onlyletters", "1234567890"} {
		if err := ValidatePassword(bad); err == nil {
			t.Errorf("ValidatePassword(%q) should fail", bad)
		}
	}
}
