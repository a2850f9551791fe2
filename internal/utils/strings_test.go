package utils

import "testing"

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Rick@Test.COM "); got != "rick@test.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Standard Twin", "standard-twin"},
		{"Deluxe  Suite #2", "deluxe-suite-2"},
		{"  Luxe  ", "luxe"},
		{"Economy!", "economy"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	for _, ok := range []string{"standard-twin", "luxe", "room-2"} {
		if !IsValidSlug(ok) {
			t.Errorf("IsValidSlug(%q) = false", ok)
		}
	}
	for _, bad := range []string{"", "Standard", "люкс", "room 2", "a_b"} {
		if IsValidSlug(bad) {
			t.Errorf("IsValidSlug(%q) = true", bad)
		}
	}
}
