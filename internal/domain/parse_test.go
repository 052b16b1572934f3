package domain

import (
	"testing"
	"time"
)

func TestParseHours_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"2", 2 * time.Hour},
		{"0.5", 30 * time.Minute},
		{"1.5", 90 * time.Minute},
		{" 24 ", 24 * time.Hour},
	}
	for _, c := range cases {
		got, err := ParseHours(c.in)
		if err != nil {
			t.Fatalf("ParseHours(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseHours(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseHours_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-1", "0", "1h", "NaN", "+Inf", "1,5"} {
		if _, err := ParseHours(in); err == nil {
			t.Fatalf("ParseHours(%q): expected error", in)
		}
	}
}

func TestProfileConfigured(t *testing.T) {
	var p *Profile
	if p.Configured() {
		t.Fatal("nil profile must not be configured")
	}
	p = &Profile{ChatID: 1, Name: "Alex"}
	if p.Configured() {
		t.Fatal("profile without city must not be configured")
	}
	p.City = "Paris"
	if !p.Configured() {
		t.Fatal("profile with city must be configured")
	}
}
