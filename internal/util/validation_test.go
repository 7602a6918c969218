package util

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"valid us number", "+15551234567", "+15551234567", true},
		{"valid with surrounding space", "  +447911123456  ", "+447911123456", true},
		{"short country code", "+254712345678", "+254712345678", true},
		{"missing plus", "15551234567", "", false},
		{"leading zero", "+05551234567", "", false},
		{"letters", "+1555abc4567", "", false},
		{"too long", "+123456789012345678", "", false},
		{"empty", "", "", false},
		{"just plus", "+", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeE164(tc.input)
			if tc.ok {
				if err != nil {
					t.Fatalf("NormalizeE164(%q) error = %v", tc.input, err)
				}
				if got != tc.want {
					t.Errorf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
				}
				return
			}
			if !errors.Is(err, ErrInvalidPhone) {
				t.Errorf("NormalizeE164(%q) error = %v, want ErrInvalidPhone", tc.input, err)
			}
		})
	}
}

func TestCountryCode(t *testing.T) {
	cases := []struct {
		number string
		want   string
	}{
		{"+15551234567", "155"},
		{"+44", "44"},
		{"+1", "1"},
	}
	for _, tc := range cases {
		if got := CountryCode(tc.number); got != tc.want {
			t.Errorf("CountryCode(%q) = %q, want %q", tc.number, got, tc.want)
		}
	}
}

func TestValidateTemplateName(t *testing.T) {
	valid := []string{"welcome", "order_update", "promo-2024", "A1"}
	for _, name := range valid {
		if _, err := ValidateTemplateName(name); err != nil {
			t.Errorf("ValidateTemplateName(%q) error = %v", name, err)
		}
	}

	invalid := []string{"", "  ", "has space", "path/slash", "../up", strings.Repeat("x", 65)}
	for _, name := range invalid {
		if _, err := ValidateTemplateName(name); !errors.Is(err, ErrInvalidTemplateName) {
			t.Errorf("ValidateTemplateName(%q) error = %v, want ErrInvalidTemplateName", name, err)
		}
	}
}

func TestEnsureMaxRunes(t *testing.T) {
	if err := EnsureMaxRunes("body", "hello", 10); err != nil {
		t.Errorf("EnsureMaxRunes under limit: %v", err)
	}
	if err := EnsureMaxRunes("body", "hello", 3); err == nil {
		t.Error("EnsureMaxRunes over limit returned nil")
	}
	if err := EnsureMaxRunes("body", "héllo", 5); err != nil {
		t.Errorf("EnsureMaxRunes counts runes, not bytes: %v", err)
	}
	if err := EnsureMaxRunes("body", "anything", 0); err != nil {
		t.Errorf("EnsureMaxRunes with zero limit: %v", err)
	}
}

func TestEnsureMinRunes(t *testing.T) {
	if err := EnsureMinRunes("body", "hello", 3); err != nil {
		t.Errorf("EnsureMinRunes over minimum: %v", err)
	}
	if err := EnsureMinRunes("body", "hi", 3); err == nil {
		t.Error("EnsureMinRunes under minimum returned nil")
	}
	if err := EnsureMinRunes("body", "", 0); err != nil {
		t.Errorf("EnsureMinRunes with zero minimum: %v", err)
	}
}
