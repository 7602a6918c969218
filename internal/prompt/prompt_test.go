package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out), out
}

func TestLine(t *testing.T) {
	p, out := newTestPrompter("  hello world  \n")
	got, err := p.Line("Say something")
	if err != nil {
		t.Fatalf("Line returned error: %v", err)
	}
	if got != "hello world" {
		t.Errorf("Line = %q, want %q", got, "hello world")
	}
	if !strings.Contains(out.String(), "Say something:") {
		t.Errorf("prompt output = %q, missing label", out.String())
	}
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"maybe\n", false},
	}
	for _, tc := range cases {
		p, _ := newTestPrompter(tc.input)
		got, err := p.Confirm("Proceed?")
		if err != nil {
			t.Fatalf("Confirm(%q) returned error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestDestination(t *testing.T) {
	p, _ := newTestPrompter("+15551234567\n")
	got, err := p.Destination()
	if err != nil {
		t.Fatalf("Destination returned error: %v", err)
	}
	if got != "+15551234567" {
		t.Errorf("Destination = %q", got)
	}
}

func TestDestinationEmpty(t *testing.T) {
	p, _ := newTestPrompter("\n")
	if _, err := p.Destination(); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Destination error = %v, want ErrEmptyInput", err)
	}
}

func TestDestinationWithoutPlusWarnsAndConfirms(t *testing.T) {
	p, out := newTestPrompter("5551234567\ny\n")
	got, err := p.Destination()
	if err != nil {
		t.Fatalf("Destination returned error: %v", err)
	}
	if got != "5551234567" {
		t.Errorf("Destination = %q", got)
	}
	if !strings.Contains(out.String(), "Warning") {
		t.Errorf("expected a warning in output %q", out.String())
	}
}

func TestDestinationWithoutPlusDeclined(t *testing.T) {
	p, _ := newTestPrompter("5551234567\nn\n")
	if _, err := p.Destination(); !errors.Is(err, ErrCancelled) {
		t.Errorf("Destination error = %v, want ErrCancelled", err)
	}
}

func TestBody(t *testing.T) {
	p, _ := newTestPrompter("hello there\n")
	got, err := p.Body(Limits{BodyWarn: 160, BodyMax: 1600})
	if err != nil {
		t.Fatalf("Body returned error: %v", err)
	}
	if got != "hello there" {
		t.Errorf("Body = %q", got)
	}
}

func TestBodyEmpty(t *testing.T) {
	p, _ := newTestPrompter("\n")
	if _, err := p.Body(Limits{BodyWarn: 160, BodyMax: 1600}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Body error = %v, want ErrEmptyInput", err)
	}
}

func TestBodyOverHardLimit(t *testing.T) {
	p, _ := newTestPrompter(strings.Repeat("x", 20) + "\n")
	_, err := p.Body(Limits{BodyWarn: 5, BodyMax: 10})
	if err == nil || !strings.Contains(err.Error(), "character limit") {
		t.Errorf("Body error = %v, want hard limit error", err)
	}
}

func TestBodyOverSoftLimitConfirmed(t *testing.T) {
	long := strings.Repeat("x", 200)
	p, out := newTestPrompter(long + "\ny\n")
	got, err := p.Body(Limits{BodyWarn: 160, BodyMax: 1600})
	if err != nil {
		t.Fatalf("Body returned error: %v", err)
	}
	if got != long {
		t.Errorf("Body returned %d chars, want %d", len(got), len(long))
	}
	if !strings.Contains(out.String(), "2 segments") {
		t.Errorf("expected segment count in warning, got %q", out.String())
	}
}

func TestBodyOverSoftLimitDeclined(t *testing.T) {
	p, _ := newTestPrompter(strings.Repeat("x", 200) + "\nn\n")
	if _, err := p.Body(Limits{BodyWarn: 160, BodyMax: 1600}); !errors.Is(err, ErrCancelled) {
		t.Errorf("Body error = %v, want ErrCancelled", err)
	}
}
