package sender

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPolicyClassify(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		code int
		want Cause
	}{
		{21211, CauseInvalidDestination},
		{21214, CauseInvalidDestination},
		{21614, CauseInvalidDestination},
		{21212, CauseInvalidOrigin},
		{21606, CauseInvalidOrigin},
		{21660, CauseInvalidOrigin},
		{21608, CauseUnverifiedRecipient},
		{21610, CauseUnverifiedRecipient},
		{20003, CauseAuthFailure},
		{20403, CauseAuthFailure},
		{20429, CauseTransient},
		{30001, CauseTransient},
		{0, CauseTransient},
		{99999, CauseTransient},
	}

	for _, tc := range cases {
		if got := policy.Classify(tc.code); got != tc.want {
			t.Errorf("Classify(%d) = %s, want %s", tc.code, got, tc.want)
		}
	}
}

func TestDefaultPolicyRetryable(t *testing.T) {
	policy := DefaultPolicy()

	permanent := []Cause{
		CauseInvalidDestination,
		CauseInvalidOrigin,
		CauseUnverifiedRecipient,
		CauseAuthFailure,
	}
	for _, cause := range permanent {
		if policy.Retryable(cause) {
			t.Errorf("Retryable(%s) = true, want false", cause)
		}
	}
	if !policy.Retryable(CauseTransient) {
		t.Error("Retryable(transient) = false, want true")
	}
	if !policy.Retryable(Cause("unheard_of")) {
		t.Error("Retryable(unknown cause) = false, want true")
	}
}

func TestDefaultPolicyHints(t *testing.T) {
	policy := DefaultPolicy()

	for _, cause := range []Cause{
		CauseInvalidDestination,
		CauseInvalidOrigin,
		CauseUnverifiedRecipient,
		CauseAuthFailure,
		CauseTransient,
	} {
		if policy.Hint(cause) == "" {
			t.Errorf("Hint(%s) is empty", cause)
		}
	}
}

func TestLoadPolicyOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	content := `causes:
  invalid_destination:
    codes: [30006]
    hint: "number unreachable, check the country"
  transient:
    retryable: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write policy file: %v", err)
	}

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy returned error: %v", err)
	}

	if got := policy.Classify(30006); got != CauseInvalidDestination {
		t.Errorf("Classify(30006) = %s, want %s", got, CauseInvalidDestination)
	}
	if got := policy.Hint(CauseInvalidDestination); got != "number unreachable, check the country" {
		t.Errorf("overridden hint = %q", got)
	}
	if policy.Retryable(CauseTransient) {
		t.Error("transient retryable override not applied")
	}
	// Untouched entries keep the defaults.
	if got := policy.Classify(20003); got != CauseAuthFailure {
		t.Errorf("Classify(20003) = %s, want %s", got, CauseAuthFailure)
	}
	if policy.Retryable(CauseAuthFailure) {
		t.Error("auth_failure became retryable")
	}
}

func TestLoadPolicyErrors(t *testing.T) {
	if _, err := LoadPolicy(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for a missing policy file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("causes: [not a map"), 0o644); err != nil {
		t.Fatalf("write policy file: %v", err)
	}
	if _, err := LoadPolicy(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
