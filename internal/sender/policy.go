package sender

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Cause buckets a send failure for the retry decision. Everything that is
// not positively identified as a configuration or policy problem lands in
// CauseTransient and is retried.
type Cause string

const (
	CauseInvalidDestination  Cause = "invalid_destination"
	CauseInvalidOrigin       Cause = "invalid_origin"
	CauseUnverifiedRecipient Cause = "unverified_recipient"
	CauseAuthFailure         Cause = "auth_failure"
	CauseTransient           Cause = "transient"
)

// Policy maps provider cause codes to causes and causes to a retry
// decision plus a remediation hint. The mapping is data, not hard fact:
// the vendor documents codes informally, so deployments can override the
// table with a YAML file.
type Policy struct {
	codes     map[int]Cause
	retryable map[Cause]bool
	hints     map[Cause]string
}

// DefaultPolicy returns the built-in classification table for Twilio cause
// codes.
func DefaultPolicy() *Policy {
	return &Policy{
		codes: map[int]Cause{
			// Destination number malformed or not reachable as SMS.
			21211: CauseInvalidDestination,
			21214: CauseInvalidDestination,
			21614: CauseInvalidDestination,
			// Origin number invalid, not owned, or not SMS-capable.
			21212: CauseInvalidOrigin,
			21606: CauseInvalidOrigin,
			21660: CauseInvalidOrigin,
			// Recipient not verified (trial account) or opted out.
			21608: CauseUnverifiedRecipient,
			21610: CauseUnverifiedRecipient,
			// Credential problems.
			20003: CauseAuthFailure,
			20403: CauseAuthFailure,
		},
		retryable: map[Cause]bool{
			CauseInvalidDestination:  false,
			CauseInvalidOrigin:       false,
			CauseUnverifiedRecipient: false,
			CauseAuthFailure:         false,
			CauseTransient:           true,
		},
		hints: map[Cause]string{
			CauseInvalidDestination:  "check the destination number; it must be E.164 formatted (+<country code><number>)",
			CauseInvalidOrigin:       "verify TWILIO_PHONE_NUMBER belongs to your account and is SMS-capable",
			CauseUnverifiedRecipient: "trial accounts can only message verified numbers; verify the recipient in the Twilio console or upgrade",
			CauseAuthFailure:         "check TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN",
			CauseTransient:           "temporary provider or network issue; try again later",
		},
	}
}

// Classify resolves a provider cause code to a Cause. Code zero and any
// unmapped code fall into the transient bucket.
func (p *Policy) Classify(code int) Cause {
	if cause, ok := p.codes[code]; ok {
		return cause
	}
	return CauseTransient
}

// Retryable reports whether a failure with the given cause should be
// attempted again.
func (p *Policy) Retryable(cause Cause) bool {
	retry, ok := p.retryable[cause]
	if !ok {
		return true
	}
	return retry
}

// Hint returns the remediation hint attached to a cause.
func (p *Policy) Hint(cause Cause) string {
	return p.hints[cause]
}

// policyFile is the YAML shape accepted by LoadPolicy.
type policyFile struct {
	Causes map[string]policyEntry `yaml:"causes"`
}

type policyEntry struct {
	Codes     []int  `yaml:"codes"`
	Retryable *bool  `yaml:"retryable"`
	Hint      string `yaml:"hint"`
}

// LoadPolicy reads a YAML policy file and overlays it on the built-in
// table. Listed codes are remapped to the entry's cause; retryable and
// hint override the defaults when present. Unlisted causes keep their
// built-in behaviour.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read retry policy: %w", err)
	}

	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse retry policy: %w", err)
	}

	policy := DefaultPolicy()
	for name, entry := range file.Causes {
		cause := Cause(name)
		for _, code := range entry.Codes {
			policy.codes[code] = cause
		}
		if entry.Retryable != nil {
			policy.retryable[cause] = *entry.Retryable
		}
		if entry.Hint != "" {
			policy.hints[cause] = entry.Hint
		}
	}
	return policy, nil
}
