package message

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Outbound is the single message assembled for one send invocation. It is
// never stored; the value only lives for the duration of the attempt.
type Outbound struct {
	To   string
	From string
	Body string
}

// ErrIncomplete is returned when a message is missing its destination or body.
var ErrIncomplete = errors.New("message requires a destination and a body")

// Validate checks the invariant that must hold before any send is attempted.
func (m Outbound) Validate() error {
	if strings.TrimSpace(m.To) == "" || strings.TrimSpace(m.Body) == "" {
		return ErrIncomplete
	}
	return nil
}

// Characters-per-segment limits as used by the GSM transport: plain text
// packs 160 characters per segment, anything outside the basic range forces
// the UCS-2 encoding at 70.
const (
	segmentPlain   = 160
	segmentUnicode = 70
)

// Segments reports how many SMS segments the body occupies and whether it
// required the unicode encoding.
func Segments(body string) (count int, unicode bool) {
	if body == "" {
		return 0, false
	}

	for _, r := range body {
		if r > 127 {
			unicode = true
			break
		}
	}

	perSegment := segmentPlain
	if unicode {
		perSegment = segmentUnicode
	}

	length := utf8.RuneCountInString(body)
	count = length / perSegment
	if length%perSegment > 0 {
		count++
	}
	return count, unicode
}
