package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kbornfas/sms-prompt-go/internal/message"
)

// ErrCancelled signals that the user declined to proceed. Callers treat it
// as a deliberate stop, not a failure.
var ErrCancelled = errors.New("cancelled by user")

// ErrEmptyInput is returned when a required answer was left blank.
var ErrEmptyInput = errors.New("input must not be empty")

// Limits carries the advisory and hard bounds applied to a message body.
type Limits struct {
	// BodyWarn is the soft threshold; longer bodies warn and ask for
	// confirmation.
	BodyWarn int
	// BodyMax is the hard cap; longer bodies are refused outright.
	BodyMax int
}

// Prompter reads interactive answers from in and writes questions to out.
// Both are injected so tests can script a session.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New constructs a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line asks for a single line of input and returns it trimmed.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Confirm asks a yes/no question. Anything starting with "y" is a yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s (y/n): ", question)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return false, err
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return strings.HasPrefix(answer, "y"), nil
}

// Destination collects the recipient number. An empty answer is a hard
// stop; a number without the leading country-code marker only warns and
// asks for confirmation before proceeding.
func (p *Prompter) Destination() (string, error) {
	to, err := p.Line("Destination number")
	if err != nil {
		return "", err
	}
	if to == "" {
		return "", fmt.Errorf("destination: %w", ErrEmptyInput)
	}

	if !strings.HasPrefix(to, "+") {
		fmt.Fprintf(p.out, "Warning: %q has no leading + country code marker.\n", to)
		ok, err := p.Confirm("Send anyway?")
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrCancelled
		}
	}
	return to, nil
}

// Body collects the message text. An empty answer or a body over the hard
// cap is a stop; a body over the soft threshold warns with the segment
// count and asks for confirmation.
func (p *Prompter) Body(limits Limits) (string, error) {
	body, err := p.Line("Message")
	if err != nil {
		return "", err
	}
	if body == "" {
		return "", fmt.Errorf("message body: %w", ErrEmptyInput)
	}

	if limits.BodyMax > 0 && len([]rune(body)) > limits.BodyMax {
		return "", fmt.Errorf("message body exceeds the %d character limit", limits.BodyMax)
	}

	if limits.BodyWarn > 0 && len([]rune(body)) > limits.BodyWarn {
		segments, unicode := message.Segments(body)
		fmt.Fprintf(p.out, "Warning: long message, %d characters (%d segments", len([]rune(body)), segments)
		if unicode {
			fmt.Fprint(p.out, ", unicode encoding")
		}
		fmt.Fprintln(p.out, ").")
		ok, err := p.Confirm("Send anyway?")
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrCancelled
		}
	}
	return body, nil
}
