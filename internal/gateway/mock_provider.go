package gateway

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Scenario enumerates the behaviours supported by the mock provider.
type Scenario string

const (
	ScenarioSuccess   Scenario = "success"
	ScenarioTransient Scenario = "transient"
	ScenarioPermanent Scenario = "permanent"
	ScenarioTimeout   Scenario = "timeout"
)

// Option customises the mock provider.
type Option func(*MockProvider)

// WithScript fixes the scenario played on each successive call. Calls past
// the end of the script repeat the last entry.
func WithScript(scenarios ...Scenario) Option {
	return func(p *MockProvider) {
		p.script = append([]Scenario(nil), scenarios...)
	}
}

// WithPermanentCode sets the cause code attached to permanent failures.
func WithPermanentCode(code int) Option {
	return func(p *MockProvider) {
		p.permanentCode = code
	}
}

// WithLatency configures the artificial latency injected before sending.
func WithLatency(d time.Duration) Option {
	return func(p *MockProvider) {
		if d < 0 {
			d = 0
		}
		p.latency = d
	}
}

// WithClock overrides the clock used to timestamp responses.
func WithClock(now func() time.Time) Option {
	return func(p *MockProvider) {
		if now != nil {
			p.now = now
		}
	}
}

// MockProvider is a deterministic SMS provider used by tests and the
// offline preview path.
type MockProvider struct {
	logger        zerolog.Logger
	script        []Scenario
	permanentCode int
	latency       time.Duration
	now           func() time.Time

	mu    sync.Mutex
	calls int
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider constructs a mock SMS provider. Without options every
// call succeeds.
func NewMockProvider(logger zerolog.Logger, opts ...Option) *MockProvider {
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	p := &MockProvider{
		logger:        logger,
		script:        []Scenario{ScenarioSuccess},
		permanentCode: 21608,
		now:           time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Calls reports how many times Send has been invoked.
func (p *MockProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Send simulates sending an SMS payload according to the configured script.
func (p *MockProvider) Send(ctx context.Context, payload *Payload) (*RawResponse, error) {
	if payload == nil {
		return nil, errors.New("sms mock: payload is required")
	}
	if payload.To == "" {
		return nil, errors.New("sms mock: a recipient is required")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	p.mu.Lock()
	idx := p.calls
	p.calls++
	if idx >= len(p.script) {
		idx = len(p.script) - 1
	}
	scenario := p.script[idx]
	p.mu.Unlock()

	response := &RawResponse{
		SID:       fmt.Sprintf("SM-mock-%s", payload.MessageID),
		Code:      0,
		Status:    "queued",
		Body:      "mock: message accepted",
		Segments:  1,
		Timestamp: p.now(),
	}

	switch scenario {
	case ScenarioSuccess:
		return response, nil
	case ScenarioTransient:
		response.Code = 20429
		response.Status = "failed"
		response.Body = "mock: too many requests"
		return response, fmt.Errorf("sms mock transient error: rate limited")
	case ScenarioPermanent:
		response.Code = p.permanentCode
		response.Status = "failed"
		response.Body = "mock: permanent failure"
		return response, fmt.Errorf("sms mock permanent error: code %d", p.permanentCode)
	case ScenarioTimeout:
		<-ctx.Done()
		return response, ctx.Err()
	default:
		response.Status = "unknown"
		response.Body = "mock: unknown scenario"
		return response, fmt.Errorf("sms mock unknown scenario: %s", scenario)
	}
}
