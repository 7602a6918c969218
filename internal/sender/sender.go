package sender

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kbornfas/sms-prompt-go/internal/gateway"
	"github.com/kbornfas/sms-prompt-go/internal/message"
)

// Config contains the retry settings for a Sender.
type Config struct {
	// MaxAttempts caps how many remote calls one Send may issue. Must be
	// at least 1.
	MaxAttempts int
	// BaseDelay is multiplied by the attempt number to produce the wait
	// before the next try, so the ramp increases: base, then 2x base.
	BaseDelay time.Duration
	// AttemptTimeout bounds one provider call. Zero means no bound. An
	// attempt that times out counts as a transient failure.
	AttemptTimeout time.Duration
}

// Dependencies collects the collaborators required by the Sender.
type Dependencies struct {
	Provider gateway.Provider
	Policy   *Policy
	Logger   zerolog.Logger
	Now      func() time.Time
	// Sleep waits for the given duration and reports false if the context
	// was cancelled first. Tests inject a recorder here.
	Sleep func(ctx context.Context, d time.Duration) bool
}

// Sender performs one logical "send this message" operation: attempt,
// classify, and retry transient failures with an increasing delay. It keeps
// no state between invocations.
type Sender struct {
	cfg      Config
	provider gateway.Provider
	policy   *Policy
	logger   zerolog.Logger
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) bool
}

// New validates the configuration and dependencies and returns a Sender.
func New(cfg Config, deps Dependencies) (*Sender, error) {
	if cfg.MaxAttempts < 1 {
		return nil, errors.New("sender: max attempts must be >= 1")
	}
	if cfg.BaseDelay < 0 {
		return nil, errors.New("sender: base delay cannot be negative")
	}
	if deps.Provider == nil {
		return nil, errors.New("sender: provider dependency is required")
	}

	policy := deps.Policy
	if policy == nil {
		policy = DefaultPolicy()
	}

	logger := deps.Logger
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	logger = logger.With().Str("component", "sender").Logger()

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	sleep := deps.Sleep
	if sleep == nil {
		sleep = defaultSleep
	}

	return &Sender{
		cfg:      cfg,
		provider: deps.Provider,
		policy:   policy,
		logger:   logger,
		now:      now,
		sleep:    sleep,
	}, nil
}

// Send delivers the message, retrying transient failures up to the attempt
// budget. Permanent failures stop after the first call. The returned
// Outcome is always non-nil unless the message was invalid or the context
// was cancelled.
func (s *Sender) Send(ctx context.Context, msg message.Outbound) (*Outcome, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	payload := &gateway.Payload{
		MessageID: id,
		From:      msg.From,
		To:        msg.To,
		Body:      msg.Body,
	}

	log := s.logger.With().Str("message_id", id).Str("to", msg.To).Logger()

	attempt := 1
	for {
		start := s.now()
		raw, err := s.attempt(ctx, payload)
		duration := s.now().Sub(start)

		if err == nil {
			log.Info().Int("attempt", attempt).Dur("duration", duration).Msg("message sent")
			out := &Outcome{Delivered: true, Attempts: attempt}
			if raw != nil {
				out.SID = raw.SID
				out.Status = raw.Status
				out.Price = raw.Price
				out.PriceUnit = raw.PriceUnit
				out.Segments = raw.Segments
			}
			return out, nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// The caller's context aborts the whole send; an expired
			// attempt timeout only fails this try.
			if ctx.Err() != nil {
				log.Warn().Int("attempt", attempt).Msg("send cancelled")
				return nil, ctx.Err()
			}
			err = fmt.Errorf("attempt timed out after %s", s.cfg.AttemptTimeout)
		}

		code := 0
		if raw != nil {
			code = raw.Code
		}
		cause := s.policy.Classify(code)

		log.Warn().
			Int("attempt", attempt).
			Int("cause_code", code).
			Str("cause", string(cause)).
			Err(err).
			Msg("send attempt failed")

		if !s.policy.Retryable(cause) {
			return s.failure(cause, code, err, attempt), nil
		}

		if attempt >= s.cfg.MaxAttempts {
			return s.failure(cause, code, err, attempt), nil
		}

		delay := s.cfg.BaseDelay * time.Duration(attempt)
		if delay > 0 {
			log.Info().Dur("delay", delay).Msg("waiting before retry")
		}
		if !s.sleep(ctx, delay) {
			return nil, ctx.Err()
		}

		attempt++
	}
}

func (s *Sender) attempt(ctx context.Context, payload *gateway.Payload) (*gateway.RawResponse, error) {
	if s.cfg.AttemptTimeout <= 0 {
		return s.provider.Send(ctx, payload)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.AttemptTimeout)
	defer cancel()
	return s.provider.Send(attemptCtx, payload)
}

func (s *Sender) failure(cause Cause, code int, err error, attempts int) *Outcome {
	return &Outcome{
		Delivered: false,
		Attempts:  attempts,
		Cause:     cause,
		Code:      code,
		Message:   err.Error(),
		Hint:      s.policy.Hint(cause),
	}
}

func defaultSleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
