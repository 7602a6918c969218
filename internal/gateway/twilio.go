package gateway

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioConfig carries the credentials required by the Twilio REST client.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
}

// TwilioProvider sends messages through the Twilio Programmable Messaging
// API.
type TwilioProvider struct {
	logger zerolog.Logger
	client *twilio.RestClient
}

var _ Provider = (*TwilioProvider)(nil)

// NewTwilioProvider constructs a provider backed by the Twilio SDK.
func NewTwilioProvider(cfg TwilioConfig, logger zerolog.Logger) (*TwilioProvider, error) {
	if strings.TrimSpace(cfg.AccountSID) == "" || strings.TrimSpace(cfg.AuthToken) == "" {
		return nil, errors.New("twilio provider: account SID and auth token are required")
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   cfg.AccountSID,
		Password:   cfg.AuthToken,
		AccountSid: cfg.AccountSID,
	})

	return &TwilioProvider{logger: logger, client: client}, nil
}

// Send submits a single message. Twilio REST failures are returned alongside
// a RawResponse carrying the numeric cause code so callers can classify them.
func (p *TwilioProvider) Send(ctx context.Context, payload *Payload) (*RawResponse, error) {
	if payload == nil {
		return nil, errors.New("twilio provider: payload is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &api.CreateMessageParams{}
	params.SetTo(payload.To)
	params.SetFrom(payload.From)
	params.SetBody(payload.Body)

	resp, err := p.client.Api.CreateMessage(params)
	if err != nil {
		var restErr *twclient.TwilioRestError
		if errors.As(err, &restErr) {
			p.logger.Warn().
				Str("message_id", payload.MessageID).
				Int("cause_code", restErr.Code).
				Msg("twilio rejected message")
			return &RawResponse{
				Status:    "failed",
				Code:      restErr.Code,
				Body:      restErr.Message,
				Timestamp: time.Now(),
			}, fmt.Errorf("twilio send failed: %w", err)
		}
		return nil, fmt.Errorf("twilio send failed: %w", err)
	}

	raw := &RawResponse{Timestamp: time.Now()}
	if resp.Sid != nil {
		raw.SID = *resp.Sid
	}
	if resp.Status != nil {
		raw.Status = *resp.Status
	}
	if resp.Price != nil {
		raw.Price = *resp.Price
	}
	if resp.PriceUnit != nil {
		raw.PriceUnit = *resp.PriceUnit
	}
	if resp.NumSegments != nil {
		if n, convErr := strconv.Atoi(*resp.NumSegments); convErr == nil {
			raw.Segments = n
		}
	}

	p.logger.Debug().
		Str("message_id", payload.MessageID).
		Str("sid", raw.SID).
		Str("status", raw.Status).
		Msg("twilio accepted message")

	return raw, nil
}
