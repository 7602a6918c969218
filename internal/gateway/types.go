package gateway

import (
	"context"
	"time"
)

// Payload encapsulates the data required to send one SMS message through a
// provider.
type Payload struct {
	MessageID string
	From      string
	To        string
	Body      string
}

// RawResponse describes the low-level provider response for a single send.
// Code carries the provider's numeric cause code when the send failed.
type RawResponse struct {
	SID       string
	Status    string
	Code      int
	Body      string
	Price     string
	PriceUnit string
	Segments  int
	Timestamp time.Time
}

// Provider represents an outbound SMS provider (e.g. Twilio).
type Provider interface {
	Send(ctx context.Context, payload *Payload) (*RawResponse, error)
}
