package message

import "strings"

// Per-segment USD pricing approximations; actual prices vary by country and
// volume.
var segmentPricing = map[string]float64{
	"twilio":          0.0079,
	"africas_talking": 0.008,
}

const defaultSegmentPrice = 0.0079

// CostEstimate describes a rough outbound cost projection.
type CostEstimate struct {
	Segments      int
	Recipients    int
	PerSegmentUSD float64
	TotalUSD      float64
	Provider      string
}

// EstimateCost projects the cost of sending a message of the given segment
// count to the given number of recipients through a provider. Unknown
// providers fall back to the Twilio rate.
func EstimateCost(provider string, segments, recipients int) CostEstimate {
	provider = strings.ToLower(strings.TrimSpace(provider))
	price, ok := segmentPricing[provider]
	if !ok {
		provider = "twilio"
		price = defaultSegmentPrice
	}

	if segments < 0 {
		segments = 0
	}
	if recipients < 0 {
		recipients = 0
	}

	return CostEstimate{
		Segments:      segments,
		Recipients:    recipients,
		PerSegmentUSD: price,
		TotalUSD:      float64(segments) * float64(recipients) * price,
		Provider:      provider,
	}
}
