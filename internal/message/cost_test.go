package message

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEstimateCost(t *testing.T) {
	est := EstimateCost("twilio", 2, 3)
	if est.Provider != "twilio" {
		t.Errorf("provider = %q", est.Provider)
	}
	if !almostEqual(est.PerSegmentUSD, 0.0079) {
		t.Errorf("per segment = %f", est.PerSegmentUSD)
	}
	if !almostEqual(est.TotalUSD, 2*3*0.0079) {
		t.Errorf("total = %f", est.TotalUSD)
	}
}

func TestEstimateCostAlternativeProvider(t *testing.T) {
	est := EstimateCost("africas_talking", 1, 1)
	if !almostEqual(est.PerSegmentUSD, 0.008) {
		t.Errorf("per segment = %f", est.PerSegmentUSD)
	}
}

func TestEstimateCostUnknownProviderFallsBack(t *testing.T) {
	est := EstimateCost("carrier-pigeon", 1, 1)
	if est.Provider != "twilio" {
		t.Errorf("provider = %q, want twilio fallback", est.Provider)
	}
	if !almostEqual(est.PerSegmentUSD, 0.0079) {
		t.Errorf("per segment = %f", est.PerSegmentUSD)
	}
}

func TestEstimateCostClampsNegatives(t *testing.T) {
	est := EstimateCost("twilio", -1, -5)
	if est.Segments != 0 || est.Recipients != 0 {
		t.Errorf("segments=%d recipients=%d, want zeros", est.Segments, est.Recipients)
	}
	if est.TotalUSD != 0 {
		t.Errorf("total = %f, want 0", est.TotalUSD)
	}
}
