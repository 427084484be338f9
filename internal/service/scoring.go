package service

import (
	"github.com/velamo/remitroute/internal/model"
)

// Objective weights are a fixed policy constant, an extension point for
// per-request configuration later.
const (
	weightCost        = 0.35
	weightSpeed       = 0.25
	weightReliability = 0.25
	weightCompliance  = 0.15

	// Compliance rating at or above which a route counts as compliant.
	complianceThresholdPct = 80.0
)

// costScore maps total cost as a percentage of the send amount onto a step
// function mirroring provider fee tiers.
func costScore(totalCost, sendAmount float64) float64 {
	pct := totalCost / sendAmount * 100
	switch {
	case pct <= 2:
		return 1.0
	case pct <= 4:
		return 0.8
	case pct <= 6:
		return 0.6
	case pct <= 8:
		return 0.4
	default:
		return 0.2
	}
}

func speedScore(deliveryHours float64) float64 {
	switch {
	case deliveryHours <= 1:
		return 1.0
	case deliveryHours <= 4:
		return 0.8
	case deliveryHours <= 24:
		return 0.6
	case deliveryHours <= 48:
		return 0.4
	default:
		return 0.2
	}
}

func compositeScore(route *model.Route, sendAmount float64) float64 {
	reliability := route.ConfidenceScore / 100
	compliance := 0.0
	if route.RegulatoryCompliant {
		compliance = 1.0
	}
	return weightCost*costScore(route.TotalCost, sendAmount) +
		weightSpeed*speedScore(route.EstimatedHours) +
		weightReliability*reliability +
		weightCompliance*compliance
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
