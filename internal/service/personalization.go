package service

import (
	"github.com/velamo/remitroute/internal/model"
)

const (
	bonusPreferredProvider = 0.10
	bonusSpeedMatch        = 0.05
	bonusCostMatch         = 0.05

	// Delivery-time thresholds separating speed-driven from cost-driven
	// senders, from their past choices.
	speedPreferenceHours = 12.0
	costPreferenceHours  = 24.0
)

// BuildSenderProfile derives preferences from a sender's past routes.
// Providers from transfers rated 4 or 5 become preferred; the average
// delivery time of past choices classifies the sender as speed-driven or
// cost-driven.
func BuildSenderProfile(senderID string, records []model.SenderRouteRecord) *model.SenderProfile {
	if len(records) == 0 {
		return nil
	}

	profile := &model.SenderProfile{SenderID: senderID}
	seen := make(map[string]bool)

	var totalHours, totalCost float64
	for _, rec := range records {
		if rec.Rating >= 4 && !seen[rec.ProviderID] {
			seen[rec.ProviderID] = true
			profile.PreferredProviderIDs = append(profile.PreferredProviderIDs, rec.ProviderID)
		}
		totalHours += rec.DeliveryHours
		totalCost += rec.TotalCostUSD
	}

	n := float64(len(records))
	avgHours := totalHours / n
	profile.AverageCostUSD = totalCost / n
	profile.PrefersSpeed = avgHours <= speedPreferenceHours
	profile.PrefersCost = avgHours >= costPreferenceHours

	return profile
}

// personalizedScore adds the sender's bonuses on top of the composite score,
// capped at 1.0.
func personalizedScore(route *model.Route, profile *model.SenderProfile) float64 {
	score := route.CompositeScore
	if profile == nil {
		return score
	}
	if profile.PrefersProvider(route.ProviderID) {
		score += bonusPreferredProvider
	}
	if profile.PrefersSpeed && route.EstimatedHours <= 4 {
		score += bonusSpeedMatch
	}
	if profile.PrefersCost && route.TotalCost <= profile.AverageCostUSD {
		score += bonusCostMatch
	}
	return clamp(score, 0, 1)
}
