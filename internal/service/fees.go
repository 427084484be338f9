package service

import (
	"context"
	"fmt"

	"github.com/velamo/remitroute/internal/model"
)

const (
	// Flat destination-agent fee when no per-(corridor, location) entry exists.
	defaultAgentFeeUSD = 5.0

	// AML reporting threshold and surcharge.
	amlThresholdUSD = 10000.0
	amlSurchargeUSD = 25.0
)

var regulatoryTierPct = map[model.ComplianceTier]float64{
	model.TierStrict:   0.5,
	model.TierEnhanced: 0.3,
	model.TierBasic:    0.1,
}

// ProviderFee computes the provider-side fee for the amount, clamped to the
// structure's min/max bounds. A zero bound is unbounded.
func ProviderFee(fees model.FeeStructure, amount float64) float64 {
	fee := fees.BaseFee + amount*fees.PercentageFee/100
	if fees.MinFee > 0 && fee < fees.MinFee {
		fee = fees.MinFee
	}
	if fees.MaxFee > 0 && fee > fees.MaxFee {
		fee = fees.MaxFee
	}
	return fee
}

// RegulatoryFee applies the compliance-tier percentage plus the flat AML
// surcharge above the reporting threshold.
func RegulatoryFee(tier model.ComplianceTier, amount float64) float64 {
	fee := amount * regulatoryTierPct[tier] / 100
	if amount > amlThresholdUSD {
		fee += amlSurchargeUSD
	}
	return fee
}

type agentFeeStore interface {
	GetFee(ctx context.Context, corridorID, location string) (float64, bool, error)
}

// FeeCalculator resolves destination-agent fees from the per-(corridor,
// location) table. Provider and regulatory fees are pure functions above.
type FeeCalculator struct {
	agents agentFeeStore
}

func NewFeeCalculator(agents agentFeeStore) *FeeCalculator {
	return &FeeCalculator{agents: agents}
}

func (f *FeeCalculator) AgentFee(ctx context.Context, corridorID, location string) (float64, error) {
	fee, found, err := f.agents.GetFee(ctx, corridorID, location)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if !found {
		return defaultAgentFeeUSD, nil
	}
	return fee, nil
}
