package service

import (
	"context"
	"fmt"
	"math"

	"github.com/velamo/remitroute/internal/model"
)

type capacityStore interface {
	GetRemaining(ctx context.Context, providerID string) (float64, bool, error)
}

// CapacityOracle answers whether a provider can currently cover an amount.
// A provider without a capacity row has no real-time liquidity integration
// and is assumed to have practically unlimited capacity at these transaction
// sizes (optimistic default, documented behavior).
type CapacityOracle struct {
	store capacityStore
}

func NewCapacityOracle(store capacityStore) *CapacityOracle {
	return &CapacityOracle{store: store}
}

func (o *CapacityOracle) CheckCapacity(ctx context.Context, providerID string, amount float64) (model.CapacityCheck, error) {
	remaining, found, err := o.store.GetRemaining(ctx, providerID)
	if err != nil {
		return model.CapacityCheck{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if !found {
		return model.CapacityCheck{Available: true, RemainingUSD: math.Inf(1)}, nil
	}
	return model.CapacityCheck{
		Available:    remaining >= amount,
		RemainingUSD: remaining,
	}, nil
}
