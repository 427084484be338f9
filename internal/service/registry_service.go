package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/velamo/remitroute/internal/cache"
	"github.com/velamo/remitroute/internal/model"
)

type corridorStore interface {
	FindByIdentity(ctx context.Context, origin, destination, currencyFrom, currencyTo string) (*model.Corridor, error)
}

type providerStore interface {
	ListForCorridor(ctx context.Context, corridorID string) ([]model.Provider, error)
	GetByID(ctx context.Context, id string) (*model.Provider, error)
}

// Registry is a read-through cache over corridor and provider reference data.
// Cached entries are replaced whole; corridor/provider change events
// invalidate them so the next lookup falls through to the store. A store miss
// is a hard failure for the caller, not retried.
type Registry struct {
	corridors     corridorStore
	providers     providerStore
	corridorCache *cache.CorridorCache
	providerCache *cache.ProviderCache
}

func NewRegistry(corridors corridorStore, providers providerStore, cc *cache.CorridorCache, pc *cache.ProviderCache) *Registry {
	return &Registry{
		corridors:     corridors,
		providers:     providers,
		corridorCache: cc,
		providerCache: pc,
	}
}

func (r *Registry) FindCorridor(ctx context.Context, origin, destination, currencyFrom, currencyTo string) (*model.Corridor, error) {
	key := cache.CorridorKey(origin, destination, currencyFrom, currencyTo)
	if c, ok := r.corridorCache.Get(key); ok {
		return c, nil
	}

	c, err := r.corridors.FindByIdentity(ctx, origin, destination, currencyFrom, currencyTo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoCorridor
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	r.corridorCache.Set(key, c)
	return c, nil
}

func (r *Registry) ListProvidersForCorridor(ctx context.Context, corridorID string) ([]model.Provider, error) {
	if providers, ok := r.providerCache.Get(corridorID); ok {
		return providers, nil
	}

	providers, err := r.providers.ListForCorridor(ctx, corridorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	r.providerCache.Set(corridorID, providers)
	return providers, nil
}

func (r *Registry) GetProvider(ctx context.Context, providerID string) (*model.Provider, error) {
	p, err := r.providers.GetByID(ctx, providerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("provider %s: not found", providerID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return p, nil
}

// OnCorridorChanged and OnProviderChanged are the invalidation hooks the
// event subscriber dispatches into.
func (r *Registry) OnCorridorChanged(corridorID string) {
	r.corridorCache.InvalidateID(corridorID)
}

func (r *Registry) OnProviderChanged(providerID string) {
	r.providerCache.InvalidateProvider(providerID)
}
