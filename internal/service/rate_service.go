package service

import (
	"context"
	"time"

	"github.com/velamo/remitroute/internal/cache"
	"github.com/velamo/remitroute/internal/metrics"
	"github.com/velamo/remitroute/internal/model"
)

type midMarketSource interface {
	GetMidMarketRate(ctx context.Context, currencyFrom, currencyTo string) (float64, time.Time, bool, error)
}

type providerGetter interface {
	GetProvider(ctx context.Context, providerID string) (*model.Provider, error)
}

// RateService serves provider-adjusted exchange rates: the mid-market rate
// for the pair discounted by the provider's margin. Entries are cached per
// (pair, provider) within a freshness window; rate-change events invalidate
// every entry for the pair immediately.
type RateService struct {
	rates     midMarketSource
	providers providerGetter
	cache     *cache.RateCache
	metrics   *metrics.ServiceMetrics
	now       func() time.Time
}

func NewRateService(rates midMarketSource, providers providerGetter, c *cache.RateCache, m *metrics.ServiceMetrics) *RateService {
	return &RateService{
		rates:     rates,
		providers: providers,
		cache:     c,
		metrics:   m,
		now:       time.Now,
	}
}

func (s *RateService) GetRate(ctx context.Context, currencyFrom, currencyTo, providerID string) (model.ProviderRate, error) {
	key := cache.RateKey(currencyFrom, currencyTo, providerID)
	now := s.now()

	if rate, ok := s.cache.Get(key, now); ok {
		s.metrics.RateCacheHitsTotal.Inc()
		return rate, nil
	}
	s.metrics.RateCacheMissesTotal.Inc()

	mid, asOf, found, err := s.rates.GetMidMarketRate(ctx, currencyFrom, currencyTo)
	if err != nil {
		return model.ProviderRate{}, err
	}
	if !found {
		return model.ProviderRate{}, ErrRateUnavailable
	}

	provider, err := s.providers.GetProvider(ctx, providerID)
	if err != nil {
		return model.ProviderRate{}, err
	}

	rate := model.ProviderRate{
		Rate: mid * (1 - provider.FXMarginPct/100),
		AsOf: asOf,
	}
	s.cache.Set(key, rate, now)
	return rate, nil
}

// OnRateChanged is the invalidation hook for rate-update events.
func (s *RateService) OnRateChanged(currencyFrom, currencyTo string) {
	s.cache.InvalidatePair(currencyFrom, currencyTo)
}
