package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velamo/remitroute/internal/cache"
	"github.com/velamo/remitroute/internal/metrics"
	"github.com/velamo/remitroute/internal/model"
)

type fakeMidMarketStore struct {
	rate  float64
	asOf  time.Time
	found bool
	err   error
	calls int
}

func (f *fakeMidMarketStore) GetMidMarketRate(context.Context, string, string) (float64, time.Time, bool, error) {
	f.calls++
	return f.rate, f.asOf, f.found, f.err
}

type fakeProviderGetter struct {
	provider *model.Provider
	err      error
}

func (f *fakeProviderGetter) GetProvider(context.Context, string) (*model.Provider, error) {
	return f.provider, f.err
}

func newTestRateService(mid *fakeMidMarketStore, providers *fakeProviderGetter) *RateService {
	m := metrics.New(prometheus.NewRegistry())
	return NewRateService(mid, providers, cache.NewRateCache(60*time.Second), m)
}

func TestRateService_MarginApplied(t *testing.T) {
	asOf := time.Now().Add(-time.Minute)
	mid := &fakeMidMarketStore{rate: 132.50, asOf: asOf, found: true}
	provider := testProvider("unibank-ht", 6, 93)
	provider.FXMarginPct = 2.5
	svc := newTestRateService(mid, &fakeProviderGetter{provider: &provider})

	rate, err := svc.GetRate(context.Background(), "USD", "HTG", "unibank-ht")
	require.NoError(t, err)
	assert.InDelta(t, 132.50*0.975, rate.Rate, 1e-9)
	assert.Equal(t, asOf, rate.AsOf)
}

func TestRateService_CacheWindow(t *testing.T) {
	mid := &fakeMidMarketStore{rate: 130, asOf: time.Now(), found: true}
	provider := testProvider("unibank-ht", 6, 93)
	svc := newTestRateService(mid, &fakeProviderGetter{provider: &provider})

	base := time.Now()
	svc.now = func() time.Time { return base }

	_, err := svc.GetRate(context.Background(), "USD", "HTG", "unibank-ht")
	require.NoError(t, err)
	_, err = svc.GetRate(context.Background(), "USD", "HTG", "unibank-ht")
	require.NoError(t, err)
	assert.Equal(t, 1, mid.calls)

	// Past the freshness window the next call falls through.
	svc.now = func() time.Time { return base.Add(61 * time.Second) }
	_, err = svc.GetRate(context.Background(), "USD", "HTG", "unibank-ht")
	require.NoError(t, err)
	assert.Equal(t, 2, mid.calls)
}

func TestRateService_RateChangeInvalidatesPair(t *testing.T) {
	mid := &fakeMidMarketStore{rate: 130, asOf: time.Now(), found: true}
	provider := testProvider("unibank-ht", 6, 93)
	svc := newTestRateService(mid, &fakeProviderGetter{provider: &provider})

	_, err := svc.GetRate(context.Background(), "USD", "HTG", "unibank-ht")
	require.NoError(t, err)

	svc.OnRateChanged("USD", "HTG")
	_, err = svc.GetRate(context.Background(), "USD", "HTG", "unibank-ht")
	require.NoError(t, err)
	assert.Equal(t, 2, mid.calls)
}

func TestRateService_NoRateForPair(t *testing.T) {
	mid := &fakeMidMarketStore{found: false}
	svc := newTestRateService(mid, &fakeProviderGetter{})

	_, err := svc.GetRate(context.Background(), "USD", "ZZZ", "unibank-ht")
	assert.ErrorIs(t, err, ErrRateUnavailable)
}
