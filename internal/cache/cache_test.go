package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/velamo/remitroute/internal/model"
)

func TestCorridorCache(t *testing.T) {
	c := NewCorridorCache()
	key := CorridorKey("US", "HT", "USD", "HTG")

	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Set(key, &model.Corridor{ID: "US-HT-USD-HTG"})
	got, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, "US-HT-USD-HTG", got.ID)

	c.InvalidateID("US-MX-USD-MXN")
	_, ok = c.Get(key)
	assert.True(t, ok)

	c.InvalidateID("US-HT-USD-HTG")
	_, ok = c.Get(key)
	assert.False(t, ok)
}

func TestProviderCache_InvalidateProvider(t *testing.T) {
	c := NewProviderCache()
	c.Set("US-HT-USD-HTG", []model.Provider{{ID: "unibank-ht"}, {ID: "caribe-express"}})
	c.Set("US-MX-USD-MXN", []model.Provider{{ID: "aztlan-pagos"}})

	c.InvalidateProvider("unibank-ht")
	_, ok := c.Get("US-HT-USD-HTG")
	assert.False(t, ok)
	_, ok = c.Get("US-MX-USD-MXN")
	assert.False(t, ok)
}

func TestProviderCache_InvalidateProviderNewlyAddedToCorridor(t *testing.T) {
	// A provider-changed event may mean the provider now serves a corridor
	// whose cached listing predates it. That listing must be evicted even
	// though it does not contain the provider.
	c := NewProviderCache()
	c.Set("US-HT-USD-HTG", []model.Provider{{ID: "unibank-ht"}})

	c.InvalidateProvider("stellar-remit")
	_, ok := c.Get("US-HT-USD-HTG")
	assert.False(t, ok, "listing must be refetched so the next lookup sees the new provider")
}

func TestRateCache_FreshnessWindow(t *testing.T) {
	c := NewRateCache(60 * time.Second)
	key := RateKey("USD", "HTG", "unibank-ht")
	now := time.Now()

	c.Set(key, model.ProviderRate{Rate: 130, AsOf: now}, now)

	got, ok := c.Get(key, now.Add(59*time.Second))
	assert.True(t, ok)
	assert.InDelta(t, 130.0, got.Rate, 1e-9)

	_, ok = c.Get(key, now.Add(61*time.Second))
	assert.False(t, ok)
}

func TestRateCache_InvalidatePair(t *testing.T) {
	c := NewRateCache(time.Minute)
	now := time.Now()
	c.Set(RateKey("USD", "HTG", "unibank-ht"), model.ProviderRate{Rate: 130}, now)
	c.Set(RateKey("USD", "HTG", "moncash"), model.ProviderRate{Rate: 129}, now)
	c.Set(RateKey("USD", "MXN", "aztlan-pagos"), model.ProviderRate{Rate: 18.5}, now)

	c.InvalidatePair("USD", "HTG")

	_, ok := c.Get(RateKey("USD", "HTG", "unibank-ht"), now)
	assert.False(t, ok)
	_, ok = c.Get(RateKey("USD", "HTG", "moncash"), now)
	assert.False(t, ok)
	_, ok = c.Get(RateKey("USD", "MXN", "aztlan-pagos"), now)
	assert.True(t, ok)
}
