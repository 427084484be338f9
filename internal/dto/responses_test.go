package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velamo/remitroute/internal/model"
)

func TestNewQuoteResponse_ResolvesPicks(t *testing.T) {
	q := &model.Quote{
		ID: "q1",
		Routes: []model.Route{
			{ID: "r1", ProviderID: "unibank-ht"},
			{ID: "r2", ProviderID: "caribe-express"},
			{ID: "r3", ProviderID: "moncash"},
		},
		BestRateRouteID:      "r1",
		FastestRouteID:       "r2",
		CheapestRouteID:      "r3",
		AIRecommendedRouteID: "r2",
	}

	resp := NewQuoteResponse(q)

	require.NotNil(t, resp.BestRateRoute)
	assert.Equal(t, "unibank-ht", resp.BestRateRoute.ProviderID)
	require.NotNil(t, resp.FastestRoute)
	assert.Equal(t, "caribe-express", resp.FastestRoute.ProviderID)
	require.NotNil(t, resp.CheapestRoute)
	assert.Equal(t, "moncash", resp.CheapestRoute.ProviderID)
	require.NotNil(t, resp.AIRecommendedRoute)
	assert.Same(t, resp.FastestRoute, resp.AIRecommendedRoute)
	assert.Len(t, resp.RecommendedRoutes, 3)
}
