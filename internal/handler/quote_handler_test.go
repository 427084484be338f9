package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velamo/remitroute/internal/dto"
)

func createQuote(t *testing.T, fix *apiFixture) dto.QuoteResponse {
	t.Helper()
	w := fix.do(t, http.MethodPost, "/api/v1/routes/optimize", optimizeBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp dto.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetQuoteEndpoint(t *testing.T) {
	fix := newAPIFixture(t)
	quote := createQuote(t, fix)

	w := fix.do(t, http.MethodGet, "/api/v1/quotes/"+quote.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, quote.ID, resp.ID)
	assert.Equal(t, quote.ReceiveAmount, resp.ReceiveAmount)
}

func TestGetQuoteEndpoint_NotFound(t *testing.T) {
	fix := newAPIFixture(t)

	w := fix.do(t, http.MethodGet, "/api/v1/quotes/2c6a63f7-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExecuteQuoteEndpoint(t *testing.T) {
	fix := newAPIFixture(t)
	quote := createQuote(t, fix)
	routeID := quote.AIRecommendedRoute.ID

	w := fix.do(t, http.MethodPost, "/api/v1/quotes/"+quote.ID+"/execute",
		map[string]any{"route_id": routeID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.ExecuteQuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.TransactionID)
	assert.Equal(t, "processing", resp.Status)
}

func TestExecuteQuoteEndpoint_SecondAttemptConflicts(t *testing.T) {
	fix := newAPIFixture(t)
	quote := createQuote(t, fix)
	body := map[string]any{"route_id": quote.AIRecommendedRoute.ID}

	w := fix.do(t, http.MethodPost, "/api/v1/quotes/"+quote.ID+"/execute", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = fix.do(t, http.MethodPost, "/api/v1/quotes/"+quote.ID+"/execute", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestExecuteQuoteEndpoint_RouteNotInQuote(t *testing.T) {
	fix := newAPIFixture(t)
	quote := createQuote(t, fix)

	w := fix.do(t, http.MethodPost, "/api/v1/quotes/"+quote.ID+"/execute",
		map[string]any{"route_id": "not-a-member"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteQuoteEndpoint_MissingRouteID(t *testing.T) {
	fix := newAPIFixture(t)
	quote := createQuote(t, fix)

	w := fix.do(t, http.MethodPost, "/api/v1/quotes/"+quote.ID+"/execute", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteQuoteEndpoint_CapacityDrained(t *testing.T) {
	fix := newAPIFixture(t)
	quote := createQuote(t, fix)

	fix.capacity.available = false
	w := fix.do(t, http.MethodPost, "/api/v1/quotes/"+quote.ID+"/execute",
		map[string]any{"route_id": quote.AIRecommendedRoute.ID})
	assert.Equal(t, http.StatusConflict, w.Code)
}
