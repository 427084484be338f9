package dto

import (
	"time"

	"github.com/velamo/remitroute/internal/model"
)

type QuoteResponse struct {
	ID                 string              `json:"quote_id"`
	SendAmount         float64             `json:"send_amount"`
	SendCurrency       string              `json:"send_currency"`
	ReceiveAmount      float64             `json:"receive_amount"`
	ReceiveCurrency    string              `json:"receive_currency"`
	CorridorID         string              `json:"corridor_id"`
	RecommendedRoutes  []model.Route       `json:"recommended_routes"`
	BestRateRoute      *model.Route        `json:"best_rate_route"`
	FastestRoute       *model.Route        `json:"fastest_route"`
	CheapestRoute      *model.Route        `json:"cheapest_route"`
	AIRecommendedRoute *model.Route        `json:"ai_recommended_route"`
	Recipient          model.RecipientInfo `json:"recipient_info"`
	CreatedAt          time.Time           `json:"created_at"`
	ExpiresAt          time.Time           `json:"expires_at"`
}

func NewQuoteResponse(q *model.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                 q.ID,
		SendAmount:         q.SendAmount,
		SendCurrency:       q.SendCurrency,
		ReceiveAmount:      q.ReceiveAmount,
		ReceiveCurrency:    q.ReceiveCurrency,
		CorridorID:         q.CorridorID,
		RecommendedRoutes:  q.Routes,
		BestRateRoute:      q.RouteByID(q.BestRateRouteID),
		FastestRoute:       q.RouteByID(q.FastestRouteID),
		CheapestRoute:      q.RouteByID(q.CheapestRouteID),
		AIRecommendedRoute: q.RouteByID(q.AIRecommendedRouteID),
		Recipient:          q.Recipient,
		CreatedAt:          q.CreatedAt,
		ExpiresAt:          q.ExpiresAt,
	}
}

type ExecuteQuoteResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

type ForecastResponse struct {
	DistributorID string                     `json:"distributor_id"`
	CorridorID    string                     `json:"corridor_id"`
	HorizonDays   int                        `json:"horizon_days"`
	Predictions   []model.CashFlowPrediction `json:"predictions"`
}
