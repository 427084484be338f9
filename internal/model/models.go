package model

import (
	"time"
)

type ComplianceTier string

const (
	TierBasic    ComplianceTier = "basic"
	TierEnhanced ComplianceTier = "enhanced"
	TierStrict   ComplianceTier = "strict"
)

type ProviderType string

const (
	ProviderBank        ProviderType = "BANK"
	ProviderMTO         ProviderType = "MONEY_TRANSFER_OPERATOR"
	ProviderFintech     ProviderType = "FINTECH"
	ProviderCrypto      ProviderType = "CRYPTO"
	ProviderMobileMoney ProviderType = "MOBILE_MONEY"
)

type DeliveryMethod string

const (
	DeliveryBankDeposit  DeliveryMethod = "BANK_DEPOSIT"
	DeliveryCashPickup   DeliveryMethod = "CASH_PICKUP"
	DeliveryMobileWallet DeliveryMethod = "MOBILE_WALLET"
	DeliveryHomeDelivery DeliveryMethod = "HOME_DELIVERY"
)

// Corridor is an active transfer lane between two countries and currencies.
// Exactly one active corridor exists per (origin, destination, from, to) tuple.
type Corridor struct {
	ID                 string         `json:"id"`
	OriginCountry      string         `json:"origin_country"`
	DestinationCountry string         `json:"destination_country"`
	CurrencyFrom       string         `json:"currency_from"`
	CurrencyTo         string         `json:"currency_to"`
	Active             bool           `json:"active"`
	ComplianceTier     ComplianceTier `json:"compliance_tier"`
	MinAmountUSD       float64        `json:"min_amount_usd"`
	MaxAmountUSD       float64        `json:"max_amount_usd"`
	DailyCapUSD        float64        `json:"daily_cap_usd"` // enforced by the settlement ledger, reference here
	AvgDeliveryHours   float64        `json:"avg_delivery_hours"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type FeeStructure struct {
	BaseFee       float64 `json:"base_fee"`
	PercentageFee float64 `json:"percentage_fee"`
	MinFee        float64 `json:"min_fee"`
	MaxFee        float64 `json:"max_fee"` // 0 = unbounded
	FeeCurrency   string  `json:"fee_currency"`
}

type Provider struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Type                ProviderType     `json:"type"`
	Fees                FeeStructure     `json:"fee_structure"`
	FXMarginPct         float64          `json:"exchange_rate_margin_pct"`
	DeliveryMethods     []DeliveryMethod `json:"delivery_methods"`
	AvgDeliveryHours    float64          `json:"avg_delivery_hours"`
	SuccessRatePct      float64          `json:"historical_success_rate_pct"`
	ComplianceRatingPct float64          `json:"compliance_rating_pct"`
	HasRealtimeRates    bool             `json:"has_realtime_rates"`
	HasRealtimeTracking bool             `json:"has_realtime_tracking"`
	CreatedAt           time.Time        `json:"created_at"`
}

// SupportsDelivery reports whether the provider offers the given method.
func (p *Provider) SupportsDelivery(m DeliveryMethod) bool {
	for _, d := range p.DeliveryMethods {
		if d == m {
			return true
		}
	}
	return false
}

type RouteFees struct {
	ProviderFee   float64 `json:"provider_fee"`
	AgentFee      float64 `json:"agent_fee"`
	RegulatoryFee float64 `json:"regulatory_fee"`
	TotalFee      float64 `json:"total_fee"`
}

// Route is one concrete (corridor, provider, delivery method) combination
// with fully computed cost, rate and timing. Routes are never mutated after
// creation; re-scoring produces a fresh Route with a new timestamp.
type Route struct {
	ID                  string         `json:"id"`
	CorridorID          string         `json:"corridor_id"`
	ProviderID          string         `json:"provider_id"`
	ProviderName        string         `json:"provider_name"`
	ProviderType        ProviderType   `json:"provider_type"`
	DeliveryMethod      DeliveryMethod `json:"delivery_method"`
	ExchangeRate        float64        `json:"exchange_rate"`
	RateAsOf            time.Time      `json:"rate_as_of"`
	Fees                RouteFees      `json:"fees"`
	TotalCost           float64        `json:"total_cost"`
	EstimatedHours      float64        `json:"estimated_delivery_hours"`
	ConfidenceScore     float64        `json:"confidence_score"`
	CapacityAvailable   bool           `json:"capacity_available"`
	RegulatoryCompliant bool           `json:"regulatory_compliant"`
	CompositeScore      float64        `json:"composite_score"`
	PersonalizedScore   float64        `json:"personalized_score"`
	CreatedAt           time.Time      `json:"created_at"`
	ExpiresAt           time.Time      `json:"expires_at"`
}

type RecipientInfo struct {
	Name              string         `json:"name"`
	Location          string         `json:"location"`
	PreferredDelivery DeliveryMethod `json:"preferred_delivery,omitempty"`
}

// Quote freezes an optimizer result into an immutable, time-boxed artifact.
// The four named picks always reference members of Routes.
type Quote struct {
	ID                   string        `json:"id"`
	SendAmount           float64       `json:"send_amount"`
	SendCurrency         string        `json:"send_currency"`
	ReceiveAmount        float64       `json:"receive_amount"`
	ReceiveCurrency      string        `json:"receive_currency"`
	CorridorID           string        `json:"corridor_id"`
	Routes               []Route       `json:"recommended_routes"`
	BestRateRouteID      string        `json:"best_rate_route_id"`
	FastestRouteID       string        `json:"fastest_route_id"`
	CheapestRouteID      string        `json:"cheapest_route_id"`
	AIRecommendedRouteID string        `json:"ai_recommended_route_id"`
	Recipient            RecipientInfo `json:"recipient_info"`
	CreatedAt            time.Time     `json:"created_at"`
	ExpiresAt            time.Time     `json:"expires_at"`
}

// RouteByID returns the member route with the given id, or nil.
func (q *Quote) RouteByID(id string) *Route {
	for i := range q.Routes {
		if q.Routes[i].ID == id {
			return &q.Routes[i]
		}
	}
	return nil
}

func (q *Quote) Expired(now time.Time) bool {
	return now.After(q.ExpiresAt)
}

type Transaction struct {
	ID              string    `json:"id"`
	QuoteID         string    `json:"quote_id"`
	RouteID         string    `json:"route_id"`
	ProviderID      string    `json:"provider_id"`
	CorridorID      string    `json:"corridor_id"`
	SendAmount      float64   `json:"send_amount"`
	SendCurrency    string    `json:"send_currency"`
	ReceiveAmount   float64   `json:"receive_amount"`
	ReceiveCurrency string    `json:"receive_currency"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// SenderProfile is derived from a sender's past transfers and drives the
// personalization bonuses of the optimizer.
type SenderProfile struct {
	SenderID             string   `json:"sender_id"`
	PreferredProviderIDs []string `json:"preferred_provider_ids"`
	PrefersSpeed         bool     `json:"prefers_speed"`
	PrefersCost          bool     `json:"prefers_cost"`
	AverageCostUSD       float64  `json:"average_cost_usd"`
}

func (p *SenderProfile) PrefersProvider(providerID string) bool {
	for _, id := range p.PreferredProviderIDs {
		if id == providerID {
			return true
		}
	}
	return false
}

type SenderRouteRecord struct {
	SenderID      string    `json:"sender_id"`
	ProviderID    string    `json:"provider_id"`
	CorridorID    string    `json:"corridor_id"`
	Rating        int       `json:"rating"` // 1..5
	DeliveryHours float64   `json:"delivery_hours"`
	TotalCostUSD  float64   `json:"total_cost_usd"`
	CreatedAt     time.Time `json:"created_at"`
}

type ProviderRate struct {
	Rate float64   `json:"rate"`
	AsOf time.Time `json:"as_of"`
}

type CapacityCheck struct {
	Available    bool    `json:"available"`
	RemainingUSD float64 `json:"remaining_usd"`
}

type PredictionFactors struct {
	SeasonalMultiplier     float64  `json:"seasonal_multiplier"`
	MarketMultiplier       float64  `json:"market_multiplier"`
	MarketEvents           []string `json:"market_events"`
	HistoricalPatternRatio float64  `json:"historical_pattern_ratio"`
}

type CashFlowPrediction struct {
	DistributorID       string            `json:"distributor_id"`
	CorridorID          string            `json:"corridor_id"`
	PredictionDate      time.Time         `json:"prediction_date"`
	PredictedInflowUSD  float64           `json:"predicted_inflow_usd"`
	PredictedOutflowUSD float64           `json:"predicted_outflow_usd"`
	NetFlowUSD          float64           `json:"net_flow_usd"`
	Confidence          float64           `json:"confidence"`
	Factors             PredictionFactors `json:"factors"`
	RecommendedActions  []string          `json:"recommended_actions"`
}
