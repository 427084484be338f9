package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/velamo/remitroute/internal/metrics"
	"github.com/velamo/remitroute/internal/model"
)

const (
	// Route and quote validity window.
	routeTTL = 15 * time.Minute

	// Rate age beyond which the confidence score is penalized.
	staleRateAge = 5 * time.Minute

	// Remaining capacity below this multiple of total cost counts as thin
	// liquidity.
	thinLiquidityFactor = 2.0

	topRoutes = 5
)

type corridorSource interface {
	FindCorridor(ctx context.Context, origin, destination, currencyFrom, currencyTo string) (*model.Corridor, error)
	ListProvidersForCorridor(ctx context.Context, corridorID string) ([]model.Provider, error)
}

type rateSource interface {
	GetRate(ctx context.Context, currencyFrom, currencyTo, providerID string) (model.ProviderRate, error)
}

type capacitySource interface {
	CheckCapacity(ctx context.Context, providerID string, amount float64) (model.CapacityCheck, error)
}

type historySource interface {
	ListBySender(ctx context.Context, senderID string) ([]model.SenderRouteRecord, error)
}

type OptimizeRequest struct {
	Amount             float64
	CurrencyFrom       string
	CurrencyTo         string
	OriginCountry      string
	DestinationCountry string
	SenderID           string
	Recipient          model.RecipientInfo
}

type OptimizeResult struct {
	Corridor             *model.Corridor
	Routes               []model.Route
	BestRateRouteID      string
	FastestRouteID       string
	CheapestRouteID      string
	AIRecommendedRouteID string
}

// Optimizer builds candidate routes for a transfer request, enriches them
// concurrently with live rates, capacity and fees, scores them against the
// weighted objectives and personalizes the ranking from sender history.
type Optimizer struct {
	registry corridorSource
	rates    rateSource
	capacity capacitySource
	fees     *FeeCalculator
	history  historySource
	metrics  *metrics.ServiceMetrics
	now      func() time.Time
}

func NewOptimizer(registry corridorSource, rates rateSource, capacity capacitySource,
	fees *FeeCalculator, history historySource, m *metrics.ServiceMetrics) *Optimizer {
	return &Optimizer{
		registry: registry,
		rates:    rates,
		capacity: capacity,
		fees:     fees,
		history:  history,
		metrics:  m,
		now:      time.Now,
	}
}

func (o *Optimizer) FindOptimalRoutes(ctx context.Context, req OptimizeRequest) (*OptimizeResult, error) {
	started := o.now()
	defer func() {
		o.metrics.OptimizeDuration.Observe(time.Since(started).Seconds())
	}()

	corridor, err := o.registry.FindCorridor(ctx, req.OriginCountry, req.DestinationCountry, req.CurrencyFrom, req.CurrencyTo)
	if err != nil {
		outcome := "no_corridor"
		if !errors.Is(err, ErrNoCorridor) {
			outcome = "lookup_failed"
		}
		o.metrics.RouteRequestsTotal.WithLabelValues("unknown", outcome).Inc()
		return nil, err
	}

	if (corridor.MinAmountUSD > 0 && req.Amount < corridor.MinAmountUSD) ||
		(corridor.MaxAmountUSD > 0 && req.Amount > corridor.MaxAmountUSD) {
		o.metrics.RouteRequestsTotal.WithLabelValues(corridor.ID, "outside_limits").Inc()
		return nil, ErrAmountOutsideLimits
	}

	providers, err := o.registry.ListProvidersForCorridor(ctx, corridor.ID)
	if err != nil {
		return nil, err
	}

	candidates := o.admissibleProviders(providers, req.Amount)
	routes := o.enrich(ctx, corridor, candidates, req)
	if len(routes) == 0 {
		o.metrics.RouteRequestsTotal.WithLabelValues(corridor.ID, "no_candidates").Inc()
		return nil, ErrNoViableCandidates
	}

	for i := range routes {
		routes[i].CompositeScore = compositeScore(&routes[i], req.Amount)
	}
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].CompositeScore > routes[j].CompositeScore
	})
	if len(routes) > topRoutes {
		routes = routes[:topRoutes]
	}

	profile := o.senderProfile(ctx, req.SenderID)
	for i := range routes {
		routes[i].PersonalizedScore = personalizedScore(&routes[i], profile)
	}
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].PersonalizedScore > routes[j].PersonalizedScore
	})

	result := &OptimizeResult{
		Corridor:             corridor,
		Routes:               routes,
		AIRecommendedRouteID: routes[0].ID,
	}
	o.pickExtremes(result)

	o.metrics.RouteRequestsTotal.WithLabelValues(corridor.ID, "ok").Inc()
	return result, nil
}

// admissibleProviders keeps providers whose fee structure leaves something to
// transfer at this amount.
func (o *Optimizer) admissibleProviders(providers []model.Provider, amount float64) []model.Provider {
	var out []model.Provider
	for _, p := range providers {
		if ProviderFee(p.Fees, amount) >= amount {
			o.metrics.CandidatesDroppedTotal.WithLabelValues("fee_exceeds_amount").Inc()
			continue
		}
		out = append(out, p)
	}
	return out
}

// enrich fans out one concurrent enrichment per candidate and joins before
// scoring. Candidates are independent: a slow or failing provider drops only
// its own route, never the whole request.
func (o *Optimizer) enrich(ctx context.Context, corridor *model.Corridor, providers []model.Provider, req OptimizeRequest) []model.Route {
	results := make([]*model.Route, len(providers))

	g, gctx := errgroup.WithContext(ctx)
	for i := range providers {
		i := i
		g.Go(func() error {
			route, reason := o.buildRoute(gctx, corridor, &providers[i], req)
			if route == nil {
				o.metrics.CandidatesDroppedTotal.WithLabelValues(reason).Inc()
				return nil
			}
			results[i] = route
			return nil
		})
	}
	_ = g.Wait()

	var routes []model.Route
	for _, r := range results {
		if r != nil {
			routes = append(routes, *r)
		}
	}
	return routes
}

func (o *Optimizer) buildRoute(ctx context.Context, corridor *model.Corridor, provider *model.Provider, req OptimizeRequest) (*model.Route, string) {
	rate, err := o.rates.GetRate(ctx, req.CurrencyFrom, req.CurrencyTo, provider.ID)
	if err != nil {
		log.Warn().Err(err).Str("provider_id", provider.ID).Msg("dropping candidate: rate fetch failed")
		return nil, "rate_unavailable"
	}

	capacity, err := o.capacity.CheckCapacity(ctx, provider.ID, req.Amount)
	if err != nil {
		log.Warn().Err(err).Str("provider_id", provider.ID).Msg("dropping candidate: capacity check failed")
		return nil, "capacity_check_failed"
	}
	if !capacity.Available {
		return nil, "capacity_unavailable"
	}

	agentFee, err := o.fees.AgentFee(ctx, corridor.ID, req.Recipient.Location)
	if err != nil {
		log.Warn().Err(err).Str("provider_id", provider.ID).Msg("dropping candidate: agent fee lookup failed")
		return nil, "agent_fee_failed"
	}

	providerFee := ProviderFee(provider.Fees, req.Amount)
	regulatoryFee := RegulatoryFee(corridor.ComplianceTier, req.Amount)
	totalFee := providerFee + agentFee + regulatoryFee

	now := o.now()
	route := &model.Route{
		ID:                  uuid.NewString(),
		CorridorID:          corridor.ID,
		ProviderID:          provider.ID,
		ProviderName:        provider.Name,
		ProviderType:        provider.Type,
		DeliveryMethod:      pickDeliveryMethod(provider, req.Recipient.PreferredDelivery),
		ExchangeRate:        rate.Rate,
		RateAsOf:            rate.AsOf,
		Fees:                model.RouteFees{ProviderFee: providerFee, AgentFee: agentFee, RegulatoryFee: regulatoryFee, TotalFee: totalFee},
		TotalCost:           totalFee,
		EstimatedHours:      provider.AvgDeliveryHours,
		CapacityAvailable:   true,
		RegulatoryCompliant: provider.ComplianceRatingPct >= complianceThresholdPct,
		CreatedAt:           now,
		ExpiresAt:           now.Add(routeTTL),
	}
	route.ConfidenceScore = confidenceScore(provider.SuccessRatePct, capacity.RemainingUSD, route.TotalCost, now.Sub(rate.AsOf))
	return route, ""
}

// confidenceScore starts from the provider's historical success rate and
// penalizes thin liquidity and stale rates.
func confidenceScore(successRatePct, remainingUSD, totalCost float64, rateAge time.Duration) float64 {
	score := successRatePct
	if remainingUSD < thinLiquidityFactor*totalCost {
		score -= 10
	}
	if rateAge > staleRateAge {
		score -= 5
	}
	return clamp(score, 0, 100)
}

func pickDeliveryMethod(provider *model.Provider, preferred model.DeliveryMethod) model.DeliveryMethod {
	if preferred != "" && provider.SupportsDelivery(preferred) {
		return preferred
	}
	if len(provider.DeliveryMethods) > 0 {
		return provider.DeliveryMethods[0]
	}
	return model.DeliveryBankDeposit
}

// senderProfile degrades gracefully: a missing or failing history lookup
// yields the unpersonalized ranking.
func (o *Optimizer) senderProfile(ctx context.Context, senderID string) *model.SenderProfile {
	if senderID == "" {
		return nil
	}
	records, err := o.history.ListBySender(ctx, senderID)
	if err != nil {
		log.Warn().Err(err).Str("sender_id", senderID).Msg("sender history unavailable, skipping personalization")
		return nil
	}
	return BuildSenderProfile(senderID, records)
}

// pickExtremes selects the best-rate, fastest and cheapest routes by linear
// scan over the recommended set, independent of the composite score.
func (o *Optimizer) pickExtremes(result *OptimizeResult) {
	routes := result.Routes
	best, fastest, cheapest := 0, 0, 0
	for i := 1; i < len(routes); i++ {
		if routes[i].ExchangeRate > routes[best].ExchangeRate {
			best = i
		}
		if routes[i].EstimatedHours < routes[fastest].EstimatedHours {
			fastest = i
		}
		if routes[i].TotalCost < routes[cheapest].TotalCost {
			cheapest = i
		}
	}
	result.BestRateRouteID = routes[best].ID
	result.FastestRouteID = routes[fastest].ID
	result.CheapestRouteID = routes[cheapest].ID
}
