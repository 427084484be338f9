package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/velamo/remitroute/internal/metrics"
	"github.com/velamo/remitroute/internal/model"
	"github.com/velamo/remitroute/internal/quotestore"
)

type quoteAuditStore interface {
	InsertAudit(ctx context.Context, q *model.Quote) error
}

type transactionStore interface {
	Insert(ctx context.Context, txn *model.Transaction) error
}

// QuoteService freezes optimizer output into immutable, time-boxed quotes
// and executes them at most once. Execution re-checks provider capacity:
// up to fifteen minutes can pass between quoting and execution, and the
// frozen quote's capacity answer may no longer hold.
type QuoteService struct {
	optimizer *Optimizer
	store     quotestore.Store
	audit     quoteAuditStore
	txns      transactionStore
	capacity  capacitySource
	metrics   *metrics.ServiceMetrics
	now       func() time.Time
}

func NewQuoteService(optimizer *Optimizer, store quotestore.Store, audit quoteAuditStore,
	txns transactionStore, capacity capacitySource, m *metrics.ServiceMetrics) *QuoteService {
	return &QuoteService{
		optimizer: optimizer,
		store:     store,
		audit:     audit,
		txns:      txns,
		capacity:  capacity,
		metrics:   m,
		now:       time.Now,
	}
}

func (s *QuoteService) CreateQuote(ctx context.Context, req OptimizeRequest) (*model.Quote, error) {
	result, err := s.optimizer.FindOptimalRoutes(ctx, req)
	if err != nil {
		return nil, err
	}

	ai := result.Routes[0]
	now := s.now()
	quote := &model.Quote{
		ID:                   uuid.NewString(),
		SendAmount:           req.Amount,
		SendCurrency:         req.CurrencyFrom,
		ReceiveAmount:        (req.Amount - ai.TotalCost) * ai.ExchangeRate,
		ReceiveCurrency:      req.CurrencyTo,
		CorridorID:           result.Corridor.ID,
		Routes:               result.Routes,
		BestRateRouteID:      result.BestRateRouteID,
		FastestRouteID:       result.FastestRouteID,
		CheapestRouteID:      result.CheapestRouteID,
		AIRecommendedRouteID: result.AIRecommendedRouteID,
		Recipient:            req.Recipient,
		CreatedAt:            now,
		ExpiresAt:            now.Add(routeTTL),
	}

	if err := s.store.Save(ctx, quote); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if err := s.audit.InsertAudit(ctx, quote); err != nil {
		// The live copy is already saved; audit is recoverable from logs.
		log.Error().Err(err).Str("quote_id", quote.ID).Msg("quote audit insert failed")
	}

	s.metrics.QuotesCreatedTotal.Inc()
	return quote, nil
}

func (s *QuoteService) GetQuote(ctx context.Context, quoteID string) (*model.Quote, error) {
	q, err := s.store.Get(ctx, quoteID)
	if errors.Is(err, quotestore.ErrNotFound) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return q, nil
}

// Execute binds a chosen route to a transaction in the external ledger.
// Expiry is strict: one millisecond past expiresAt fails regardless of route
// validity. A quote executes at most once.
func (s *QuoteService) Execute(ctx context.Context, quoteID, routeID string) (*model.Transaction, error) {
	quote, err := s.GetQuote(ctx, quoteID)
	if err != nil {
		s.metrics.ExecutionFailedTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	if quote.Expired(s.now()) {
		s.metrics.ExecutionFailedTotal.WithLabelValues("expired").Inc()
		return nil, ErrQuoteExpired
	}

	route := quote.RouteByID(routeID)
	if route == nil {
		s.metrics.ExecutionFailedTotal.WithLabelValues("route_not_in_quote").Inc()
		return nil, ErrRouteNotInQuote
	}

	check, err := s.capacity.CheckCapacity(ctx, route.ProviderID, quote.SendAmount)
	if err != nil {
		s.metrics.ExecutionFailedTotal.WithLabelValues("capacity_check_failed").Inc()
		return nil, err
	}
	if !check.Available {
		s.metrics.ExecutionFailedTotal.WithLabelValues("capacity_gone").Inc()
		return nil, ErrCapacityGone
	}

	claimed, err := s.store.ClaimExecution(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if !claimed {
		s.metrics.ExecutionFailedTotal.WithLabelValues("already_executed").Inc()
		return nil, ErrQuoteAlreadyExecuted
	}

	txn := &model.Transaction{
		ID:              uuid.NewString(),
		QuoteID:         quote.ID,
		RouteID:         route.ID,
		ProviderID:      route.ProviderID,
		CorridorID:      quote.CorridorID,
		SendAmount:      quote.SendAmount,
		SendCurrency:    quote.SendCurrency,
		ReceiveAmount:   (quote.SendAmount - route.TotalCost) * route.ExchangeRate,
		ReceiveCurrency: quote.ReceiveCurrency,
		Status:          "processing",
		CreatedAt:       s.now(),
	}
	if err := s.txns.Insert(ctx, txn); err != nil {
		// The quote was claimed but no transaction exists; release the claim
		// so a retry can execute it instead of hitting "already executed".
		if relErr := s.store.ReleaseExecution(ctx, quoteID); relErr != nil {
			log.Error().Err(relErr).Str("quote_id", quoteID).Msg("failed to release execution claim")
		}
		s.metrics.ExecutionFailedTotal.WithLabelValues("ledger_insert_failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	s.metrics.QuotesExecutedTotal.Inc()
	return txn, nil
}
