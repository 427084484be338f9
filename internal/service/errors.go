package service

import "errors"

// Fatal, user-facing errors are surfaced directly with no retry. Transient
// per-candidate failures (rate unavailable, capacity check failure) drop the
// candidate and only escalate when they empty the candidate set.
// ErrUpstreamUnavailable marks reachability failures of the reference store
// or event channel so callers can retry with backoff.
var (
	ErrNoCorridor           = errors.New("route not supported")
	ErrAmountOutsideLimits  = errors.New("amount outside corridor volume limits")
	ErrNoViableCandidates   = errors.New("no provider available right now")
	ErrRateUnavailable      = errors.New("exchange rate unavailable for currency pair")
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrQuoteExpired         = errors.New("quote expired")
	ErrRouteNotInQuote      = errors.New("selected route is not part of the quote")
	ErrQuoteAlreadyExecuted = errors.New("quote already executed")
	ErrCapacityGone         = errors.New("provider can no longer cover the amount")
	ErrUpstreamUnavailable  = errors.New("upstream dependency unavailable")
)
