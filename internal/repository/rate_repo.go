package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RateRepository reads mid-market rates from the reference store. The table
// is refreshed by an external feed; rate-change events invalidate the
// in-process cache so reads pick up new rows immediately.
type RateRepository struct {
	pool *pgxpool.Pool
}

func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}

func (r *RateRepository) GetMidMarketRate(ctx context.Context, currencyFrom, currencyTo string) (float64, time.Time, bool, error) {
	var rate float64
	var asOf time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT rate, as_of FROM mid_market_rates WHERE currency_from = $1 AND currency_to = $2`,
		currencyFrom, currencyTo,
	).Scan(&rate, &asOf)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, time.Time{}, false, nil
	}
	if err != nil {
		return 0, time.Time{}, false, fmt.Errorf("query mid-market rate: %w", err)
	}
	return rate, asOf, true, nil
}
