package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FlowRepository struct {
	pool *pgxpool.Pool
}

func NewFlowRepository(pool *pgxpool.Pool) *FlowRepository {
	return &FlowRepository{pool: pool}
}

type FlowStats struct {
	AvgDailyInflowUSD  float64
	AvgDailyOutflowUSD float64
	DataPoints         int
}

// TrailingStats aggregates per-day inflow/outflow averages over the trailing
// window along with the number of distinct days that have any data.
func (r *FlowRepository) TrailingStats(ctx context.Context, distributorID, corridorID string, windowDays int) (FlowStats, error) {
	var s FlowStats
	err := r.pool.QueryRow(ctx, `
		WITH daily AS (
			SELECT
				recorded_at::date AS day,
				COALESCE(SUM(amount_usd) FILTER (WHERE direction = 'INFLOW'), 0) AS inflow,
				COALESCE(SUM(amount_usd) FILTER (WHERE direction = 'OUTFLOW'), 0) AS outflow
			FROM flow_history
			WHERE distributor_id = $1 AND corridor_id = $2
				AND recorded_at >= NOW() - make_interval(days => $3)
			GROUP BY recorded_at::date
		)
		SELECT
			COALESCE(AVG(inflow), 0),
			COALESCE(AVG(outflow), 0),
			COUNT(*)
		FROM daily`,
		distributorID, corridorID, windowDays,
	).Scan(&s.AvgDailyInflowUSD, &s.AvgDailyOutflowUSD, &s.DataPoints)
	if err != nil {
		return FlowStats{}, fmt.Errorf("query trailing flow stats: %w", err)
	}
	return s, nil
}

type SentimentStats struct {
	AvgSentiment float64
	DataPoints   int
}

func (r *FlowRepository) RecentSentiment(ctx context.Context, corridorID string, windowDays int) (SentimentStats, error) {
	var s SentimentStats
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(sentiment), 50), COUNT(*)
		FROM market_signals
		WHERE corridor_id = $1
			AND recorded_at >= NOW() - make_interval(days => $2)`,
		corridorID, windowDays,
	).Scan(&s.AvgSentiment, &s.DataPoints)
	if err != nil {
		return SentimentStats{}, fmt.Errorf("query market sentiment: %w", err)
	}
	return s, nil
}
