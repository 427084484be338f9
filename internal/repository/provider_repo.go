package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velamo/remitroute/internal/model"
)

type ProviderRepository struct {
	pool *pgxpool.Pool
}

func NewProviderRepository(pool *pgxpool.Pool) *ProviderRepository {
	return &ProviderRepository{pool: pool}
}

const providerSelect = `
	SELECT
		p.id, p.name, p.type,
		p.base_fee, p.percentage_fee, p.min_fee, p.max_fee, p.fee_currency,
		p.fx_margin_pct, p.avg_delivery_hours, p.success_rate_pct, p.compliance_rating_pct,
		p.realtime_rates, p.realtime_tracking, p.created_at,
		COALESCE(array_agg(pdm.method) FILTER (WHERE pdm.method IS NOT NULL), '{}') AS delivery_methods
	FROM providers p
	LEFT JOIN provider_delivery_methods pdm ON pdm.provider_id = p.id`

func (r *ProviderRepository) ListForCorridor(ctx context.Context, corridorID string) ([]model.Provider, error) {
	query := providerSelect + `
	JOIN provider_corridors pc ON pc.provider_id = p.id
	WHERE pc.corridor_id = $1
	GROUP BY p.id
	ORDER BY p.id`

	rows, err := r.pool.Query(ctx, query, corridorID)
	if err != nil {
		return nil, fmt.Errorf("query providers for corridor: %w", err)
	}
	defer rows.Close()

	var providers []model.Provider
	for rows.Next() {
		var p model.Provider
		var methods []string
		err := rows.Scan(
			&p.ID, &p.Name, &p.Type,
			&p.Fees.BaseFee, &p.Fees.PercentageFee, &p.Fees.MinFee, &p.Fees.MaxFee, &p.Fees.FeeCurrency,
			&p.FXMarginPct, &p.AvgDeliveryHours, &p.SuccessRatePct, &p.ComplianceRatingPct,
			&p.HasRealtimeRates, &p.HasRealtimeTracking, &p.CreatedAt,
			&methods,
		)
		if err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		for _, m := range methods {
			p.DeliveryMethods = append(p.DeliveryMethods, model.DeliveryMethod(m))
		}
		providers = append(providers, p)
	}

	return providers, rows.Err()
}

func (r *ProviderRepository) GetByID(ctx context.Context, id string) (*model.Provider, error) {
	query := providerSelect + `
	WHERE p.id = $1
	GROUP BY p.id`

	var p model.Provider
	var methods []string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Type,
		&p.Fees.BaseFee, &p.Fees.PercentageFee, &p.Fees.MinFee, &p.Fees.MaxFee, &p.Fees.FeeCurrency,
		&p.FXMarginPct, &p.AvgDeliveryHours, &p.SuccessRatePct, &p.ComplianceRatingPct,
		&p.HasRealtimeRates, &p.HasRealtimeTracking, &p.CreatedAt,
		&methods,
	)
	if err != nil {
		return nil, fmt.Errorf("scan provider: %w", err)
	}
	for _, m := range methods {
		p.DeliveryMethods = append(p.DeliveryMethods, model.DeliveryMethod(m))
	}
	return &p, nil
}
