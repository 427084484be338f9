package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velamo/remitroute/internal/model"
)

type CorridorRepository struct {
	pool *pgxpool.Pool
}

func NewCorridorRepository(pool *pgxpool.Pool) *CorridorRepository {
	return &CorridorRepository{pool: pool}
}

const corridorColumns = `id, origin_country, destination_country, currency_from, currency_to,
	active, compliance_tier, min_amount_usd, max_amount_usd, daily_cap_usd,
	avg_delivery_hours, updated_at`

func (r *CorridorRepository) FindByIdentity(ctx context.Context, origin, destination, currencyFrom, currencyTo string) (*model.Corridor, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM corridors
		WHERE origin_country = $1 AND destination_country = $2
			AND currency_from = $3 AND currency_to = $4
			AND active`, corridorColumns)

	row := r.pool.QueryRow(ctx, query, origin, destination, currencyFrom, currencyTo)
	return scanCorridor(row)
}

func (r *CorridorRepository) FindByID(ctx context.Context, id string) (*model.Corridor, error) {
	query := fmt.Sprintf(`SELECT %s FROM corridors WHERE id = $1`, corridorColumns)
	row := r.pool.QueryRow(ctx, query, id)
	return scanCorridor(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCorridor(row rowScanner) (*model.Corridor, error) {
	var c model.Corridor
	err := row.Scan(
		&c.ID, &c.OriginCountry, &c.DestinationCountry, &c.CurrencyFrom, &c.CurrencyTo,
		&c.Active, &c.ComplianceTier, &c.MinAmountUSD, &c.MaxAmountUSD, &c.DailyCapUSD,
		&c.AvgDeliveryHours, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan corridor: %w", err)
	}
	return &c, nil
}
