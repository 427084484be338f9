package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CapacityRepository struct {
	pool *pgxpool.Pool
}

func NewCapacityRepository(pool *pgxpool.Pool) *CapacityRepository {
	return &CapacityRepository{pool: pool}
}

// GetRemaining returns the provider's remaining float in USD. found=false
// means the provider has no real-time capacity integration.
func (r *CapacityRepository) GetRemaining(ctx context.Context, providerID string) (float64, bool, error) {
	var remaining float64
	err := r.pool.QueryRow(ctx,
		`SELECT remaining_usd FROM provider_capacity WHERE provider_id = $1`,
		providerID,
	).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query provider capacity: %w", err)
	}
	return remaining, true, nil
}
