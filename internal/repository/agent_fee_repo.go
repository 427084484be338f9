package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AgentFeeRepository struct {
	pool *pgxpool.Pool
}

func NewAgentFeeRepository(pool *pgxpool.Pool) *AgentFeeRepository {
	return &AgentFeeRepository{pool: pool}
}

func (r *AgentFeeRepository) GetFee(ctx context.Context, corridorID, location string) (float64, bool, error) {
	var fee float64
	err := r.pool.QueryRow(ctx,
		`SELECT fee_usd FROM agent_fees WHERE corridor_id = $1 AND location = $2`,
		corridorID, location,
	).Scan(&fee)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query agent fee: %w", err)
	}
	return fee, true, nil
}
