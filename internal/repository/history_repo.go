package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velamo/remitroute/internal/model"
)

type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

func (r *HistoryRepository) ListBySender(ctx context.Context, senderID string) ([]model.SenderRouteRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT sender_id, provider_id, corridor_id, rating, delivery_hours, total_cost_usd, created_at
		FROM sender_route_history
		WHERE sender_id = $1
		ORDER BY created_at DESC
		LIMIT 100`, senderID)
	if err != nil {
		return nil, fmt.Errorf("query sender history: %w", err)
	}
	defer rows.Close()

	var records []model.SenderRouteRecord
	for rows.Next() {
		var rec model.SenderRouteRecord
		err := rows.Scan(&rec.SenderID, &rec.ProviderID, &rec.CorridorID,
			&rec.Rating, &rec.DeliveryHours, &rec.TotalCostUSD, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
