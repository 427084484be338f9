package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velamo/remitroute/internal/model"
)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func (r *TransactionRepository) Insert(ctx context.Context, txn *model.Transaction) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO transactions (id, quote_id, route_id, provider_id, corridor_id,
			send_amount, send_currency, receive_amount, receive_currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		txn.ID, txn.QuoteID, txn.RouteID, txn.ProviderID, txn.CorridorID,
		txn.SendAmount, txn.SendCurrency, txn.ReceiveAmount, txn.ReceiveCurrency,
		txn.Status, txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}
