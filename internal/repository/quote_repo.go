package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velamo/remitroute/internal/model"
)

// QuoteRepository keeps an audit copy of every issued quote. The live copy
// used for execution lives in the quote store.
type QuoteRepository struct {
	pool *pgxpool.Pool
}

func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{pool: pool}
}

func (r *QuoteRepository) InsertAudit(ctx context.Context, q *model.Quote) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal quote: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO quotes (id, corridor_id, send_amount, send_currency,
			receive_amount, receive_currency, payload, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		q.ID, q.CorridorID, q.SendAmount, q.SendCurrency,
		q.ReceiveAmount, q.ReceiveCurrency, payload, q.CreatedAt, q.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert quote audit: %w", err)
	}
	return nil
}
