// Package quotestore holds the live copy of issued quotes for lookup and
// execution. The redis implementation backs production (expired quotes fall
// out via TTL after a retention window); the memory implementation backs
// tests and brokerless development setups.
package quotestore

import (
	"context"
	"errors"

	"github.com/velamo/remitroute/internal/model"
)

var ErrNotFound = errors.New("quote not found in store")

// Store keeps quotes retrievable past their expiry (so execution can report
// expiry rather than absence) and serializes execution per quote:
// ClaimExecution succeeds exactly once per quote id. ReleaseExecution undoes
// a claim whose follow-up work failed, making the quote executable again.
type Store interface {
	Save(ctx context.Context, q *model.Quote) error
	Get(ctx context.Context, id string) (*model.Quote, error)
	ClaimExecution(ctx context.Context, id string) (bool, error)
	ReleaseExecution(ctx context.Context, id string) error
}
