package quotestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velamo/remitroute/internal/model"
)

func testQuote(id string, expiresAt time.Time) *model.Quote {
	return &model.Quote{
		ID:        id,
		CreatedAt: expiresAt.Add(-15 * time.Minute),
		ExpiresAt: expiresAt,
	}
}

func TestMemoryStore_SaveGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	q := testQuote("q1", time.Now().Add(15*time.Minute))
	require.NoError(t, s.Save(ctx, q))

	got, err := s.Get(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "q1", got.ID)
}

func TestMemoryStore_ExpiredQuoteStillRetrievable(t *testing.T) {
	// An expired quote must stay retrievable so execution can answer
	// "expired" rather than "not found".
	s := NewMemoryStore()
	ctx := context.Background()
	expiresAt := time.Now().Add(15 * time.Minute)
	require.NoError(t, s.Save(ctx, testQuote("q1", expiresAt)))

	s.now = func() time.Time { return expiresAt.Add(time.Millisecond) }
	got, err := s.Get(ctx, "q1")
	require.NoError(t, err)
	assert.True(t, got.Expired(s.now()))

	// Past the retention horizon it is gone for good.
	s.now = func() time.Time { return expiresAt.Add(retention + time.Second) }
	_, err = s.Get(ctx, "q1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ClaimExecution(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, testQuote("q1", time.Now().Add(15*time.Minute))))

	claimed, err := s.ClaimExecution(ctx, "q1")
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = s.ClaimExecution(ctx, "q1")
	require.NoError(t, err)
	assert.False(t, claimed)

	// Releasing the claim makes the quote executable again.
	require.NoError(t, s.ReleaseExecution(ctx, "q1"))
	claimed, err = s.ClaimExecution(ctx, "q1")
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestMemoryStore_SaveSweepsStaleEntries(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	oldExpiry := time.Now().Add(15 * time.Minute)
	require.NoError(t, s.Save(ctx, testQuote("stale", oldExpiry)))
	_, err := s.ClaimExecution(ctx, "stale")
	require.NoError(t, err)

	s.now = func() time.Time { return oldExpiry.Add(retention + time.Minute) }
	require.NoError(t, s.Save(ctx, testQuote("fresh", s.now().Add(15*time.Minute))))

	_, err = s.Get(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound)

	// A swept quote's execution claim is released with it.
	claimed, err := s.ClaimExecution(ctx, "stale")
	require.NoError(t, err)
	assert.True(t, claimed)
}
