package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trogers1052/trade-journal-service/internal/models"
)

// failingProvider counts attempts so tests can assert the
// initialize-once contract.
type failingProvider struct {
	calls int
}

func (*failingProvider) Name() string { return "failing" }

func (p *failingProvider) NewClient(context.Context, string) (*firestore.Client, error) {
	p.calls++
	return nil, errors.New("no credentials here")
}

func TestStoreNotInitialized(t *testing.T) {
	ctx := context.Background()

	t.Run("operations fail fast without a client", func(t *testing.T) {
		s := New("fun-dead-trader", "journal_entries")

		id, err := s.AddTradeEntry(ctx, &models.TradeEntry{Symbol: "BTCUSD"})
		assert.Empty(t, id)
		assert.ErrorIs(t, err, ErrNotInitialized)

		entries, err := s.GetTradeEntries(ctx, 0)
		assert.Empty(t, entries)
		assert.ErrorIs(t, err, ErrNotInitialized)
		assert.False(t, s.Ready())
	})

	t.Run("init with no providers fails", func(t *testing.T) {
		s := New("fun-dead-trader", "journal_entries")
		err := s.Init(ctx)
		assert.ErrorIs(t, err, ErrNotInitialized)
	})

	t.Run("init attempted at most once", func(t *testing.T) {
		p := &failingProvider{}
		s := New("fun-dead-trader", "journal_entries", p)

		err1 := s.Init(ctx)
		err2 := s.Init(ctx)
		require.Error(t, err1)
		assert.Equal(t, err1, err2)
		assert.Equal(t, 1, p.calls)
	})

	t.Run("init error carries provider causes", func(t *testing.T) {
		s := New("fun-dead-trader", "journal_entries", &failingProvider{})
		err := s.Init(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no credentials here")
	})
}

func TestDocConversion(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	entry := models.TradeEntry{
		Symbol:         "AAPL",
		Direction:      models.DirectionShort,
		EntryPrice:     decimal.NewFromFloat(200.50),
		ExitPrice:      decimal.NewFromFloat(198.25),
		Size:           decimal.NewFromFloat(40),
		Pnl:            decimal.NewFromFloat(90),
		Notes:          "gap fade",
		EntryTimestamp: time.Date(2025, 6, 2, 9, 30, 0, 0, ny),
		ExitTimestamp:  time.Date(2025, 6, 2, 11, 0, 0, 0, ny),
	}

	doc := toDoc(&entry)
	assert.Equal(t, time.UTC, doc.EntryTimestamp.Location())
	assert.Equal(t, time.UTC, doc.ExitTimestamp.Location())
	assert.True(t, doc.CreatedAt.IsZero(), "created_at is the server's to assign")
	assert.InDelta(t, 200.50, doc.EntryPrice, 1e-9)
	assert.InDelta(t, 90.0, doc.Pnl, 1e-9)

	doc.CreatedAt = time.Date(2025, 6, 2, 15, 0, 1, 0, time.UTC)
	got := fromDoc("doc-123", doc)
	assert.Equal(t, "doc-123", got.ID)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.True(t, entry.EntryPrice.Equal(got.EntryPrice))
	assert.True(t, entry.Pnl.Equal(got.Pnl))
	assert.Equal(t, time.UTC, got.CreatedAt.Location())
	assert.True(t, entry.EntryTimestamp.Equal(got.EntryTimestamp))
}

func TestOpErrorMessages(t *testing.T) {
	err := &OpError{Op: "add", Err: errors.New("boom")}
	assert.Contains(t, err.Error(), "add")
	assert.Contains(t, err.UserMessage(), "boom")
	assert.ErrorIs(t, err, err.Err)
}
