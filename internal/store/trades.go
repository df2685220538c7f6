package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/trogers1052/trade-journal-service/internal/models"
)

// tradeDoc is the Firestore document shape. Money fields are carried
// as float64, the store's native number type; created_at left at its
// zero value is replaced by the server clock at write time.
type tradeDoc struct {
	Symbol         string    `firestore:"symbol"`
	Direction      string    `firestore:"direction"`
	EntryPrice     float64   `firestore:"entry_price"`
	ExitPrice      float64   `firestore:"exit_price"`
	Size           float64   `firestore:"size"`
	Pnl            float64   `firestore:"pnl"`
	Notes          string    `firestore:"notes"`
	EntryTimestamp time.Time `firestore:"entry_timestamp"`
	ExitTimestamp  time.Time `firestore:"exit_timestamp"`
	CreatedAt      time.Time `firestore:"created_at,serverTimestamp"`
}

func toDoc(e *models.TradeEntry) tradeDoc {
	return tradeDoc{
		Symbol:         e.Symbol,
		Direction:      e.Direction,
		EntryPrice:     e.EntryPrice.InexactFloat64(),
		ExitPrice:      e.ExitPrice.InexactFloat64(),
		Size:           e.Size.InexactFloat64(),
		Pnl:            e.Pnl.InexactFloat64(),
		Notes:          e.Notes,
		EntryTimestamp: e.EntryTimestamp.UTC(),
		ExitTimestamp:  e.ExitTimestamp.UTC(),
	}
}

func fromDoc(id string, d tradeDoc) models.TradeEntry {
	return models.TradeEntry{
		ID:             id,
		Symbol:         d.Symbol,
		Direction:      d.Direction,
		EntryPrice:     decimal.NewFromFloat(d.EntryPrice),
		ExitPrice:      decimal.NewFromFloat(d.ExitPrice),
		Size:           decimal.NewFromFloat(d.Size),
		Pnl:            decimal.NewFromFloat(d.Pnl),
		Notes:          d.Notes,
		EntryTimestamp: d.EntryTimestamp.UTC(),
		ExitTimestamp:  d.ExitTimestamp.UTC(),
		CreatedAt:      d.CreatedAt.UTC(),
	}
}

// AddTradeEntry writes a new trade document and returns its
// store-assigned identifier. created_at is stamped with the database
// server's clock, not the caller's. There is no retry; a failed
// submission is reported once and left to the caller to resubmit.
func (s *Store) AddTradeEntry(ctx context.Context, entry *models.TradeEntry) (string, error) {
	if s.client == nil {
		log.Error().Msg("cannot add trade entry: store not initialized")
		return "", ErrNotInitialized
	}

	ref, _, err := s.client.Collection(s.collection).Add(ctx, toDoc(entry))
	if err != nil {
		log.Error().Err(err).Str("symbol", entry.Symbol).Msg("failed to add trade entry")
		return "", opError("add", err)
	}

	log.Info().Str("id", ref.ID).Str("symbol", entry.Symbol).Msg("trade entry added")
	return ref.ID, nil
}

// GetTradeEntries retrieves trade entries ordered by created_at
// descending (most recent first), capped server-side when limit > 0.
// Every instant field comes back as a UTC value and each entry
// carries its document identifier. On failure the list is empty,
// never partial.
func (s *Store) GetTradeEntries(ctx context.Context, limit int) ([]models.TradeEntry, error) {
	if s.client == nil {
		log.Error().Msg("cannot retrieve trade entries: store not initialized")
		return nil, ErrNotInitialized
	}

	q := s.client.Collection(s.collection).OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	var entries []models.TradeEntry
	it := q.Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to retrieve trade entries")
			return nil, opError("query", err)
		}
		var d tradeDoc
		if err := snap.DataTo(&d); err != nil {
			log.Error().Err(err).Str("id", snap.Ref.ID).Msg("failed to decode trade entry")
			return nil, opError("decode", err)
		}
		entries = append(entries, fromDoc(snap.Ref.ID, d))
	}

	return entries, nil
}
