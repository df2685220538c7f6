package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Trade direction constants
const (
	DirectionLong  = "Long"
	DirectionShort = "Short"
)

// TradeEntry represents one closed trade in the journal
type TradeEntry struct {
	ID             string          `json:"id,omitempty"`
	Symbol         string          `json:"symbol"`
	Direction      string          `json:"direction"`
	EntryPrice     decimal.Decimal `json:"entry_price"`
	ExitPrice      decimal.Decimal `json:"exit_price"`
	Size           decimal.Decimal `json:"size"`
	Pnl            decimal.Decimal `json:"pnl"`
	Notes          string          `json:"notes,omitempty"`
	EntryTimestamp time.Time       `json:"entry_timestamp"`
	ExitTimestamp  time.Time       `json:"exit_timestamp"`
	CreatedAt      time.Time       `json:"created_at,omitempty"`
}

// Normalize trims and uppercases the symbol and forces both trade
// timestamps to UTC.
func (t *TradeEntry) Normalize() {
	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
	if !t.EntryTimestamp.IsZero() {
		t.EntryTimestamp = t.EntryTimestamp.UTC()
	}
	if !t.ExitTimestamp.IsZero() {
		t.ExitTimestamp = t.ExitTimestamp.UTC()
	}
}

// Validate checks the entry against the journal's invariants. It is
// called before every write; persisted entries are never repaired.
func (t *TradeEntry) Validate() error {
	if t.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if t.Direction != DirectionLong && t.Direction != DirectionShort {
		return fmt.Errorf("direction must be %q or %q", DirectionLong, DirectionShort)
	}
	if !t.EntryPrice.IsPositive() {
		return fmt.Errorf("entry price must be greater than zero")
	}
	if !t.ExitPrice.IsPositive() {
		return fmt.Errorf("exit price must be greater than zero")
	}
	if !t.Size.IsPositive() {
		return fmt.Errorf("size must be greater than zero")
	}
	if t.EntryTimestamp.IsZero() || t.ExitTimestamp.IsZero() {
		return fmt.Errorf("entry and exit timestamps are required")
	}
	if !t.EntryTimestamp.Before(t.ExitTimestamp) {
		return fmt.Errorf("exit timestamp must be after entry timestamp")
	}
	return nil
}

// DerivePnl computes (exit - entry) * size, negated for short trades.
func (t *TradeEntry) DerivePnl() decimal.Decimal {
	pnl := t.ExitPrice.Sub(t.EntryPrice).Mul(t.Size)
	if t.Direction == DirectionShort {
		pnl = pnl.Neg()
	}
	return pnl
}

// PerformanceStats holds metrics derived from a list of trade entries
type PerformanceStats struct {
	TotalTrades   int             `json:"total_trades"`
	WinningTrades int             `json:"winning_trades"`
	TotalPnl      decimal.Decimal `json:"total_pnl"`
	WinRate       decimal.Decimal `json:"win_rate"`
}

// ComputeStats aggregates total P&L and win rate over a trade list.
// An empty list yields a zero win rate, not a division error.
func ComputeStats(entries []TradeEntry) PerformanceStats {
	var stats PerformanceStats
	stats.TotalTrades = len(entries)

	for _, e := range entries {
		stats.TotalPnl = stats.TotalPnl.Add(e.Pnl)
		if e.Pnl.IsPositive() {
			stats.WinningTrades++
		}
	}

	if stats.TotalTrades > 0 {
		stats.WinRate = decimal.NewFromInt(int64(stats.WinningTrades)).
			Div(decimal.NewFromInt(int64(stats.TotalTrades))).
			Mul(decimal.NewFromInt(100))
	}

	return stats
}
