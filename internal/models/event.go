package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTradeRecorded = "TRADE_RECORDED"
)

// TradeEvent is published to Kafka after a journal write succeeds
type TradeEvent struct {
	EventType string          `json:"event_type"`
	TradeID   string          `json:"trade_id"`
	Symbol    string          `json:"symbol"`
	Direction string          `json:"direction"`
	Pnl       decimal.Decimal `json:"pnl"`
	Timestamp time.Time       `json:"timestamp"`
}
