// Package sizer computes position-size recommendations from account
// balance, risk tolerance and trade entry/stop prices. It is pure
// math: no I/O, no rounding (formatting is left to callers).
package sizer

import (
	"fmt"
	"math"
)

// Request carries the sizing inputs as submitted by the user.
type Request struct {
	AccountBalance float64 `json:"account_balance"`
	RiskPercentage float64 `json:"risk_percentage"`
	EntryPrice     float64 `json:"entry_price"`
	StopLossPrice  float64 `json:"stop_loss_price"`
	IsLong         bool    `json:"is_long_trade"`
}

// Result is the sizing recommendation. TotalPositionValue and
// ExceedsBalance let callers render a leverage warning.
type Result struct {
	PositionSizeUnits  float64 `json:"position_size_units"`
	RiskAmountDollars  float64 `json:"risk_amount_dollars"`
	RiskPerUnit        float64 `json:"risk_per_unit"`
	TotalPositionValue float64 `json:"total_position_value"`
	ExceedsBalance     bool    `json:"exceeds_balance"`
}

// InvalidInputError reports which input field violated which rule.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &InvalidInputError{Field: field, Message: message}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Calculate validates the request and returns the position size that
// risks RiskPercentage of AccountBalance between entry and stop.
//
// The directional stop checks are strict, so a stop exactly equal to
// the entry falls through to the risk-per-unit guard below and fails
// with its message rather than the directional one.
func Calculate(req Request) (*Result, error) {
	if !isFinite(req.AccountBalance) || req.AccountBalance <= 0 {
		return nil, invalid("account_balance", "account balance must be a positive number")
	}
	if !isFinite(req.RiskPercentage) || req.RiskPercentage <= 0 || req.RiskPercentage > 100 {
		return nil, invalid("risk_percentage", "risk percentage must be greater than 0 and at most 100")
	}
	if !isFinite(req.EntryPrice) || req.EntryPrice <= 0 {
		return nil, invalid("entry_price", "entry price must be a positive number")
	}
	if !isFinite(req.StopLossPrice) || req.StopLossPrice <= 0 {
		return nil, invalid("stop_loss_price", "stop loss price must be a positive number")
	}

	var riskPerUnit float64
	if req.IsLong {
		if req.StopLossPrice > req.EntryPrice {
			return nil, invalid("stop_loss_price",
				"for a long trade, stop loss price must be less than entry price")
		}
		riskPerUnit = req.EntryPrice - req.StopLossPrice
	} else {
		if req.StopLossPrice < req.EntryPrice {
			return nil, invalid("stop_loss_price",
				"for a short trade, stop loss price must be greater than entry price")
		}
		riskPerUnit = req.StopLossPrice - req.EntryPrice
	}

	if riskPerUnit <= 0 {
		return nil, invalid("stop_loss_price",
			"risk per unit cannot be zero or negative; adjust entry and stop loss prices")
	}

	riskAmount := req.AccountBalance * (req.RiskPercentage / 100)
	units := riskAmount / riskPerUnit
	totalValue := units * req.EntryPrice

	return &Result{
		PositionSizeUnits:  units,
		RiskAmountDollars:  riskAmount,
		RiskPerUnit:        riskPerUnit,
		TotalPositionValue: totalValue,
		ExceedsBalance:     totalValue > req.AccountBalance,
	}, nil
}

// Describe renders the result the way the CLI prints it.
func (r *Result) Describe() string {
	return fmt.Sprintf(
		"position size: %.2f units, risk amount: $%.2f, risk per unit: $%.2f, total position value: $%.2f",
		r.PositionSizeUnits, r.RiskAmountDollars, r.RiskPerUnit, r.TotalPositionValue)
}
