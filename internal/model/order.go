package model

import "github.com/shopspring/decimal"

const (
	SideBuy  = "BUY"
	SideSell = "SELL"

	OrderTypeMarket    = "MARKET"
	OrderTypeLimit     = "LIMIT"
	OrderTypeStopLimit = "STOP_LIMIT"
)

// OrderRequest describes one order to place, built from CLI input.
type OrderRequest struct {
	Symbol        string
	Side          string
	Type          string
	Quantity      decimal.Decimal
	Price         decimal.Decimal // limit price, LIMIT and STOP_LIMIT only
	StopPrice     decimal.Decimal // trigger price, STOP_LIMIT only
	ClientOrderID string
	AutoAdjust    bool
}

// PlacedOrder is the slice of the exchange order response we report.
type PlacedOrder struct {
	OrderID       int64
	ClientOrderID string
	Status        string
	ExecutedQty   string
	AvgPrice      string
	CumQuote      string
}

// OrderResult is the structured outcome of a single order attempt.
type OrderResult struct {
	Success   bool
	OrderID   int64
	Symbol    string
	Side      string
	Type      string
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	StopPrice decimal.Decimal
	Status    string
	Message   string
	Err       string
}
