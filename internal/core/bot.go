package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"futures-order-bot-binance/internal/api"
	"futures-order-bot-binance/internal/logger"
	"futures-order-bot-binance/internal/model"

	"github.com/adshao/go-binance/v2/common"
	"github.com/shopspring/decimal"
)

// Exchange is the slice of the futures API the bot depends on.
type Exchange interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	GetSymbolFilters(ctx context.Context, symbol string) (model.SymbolFilters, error)
	CreateOrder(ctx context.Context, req model.OrderRequest) (*model.PlacedOrder, error)
}

// BasicBot places single MARKET, LIMIT and STOP_LIMIT orders on Binance
// USDT-M futures.
type BasicBot struct {
	Exchange Exchange
}

func NewBasicBot(exchange Exchange) *BasicBot {
	return &BasicBot{Exchange: exchange}
}

// PlaceMarketOrder submits a MARKET order after the minimum-notional
// check. The check fails open when market metadata cannot be fetched,
// rejects or auto-adjusts otherwise.
func (b *BasicBot) PlaceMarketOrder(ctx context.Context, req model.OrderRequest) model.OrderResult {
	logger.Info("Attempting MARKET order", "side", req.Side, "quantity", req.Quantity, "symbol", req.Symbol)

	if res, ok := checkSide(req); !ok {
		return res
	}

	v, err := b.checkMinNotional(ctx, req)
	if err != nil {
		logger.Error("Min notional check failed", "error", err)
		return failedResult(req, "Order failed pre-validation.", err.Error())
	}

	switch v.Outcome {
	case OutcomeRejected:
		logger.Error("Order rejected by min notional check", "reason", v.Reason)
		return failedResult(req, v.Reason, "")
	case OutcomeAdjusted:
		logger.Info("Auto-adjusting quantity to meet min notional",
			"from", req.Quantity, "to", v.Quantity, "min_notional", v.MinNotional)
		req.Quantity = v.Quantity
	case OutcomeSkipped:
		logger.Debug("Could not validate min notional for symbol; proceeding to place order",
			"symbol", req.Symbol, "cause", string(v.SkipCause))
	}

	return b.submit(ctx, req, "Market order placed successfully.")
}

// PlaceLimitOrder submits a LIMIT GTC order. The limit price carries an
// explicit notional, so the exchange checks it at submission time and
// no pre-validation runs here.
func (b *BasicBot) PlaceLimitOrder(ctx context.Context, req model.OrderRequest) model.OrderResult {
	logger.Info("Attempting LIMIT order",
		"side", req.Side, "quantity", req.Quantity, "symbol", req.Symbol, "price", req.Price)

	if res, ok := checkSide(req); !ok {
		return res
	}
	return b.submit(ctx, req, "Limit order placed successfully.")
}

// PlaceStopLimitOrder submits a STOP_LIMIT order: the stop price
// triggers it, and it then rests as a limit order at the limit price.
func (b *BasicBot) PlaceStopLimitOrder(ctx context.Context, req model.OrderRequest) model.OrderResult {
	logger.Info("Attempting STOP-LIMIT order",
		"side", req.Side, "quantity", req.Quantity, "symbol", req.Symbol,
		"stop_price", req.StopPrice, "price", req.Price)

	if res, ok := checkSide(req); !ok {
		return res
	}
	return b.submit(ctx, req, "Stop-Limit order placed successfully.")
}

// checkMinNotional fetches the current price and symbol filters and
// runs ValidateNotional. Any fetch or probe failure yields a Skipped
// outcome with a cause: client-side validation is a convenience, not a
// safety boundary, and must not block submission.
func (b *BasicBot) checkMinNotional(ctx context.Context, req model.OrderRequest) (Validation, error) {
	price, err := b.Exchange.GetPrice(ctx, req.Symbol)
	if err != nil {
		cause := SkipPriceUnavailable
		if errors.Is(err, api.ErrSymbolNotListed) {
			cause = SkipSymbolNotFound
		}
		return skipped(req, cause, err), nil
	}

	filters, err := b.Exchange.GetSymbolFilters(ctx, req.Symbol)
	if err != nil {
		cause := SkipFiltersUnavailable
		if errors.Is(err, api.ErrSymbolNotListed) {
			cause = SkipSymbolNotFound
		}
		return skipped(req, cause, err), nil
	}

	minNotional, ok := filters.MinNotional()
	if !ok {
		return skipped(req, SkipFilterMissing, nil), nil
	}
	stepSize, ok := filters.StepSize()
	if !ok {
		return skipped(req, SkipFilterMissing, nil), nil
	}

	v, err := ValidateNotional(price, minNotional, stepSize, req.Quantity, req.AutoAdjust)
	if err != nil {
		return Validation{}, err
	}
	if v.Outcome == OutcomeRejected {
		v.Reason = fmt.Sprintf("Quantity too small. Minimum quantity for %s is %s (min notional %s).",
			req.Symbol, v.MinQty, v.MinNotional)
	}
	return v, nil
}

func skipped(req model.OrderRequest, cause SkipCause, err error) Validation {
	logger.Debug("Min notional inputs unavailable",
		"symbol", req.Symbol, "cause", string(cause), "error", err)
	return Validation{Outcome: OutcomeSkipped, Quantity: req.Quantity, SkipCause: cause}
}

func (b *BasicBot) submit(ctx context.Context, req model.OrderRequest, successMsg string) model.OrderResult {
	if req.ClientOrderID == "" {
		req.ClientOrderID = fmt.Sprintf("%s_%d", req.Side, time.Now().UnixMilli())
	}

	placed, err := b.Exchange.CreateOrder(ctx, req)
	if err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) {
			detail := fmt.Sprintf("API Error: %d - %s", apiErr.Code, apiErr.Message)
			logger.Error("Order failed", "error", detail)
			return failedResult(req, "Order failed due to API error.", detail)
		}
		detail := fmt.Sprintf("Unexpected error: %v", err)
		logger.Error("Order failed", "error", detail)
		return failedResult(req, "Order failed due to an unexpected error.", detail)
	}

	return model.OrderResult{
		Success:   true,
		OrderID:   placed.OrderID,
		Symbol:    req.Symbol,
		Side:      req.Side,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Price:     req.Price,
		StopPrice: req.StopPrice,
		Status:    placed.Status,
		Message:   successMsg,
	}
}

func checkSide(req model.OrderRequest) (model.OrderResult, bool) {
	if req.Side != model.SideBuy && req.Side != model.SideSell {
		return failedResult(req, "Invalid side. Use 'BUY' or 'SELL'.", ""), false
	}
	return model.OrderResult{}, true
}

func failedResult(req model.OrderRequest, message, errDetail string) model.OrderResult {
	return model.OrderResult{
		Symbol:    req.Symbol,
		Side:      req.Side,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Price:     req.Price,
		StopPrice: req.StopPrice,
		Message:   message,
		Err:       errDetail,
	}
}
