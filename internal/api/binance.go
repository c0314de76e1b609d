package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"futures-order-bot-binance/internal/config"
	"futures-order-bot-binance/internal/logger"
	"futures-order-bot-binance/internal/model"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/shopspring/decimal"
)

// ErrSymbolNotListed is returned when exchange metadata has no entry
// for the requested symbol.
var ErrSymbolNotListed = errors.New("symbol not listed on exchange")

// FuturesClient wraps the go-binance USDT-M futures client. All
// connectivity, signing and serialization lives in the SDK.
type FuturesClient struct {
	client *futures.Client
}

func NewFuturesClient(cfg *config.Config) *FuturesClient {
	// UseTestnet must be set before NewClient picks the base URL.
	futures.UseTestnet = cfg.Testnet

	client := futures.NewClient(cfg.ApiKey, cfg.SecretKey)
	client.HTTPClient = &http.Client{Timeout: cfg.HTTPTimeout}

	if cfg.Testnet {
		logger.Info("Client initialized for Binance Futures TESTNET", "base_url", client.BaseURL)
	} else {
		logger.Info("Client initialized for Binance Futures MAINNET", "base_url", client.BaseURL)
	}
	return &FuturesClient{client: client}
}

// Ping verifies connectivity before any order is attempted.
func (c *FuturesClient) Ping(ctx context.Context) error {
	if err := c.client.NewPingService().Do(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// GetPrice returns the current ticker price for symbol.
func (c *FuturesClient) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := c.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to fetch ticker price: %w", err)
	}
	if len(prices) == 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrSymbolNotListed, symbol)
	}
	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse ticker price %q: %w", prices[0].Price, err)
	}
	return price, nil
}

// GetSymbolFilters fetches exchange metadata and extracts the filter
// set for symbol. The futures exchangeInfo endpoint returns every
// symbol, so we scan for the requested one.
func (c *FuturesClient) GetSymbolFilters(ctx context.Context, symbol string) (model.SymbolFilters, error) {
	info, err := c.client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exchange info: %w", err)
	}

	for _, s := range info.Symbols {
		if s.Symbol != symbol {
			continue
		}
		filters := make(model.SymbolFilters, len(s.Filters))
		for _, raw := range s.Filters {
			filterType, _ := raw["filterType"].(string)
			if filterType == "" {
				continue
			}
			params := make(map[string]string, len(raw))
			for key, val := range raw {
				if key == "filterType" {
					continue
				}
				if str, ok := val.(string); ok {
					params[key] = str
				}
			}
			filters[filterType] = params
		}
		return filters, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrSymbolNotListed, symbol)
}

// CreateOrder submits one order and projects the SDK response. API
// errors are returned unwrapped so callers can inspect the code.
func (c *FuturesClient) CreateOrder(ctx context.Context, req model.OrderRequest) (*model.PlacedOrder, error) {
	svc := c.client.NewCreateOrderService().
		Symbol(req.Symbol).
		Side(futures.SideType(req.Side)).
		Quantity(req.Quantity.String())

	switch req.Type {
	case model.OrderTypeMarket:
		svc.Type(futures.OrderTypeMarket)
	case model.OrderTypeLimit:
		svc.Type(futures.OrderTypeLimit).
			TimeInForce(futures.TimeInForceTypeGTC).
			Price(req.Price.String())
	case model.OrderTypeStopLimit:
		// Binance Futures calls a stop-limit order STOP: stopPrice is
		// the trigger, price the resting limit.
		svc.Type(futures.OrderTypeStop).
			TimeInForce(futures.TimeInForceTypeGTC).
			Price(req.Price.String()).
			StopPrice(req.StopPrice.String())
	default:
		return nil, fmt.Errorf("unsupported order type: %s", req.Type)
	}

	if req.ClientOrderID != "" {
		svc.NewClientOrderID(req.ClientOrderID)
	}

	resp, err := svc.Do(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("Order placed successfully",
		"order_id", resp.OrderID,
		"client_order_id", resp.ClientOrderID,
		"status", resp.Status,
		"executed_qty", resp.ExecutedQuantity,
		"avg_price", resp.AvgPrice,
	)

	return &model.PlacedOrder{
		OrderID:       resp.OrderID,
		ClientOrderID: resp.ClientOrderID,
		Status:        string(resp.Status),
		ExecutedQty:   resp.ExecutedQuantity,
		AvgPrice:      resp.AvgPrice,
		CumQuote:      resp.CumQuote,
	}, nil
}
