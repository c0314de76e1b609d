package cli

import (
	"flag"
	"fmt"
	"strings"

	"futures-order-bot-binance/internal/model"

	"github.com/shopspring/decimal"
)

// Options holds everything parsed from the command line.
type Options struct {
	EnvFile string
	Request model.OrderRequest
}

// Parse validates the command line and builds the order request.
// Symbol and side are uppercased; quantities and prices are parsed as
// exact decimals and must be positive.
func Parse(args []string) (*Options, error) {
	fs := flag.NewFlagSet("futures-order-bot", flag.ContinueOnError)

	symbol := fs.String("symbol", "", "Trading pair (e.g. BTCUSDT)")
	side := fs.String("side", "", "Order side: BUY or SELL")
	orderType := fs.String("type", "", "Order type: MARKET, LIMIT or STOP_LIMIT")
	quantity := fs.String("quantity", "", "Order quantity")
	price := fs.String("price", "", "Limit price (required for LIMIT and STOP_LIMIT)")
	stopPrice := fs.String("stop-price", "", "Stop trigger price (required for STOP_LIMIT)")
	autoAdjust := fs.Bool("auto-adjust", false, "Automatically increase quantity to meet the minimum notional")
	envFile := fs.String("env", ".env", "Environment file path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	req := model.OrderRequest{
		Symbol:     strings.ToUpper(strings.TrimSpace(*symbol)),
		Side:       strings.ToUpper(strings.TrimSpace(*side)),
		Type:       strings.ToUpper(strings.TrimSpace(*orderType)),
		AutoAdjust: *autoAdjust,
	}

	if req.Symbol == "" {
		return nil, fmt.Errorf("--symbol is required")
	}
	if req.Side != model.SideBuy && req.Side != model.SideSell {
		return nil, fmt.Errorf("--side must be BUY or SELL")
	}
	switch req.Type {
	case model.OrderTypeMarket, model.OrderTypeLimit, model.OrderTypeStopLimit:
	default:
		return nil, fmt.Errorf("--type must be MARKET, LIMIT or STOP_LIMIT")
	}

	var err error
	req.Quantity, err = parsePositiveDecimal(*quantity, "--quantity")
	if err != nil {
		return nil, err
	}

	if req.Type == model.OrderTypeLimit || req.Type == model.OrderTypeStopLimit {
		if *price == "" {
			return nil, fmt.Errorf("--price is required for order type %s", req.Type)
		}
		req.Price, err = parsePositiveDecimal(*price, "--price")
		if err != nil {
			return nil, err
		}
	}
	if req.Type == model.OrderTypeStopLimit {
		if *stopPrice == "" {
			return nil, fmt.Errorf("--stop-price is required for order type STOP_LIMIT")
		}
		req.StopPrice, err = parsePositiveDecimal(*stopPrice, "--stop-price")
		if err != nil {
			return nil, err
		}
	}

	return &Options{EnvFile: *envFile, Request: req}, nil
}

func parsePositiveDecimal(value, name string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Decimal{}, fmt.Errorf("%s is required", name)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	if d.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%s must be positive", name)
	}
	return d, nil
}
