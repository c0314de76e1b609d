package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"futures-order-bot-binance/internal/api"
	"futures-order-bot-binance/internal/model"

	"github.com/adshao/go-binance/v2/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExchange struct {
	price      decimal.Decimal
	priceErr   error
	priceCalls int

	filters     model.SymbolFilters
	filtersErr  error
	filterCalls int

	created   []model.OrderRequest
	createErr error
}

func (s *stubExchange) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	s.priceCalls++
	return s.price, s.priceErr
}

func (s *stubExchange) GetSymbolFilters(ctx context.Context, symbol string) (model.SymbolFilters, error) {
	s.filterCalls++
	return s.filters, s.filtersErr
}

func (s *stubExchange) CreateOrder(ctx context.Context, req model.OrderRequest) (*model.PlacedOrder, error) {
	s.created = append(s.created, req)
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &model.PlacedOrder{OrderID: 12345, ClientOrderID: req.ClientOrderID, Status: "NEW"}, nil
}

func btcFilters() model.SymbolFilters {
	return model.SymbolFilters{
		model.FilterTypeMinNotional: {"minNotional": "100"},
		model.FilterTypeLotSize:     {"stepSize": "0.001", "minQty": "0.001"},
	}
}

func marketRequest(qty string, autoAdjust bool) model.OrderRequest {
	return model.OrderRequest{
		Symbol:     "BTCUSDT",
		Side:       model.SideBuy,
		Type:       model.OrderTypeMarket,
		Quantity:   d(qty),
		AutoAdjust: autoAdjust,
	}
}

func TestPlaceMarketOrderSufficientQuantity(t *testing.T) {
	ex := &stubExchange{price: d("50000"), filters: btcFilters()}
	bot := NewBasicBot(ex)

	res := bot.PlaceMarketOrder(context.Background(), marketRequest("0.01", false))

	require.True(t, res.Success, "unexpected failure: %s %s", res.Message, res.Err)
	assert.Equal(t, int64(12345), res.OrderID)
	assert.Equal(t, "NEW", res.Status)
	require.Len(t, ex.created, 1)
	assert.True(t, ex.created[0].Quantity.Equal(d("0.01")), "quantity must be submitted unchanged")
}

func TestPlaceMarketOrderRejectedTooSmall(t *testing.T) {
	ex := &stubExchange{price: d("50000"), filters: btcFilters()}
	bot := NewBasicBot(ex)

	res := bot.PlaceMarketOrder(context.Background(), marketRequest("0.001", false))

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Quantity too small")
	assert.Contains(t, res.Message, "BTCUSDT")
	assert.Contains(t, res.Message, "0.002")
	assert.Empty(t, ex.created, "rejected order must not be submitted")
}

func TestPlaceMarketOrderAutoAdjusts(t *testing.T) {
	ex := &stubExchange{price: d("50000"), filters: btcFilters()}
	bot := NewBasicBot(ex)

	res := bot.PlaceMarketOrder(context.Background(), marketRequest("0.001", true))

	require.True(t, res.Success)
	require.Len(t, ex.created, 1)
	assert.True(t, ex.created[0].Quantity.Equal(d("0.002")),
		"expected adjusted quantity 0.002, got %s", ex.created[0].Quantity)
	assert.True(t, res.Quantity.Equal(d("0.002")))
}

func TestPlaceMarketOrderFailsOpenOnPriceError(t *testing.T) {
	ex := &stubExchange{priceErr: errors.New("timeout"), filters: btcFilters()}
	bot := NewBasicBot(ex)

	res := bot.PlaceMarketOrder(context.Background(), marketRequest("0.001", false))

	require.True(t, res.Success, "fetch failure must not block submission")
	require.Len(t, ex.created, 1)
	assert.True(t, ex.created[0].Quantity.Equal(d("0.001")), "original quantity must be submitted unmodified")
}

func TestPlaceMarketOrderFailsOpenOnFilterError(t *testing.T) {
	ex := &stubExchange{price: d("50000"), filtersErr: errors.New("timeout")}
	bot := NewBasicBot(ex)

	res := bot.PlaceMarketOrder(context.Background(), marketRequest("0.001", false))

	require.True(t, res.Success)
	require.Len(t, ex.created, 1)
	assert.True(t, ex.created[0].Quantity.Equal(d("0.001")))
}

func TestPlaceMarketOrderFailsOpenOnMissingFilterKey(t *testing.T) {
	ex := &stubExchange{
		price:   d("50000"),
		filters: model.SymbolFilters{model.FilterTypeLotSize: {"stepSize": "0.001"}},
	}
	bot := NewBasicBot(ex)

	res := bot.PlaceMarketOrder(context.Background(), marketRequest("0.001", false))

	require.True(t, res.Success)
	require.Len(t, ex.created, 1)
}

func TestCheckMinNotionalSkipCauses(t *testing.T) {
	cases := []struct {
		name string
		ex   *stubExchange
		want SkipCause
	}{
		{
			"price unavailable",
			&stubExchange{priceErr: errors.New("timeout")},
			SkipPriceUnavailable,
		},
		{
			"symbol not found",
			&stubExchange{price: d("50000"), filtersErr: fmt.Errorf("%w: NOPEUSDT", api.ErrSymbolNotListed)},
			SkipSymbolNotFound,
		},
		{
			"filters unavailable",
			&stubExchange{price: d("50000"), filtersErr: errors.New("timeout")},
			SkipFiltersUnavailable,
		},
		{
			"filter key missing",
			&stubExchange{price: d("50000"), filters: model.SymbolFilters{}},
			SkipFilterMissing,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bot := NewBasicBot(tc.ex)
			v, err := bot.checkMinNotional(context.Background(), marketRequest("0.001", false))
			require.NoError(t, err)
			assert.Equal(t, OutcomeSkipped, v.Outcome)
			assert.Equal(t, tc.want, v.SkipCause)
			assert.True(t, v.Quantity.Equal(d("0.001")))
		})
	}
}

func TestPlaceLimitOrderSkipsValidation(t *testing.T) {
	ex := &stubExchange{priceErr: errors.New("must not be called")}
	bot := NewBasicBot(ex)

	req := model.OrderRequest{
		Symbol:   "BTCUSDT",
		Side:     model.SideSell,
		Type:     model.OrderTypeLimit,
		Quantity: d("0.001"),
		Price:    d("60000"),
	}
	res := bot.PlaceLimitOrder(context.Background(), req)

	require.True(t, res.Success)
	assert.Zero(t, ex.priceCalls, "limit orders must not fetch the ticker")
	assert.Zero(t, ex.filterCalls, "limit orders must not fetch filters")
	require.Len(t, ex.created, 1)
}

func TestPlaceStopLimitOrderSkipsValidation(t *testing.T) {
	ex := &stubExchange{priceErr: errors.New("must not be called")}
	bot := NewBasicBot(ex)

	req := model.OrderRequest{
		Symbol:    "BTCUSDT",
		Side:      model.SideBuy,
		Type:      model.OrderTypeStopLimit,
		Quantity:  d("0.01"),
		Price:     d("61000"),
		StopPrice: d("60500"),
	}
	res := bot.PlaceStopLimitOrder(context.Background(), req)

	require.True(t, res.Success)
	assert.Zero(t, ex.priceCalls)
	assert.Zero(t, ex.filterCalls)
	require.Len(t, ex.created, 1)
	assert.True(t, ex.created[0].StopPrice.Equal(d("60500")))
}

func TestSubmitFormatsAPIError(t *testing.T) {
	ex := &stubExchange{
		price:     d("50000"),
		filters:   btcFilters(),
		createErr: &common.APIError{Code: -1121, Message: "Invalid symbol."},
	}
	bot := NewBasicBot(ex)

	res := bot.PlaceMarketOrder(context.Background(), marketRequest("0.01", false))

	assert.False(t, res.Success)
	assert.Equal(t, "Order failed due to API error.", res.Message)
	assert.Contains(t, res.Err, "API Error: -1121")
	assert.Contains(t, res.Err, "Invalid symbol.")
}

func TestSubmitWrapsUnexpectedError(t *testing.T) {
	ex := &stubExchange{
		price:     d("50000"),
		filters:   btcFilters(),
		createErr: errors.New("connection reset"),
	}
	bot := NewBasicBot(ex)

	res := bot.PlaceMarketOrder(context.Background(), marketRequest("0.01", false))

	assert.False(t, res.Success)
	assert.Equal(t, "Order failed due to an unexpected error.", res.Message)
	assert.Contains(t, res.Err, "connection reset")
}

func TestPlaceOrderInvalidSide(t *testing.T) {
	ex := &stubExchange{price: d("50000"), filters: btcFilters()}
	bot := NewBasicBot(ex)

	req := marketRequest("0.01", false)
	req.Side = "HOLD"
	res := bot.PlaceMarketOrder(context.Background(), req)

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Invalid side")
	assert.Empty(t, ex.created)
}

func TestSubmitGeneratesClientOrderID(t *testing.T) {
	ex := &stubExchange{price: d("50000"), filters: btcFilters()}
	bot := NewBasicBot(ex)

	res := bot.PlaceMarketOrder(context.Background(), marketRequest("0.01", false))

	require.True(t, res.Success)
	require.Len(t, ex.created, 1)
	assert.Contains(t, ex.created[0].ClientOrderID, "BUY_")
}
