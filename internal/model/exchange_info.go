package model

import "github.com/shopspring/decimal"

// Filter type names as they appear in /fapi/v1/exchangeInfo.
const (
	FilterTypeMinNotional = "MIN_NOTIONAL"
	FilterTypeNotional    = "NOTIONAL"
	FilterTypeLotSize     = "LOT_SIZE"
)

// SymbolFilters maps filterType -> parameter -> raw value for a single
// trading pair. It is fetched fresh for every validation, never cached,
// so each order observes the current exchange snapshot.
type SymbolFilters map[string]map[string]string

// MinNotional returns the minimum notional value for the symbol. The
// exchange has renamed this field across API versions, so the legacy
// key names are probed in fixed priority order and the first value
// present wins: MIN_NOTIONAL.minNotional, NOTIONAL.minNotional,
// MIN_NOTIONAL.notional.
func (f SymbolFilters) MinNotional() (decimal.Decimal, bool) {
	probes := []struct{ filter, param string }{
		{FilterTypeMinNotional, "minNotional"},
		{FilterTypeNotional, "minNotional"},
		{FilterTypeMinNotional, "notional"},
	}
	for _, p := range probes {
		raw, ok := f[p.filter][p.param]
		if !ok || raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}
	return decimal.Decimal{}, false
}

// StepSize returns the LOT_SIZE step, the increment all order
// quantities must be a multiple of.
func (f SymbolFilters) StepSize() (decimal.Decimal, bool) {
	raw, ok := f[FilterTypeLotSize]["stepSize"]
	if !ok || raw == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
