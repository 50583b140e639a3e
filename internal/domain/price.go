package domain

// PriceByExchange maps venue name to the last traded price of one symbol.
type PriceByExchange map[string]float64

// PricesBySymbol maps symbol to its per-venue prices. It is rebuilt from
// scratch on every scan and never persisted.
type PricesBySymbol map[string]PriceByExchange

// Ticker24h is a venue's rolling 24-hour ticker for one symbol. A zero
// QuoteVolume means the venue did not report it; the validator treats that
// as unknown, not as zero liquidity that happens to pass.
type Ticker24h struct {
	Last        float64 `json:"last"`
	QuoteVolume float64 `json:"quote_volume"`
}

// NetworkInfo describes one transfer network of a currency on a venue.
type NetworkInfo struct {
	Network         string `json:"network"`
	DepositEnabled  bool   `json:"deposit_enabled"`
	WithdrawEnabled bool   `json:"withdraw_enabled"`
}

// CurrencyInfo is a venue's metadata for one currency code.
type CurrencyInfo struct {
	Code     string        `json:"code"`
	Networks []NetworkInfo `json:"networks,omitempty"`
}
