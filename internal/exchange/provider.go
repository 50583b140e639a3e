// Package exchange contains the per-venue data providers. Each adapter
// translates one exchange's public REST payloads into the normalized shapes
// in internal/domain: tradable pairs, last prices, 24h tickers, order-book
// depth, and currency/network metadata. Network calls, payload parsing, and
// venue quirks live entirely here.
package exchange

import (
	"context"
	"fmt"
	"strings"

	"arbscan/internal/domain"
)

// Provider is the required capability set of a venue: pair discovery and
// batched last-price lookup.
type Provider interface {
	// Name returns the lower-case venue identifier (e.g. "binance").
	Name() string
	// Pairs returns the tradable spot pairs quoted in the configured
	// settlement currency.
	Pairs(ctx context.Context) ([]domain.Pair, error)
	// Prices returns last prices for the given symbols. Symbols the venue
	// cannot price are absent from the result, never an error.
	Prices(ctx context.Context, symbols []string) (map[string]float64, error)
}

// TickerProvider is the optional 24h ticker capability.
type TickerProvider interface {
	Tickers(ctx context.Context, symbols []string) (map[string]domain.Ticker24h, error)
}

// BookProvider is the optional order-book depth capability.
type BookProvider interface {
	OrderBook(ctx context.Context, symbol string) (*domain.OrderBook, error)
}

// CurrencyProvider is the optional currency/network metadata capability.
type CurrencyProvider interface {
	Currencies(ctx context.Context) (map[string]domain.CurrencyInfo, error)
}

// Capabilities records which optional operations a venue supports.
type Capabilities struct {
	Tickers    bool `json:"tickers"`
	OrderBooks bool `json:"order_books"`
	Currencies bool `json:"currencies"`
}

// Venue bundles a provider with its optional capability slots and fee
// schedule. Optional operations are type-asserted once at construction and
// carried as nilable slots, so downstream code sees typed "unsupported"
// outcomes instead of silently skipping a check.
type Venue struct {
	Provider   Provider
	Tickers    TickerProvider   // nil when unsupported
	Books      BookProvider     // nil when unsupported
	Currencies CurrencyProvider // nil when unsupported
	Fees       domain.Fees
}

// NewVenue wraps a provider, discovering its optional capabilities.
func NewVenue(p Provider, fees domain.Fees) *Venue {
	v := &Venue{Provider: p, Fees: fees}
	if t, ok := p.(TickerProvider); ok {
		v.Tickers = t
	}
	if b, ok := p.(BookProvider); ok {
		v.Books = b
	}
	if c, ok := p.(CurrencyProvider); ok {
		v.Currencies = c
	}
	return v
}

// Name returns the underlying provider's venue identifier.
func (v *Venue) Name() string { return v.Provider.Name() }

// Capabilities reports which optional operations the venue supports.
func (v *Venue) Capabilities() Capabilities {
	return Capabilities{
		Tickers:    v.Tickers != nil,
		OrderBooks: v.Books != nil,
		Currencies: v.Currencies != nil,
	}
}

// New constructs the adapter for the named venue restricted to pairs quoted
// in the given settlement currency.
func New(name, settlementCurrency string) (Provider, error) {
	quote := strings.ToUpper(settlementCurrency)
	switch strings.ToLower(name) {
	case "binance":
		return NewBinance(quote), nil
	case "bybit":
		return NewBybit(quote), nil
	case "gateio":
		return NewGateio(quote), nil
	case "mexc":
		return NewMEXC(quote), nil
	default:
		return nil, fmt.Errorf("exchange: unknown venue %q", name)
	}
}
