package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"arbscan/internal/domain"
)

// MEXC is the adapter for the MEXC v3 spot REST API. The API is
// Binance-shaped but differs in instrument status fields and lacks a public
// currency metadata endpoint, so the CurrencyProvider capability is absent.
type MEXC struct {
	baseURL string
	quote   string
	client  *http.Client
}

// NewMEXC creates a MEXC adapter restricted to pairs quoted in quote.
func NewMEXC(quote string) *MEXC {
	return &MEXC{
		baseURL: "https://api.mexc.com",
		quote:   quote,
		client:  newHTTPClient(),
	}
}

// Name returns the venue identifier.
func (m *MEXC) Name() string { return "mexc" }

type mexcExchangeInfo struct {
	Symbols []struct {
		Symbol             string `json:"symbol"`
		BaseAsset          string `json:"baseAsset"`
		QuoteAsset         string `json:"quoteAsset"`
		IsSpotTradingAllow bool   `json:"isSpotTradingAllowed"`
	} `json:"symbols"`
}

// Pairs returns all spot-tradable pairs quoted in the settlement currency.
func (m *MEXC) Pairs(ctx context.Context) ([]domain.Pair, error) {
	var info mexcExchangeInfo
	if err := getJSON(ctx, m.client, m.baseURL+"/api/v3/exchangeInfo", &info); err != nil {
		return nil, fmt.Errorf("mexc: exchange info: %w", err)
	}

	pairs := make([]domain.Pair, 0, len(info.Symbols))
	for _, s := range info.Symbols {
		if !s.IsSpotTradingAllow || s.QuoteAsset != m.quote {
			continue
		}
		pairs = append(pairs, domain.Pair{
			Base:   s.BaseAsset,
			Quote:  s.QuoteAsset,
			Symbol: s.Symbol,
		})
	}
	return pairs, nil
}

type mexcPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// Prices fetches the full last-price snapshot and filters it to the
// requested symbols.
func (m *MEXC) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	var all []mexcPrice
	if err := getJSON(ctx, m.client, m.baseURL+"/api/v3/ticker/price", &all); err != nil {
		return nil, fmt.Errorf("mexc: ticker prices: %w", err)
	}

	wanted := symbolSet(symbols)
	prices := make(map[string]float64, len(symbols))
	for _, p := range all {
		if !wanted[p.Symbol] {
			continue
		}
		if v, ok := parsePrice(p.Price); ok {
			prices[p.Symbol] = v
		}
	}
	return prices, nil
}

type mexcTicker struct {
	Symbol      string `json:"symbol"`
	LastPrice   string `json:"lastPrice"`
	QuoteVolume string `json:"quoteVolume"`
}

// Tickers fetches the full 24h ticker snapshot and filters it to the
// requested symbols.
func (m *MEXC) Tickers(ctx context.Context, symbols []string) (map[string]domain.Ticker24h, error) {
	var all []mexcTicker
	if err := getJSON(ctx, m.client, m.baseURL+"/api/v3/ticker/24hr", &all); err != nil {
		return nil, fmt.Errorf("mexc: 24h tickers: %w", err)
	}

	wanted := symbolSet(symbols)
	tickers := make(map[string]domain.Ticker24h, len(symbols))
	for _, t := range all {
		if !wanted[t.Symbol] {
			continue
		}
		var ticker domain.Ticker24h
		if v, ok := parsePrice(t.LastPrice); ok {
			ticker.Last = v
		}
		if v, ok := parsePrice(t.QuoteVolume); ok {
			ticker.QuoteVolume = v
		}
		tickers[t.Symbol] = ticker
	}
	return tickers, nil
}

type mexcDepth struct {
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

// OrderBook fetches the depth snapshot for one symbol.
func (m *MEXC) OrderBook(ctx context.Context, symbol string) (*domain.OrderBook, error) {
	u := fmt.Sprintf("%s/api/v3/depth?symbol=%s&limit=100", m.baseURL, url.QueryEscape(symbol))

	var depth mexcDepth
	if err := getJSON(ctx, m.client, u, &depth); err != nil {
		return nil, fmt.Errorf("mexc: depth %s: %w", symbol, err)
	}

	book := &domain.OrderBook{
		Bids: parseLevels(depth.Bids),
		Asks: parseLevels(depth.Asks),
	}
	if len(book.Bids) == 0 && len(book.Asks) == 0 {
		return nil, fmt.Errorf("mexc: depth %s: %w", symbol, domain.ErrEmptyBook)
	}
	return book, nil
}
