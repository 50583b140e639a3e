package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"arbscan/internal/domain"
)

// Binance is the adapter for the Binance spot REST API. Currency/network
// metadata is not exposed publicly (capital/config/getall requires auth),
// so the CurrencyProvider capability is absent.
type Binance struct {
	baseURL string
	quote   string
	client  *http.Client
}

// NewBinance creates a Binance adapter restricted to pairs quoted in quote.
func NewBinance(quote string) *Binance {
	return &Binance{
		baseURL: "https://api.binance.com",
		quote:   quote,
		client:  newHTTPClient(),
	}
}

// Name returns the venue identifier.
func (b *Binance) Name() string { return "binance" }

type binanceExchangeInfo struct {
	Symbols []struct {
		Symbol     string `json:"symbol"`
		Status     string `json:"status"`
		BaseAsset  string `json:"baseAsset"`
		QuoteAsset string `json:"quoteAsset"`
	} `json:"symbols"`
}

// Pairs returns all actively trading spot pairs quoted in the settlement
// currency.
func (b *Binance) Pairs(ctx context.Context) ([]domain.Pair, error) {
	var info binanceExchangeInfo
	if err := getJSON(ctx, b.client, b.baseURL+"/api/v3/exchangeInfo", &info); err != nil {
		return nil, fmt.Errorf("binance: exchange info: %w", err)
	}

	pairs := make([]domain.Pair, 0, len(info.Symbols))
	for _, s := range info.Symbols {
		if s.Status != "TRADING" || s.QuoteAsset != b.quote {
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

type binancePrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// Prices fetches the full last-price snapshot in one call and filters it to
// the requested symbols. Unparseable prices are dropped silently.
func (b *Binance) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	var all []binancePrice
	if err := getJSON(ctx, b.client, b.baseURL+"/api/v3/ticker/price", &all); err != nil {
		return nil, fmt.Errorf("binance: ticker prices: %w", err)
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

type binanceTicker struct {
	Symbol      string `json:"symbol"`
	LastPrice   string `json:"lastPrice"`
	QuoteVolume string `json:"quoteVolume"`
}

// Tickers fetches the full 24h ticker snapshot and filters it to the
// requested symbols.
func (b *Binance) Tickers(ctx context.Context, symbols []string) (map[string]domain.Ticker24h, error) {
	var all []binanceTicker
	if err := getJSON(ctx, b.client, b.baseURL+"/api/v3/ticker/24hr", &all); err != nil {
		return nil, fmt.Errorf("binance: 24h tickers: %w", err)
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

type binanceDepth struct {
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

// OrderBook fetches the top of the depth snapshot for one symbol. Binance
// returns bids descending and asks ascending, matching the domain
// invariant.
func (b *Binance) OrderBook(ctx context.Context, symbol string) (*domain.OrderBook, error) {
	u := fmt.Sprintf("%s/api/v3/depth?symbol=%s&limit=100", b.baseURL, url.QueryEscape(symbol))

	var depth binanceDepth
	if err := getJSON(ctx, b.client, u, &depth); err != nil {
		return nil, fmt.Errorf("binance: depth %s: %w", symbol, err)
	}

	book := &domain.OrderBook{
		Bids: parseLevels(depth.Bids),
		Asks: parseLevels(depth.Asks),
	}
	if len(book.Bids) == 0 && len(book.Asks) == 0 {
		return nil, fmt.Errorf("binance: depth %s: %w", symbol, domain.ErrEmptyBook)
	}
	return book, nil
}
