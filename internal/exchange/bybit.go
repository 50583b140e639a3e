package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"arbscan/internal/domain"
)

// Bybit is the adapter for the Bybit v5 spot REST API. Coin/network
// metadata sits behind an authenticated endpoint, so the CurrencyProvider
// capability is absent.
type Bybit struct {
	baseURL string
	quote   string
	client  *http.Client
}

// NewBybit creates a Bybit adapter restricted to pairs quoted in quote.
func NewBybit(quote string) *Bybit {
	return &Bybit{
		baseURL: "https://api.bybit.com",
		quote:   quote,
		client:  newHTTPClient(),
	}
}

// Name returns the venue identifier.
func (b *Bybit) Name() string { return "bybit" }

// bybitResponse is the common v5 envelope. RetCode 0 means success.
type bybitResponse[T any] struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  T      `json:"result"`
}

func (r *bybitResponse[T]) err(op string) error {
	if r.RetCode != 0 {
		return fmt.Errorf("bybit: %s: retCode %d: %s", op, r.RetCode, r.RetMsg)
	}
	return nil
}

type bybitInstrument struct {
	Symbol    string `json:"symbol"`
	BaseCoin  string `json:"baseCoin"`
	QuoteCoin string `json:"quoteCoin"`
	Status    string `json:"status"`
}

// Pairs returns all trading spot instruments quoted in the settlement
// currency.
func (b *Bybit) Pairs(ctx context.Context) ([]domain.Pair, error) {
	var resp bybitResponse[struct {
		List []bybitInstrument `json:"list"`
	}]
	u := b.baseURL + "/v5/market/instruments-info?category=spot&limit=1000"
	if err := getJSON(ctx, b.client, u, &resp); err != nil {
		return nil, fmt.Errorf("bybit: instruments: %w", err)
	}
	if err := resp.err("instruments"); err != nil {
		return nil, err
	}

	pairs := make([]domain.Pair, 0, len(resp.Result.List))
	for _, inst := range resp.Result.List {
		if inst.Status != "Trading" || inst.QuoteCoin != b.quote {
			continue
		}
		pairs = append(pairs, domain.Pair{
			Base:   inst.BaseCoin,
			Quote:  inst.QuoteCoin,
			Symbol: inst.Symbol,
		})
	}
	return pairs, nil
}

type bybitTicker struct {
	Symbol     string `json:"symbol"`
	LastPrice  string `json:"lastPrice"`
	Turnover24 string `json:"turnover24h"`
}

// tickers fetches the full spot ticker snapshot; prices and 24h turnover
// come from the same endpoint.
func (b *Bybit) tickers(ctx context.Context) ([]bybitTicker, error) {
	var resp bybitResponse[struct {
		List []bybitTicker `json:"list"`
	}]
	u := b.baseURL + "/v5/market/tickers?category=spot"
	if err := getJSON(ctx, b.client, u, &resp); err != nil {
		return nil, fmt.Errorf("bybit: tickers: %w", err)
	}
	if err := resp.err("tickers"); err != nil {
		return nil, err
	}
	return resp.Result.List, nil
}

// Prices returns last prices for the requested symbols.
func (b *Bybit) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	all, err := b.tickers(ctx)
	if err != nil {
		return nil, err
	}

	wanted := symbolSet(symbols)
	prices := make(map[string]float64, len(symbols))
	for _, t := range all {
		if !wanted[t.Symbol] {
			continue
		}
		if v, ok := parsePrice(t.LastPrice); ok {
			prices[t.Symbol] = v
		}
	}
	return prices, nil
}

// Tickers returns 24h tickers for the requested symbols; turnover24h is the
// quote-denominated volume.
func (b *Bybit) Tickers(ctx context.Context, symbols []string) (map[string]domain.Ticker24h, error) {
	all, err := b.tickers(ctx)
	if err != nil {
		return nil, err
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
		if v, ok := parsePrice(t.Turnover24); ok {
			ticker.QuoteVolume = v
		}
		tickers[t.Symbol] = ticker
	}
	return tickers, nil
}

type bybitOrderbook struct {
	Symbol string     `json:"s"`
	Bids   [][]string `json:"b"`
	Asks   [][]string `json:"a"`
}

// OrderBook fetches the spot depth snapshot for one symbol. Bybit returns
// bids descending and asks ascending.
func (b *Bybit) OrderBook(ctx context.Context, symbol string) (*domain.OrderBook, error) {
	var resp bybitResponse[bybitOrderbook]
	u := fmt.Sprintf("%s/v5/market/orderbook?category=spot&symbol=%s&limit=50", b.baseURL, url.QueryEscape(symbol))
	if err := getJSON(ctx, b.client, u, &resp); err != nil {
		return nil, fmt.Errorf("bybit: orderbook %s: %w", symbol, err)
	}
	if err := resp.err("orderbook " + symbol); err != nil {
		return nil, err
	}

	book := &domain.OrderBook{
		Bids: parseLevels(resp.Result.Bids),
		Asks: parseLevels(resp.Result.Asks),
	}
	if len(book.Bids) == 0 && len(book.Asks) == 0 {
		return nil, fmt.Errorf("bybit: orderbook %s: %w", symbol, domain.ErrEmptyBook)
	}
	return book, nil
}
