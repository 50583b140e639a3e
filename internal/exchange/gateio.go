package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"arbscan/internal/domain"
)

// Gateio is the adapter for the Gate.io v4 spot REST API. Gate identifies
// markets as "BASE_QUOTE" currency pairs while the rest of the system uses
// the canonical "BASEQUOTE" symbol, so the adapter owns a symbol→pair-id
// cache, populated lazily on first use and refreshable via Refresh.
type Gateio struct {
	baseURL string
	quote   string
	client  *http.Client
	ids     *symbolCache
}

// NewGateio creates a Gate.io adapter restricted to pairs quoted in quote.
func NewGateio(quote string) *Gateio {
	return &Gateio{
		baseURL: "https://api.gateio.ws/api/v4",
		quote:   quote,
		client:  newHTTPClient(),
		ids:     newSymbolCache(),
	}
}

// Name returns the venue identifier.
func (g *Gateio) Name() string { return "gateio" }

type gateioCurrencyPair struct {
	ID          string `json:"id"`
	Base        string `json:"base"`
	Quote       string `json:"quote"`
	TradeStatus string `json:"trade_status"`
}

// Pairs returns all tradable spot pairs quoted in the settlement currency
// and repopulates the symbol→pair-id cache as a side effect.
func (g *Gateio) Pairs(ctx context.Context) ([]domain.Pair, error) {
	var all []gateioCurrencyPair
	if err := getJSON(ctx, g.client, g.baseURL+"/spot/currency_pairs", &all); err != nil {
		return nil, fmt.Errorf("gateio: currency pairs: %w", err)
	}

	pairs := make([]domain.Pair, 0, len(all))
	ids := make(map[string]string, len(all))
	for _, cp := range all {
		if cp.TradeStatus != "tradable" || cp.Quote != g.quote {
			continue
		}
		symbol := cp.Base + cp.Quote
		ids[symbol] = cp.ID
		pairs = append(pairs, domain.Pair{
			Base:   cp.Base,
			Quote:  cp.Quote,
			Symbol: symbol,
		})
	}
	g.ids.replace(ids)
	return pairs, nil
}

// Refresh discards and repopulates the symbol→pair-id cache, so a delisted
// market does not linger for the process lifetime.
func (g *Gateio) Refresh(ctx context.Context) error {
	_, err := g.Pairs(ctx)
	return err
}

// pairID translates a canonical symbol into Gate's currency-pair
// identifier, populating the cache on first use.
func (g *Gateio) pairID(ctx context.Context, symbol string) (string, error) {
	if id, ok := g.ids.get(symbol); ok {
		return id, nil
	}
	if g.ids.empty() {
		if err := g.Refresh(ctx); err != nil {
			return "", err
		}
		if id, ok := g.ids.get(symbol); ok {
			return id, nil
		}
	}
	return "", fmt.Errorf("gateio: symbol %s: %w", symbol, domain.ErrNotFound)
}

type gateioTicker struct {
	CurrencyPair string `json:"currency_pair"`
	Last         string `json:"last"`
	QuoteVolume  string `json:"quote_volume"`
}

// tickers fetches the full spot ticker snapshot.
func (g *Gateio) tickers(ctx context.Context) ([]gateioTicker, error) {
	var all []gateioTicker
	if err := getJSON(ctx, g.client, g.baseURL+"/spot/tickers", &all); err != nil {
		return nil, fmt.Errorf("gateio: tickers: %w", err)
	}
	return all, nil
}

// Prices returns last prices for the requested symbols. The ticker's
// currency pair collapses to the canonical symbol by stripping the
// underscore.
func (g *Gateio) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	all, err := g.tickers(ctx)
	if err != nil {
		return nil, err
	}

	wanted := symbolSet(symbols)
	prices := make(map[string]float64, len(symbols))
	for _, t := range all {
		symbol := strings.ReplaceAll(t.CurrencyPair, "_", "")
		if !wanted[symbol] {
			continue
		}
		if v, ok := parsePrice(t.Last); ok {
			prices[symbol] = v
		}
	}
	return prices, nil
}

// Tickers returns 24h tickers for the requested symbols.
func (g *Gateio) Tickers(ctx context.Context, symbols []string) (map[string]domain.Ticker24h, error) {
	all, err := g.tickers(ctx)
	if err != nil {
		return nil, err
	}

	wanted := symbolSet(symbols)
	tickers := make(map[string]domain.Ticker24h, len(symbols))
	for _, t := range all {
		symbol := strings.ReplaceAll(t.CurrencyPair, "_", "")
		if !wanted[symbol] {
			continue
		}
		var ticker domain.Ticker24h
		if v, ok := parsePrice(t.Last); ok {
			ticker.Last = v
		}
		if v, ok := parsePrice(t.QuoteVolume); ok {
			ticker.QuoteVolume = v
		}
		tickers[symbol] = ticker
	}
	return tickers, nil
}

type gateioOrderBook struct {
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

// OrderBook fetches the depth snapshot for one symbol, translating it to
// Gate's currency-pair identifier first.
func (g *Gateio) OrderBook(ctx context.Context, symbol string) (*domain.OrderBook, error) {
	id, err := g.pairID(ctx, symbol)
	if err != nil {
		return nil, err
	}

	var depth gateioOrderBook
	u := fmt.Sprintf("%s/spot/order_book?currency_pair=%s&limit=50", g.baseURL, url.QueryEscape(id))
	if err := getJSON(ctx, g.client, u, &depth); err != nil {
		return nil, fmt.Errorf("gateio: order book %s: %w", symbol, err)
	}

	book := &domain.OrderBook{
		Bids: parseLevels(depth.Bids),
		Asks: parseLevels(depth.Asks),
	}
	if len(book.Bids) == 0 && len(book.Asks) == 0 {
		return nil, fmt.Errorf("gateio: order book %s: %w", symbol, domain.ErrEmptyBook)
	}
	return book, nil
}

type gateioCurrency struct {
	Currency string `json:"currency"`
	Delisted bool   `json:"delisted"`
	Chains   []struct {
		Name             string `json:"name"`
		DepositDisabled  bool   `json:"deposit_disabled"`
		WithdrawDisabled bool   `json:"withdraw_disabled"`
	} `json:"chains"`
}

// Currencies returns per-currency network metadata with deposit/withdraw
// flags.
func (g *Gateio) Currencies(ctx context.Context) (map[string]domain.CurrencyInfo, error) {
	var all []gateioCurrency
	if err := getJSON(ctx, g.client, g.baseURL+"/spot/currencies", &all); err != nil {
		return nil, fmt.Errorf("gateio: currencies: %w", err)
	}

	currencies := make(map[string]domain.CurrencyInfo, len(all))
	for _, c := range all {
		if c.Delisted {
			continue
		}
		code := strings.ToUpper(c.Currency)
		info := domain.CurrencyInfo{Code: code}
		for _, chain := range c.Chains {
			info.Networks = append(info.Networks, domain.NetworkInfo{
				Network:         strings.ToUpper(chain.Name),
				DepositEnabled:  !chain.DepositDisabled,
				WithdrawEnabled: !chain.WithdrawDisabled,
			})
		}
		currencies[code] = info
	}
	return currencies, nil
}

// symbolCache maps canonical symbols to a venue's internal market
// identifier. Owned by the adapter instance; no process globals.
type symbolCache struct {
	mu  sync.Mutex
	ids map[string]string
}

func newSymbolCache() *symbolCache {
	return &symbolCache{ids: make(map[string]string)}
}

func (c *symbolCache) get(symbol string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.ids[symbol]
	return id, ok
}

func (c *symbolCache) empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ids) == 0
}

func (c *symbolCache) replace(ids map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = ids
}
