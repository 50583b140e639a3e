package scanner

import (
	"context"
	"sync"

	"arbscan/internal/domain"
	"arbscan/internal/exchange"
)

// refCache deduplicates reference-data lookups within a single scan. 24h
// tickers and currency metadata are fetched at most once per venue no
// matter how many candidates share it, and the result (including a failure)
// is reused for the rest of the scan. The cache lives exactly as long as
// one scan.
type refCache struct {
	venueSymbols map[string][]string

	mu         sync.Mutex
	tickers    map[string]tickerEntry
	currencies map[string]currencyEntry
}

type tickerEntry struct {
	data map[string]domain.Ticker24h
	err  error
}

type currencyEntry struct {
	data map[string]domain.CurrencyInfo
	err  error
}

// newRefCache creates a scan-scoped cache. venueSymbols lists, per venue,
// the symbols that venue quotes in this scan; ticker fetches are batched
// over that list.
func newRefCache(venueSymbols map[string][]string) *refCache {
	return &refCache{
		venueSymbols: venueSymbols,
		tickers:      make(map[string]tickerEntry),
		currencies:   make(map[string]currencyEntry),
	}
}

// tickersFor returns the venue's 24h tickers, fetching them on first use.
// Venues without the ticker capability yield domain.ErrUnsupported.
func (c *refCache) tickersFor(ctx context.Context, v *exchange.Venue) (map[string]domain.Ticker24h, error) {
	if v.Tickers == nil {
		return nil, domain.ErrUnsupported
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.tickers[v.Name()]; ok {
		return entry.data, entry.err
	}

	data, err := v.Tickers.Tickers(ctx, c.venueSymbols[v.Name()])
	c.tickers[v.Name()] = tickerEntry{data: data, err: err}
	return data, err
}

// currenciesFor returns the venue's currency/network metadata, fetching it
// on first use. Venues without the capability yield domain.ErrUnsupported.
func (c *refCache) currenciesFor(ctx context.Context, v *exchange.Venue) (map[string]domain.CurrencyInfo, error) {
	if v.Currencies == nil {
		return nil, domain.ErrUnsupported
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.currencies[v.Name()]; ok {
		return entry.data, entry.err
	}

	data, err := v.Currencies.Currencies(ctx)
	c.currencies[v.Name()] = currencyEntry{data: data, err: err}
	return data, err
}
