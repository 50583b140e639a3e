package scanner

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"arbscan/internal/domain"
	"arbscan/internal/exchange"
)

// AggregatePrices fans out one batched price request per venue, restricted
// to the symbols that venue trades, and merges the results into a mapping
// keyed first by symbol, then by venue. Venues with no relevant symbols are
// skipped; a whole-venue failure yields an empty contribution and a warn
// log. Individual symbol parse failures were already dropped inside the
// adapter.
func AggregatePrices(ctx context.Context, venues []*exchange.Venue, registry Registry, logger *slog.Logger) domain.PricesBySymbol {
	byVenue := registry.SymbolsByVenue()
	results := make([]map[string]float64, len(venues))

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range venues {
		symbols := byVenue[v.Name()]
		if len(symbols) == 0 {
			continue
		}
		i, v := i, v
		g.Go(func() error {
			prices, err := v.Provider.Prices(gctx, symbols)
			if err != nil {
				logger.Warn("price fetch failed",
					slog.String("exchange", v.Name()),
					slog.Int("symbols", len(symbols)),
					slog.String("error", err.Error()),
				)
				return nil
			}
			results[i] = prices
			return nil
		})
	}
	_ = g.Wait()

	merged := make(domain.PricesBySymbol)
	for i, prices := range results {
		name := venues[i].Name()
		for symbol, price := range prices {
			if merged[symbol] == nil {
				merged[symbol] = make(domain.PriceByExchange)
			}
			merged[symbol][name] = price
		}
	}
	return merged
}
