// Package scanner implements the opportunity detection and execution
// validation pipeline: pair registry, price aggregation, fee-adjusted
// spread detection, and the multi-stage validator that simulates execution
// against live depth.
package scanner

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"arbscan/internal/domain"
	"arbscan/internal/exchange"
)

// Registry maps each normalized symbol to the venues that trade it.
type Registry map[string][]string

// BuildRegistry concurrently asks every venue for its tradable pairs and
// merges the results. A venue that fails or returns nothing simply
// contributes no entries; the error is logged, never propagated.
func BuildRegistry(ctx context.Context, venues []*exchange.Venue, logger *slog.Logger) Registry {
	results := make([][]domain.Pair, len(venues))

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range venues {
		i, v := i, v
		g.Go(func() error {
			pairs, err := v.Provider.Pairs(gctx)
			if err != nil {
				logger.Warn("pair discovery failed",
					slog.String("exchange", v.Name()),
					slog.String("error", err.Error()),
				)
				return nil
			}
			results[i] = pairs
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	registry := make(Registry)
	for i, pairs := range results {
		name := venues[i].Name()
		for _, p := range pairs {
			registry[p.Symbol] = append(registry[p.Symbol], name)
		}
	}
	return registry
}

// SymbolsByVenue inverts the registry into per-venue symbol lists, used to
// request from each venue only the symbols it actually trades.
func (r Registry) SymbolsByVenue() map[string][]string {
	byVenue := make(map[string][]string)
	for symbol, venues := range r {
		for _, v := range venues {
			byVenue[v] = append(byVenue[v], symbol)
		}
	}
	return byVenue
}
