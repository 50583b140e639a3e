package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbscan/internal/domain"
	"arbscan/internal/exchange"
)

func TestAggregatePricesMergesBySymbol(t *testing.T) {
	alpha := &stubProvider{
		name:   "alpha",
		prices: map[string]float64{"BTCUSDT": 100, "ETHUSDT": 10},
	}
	beta := &stubProvider{
		name:   "beta",
		prices: map[string]float64{"BTCUSDT": 101},
	}
	registry := Registry{
		"BTCUSDT": {"alpha", "beta"},
		"ETHUSDT": {"alpha"},
	}

	prices := AggregatePrices(context.Background(), []*exchange.Venue{
		fullVenue(alpha, domain.Fees{}),
		fullVenue(beta, domain.Fees{}),
	}, registry, testLogger())

	require.Len(t, prices, 2)
	assert.Equal(t, domain.PriceByExchange{"alpha": 100, "beta": 101}, prices["BTCUSDT"])
	assert.Equal(t, domain.PriceByExchange{"alpha": 10}, prices["ETHUSDT"])

	// Each venue receives only the symbols it trades.
	require.Len(t, alpha.priceCalls, 1)
	assert.ElementsMatch(t, []string{"BTCUSDT", "ETHUSDT"}, alpha.priceCalls[0])
	require.Len(t, beta.priceCalls, 1)
	assert.Equal(t, []string{"BTCUSDT"}, beta.priceCalls[0])
}

func TestAggregatePricesSkipsVenueWithoutSymbols(t *testing.T) {
	alpha := &stubProvider{
		name:   "alpha",
		prices: map[string]float64{"BTCUSDT": 100},
	}
	idle := &stubProvider{name: "idle"}
	registry := Registry{"BTCUSDT": {"alpha"}}

	prices := AggregatePrices(context.Background(), []*exchange.Venue{
		fullVenue(alpha, domain.Fees{}),
		fullVenue(idle, domain.Fees{}),
	}, registry, testLogger())

	require.Len(t, prices, 1)
	assert.Empty(t, idle.priceCalls)
}

func TestAggregatePricesVenueFailureDropsOnlyThatVenue(t *testing.T) {
	alpha := &stubProvider{
		name:   "alpha",
		prices: map[string]float64{"BTCUSDT": 100},
	}
	beta := &stubProvider{
		name:      "beta",
		pricesErr: domain.ErrNotFound,
	}
	registry := Registry{"BTCUSDT": {"alpha", "beta"}}

	prices := AggregatePrices(context.Background(), []*exchange.Venue{
		fullVenue(alpha, domain.Fees{}),
		fullVenue(beta, domain.Fees{}),
	}, registry, testLogger())

	require.Len(t, prices, 1)
	assert.Equal(t, domain.PriceByExchange{"alpha": 100}, prices["BTCUSDT"])
}
