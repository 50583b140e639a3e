package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbscan/internal/domain"
	"arbscan/internal/exchange"
)

func TestBuildRegistryMergesVenues(t *testing.T) {
	alpha := &stubProvider{
		name:  "alpha",
		pairs: []domain.Pair{pair("BTC", "USDT"), pair("ETH", "USDT")},
	}
	beta := &stubProvider{
		name:  "beta",
		pairs: []domain.Pair{pair("BTC", "USDT"), pair("SOL", "USDT")},
	}

	registry := BuildRegistry(context.Background(), []*exchange.Venue{
		fullVenue(alpha, domain.Fees{}),
		fullVenue(beta, domain.Fees{}),
	}, testLogger())

	require.Len(t, registry, 3)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, registry["BTCUSDT"])
	assert.Equal(t, []string{"alpha"}, registry["ETHUSDT"])
	assert.Equal(t, []string{"beta"}, registry["SOLUSDT"])
}

func TestBuildRegistryFailingVenueContributesNothing(t *testing.T) {
	alpha := &stubProvider{
		name:  "alpha",
		pairs: []domain.Pair{pair("BTC", "USDT")},
	}
	beta := &stubProvider{
		name:     "beta",
		pairsErr: domain.ErrNotFound,
	}

	registry := BuildRegistry(context.Background(), []*exchange.Venue{
		fullVenue(alpha, domain.Fees{}),
		fullVenue(beta, domain.Fees{}),
	}, testLogger())

	require.Len(t, registry, 1)
	assert.Equal(t, []string{"alpha"}, registry["BTCUSDT"])
}

func TestSymbolsByVenue(t *testing.T) {
	registry := Registry{
		"BTCUSDT": {"alpha", "beta"},
		"ETHUSDT": {"alpha"},
	}

	byVenue := registry.SymbolsByVenue()
	assert.ElementsMatch(t, []string{"BTCUSDT", "ETHUSDT"}, byVenue["alpha"])
	assert.Equal(t, []string{"BTCUSDT"}, byVenue["beta"])
}
