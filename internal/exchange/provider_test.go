package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbscan/internal/domain"
)

func TestNewKnownVenues(t *testing.T) {
	for _, name := range []string{"binance", "bybit", "gateio", "mexc"} {
		p, err := New(name, "usdt")
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
	}
}

func TestNewUnknownVenue(t *testing.T) {
	_, err := New("kraken", "USDT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kraken")
}

func TestVenueCapabilities(t *testing.T) {
	fees := domain.Fees{TakerPercent: 0.1}

	// Every adapter carries tickers and order books; only Gate exposes
	// public currency metadata.
	tests := []struct {
		name       string
		currencies bool
	}{
		{"binance", false},
		{"bybit", false},
		{"gateio", true},
		{"mexc", false},
	}
	for _, tt := range tests {
		p, err := New(tt.name, "USDT")
		require.NoError(t, err)
		v := NewVenue(p, fees)

		caps := v.Capabilities()
		assert.True(t, caps.Tickers, tt.name)
		assert.True(t, caps.OrderBooks, tt.name)
		assert.Equal(t, tt.currencies, caps.Currencies, tt.name)
		assert.InDelta(t, 0.1, v.Fees.TakerPercent, 1e-9, tt.name)
	}
}
