package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbscan/internal/domain"
)

func TestDetectSkipsSingleVenueSymbols(t *testing.T) {
	d := NewDetector(domain.FeeTable{}, 0.5, testLogger())
	opps := d.Detect(domain.PricesBySymbol{
		"BTCUSDT": {"alpha": 100},
	})
	assert.Empty(t, opps)
}

func TestDetectFeeAdjustedSpread(t *testing.T) {
	fees := domain.FeeTable{
		"alpha": {TakerPercent: 0.1},
		"beta":  {TakerPercent: 0.1},
	}
	d := NewDetector(fees, 0.5, testLogger())

	opps := d.Detect(domain.PricesBySymbol{
		"BTCUSDT": {"alpha": 100, "beta": 101},
	})
	require.Len(t, opps, 1)

	opp := opps[0]
	assert.Equal(t, "BTCUSDT", opp.Symbol)
	assert.Equal(t, "alpha", opp.Buy.Exchange)
	assert.Equal(t, "beta", opp.Sell.Exchange)
	assert.InDelta(t, 100.0, opp.Min, 1e-9)
	assert.InDelta(t, 101.0, opp.Max, 1e-9)
	assert.InDelta(t, 1.0, opp.Diff, 1e-9)

	// buy effective 100.1, sell effective 100.899
	assert.InDelta(t, 100.1, opp.Buy.EffectivePrice, 1e-9)
	assert.InDelta(t, 100.899, opp.Sell.EffectivePrice, 1e-9)
	assert.InDelta(t, (100.899-100.1)/100.1*100, opp.NetDiff, 1e-9)
	assert.NotEmpty(t, opp.ID)
	assert.False(t, opp.DetectedAt.IsZero())
}

// TestDetectFeesBeforeSelection checks that leg selection compares
// fee-adjusted prices: the venue with the lowest raw price is not the best
// buy leg once its fee is high enough.
func TestDetectFeesBeforeSelection(t *testing.T) {
	fees := domain.FeeTable{
		"cheap": {TakerPercent: 2.0},
		"mid":   {TakerPercent: 0.1},
		"rich":  {TakerPercent: 0.1},
	}
	d := NewDetector(fees, 0.5, testLogger())

	opps := d.Detect(domain.PricesBySymbol{
		"BTCUSDT": {"cheap": 100, "mid": 101, "rich": 103},
	})
	require.Len(t, opps, 1)

	opp := opps[0]
	// Raw minimum is cheap at 100, but its 2% fee pushes the effective buy
	// to 102; mid's 101 * 1.001 = 101.101 wins.
	assert.Equal(t, "mid", opp.Buy.Exchange)
	assert.Equal(t, "rich", opp.Sell.Exchange)
	assert.InDelta(t, 100.0, opp.Min, 1e-9)
	assert.InDelta(t, 103.0, opp.Max, 1e-9)
}

func TestDetectBelowThresholdDiscarded(t *testing.T) {
	fees := domain.FeeTable{
		"alpha": {TakerPercent: 0.1},
		"beta":  {TakerPercent: 0.1},
	}
	d := NewDetector(fees, 2.0, testLogger())

	// Gross spread 1%, net below the 2% threshold.
	opps := d.Detect(domain.PricesBySymbol{
		"BTCUSDT": {"alpha": 100, "beta": 101},
	})
	assert.Empty(t, opps)
}

func TestDetectRankedByNetDiffDescending(t *testing.T) {
	d := NewDetector(domain.FeeTable{}, 0.5, testLogger())

	opps := d.Detect(domain.PricesBySymbol{
		"AAAUSDT": {"alpha": 100, "beta": 101},
		"BBBUSDT": {"alpha": 100, "beta": 105},
	})
	require.Len(t, opps, 2)
	assert.Equal(t, "BBBUSDT", opps[0].Symbol)
	assert.Equal(t, "AAAUSDT", opps[1].Symbol)
	assert.Greater(t, opps[0].NetDiff, opps[1].NetDiff)
}

// Raising the buy venue's fee can only shrink the net diff.
func TestDetectNetDiffMonotonicInFees(t *testing.T) {
	prices := domain.PricesBySymbol{
		"BTCUSDT": {"alpha": 100, "beta": 105},
	}

	var last float64 = 1e18
	for _, taker := range []float64{0, 0.1, 0.5, 1.0, 2.0} {
		fees := domain.FeeTable{
			"alpha": {TakerPercent: taker},
			"beta":  {TakerPercent: taker},
		}
		opps := NewDetector(fees, 0, testLogger()).Detect(prices)
		require.Len(t, opps, 1)
		assert.Less(t, opps[0].NetDiff, last)
		last = opps[0].NetDiff
	}
}
