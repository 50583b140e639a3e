package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeesTotalPercent(t *testing.T) {
	f := Fees{TakerPercent: 0.1, TransferPercent: 0.05}
	assert.InDelta(t, 0.15, f.TotalPercent(), 1e-9)
}

func TestFeeTableUnknownVenueIsZero(t *testing.T) {
	table := FeeTable{"binance": {TakerPercent: 0.1}}
	assert.InDelta(t, 0.1, table.For("binance").TakerPercent, 1e-9)
	assert.Zero(t, table.For("kraken").TotalPercent())
}

func TestValidated(t *testing.T) {
	var opp ArbitrageOpportunity
	assert.False(t, opp.Validated())

	opp.Validation = &OpportunityValidation{Status: ValidationRejected}
	assert.False(t, opp.Validated())

	opp.Validation = &OpportunityValidation{Status: ValidationValidated}
	assert.True(t, opp.Validated())
}

func TestOrderBookBestPrices(t *testing.T) {
	var empty OrderBook
	assert.Zero(t, empty.BestBid())
	assert.Zero(t, empty.BestAsk())

	book := OrderBook{
		Bids: []PriceLevel{{Price: 99, Amount: 1}, {Price: 98, Amount: 2}},
		Asks: []PriceLevel{{Price: 101, Amount: 1}},
	}
	assert.InDelta(t, 99, book.BestBid(), 1e-9)
	assert.InDelta(t, 101, book.BestAsk(), 1e-9)
}
