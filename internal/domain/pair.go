// Package domain contains the core value types shared by the scanner,
// exchange adapters, and API layer: trading pairs, fees, prices, order
// books, and detected arbitrage opportunities.
package domain

// Pair is a spot trading pair on a single venue. Symbol is the canonical
// upper-case concatenation of base and quote (e.g. "BTCUSDT") and is unique
// within one venue, not across venues.
type Pair struct {
	Base   string `json:"base"`
	Quote  string `json:"quote"`
	Symbol string `json:"symbol"`
}

// Fees holds the fee schedule of one venue. Both fields are percentages
// (0.1 means 0.1%). Immutable for the process lifetime; overrides are
// applied once at startup from configuration.
type Fees struct {
	TakerPercent    float64 `json:"taker_percent"`
	TransferPercent float64 `json:"transfer_percent"`
}

// TotalPercent is the combined percentage cost applied to a leg.
func (f Fees) TotalPercent() float64 {
	return f.TakerPercent + f.TransferPercent
}

// FeeTable maps venue name to its fee schedule.
type FeeTable map[string]Fees

// For returns the fees configured for a venue, or the zero schedule when
// the venue is unknown.
func (t FeeTable) For(venue string) Fees {
	return t[venue]
}
