package domain

import "time"

// OpportunityLeg is one side of a detected opportunity. EffectivePrice is
// the raw price adjusted by the venue's total fee percent in the direction
// of trade: increased for a buy leg, decreased for a sell leg.
type OpportunityLeg struct {
	Exchange       string  `json:"exchange"`
	Price          float64 `json:"price"`
	EffectivePrice float64 `json:"effective_price"`
	FeePercent     float64 `json:"fee_percent"`
}

// ArbitrageOpportunity is a cross-venue spread candidate for one symbol.
//
// Diff is the unadjusted percentage spread between the lowest and highest
// raw price across all venues quoting the symbol. NetDiff starts as the
// fee-adjusted spread between the best buy and sell legs; after validation
// it is overwritten with the depth-aware estimate derived from executable
// VWAP prices.
type ArbitrageOpportunity struct {
	ID             string                 `json:"id"`
	Symbol         string                 `json:"symbol"`
	Min            float64                `json:"min"`
	Max            float64                `json:"max"`
	Diff           float64                `json:"diff"`
	NetDiff        float64                `json:"net_diff"`
	Buy            OpportunityLeg         `json:"buy"`
	Sell           OpportunityLeg         `json:"sell"`
	Exchanges      PriceByExchange        `json:"exchanges"`
	TradeAmountUSD float64                `json:"trade_amount_usd,omitempty"`
	RealProfitUSD  float64                `json:"real_profit_usd,omitempty"`
	Validation     *OpportunityValidation `json:"validation,omitempty"`
	DetectedAt     time.Time              `json:"detected_at"`
}

// ValidationStatus is the terminal state of the validation pipeline.
type ValidationStatus string

const (
	ValidationValidated ValidationStatus = "validated"
	ValidationRejected  ValidationStatus = "rejected"
)

// TransferStatus is the outcome of the cross-venue transferability check.
type TransferStatus string

const (
	// TransferOK means at least one network is withdraw-enabled on the buy
	// venue and deposit-enabled on the sell venue.
	TransferOK TransferStatus = "ok"
	// TransferBlocked means both venues expose networks but none qualifies.
	TransferBlocked TransferStatus = "blocked"
	// TransferUnknown means metadata is present but the networks list is
	// empty or the asset is missing; treated as a reject.
	TransferUnknown TransferStatus = "unknown"
	// TransferUnavailable means one or both venues do not expose currency
	// metadata at all; treated as a reject.
	TransferUnavailable TransferStatus = "unavailable"
)

// LegCheck captures the per-leg measurements taken during validation.
type LegCheck struct {
	Exchange        string  `json:"exchange"`
	QuoteVolume24h  float64 `json:"quote_volume_24h,omitempty"`
	ExecutablePrice float64 `json:"executable_price,omitempty"`
	BaseAmount      float64 `json:"base_amount,omitempty"`
	SlippagePercent float64 `json:"slippage_percent,omitempty"`
}

// TransferCheck is the transferability outcome, with the chosen network
// when Status is TransferOK.
type TransferCheck struct {
	Status  TransferStatus `json:"status"`
	Network string         `json:"network,omitempty"`
}

// OpportunityValidation is attached to a candidate by the validator and
// never mutated afterward. Reasons are human-readable and present only on
// rejection.
type OpportunityValidation struct {
	Status   ValidationStatus `json:"status"`
	Reasons  []string         `json:"reasons,omitempty"`
	Buy      *LegCheck        `json:"buy,omitempty"`
	Sell     *LegCheck        `json:"sell,omitempty"`
	Transfer *TransferCheck   `json:"transfer,omitempty"`
}

// Validated reports whether the opportunity passed the full validation
// pipeline.
func (o *ArbitrageOpportunity) Validated() bool {
	return o.Validation != nil && o.Validation.Status == ValidationValidated
}
