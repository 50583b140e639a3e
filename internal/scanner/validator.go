package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"arbscan/internal/domain"
	"arbscan/internal/exchange"
)

// ValidatorConfig holds the execution-validation thresholds.
type ValidatorConfig struct {
	SettlementCurrency string
	MinQuoteVolume24h  float64
	MaxSlippagePercent float64
	TradeNotionalUSD   float64
	MinRealProfitUSD   float64
}

// Validator runs the execution checks against each spread candidate:
// 24h liquidity, order-book depth and slippage, cross-venue asset
// transferability, and the absolute real-profit threshold. Checks run
// strictly in that order and short-circuit on the first failure; reasons
// accumulate only within a single check's scope.
//
// Ambiguous or missing data always resolves toward rejection, never toward
// optimistic acceptance.
type Validator struct {
	venues map[string]*exchange.Venue
	ref    *refCache
	cfg    ValidatorConfig
	logger *slog.Logger
}

// NewValidator creates a validator over the given venues, sharing the
// scan-scoped reference cache.
func NewValidator(venues map[string]*exchange.Venue, ref *refCache, cfg ValidatorConfig, logger *slog.Logger) *Validator {
	return &Validator{
		venues: venues,
		ref:    ref,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "validator")),
	}
}

// Validate runs the check pipeline on a candidate, attaching an
// OpportunityValidation with terminal status validated or rejected. On
// success it overwrites NetDiff with the depth-aware estimate derived from
// executable VWAP prices.
func (v *Validator) Validate(ctx context.Context, opp *domain.ArbitrageOpportunity) {
	val := &domain.OpportunityValidation{
		Buy:  &domain.LegCheck{Exchange: opp.Buy.Exchange},
		Sell: &domain.LegCheck{Exchange: opp.Sell.Exchange},
	}
	opp.Validation = val
	opp.TradeAmountUSD = v.cfg.TradeNotionalUSD

	reject := func(reasons ...string) {
		val.Status = domain.ValidationRejected
		val.Reasons = append(val.Reasons, reasons...)
		v.logger.Debug("candidate rejected",
			slog.String("symbol", opp.Symbol),
			slog.Any("reasons", val.Reasons),
		)
	}

	if reasons := v.checkLiquidity(ctx, opp, val); len(reasons) > 0 {
		reject(reasons...)
		return
	}

	buyFill, sellFill, reasons := v.checkDepth(ctx, opp, val)
	if len(reasons) > 0 {
		reject(reasons...)
		return
	}

	if reason := v.checkTransfer(ctx, opp, val); reason != "" {
		reject(reason)
		return
	}

	if reason := v.checkRealProfit(opp, buyFill, sellFill); reason != "" {
		reject(reason)
		return
	}

	val.Status = domain.ValidationValidated
}

// checkLiquidity verifies each leg's 24h quote volume. An unknown volume is
// a failure, not a pass. Both legs are evaluated so the rejection carries
// every volume reason at once.
func (v *Validator) checkLiquidity(ctx context.Context, opp *domain.ArbitrageOpportunity, val *domain.OpportunityValidation) []string {
	var reasons []string
	for _, leg := range []*domain.LegCheck{val.Buy, val.Sell} {
		venue, ok := v.venues[leg.Exchange]
		if !ok {
			reasons = append(reasons, fmt.Sprintf("%s: venue not configured", leg.Exchange))
			continue
		}

		tickers, err := v.ref.tickersFor(ctx, venue)
		if err != nil {
			reasons = append(reasons, fmt.Sprintf("%s: 24h volume unavailable", leg.Exchange))
			continue
		}
		ticker, found := tickers[opp.Symbol]
		if !found || ticker.QuoteVolume <= 0 {
			reasons = append(reasons, fmt.Sprintf("%s: 24h volume unknown for %s", leg.Exchange, opp.Symbol))
			continue
		}

		leg.QuoteVolume24h = ticker.QuoteVolume
		if ticker.QuoteVolume < v.cfg.MinQuoteVolume24h {
			reasons = append(reasons, fmt.Sprintf("%s: 24h volume %.2f below minimum %.2f",
				leg.Exchange, ticker.QuoteVolume, v.cfg.MinQuoteVolume24h))
		}
	}
	return reasons
}

// fill is the outcome of a simulated execution against one book side.
type fill struct {
	vwap  float64 // volume-weighted executable price
	base  float64 // base amount bought or sold
	quote float64 // quote amount spent or received
	best  float64 // best price on the consumed side
}

// checkDepth simulates the buy against the buy venue's asks for the
// configured notional, then the sell of the resulting base amount against
// the sell venue's bids, and bounds slippage on both legs.
func (v *Validator) checkDepth(ctx context.Context, opp *domain.ArbitrageOpportunity, val *domain.OpportunityValidation) (buyFill, sellFill fill, reasons []string) {
	buyBook, reason := v.fetchBook(ctx, opp.Buy.Exchange, opp.Symbol)
	if reason != "" {
		reasons = append(reasons, reason)
	}
	sellBook, reason := v.fetchBook(ctx, opp.Sell.Exchange, opp.Symbol)
	if reason != "" {
		reasons = append(reasons, reason)
	}
	if len(reasons) > 0 {
		return fill{}, fill{}, reasons
	}

	notional := v.cfg.TradeNotionalUSD
	buyFill, ok := simulateBuy(buyBook.Asks, notional)
	if !ok {
		return fill{}, fill{}, []string{fmt.Sprintf(
			"insufficient ask depth on %s to fill %.2f %s",
			opp.Buy.Exchange, notional, v.cfg.SettlementCurrency)}
	}

	sellFill, ok = simulateSell(sellBook.Bids, buyFill.base)
	if !ok {
		return fill{}, fill{}, []string{fmt.Sprintf(
			"insufficient bid depth on %s to sell %.8f %s",
			opp.Sell.Exchange, buyFill.base, baseAsset(opp.Symbol, v.cfg.SettlementCurrency))}
	}

	buySlippage := (buyFill.vwap - buyFill.best) / buyFill.best * 100
	sellSlippage := (sellFill.best - sellFill.vwap) / sellFill.best * 100

	val.Buy.ExecutablePrice = buyFill.vwap
	val.Buy.BaseAmount = buyFill.base
	val.Buy.SlippagePercent = buySlippage
	val.Sell.ExecutablePrice = sellFill.vwap
	val.Sell.BaseAmount = sellFill.base
	val.Sell.SlippagePercent = sellSlippage

	if buySlippage > v.cfg.MaxSlippagePercent {
		reasons = append(reasons, fmt.Sprintf("buy slippage %.2f%% on %s exceeds maximum %.2f%%",
			buySlippage, opp.Buy.Exchange, v.cfg.MaxSlippagePercent))
	}
	if sellSlippage > v.cfg.MaxSlippagePercent {
		reasons = append(reasons, fmt.Sprintf("sell slippage %.2f%% on %s exceeds maximum %.2f%%",
			sellSlippage, opp.Sell.Exchange, v.cfg.MaxSlippagePercent))
	}
	return buyFill, sellFill, reasons
}

// fetchBook retrieves the order book for one leg, returning a rejection
// reason when the venue lacks the capability or the fetch fails.
func (v *Validator) fetchBook(ctx context.Context, venueName, symbol string) (*domain.OrderBook, string) {
	venue, ok := v.venues[venueName]
	if !ok || venue.Books == nil {
		return nil, fmt.Sprintf("%s: order book unavailable", venueName)
	}
	book, err := venue.Books.OrderBook(ctx, symbol)
	if err != nil {
		v.logger.Warn("order book fetch failed",
			slog.String("exchange", venueName),
			slog.String("symbol", symbol),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Sprintf("%s: order book unavailable for %s", venueName, symbol)
	}
	return book, ""
}

// checkTransfer derives the base asset and verifies that at least one
// network is withdraw-enabled on the buy venue and deposit-enabled on the
// sell venue. Missing metadata rejects conservatively.
func (v *Validator) checkTransfer(ctx context.Context, opp *domain.ArbitrageOpportunity, val *domain.OpportunityValidation) string {
	asset := baseAsset(opp.Symbol, v.cfg.SettlementCurrency)

	buyCurrencies, buyErr := v.currenciesForVenue(ctx, opp.Buy.Exchange)
	sellCurrencies, sellErr := v.currenciesForVenue(ctx, opp.Sell.Exchange)
	if buyErr != nil || sellErr != nil {
		val.Transfer = &domain.TransferCheck{Status: domain.TransferUnavailable}
		return fmt.Sprintf("transfer metadata unavailable for %s between %s and %s",
			asset, opp.Buy.Exchange, opp.Sell.Exchange)
	}

	buyInfo, buyOK := buyCurrencies[asset]
	sellInfo, sellOK := sellCurrencies[asset]
	if !buyOK || !sellOK || len(buyInfo.Networks) == 0 || len(sellInfo.Networks) == 0 {
		val.Transfer = &domain.TransferCheck{Status: domain.TransferUnknown}
		return fmt.Sprintf("transfer networks unknown for %s between %s and %s",
			asset, opp.Buy.Exchange, opp.Sell.Exchange)
	}

	depositable := make(map[string]bool, len(sellInfo.Networks))
	for _, n := range sellInfo.Networks {
		if n.DepositEnabled {
			depositable[n.Network] = true
		}
	}
	for _, n := range buyInfo.Networks {
		if n.WithdrawEnabled && depositable[n.Network] {
			val.Transfer = &domain.TransferCheck{Status: domain.TransferOK, Network: n.Network}
			return ""
		}
	}

	val.Transfer = &domain.TransferCheck{Status: domain.TransferBlocked}
	return fmt.Sprintf("no common transfer network for %s between %s and %s",
		asset, opp.Buy.Exchange, opp.Sell.Exchange)
}

func (v *Validator) currenciesForVenue(ctx context.Context, venueName string) (map[string]domain.CurrencyInfo, error) {
	venue, ok := v.venues[venueName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v.ref.currenciesFor(ctx, venue)
}

// checkRealProfit computes the depth-aware profit from the executable VWAP
// prices and both legs' total fee percent, then overwrites NetDiff with the
// executable estimate.
func (v *Validator) checkRealProfit(opp *domain.ArbitrageOpportunity, buyFill, sellFill fill) string {
	cost := v.cfg.TradeNotionalUSD * (1 + opp.Buy.FeePercent/100)
	proceeds := sellFill.quote * (1 - opp.Sell.FeePercent/100)
	profit := proceeds - cost

	opp.RealProfitUSD = profit
	if profit < v.cfg.MinRealProfitUSD {
		return fmt.Sprintf("real profit %.2f %s below minimum %.2f",
			profit, v.cfg.SettlementCurrency, v.cfg.MinRealProfitUSD)
	}

	opp.NetDiff = profit / cost * 100
	return ""
}

// baseAsset strips the settlement-currency suffix from a symbol.
func baseAsset(symbol, settlementCurrency string) string {
	return strings.TrimSuffix(symbol, strings.ToUpper(settlementCurrency))
}
