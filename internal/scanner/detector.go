package scanner

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"arbscan/internal/domain"
)

// Detector computes fee-adjusted spreads and selects the best buy/sell leg
// pair for every symbol quoted on at least two venues.
type Detector struct {
	fees           domain.FeeTable
	minDiffPercent float64
	logger         *slog.Logger
}

// NewDetector creates a detector with the given fee snapshot and minimum
// net-diff threshold (percent).
func NewDetector(fees domain.FeeTable, minDiffPercent float64, logger *slog.Logger) *Detector {
	return &Detector{
		fees:           fees,
		minDiffPercent: minDiffPercent,
		logger:         logger.With(slog.String("component", "detector")),
	}
}

// Detect emits one candidate per symbol whose fee-adjusted spread between
// the best buy and sell legs meets the threshold, ranked by net diff
// descending.
//
// Fee adjustment happens before leg selection: the cheapest raw price is
// not necessarily the cheapest effective price once fees differ by venue.
func (d *Detector) Detect(prices domain.PricesBySymbol) []domain.ArbitrageOpportunity {
	var opps []domain.ArbitrageOpportunity
	now := time.Now().UTC()

	for symbol, byVenue := range prices {
		if len(byVenue) < 2 {
			continue
		}

		var (
			minPrice, maxPrice float64
			buy, sell          domain.OpportunityLeg
			first              = true
		)
		for venue, price := range byVenue {
			feePercent := d.fees.For(venue).TotalPercent()
			buyEffective := price * (1 + feePercent/100)
			sellEffective := price * (1 - feePercent/100)

			if first {
				minPrice, maxPrice = price, price
				buy = domain.OpportunityLeg{Exchange: venue, Price: price, EffectivePrice: buyEffective, FeePercent: feePercent}
				sell = domain.OpportunityLeg{Exchange: venue, Price: price, EffectivePrice: sellEffective, FeePercent: feePercent}
				first = false
				continue
			}

			if price < minPrice {
				minPrice = price
			}
			if price > maxPrice {
				maxPrice = price
			}
			// Strict comparisons: on a tie the first encountered leg wins.
			if buyEffective < buy.EffectivePrice {
				buy = domain.OpportunityLeg{Exchange: venue, Price: price, EffectivePrice: buyEffective, FeePercent: feePercent}
			}
			if sellEffective > sell.EffectivePrice {
				sell = domain.OpportunityLeg{Exchange: venue, Price: price, EffectivePrice: sellEffective, FeePercent: feePercent}
			}
		}

		diff := (maxPrice - minPrice) / minPrice * 100
		netDiff := (sell.EffectivePrice - buy.EffectivePrice) / buy.EffectivePrice * 100
		if netDiff < d.minDiffPercent {
			continue
		}

		exchanges := make(domain.PriceByExchange, len(byVenue))
		for venue, price := range byVenue {
			exchanges[venue] = price
		}

		opps = append(opps, domain.ArbitrageOpportunity{
			ID:         uuid.Must(uuid.NewRandom()).String(),
			Symbol:     symbol,
			Min:        minPrice,
			Max:        maxPrice,
			Diff:       diff,
			NetDiff:    netDiff,
			Buy:        buy,
			Sell:       sell,
			Exchanges:  exchanges,
			DetectedAt: now,
		})

		d.logger.Debug("spread candidate",
			slog.String("symbol", symbol),
			slog.String("buy", buy.Exchange),
			slog.String("sell", sell.Exchange),
			slog.Float64("diff", diff),
			slog.Float64("net_diff", netDiff),
		)
	}

	sort.Slice(opps, func(i, j int) bool { return opps[i].NetDiff > opps[j].NetDiff })
	return opps
}
