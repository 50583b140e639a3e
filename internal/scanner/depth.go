package scanner

import "arbscan/internal/domain"

// fillTolerance absorbs floating-point residue when deciding whether a
// book side held enough depth to complete a fill.
const fillTolerance = 1e-9

// simulateBuy walks the ask side from the best price upward, consuming
// levels until the trade notional (quote units) is spent. It reports
// failure when total ask depth cannot fill the notional. The returned fill
// is deterministic for a given book and notional.
func simulateBuy(asks []domain.PriceLevel, notional float64) (fill, bool) {
	if len(asks) == 0 || notional <= 0 {
		return fill{}, false
	}

	remaining := notional
	var spent, bought float64
	for _, lvl := range asks {
		levelNotional := lvl.Price * lvl.Amount
		take := levelNotional
		if remaining < take {
			take = remaining
		}
		bought += take / lvl.Price
		spent += take
		remaining -= take
		if remaining <= 0 {
			break
		}
	}
	if remaining > notional*fillTolerance || bought <= 0 {
		return fill{}, false
	}

	return fill{
		vwap:  spent / bought,
		base:  bought,
		quote: spent,
		best:  asks[0].Price,
	}, true
}

// simulateSell walks the bid side from the best price downward, selling
// exactly baseAmount. It reports failure when total bid depth cannot absorb
// the amount.
func simulateSell(bids []domain.PriceLevel, baseAmount float64) (fill, bool) {
	if len(bids) == 0 || baseAmount <= 0 {
		return fill{}, false
	}

	remaining := baseAmount
	var sold, proceeds float64
	for _, lvl := range bids {
		take := lvl.Amount
		if remaining < take {
			take = remaining
		}
		proceeds += take * lvl.Price
		sold += take
		remaining -= take
		if remaining <= 0 {
			break
		}
	}
	if remaining > baseAmount*fillTolerance || sold <= 0 {
		return fill{}, false
	}

	return fill{
		vwap:  proceeds / sold,
		base:  sold,
		quote: proceeds,
		best:  bids[0].Price,
	}, true
}
