package notify

import (
	"fmt"
	"strings"

	"arbscan/internal/domain"
)

// Alert is one outbound notification. Opportunity alerts carry a scan's
// validated opportunities; error alerts carry free-form text. Rendering is
// shared here so every channel reports the same facts.
type Alert struct {
	Event         Event
	Opportunities []domain.ArbitrageOpportunity
	Text          string
}

// OpportunityAlert builds the alert for a scan's validated opportunities.
func OpportunityAlert(opps []domain.ArbitrageOpportunity) Alert {
	return Alert{Event: EventOpportunity, Opportunities: opps}
}

// ErrorAlert builds an operational failure alert.
func ErrorAlert(text string) Alert {
	return Alert{Event: EventError, Text: text}
}

// Title renders the alert headline.
func (a Alert) Title() string {
	switch a.Event {
	case EventOpportunity:
		if n := len(a.Opportunities); n != 1 {
			return fmt.Sprintf("%d arbitrage opportunities found", n)
		}
		return "1 arbitrage opportunity found"
	case EventError:
		return "scan error"
	}
	return string(a.Event)
}

// Body renders the alert as plain text, one line per opportunity.
func (a Alert) Body() string {
	if a.Event != EventOpportunity {
		return a.Text
	}

	var b strings.Builder
	for i, opp := range a.Opportunities {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: buy %s @ %.8g, sell %s @ %.8g, net %.2f%%, profit %.2f USD",
			opp.Symbol,
			opp.Buy.Exchange, opp.Buy.Price,
			opp.Sell.Exchange, opp.Sell.Price,
			opp.NetDiff, opp.RealProfitUSD,
		)
		if opp.Validation != nil && opp.Validation.Transfer != nil && opp.Validation.Transfer.Network != "" {
			fmt.Fprintf(&b, " via %s", opp.Validation.Transfer.Network)
		}
	}
	return b.String()
}
