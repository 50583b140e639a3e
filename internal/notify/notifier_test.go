package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbscan/internal/domain"
)

type stubSender struct {
	name   string
	err    error
	alerts []Alert
}

func (s *stubSender) Send(ctx context.Context, alert Alert) error {
	s.alerts = append(s.alerts, alert)
	return s.err
}

func (s *stubSender) Name() string { return s.name }

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestNotifyFiltersEvents(t *testing.T) {
	sender := &stubSender{name: "stub"}
	n := NewNotifier([]Sender{sender}, []string{"opportunity_validated"}, discard())

	require.NoError(t, n.Notify(context.Background(), ErrorAlert("boom")))
	assert.Empty(t, sender.alerts)

	require.NoError(t, n.Notify(context.Background(), OpportunityAlert(nil)))
	require.Len(t, sender.alerts, 1)
	assert.Equal(t, EventOpportunity, sender.alerts[0].Event)
}

func TestNotifyEmptyEventListAllowsAll(t *testing.T) {
	sender := &stubSender{name: "stub"}
	n := NewNotifier([]Sender{sender}, nil, discard())

	require.NoError(t, n.Notify(context.Background(), ErrorAlert("boom")))
	assert.Len(t, sender.alerts, 1)
}

func TestNotifyContinuesPastFailingSender(t *testing.T) {
	bad := &stubSender{name: "bad", err: errors.New("boom")}
	good := &stubSender{name: "good"}
	n := NewNotifier([]Sender{bad, good}, nil, discard())

	err := n.Notify(context.Background(), OpportunityAlert(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.Len(t, good.alerts, 1)
}

func TestOpportunityAlertRendering(t *testing.T) {
	alert := OpportunityAlert([]domain.ArbitrageOpportunity{
		{
			Symbol:        "BTCUSDT",
			NetDiff:       0.8,
			RealProfitUSD: 2.5,
			Buy:           domain.OpportunityLeg{Exchange: "binance", Price: 65000},
			Sell:          domain.OpportunityLeg{Exchange: "gateio", Price: 65650},
			Validation: &domain.OpportunityValidation{
				Status:   domain.ValidationValidated,
				Transfer: &domain.TransferCheck{Status: domain.TransferOK, Network: "ERC20"},
			},
		},
	})

	assert.Equal(t, "1 arbitrage opportunity found", alert.Title())
	body := alert.Body()
	assert.Contains(t, body, "BTCUSDT: buy binance @ 65000, sell gateio @ 65650")
	assert.Contains(t, body, "net 0.80%")
	assert.Contains(t, body, "profit 2.50 USD")
	assert.Contains(t, body, "via ERC20")

	two := OpportunityAlert(append(alert.Opportunities, alert.Opportunities[0]))
	assert.Equal(t, "2 arbitrage opportunities found", two.Title())
}

func TestErrorAlertRendering(t *testing.T) {
	alert := ErrorAlert("venue down")
	assert.Equal(t, "scan error", alert.Title())
	assert.Equal(t, "venue down", alert.Body())
}

func TestPostJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := postJSON(context.Background(), srv.Client(), srv.URL, map[string]string{"k": "v"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "bad request")
}
