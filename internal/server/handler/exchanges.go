package handler

import (
	"net/http"

	"arbscan/internal/domain"
	"arbscan/internal/exchange"
	"arbscan/internal/scanner"
)

// ExchangesHandler exposes the configured venues, their capabilities, and
// fee schedules.
type ExchangesHandler struct {
	scanner *scanner.Scanner
}

// NewExchangesHandler creates an ExchangesHandler.
func NewExchangesHandler(s *scanner.Scanner) *ExchangesHandler {
	return &ExchangesHandler{scanner: s}
}

type exchangeInfo struct {
	Name         string                `json:"name"`
	Capabilities exchange.Capabilities `json:"capabilities"`
	Fees         domain.Fees           `json:"fees"`
}

// List returns the venue roster.
// GET /api/exchanges
func (h *ExchangesHandler) List(w http.ResponseWriter, r *http.Request) {
	venues := h.scanner.Venues()
	infos := make([]exchangeInfo, 0, len(venues))
	for _, v := range venues {
		infos = append(infos, exchangeInfo{
			Name:         v.Name(),
			Capabilities: v.Capabilities(),
			Fees:         v.Fees,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"exchanges": infos})
}
