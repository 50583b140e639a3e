package handler

import (
	"log/slog"
	"net/http"
	"time"

	"arbscan/internal/scanner"
)

// OpportunitiesHandler serves on-demand scans over HTTP. Every request runs
// one full registry → aggregation → detection → validation pass; nothing is
// served from history.
type OpportunitiesHandler struct {
	scanner *scanner.Scanner
	logger  *slog.Logger
}

// NewOpportunitiesHandler creates an OpportunitiesHandler.
func NewOpportunitiesHandler(s *scanner.Scanner, logger *slog.Logger) *OpportunitiesHandler {
	return &OpportunitiesHandler{
		scanner: s,
		logger:  logger.With(slog.String("handler", "opportunities")),
	}
}

// List runs a scan and returns the validated opportunities. The min_diff
// query parameter overrides the configured threshold when positive.
// GET /api/opportunities?min_diff=0.5
func (h *OpportunitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	opps, err := h.scanner.Scan(r.Context(), floatQuery(r, "min_diff"))
	if err != nil {
		h.logger.Error("scan failed", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "scan failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"opportunities": opps,
		"count":         len(opps),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// ListAll runs a scan and returns every candidate, validated and rejected,
// with the rejection reasons attached.
// GET /api/opportunities/all?min_diff=0.5
func (h *OpportunitiesHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.scanner.ScanAll(r.Context(), floatQuery(r, "min_diff"))
	if err != nil {
		h.logger.Error("scan failed", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "scan failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
