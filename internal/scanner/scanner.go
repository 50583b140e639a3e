package scanner

import (
	"context"
	"log/slog"
	"time"

	"arbscan/internal/domain"
	"arbscan/internal/exchange"
)

// Config holds every detection and validation threshold of one scanner
// instance. Values are read once at construction; per-call overrides exist
// only for the minimum diff.
type Config struct {
	SettlementCurrency string
	MinDiffPercent     float64
	MinQuoteVolume24h  float64
	MaxSlippagePercent float64
	TradeNotionalUSD   float64
	MinRealProfitUSD   float64
}

// Scanner is the top-level scan operation: pair registry → price
// aggregation → spread detection → execution validation.
type Scanner struct {
	venues []*exchange.Venue
	byName map[string]*exchange.Venue
	cfg    Config
	logger *slog.Logger
}

// New creates a scanner over the given venues.
func New(venues []*exchange.Venue, cfg Config, logger *slog.Logger) *Scanner {
	byName := make(map[string]*exchange.Venue, len(venues))
	for _, v := range venues {
		byName[v.Name()] = v
	}
	return &Scanner{
		venues: venues,
		byName: byName,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "scanner")),
	}
}

// Venues exposes the configured venues for the API layer.
func (s *Scanner) Venues() []*exchange.Venue { return s.venues }

// Result is the outcome of one full scan pass. Every candidate is retained:
// Validated holds the executable opportunities, Rejected the candidates
// that failed validation together with their reasons.
type Result struct {
	Validated []domain.ArbitrageOpportunity `json:"validated"`
	Rejected  []domain.ArbitrageOpportunity `json:"rejected"`
	Symbols   int                           `json:"symbols"`
	StartedAt time.Time                     `json:"started_at"`
	Duration  time.Duration                 `json:"duration"`
}

// Scan runs one full pass and returns only the validated opportunities.
// minDiffPercent overrides the configured threshold when positive.
func (s *Scanner) Scan(ctx context.Context, minDiffPercent float64) ([]domain.ArbitrageOpportunity, error) {
	result, err := s.ScanAll(ctx, minDiffPercent)
	if err != nil {
		return nil, err
	}
	return result.Validated, nil
}

// ScanAll runs one full pass and returns every candidate, validated and
// rejected. Venue failures degrade to empty contributions and never abort
// the scan; the only error returned is context cancellation.
func (s *Scanner) ScanAll(ctx context.Context, minDiffPercent float64) (*Result, error) {
	start := time.Now()

	minDiff := s.cfg.MinDiffPercent
	if minDiffPercent > 0 {
		minDiff = minDiffPercent
	}

	registry := BuildRegistry(ctx, s.venues, s.logger)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prices := AggregatePrices(ctx, s.venues, registry, s.logger)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	detector := NewDetector(s.feeTable(), minDiff, s.logger)
	candidates := detector.Detect(prices)

	ref := newRefCache(registry.SymbolsByVenue())
	validator := NewValidator(s.byName, ref, ValidatorConfig{
		SettlementCurrency: s.cfg.SettlementCurrency,
		MinQuoteVolume24h:  s.cfg.MinQuoteVolume24h,
		MaxSlippagePercent: s.cfg.MaxSlippagePercent,
		TradeNotionalUSD:   s.cfg.TradeNotionalUSD,
		MinRealProfitUSD:   s.cfg.MinRealProfitUSD,
	}, s.logger)

	result := &Result{Symbols: len(prices), StartedAt: start.UTC()}
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		validator.Validate(ctx, &candidates[i])
		if candidates[i].Validated() {
			result.Validated = append(result.Validated, candidates[i])
		} else {
			result.Rejected = append(result.Rejected, candidates[i])
		}
	}
	result.Duration = time.Since(start)

	s.logger.Info("scan complete",
		slog.Int("symbols", result.Symbols),
		slog.Int("candidates", len(candidates)),
		slog.Int("validated", len(result.Validated)),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

// feeTable snapshots each venue's fee schedule for the detector.
func (s *Scanner) feeTable() domain.FeeTable {
	table := make(domain.FeeTable, len(s.venues))
	for _, v := range s.venues {
		table[v.Name()] = v.Fees
	}
	return table
}
