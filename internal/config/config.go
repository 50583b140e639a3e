// Package config defines the top-level configuration for the arbitrage
// scanner and provides defaults and validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"arbscan/internal/domain"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by ARBSCAN_* environment
// variables.
type Config struct {
	Scan      ScanConfig           `toml:"scan"`
	Exchanges ExchangesConfig      `toml:"exchanges"`
	Fees      map[string]FeeConfig `toml:"fees"`
	Server    ServerConfig         `toml:"server"`
	Notify    NotifyConfig         `toml:"notify"`
	Mode      string               `toml:"mode"`
	LogLevel  string               `toml:"log_level"`
}

// ScanConfig holds the detection and validation thresholds.
type ScanConfig struct {
	SettlementCurrency string   `toml:"settlement_currency"`
	MinDiffPercent     float64  `toml:"min_diff_percent"`
	MinQuoteVolume24h  float64  `toml:"min_quote_volume_24h"`
	MaxSlippagePercent float64  `toml:"max_slippage_percent"`
	MinRealProfitUSD   float64  `toml:"min_real_profit_usd"`
	TradeNotionalUSD   float64  `toml:"trade_notional_usd"`
	Interval           duration `toml:"interval"`
}

// ExchangesConfig selects which venue adapters are constructed.
type ExchangesConfig struct {
	Enabled []string `toml:"enabled"`
}

// FeeConfig is a per-venue fee override. Values are percentages.
type FeeConfig struct {
	TakerPercent    float64 `toml:"taker_percent"`
	TransferPercent float64 `toml:"transfer_percent"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Enabled     bool     `toml:"enabled"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// KnownExchanges enumerates the venue adapters this build ships.
var KnownExchanges = []string{"binance", "bybit", "gateio", "mexc"}

// Defaults returns a Config populated with the hard-coded default values.
// The process falls back to these when the configuration file cannot be
// loaded.
func Defaults() Config {
	return Config{
		Scan: ScanConfig{
			SettlementCurrency: "USDT",
			MinDiffPercent:     0.5,
			MinQuoteVolume24h:  50_000,
			MaxSlippagePercent: 0.8,
			MinRealProfitUSD:   5,
			TradeNotionalUSD:   100,
			Interval:           duration{60 * time.Second},
		},
		Exchanges: ExchangesConfig{
			Enabled: append([]string(nil), KnownExchanges...),
		},
		Fees: map[string]FeeConfig{
			"binance": {TakerPercent: 0.1},
			"bybit":   {TakerPercent: 0.1},
			"gateio":  {TakerPercent: 0.2},
			"mexc":    {TakerPercent: 0.05},
		},
		Server: ServerConfig{
			Enabled:     true,
			Port:        8000,
			CORSOrigins: []string{"*"},
		},
		Notify: NotifyConfig{
			Events: []string{"opportunity_validated", "error"},
		},
		Mode:     "scan",
		LogLevel: "info",
	}
}

// FeeTable converts the configured per-venue overrides into the immutable
// fee snapshot injected into provider construction.
func (c *Config) FeeTable() domain.FeeTable {
	table := make(domain.FeeTable, len(c.Fees))
	for venue, f := range c.Fees {
		table[strings.ToLower(venue)] = domain.Fees{
			TakerPercent:    f.TakerPercent,
			TransferPercent: f.TransferPercent,
		}
	}
	return table
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"scan":  true,
	"serve": true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and
// returns a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: scan, serve)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if strings.TrimSpace(c.Scan.SettlementCurrency) == "" {
		errs = append(errs, "scan: settlement_currency must not be empty")
	}
	if c.Scan.MinDiffPercent < 0 {
		errs = append(errs, "scan: min_diff_percent must not be negative")
	}
	if c.Scan.MinQuoteVolume24h < 0 {
		errs = append(errs, "scan: min_quote_volume_24h must not be negative")
	}
	if c.Scan.MaxSlippagePercent <= 0 {
		errs = append(errs, "scan: max_slippage_percent must be positive")
	}
	if c.Scan.TradeNotionalUSD <= 0 {
		errs = append(errs, "scan: trade_notional_usd must be positive")
	}
	if c.Scan.Interval.Duration <= 0 {
		errs = append(errs, "scan: interval must be positive")
	}

	known := make(map[string]bool, len(KnownExchanges))
	for _, name := range KnownExchanges {
		known[name] = true
	}
	if len(c.Exchanges.Enabled) < 2 {
		errs = append(errs, "exchanges: at least two venues must be enabled")
	}
	for _, name := range c.Exchanges.Enabled {
		if !known[strings.ToLower(name)] {
			errs = append(errs, fmt.Sprintf("exchanges: unknown venue %q (valid: %s)", name, strings.Join(KnownExchanges, ", ")))
		}
	}

	for venue, f := range c.Fees {
		if f.TakerPercent < 0 || f.TransferPercent < 0 {
			errs = append(errs, fmt.Sprintf("fees.%s: percentages must not be negative", venue))
		}
	}

	if c.Server.Enabled && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
	}

	// Telegram credentials must be set together, or not at all.
	tt := c.Notify.TelegramToken != ""
	tc := c.Notify.TelegramChatID != ""
	if tt != tc {
		errs = append(errs, "notify: telegram_token and telegram_chat_id must be set together")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}
