package app

import (
	"fmt"
	"log/slog"
	"strings"

	"arbscan/internal/config"
	"arbscan/internal/exchange"
	"arbscan/internal/notify"
	"arbscan/internal/scanner"
)

// Dependencies bundles everything the application modes need to operate.
type Dependencies struct {
	Scanner  *scanner.Scanner
	Notifier *notify.Notifier
}

// Wire constructs the venue adapters, scanner, and notifier from the given
// configuration.
func Wire(cfg *config.Config) (*Dependencies, error) {
	logger := slog.Default()
	fees := cfg.FeeTable()

	venues := make([]*exchange.Venue, 0, len(cfg.Exchanges.Enabled))
	for _, name := range cfg.Exchanges.Enabled {
		name = strings.ToLower(name)
		provider, err := exchange.New(name, cfg.Scan.SettlementCurrency)
		if err != nil {
			return nil, fmt.Errorf("wire: %w", err)
		}
		venue := exchange.NewVenue(provider, fees.For(name))
		venues = append(venues, venue)
		logger.Info("venue configured",
			slog.String("exchange", name),
			slog.Float64("taker_percent", venue.Fees.TakerPercent),
			slog.Float64("transfer_percent", venue.Fees.TransferPercent),
			slog.Bool("tickers", venue.Capabilities().Tickers),
			slog.Bool("order_books", venue.Capabilities().OrderBooks),
			slog.Bool("currencies", venue.Capabilities().Currencies),
		)
	}

	scn := scanner.New(venues, scanner.Config{
		SettlementCurrency: cfg.Scan.SettlementCurrency,
		MinDiffPercent:     cfg.Scan.MinDiffPercent,
		MinQuoteVolume24h:  cfg.Scan.MinQuoteVolume24h,
		MaxSlippagePercent: cfg.Scan.MaxSlippagePercent,
		TradeNotionalUSD:   cfg.Scan.TradeNotionalUSD,
		MinRealProfitUSD:   cfg.Scan.MinRealProfitUSD,
	}, logger)

	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	notifier := notify.NewNotifier(senders, cfg.Notify.Events, logger)

	return &Dependencies{
		Scanner:  scn,
		Notifier: notifier,
	}, nil
}
