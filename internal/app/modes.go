package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"arbscan/internal/notify"
	"arbscan/internal/server"
	"arbscan/internal/server/handler"
	"arbscan/internal/server/ws"
)

// ScanMode runs one full scan pass and prints the validated opportunities
// as JSON to stdout.
func (a *App) ScanMode(ctx context.Context, deps *Dependencies) error {
	opps, err := deps.Scanner.Scan(ctx, 0)
	if err != nil {
		return fmt.Errorf("scan mode: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(opps); err != nil {
		return fmt.Errorf("scan mode: encode output: %w", err)
	}
	return nil
}

// ServeMode starts the HTTP API and a periodic scan loop that feeds the
// WebSocket hub and the notifier. It blocks until the context is
// cancelled.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	logger := a.logger
	hub := ws.NewHub(slog.Default())

	srv := server.NewServer(
		server.Config{
			Port:        a.cfg.Server.Port,
			CORSOrigins: a.cfg.Server.CORSOrigins,
		},
		server.Handlers{
			Health:        handler.NewHealthHandler(),
			Opportunities: handler.NewOpportunitiesHandler(deps.Scanner, slog.Default()),
			Exchanges:     handler.NewExchangesHandler(deps.Scanner),
		},
		hub,
		slog.Default(),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := hub.Run(gctx)
		if gctx.Err() != nil {
			return nil // clean shutdown
		}
		return err
	})

	g.Go(func() error {
		err := srv.Start()
		if gctx.Err() != nil {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		a.scanLoop(gctx, deps, hub)
		return nil
	})

	logger.Info("serve mode started",
		slog.Int("port", a.cfg.Server.Port),
		slog.Duration("scan_interval", a.cfg.Scan.Interval.Duration),
	)
	return g.Wait()
}

// scanLoop runs a scan on the configured interval, broadcasting each
// result to WebSocket clients and alerting on validated opportunities. A
// failed pass is logged and the loop continues.
func (a *App) scanLoop(ctx context.Context, deps *Dependencies, hub *ws.Hub) {
	ticker := time.NewTicker(a.cfg.Scan.Interval.Duration)
	defer ticker.Stop()

	for {
		a.runScan(ctx, deps, hub)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (a *App) runScan(ctx context.Context, deps *Dependencies, hub *ws.Hub) {
	opps, err := deps.Scanner.Scan(ctx, 0)
	if err != nil {
		a.logger.Warn("periodic scan failed", slog.String("error", err.Error()))
		return
	}

	hub.PublishScan(opps)

	if len(opps) > 0 {
		if err := deps.Notifier.Notify(ctx, notify.OpportunityAlert(opps)); err != nil {
			a.logger.Warn("notification failed", slog.String("error", err.Error()))
		}
	}
}
