package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/govalues/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tinoosan/finledger/internal/config"
	"github.com/tinoosan/finledger/internal/console"
	"github.com/tinoosan/finledger/internal/dictionary"
	"github.com/tinoosan/finledger/internal/httpapi"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Logger (slog to stderr so it never interleaves with the menu on stdout)
	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	svc, err := wire(cfg, logger)
	if err != nil {
		logger.Error("wire services", "err", err)
		os.Exit(1)
	}
	if cfg.DevSeed {
		if err := seedDev(ctx, svc, logger); err != nil {
			logger.Error("dev seed failed", "err", err)
		}
	}

	mode := "menu"
	if len(os.Args) > 1 {
		mode = strings.ToLower(os.Args[1])
	}
	switch mode {
	case "menu":
		err = runMenu(ctx, cfg, svc, logger)
	case "serve":
		err = serve(ctx, cfg, svc, logger)
	default:
		fmt.Fprintf(os.Stderr, "usage: finledger [menu|serve]\n")
		os.Exit(2)
	}
	if err != nil {
		logger.Error("exit", "mode", mode, "err", err)
		os.Exit(1)
	}
}

func runMenu(ctx context.Context, cfg *config.Config, svc services, logger *slog.Logger) error {
	c := console.New(os.Stdin, os.Stdout, console.Deps{
		Accounts:   svc.accounts,
		Categories: svc.categories,
		Operations: svc.operations,
		Analytics:  svc.analytics,
		Exporter:   svc.exporter,
		Importer:   svc.importer,
	}, logger, console.WithCurrency(cfg.Currency))
	return c.Run(ctx)
}

// serve runs the HTTP surface until SIGINT/SIGTERM. The menu installs no
// signal handler so Ctrl-C still ends it.
func serve(ctx context.Context, cfg *config.Config, svc services, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := httpapi.New(httpapi.Deps{
		Accounts:     svc.accounts,
		Categories:   svc.categories,
		Operations:   svc.operations,
		Analytics:    svc.analytics,
		Exporter:     svc.exporter,
		Importer:     svc.importer,
		Currency:     cfg.Currency,
		ExportFormat: cfg.ExportFormat,
	}, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("finledger listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
			return err
		}
		return nil
	})
	return g.Wait()
}

// seedDev creates the curated categories and an empty cash account.
func seedDev(ctx context.Context, svc services, logger *slog.Logger) error {
	cash, err := svc.accounts.Create(ctx, "Cash", decimal.Decimal{})
	if err != nil {
		return err
	}
	ids := map[string]string{"cash_account_id": cash.ID.String()}
	for _, d := range dictionary.CategoriesFor(nil) {
		c, err := svc.categories.Create(ctx, d.Label, d.Type)
		if err != nil {
			return err
		}
		ids[d.Code+"_category_id"] = c.ID.String()
	}
	logger.Info("DEV seed (memory)", "ids", ids)
	fmt.Println("==================== DEV SEED ====================")
	fmt.Printf("cash_account_id: %s\n", cash.ID)
	fmt.Printf("categories: %d curated\n", len(ids)-1)
	fmt.Println("==================================================")
	return nil
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(cfg *config.Config) *slog.Logger {
	level := parseLogLevel(cfg.LogLevel)
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
