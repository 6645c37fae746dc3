package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/simmerbot/config"
	"github.com/alejandrodnm/simmerbot/internal/adapters/notify"
	"github.com/alejandrodnm/simmerbot/internal/adapters/simmer"
	"github.com/alejandrodnm/simmerbot/internal/domain"
	"github.com/alejandrodnm/simmerbot/internal/ports"
	"github.com/alejandrodnm/simmerbot/internal/scanner"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file (optional)")
	modeFlag := flag.String("mode", "scan", "scan | pick | auto | poll | briefing")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print a human-readable table instead of JSON")
	since := flag.String("since", "", "briefing mode: only changes since this timestamp")
	flag.Parse()

	mode, err := domain.ParseMode(*modeFlag)
	if err != nil {
		slog.Error("invalid mode", "err", err)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath, mode)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Debug("simmerbot starting",
		"mode", mode,
		"config", *configPath,
		"query", cfg.Scanner.Query,
		"api", cfg.API.BaseURL,
	)

	client := simmer.NewClient(cfg.API.BaseURL, cfg.API.APIKey, simmer.Options{
		Timeout:       cfg.Timeout(),
		RatePerSecond: cfg.API.RatePerSecond,
	})
	console := notify.NewConsole(mode == domain.ModePoll, *table)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if mode == domain.ModeBriefing {
		if err := runBriefing(ctx, client, console, *since); err != nil {
			slog.Error("briefing failed", "err", err)
			os.Exit(1)
		}
		return
	}

	var executor ports.TradeExecutor
	if mode.Trades() {
		executor = client
	}

	notifier := buildNotifiers(ctx, cfg, console)
	s := scanner.New(scannerConfig(cfg), client, client, client, executor, notifier)

	if mode == domain.ModePoll {
		if err := s.Run(ctx); err != nil {
			slog.Error("scanner exited with error", "err", err)
			os.Exit(1)
		}
		slog.Info("simmerbot stopped cleanly")
		return
	}

	if err := runOnce(ctx, s, notifier); err != nil {
		slog.Error("run failed", "mode", mode, "err", err)
		os.Exit(1)
	}
}

// runOnce ejecuta un run del pipeline y publica el reporte. Un fallo de
// notificación no cambia el resultado del run.
func runOnce(ctx context.Context, s *scanner.Scanner, notifier ports.Notifier) error {
	report, err := s.RunOnce(ctx)
	if err != nil {
		return err
	}
	if err := notifier.Notify(ctx, report); err != nil {
		slog.Warn("notifier error", "err", err)
	}
	return nil
}

func runBriefing(ctx context.Context, briefings ports.BriefingProvider, console *notify.Console, since string) error {
	b, err := briefings.GetBriefing(ctx, since)
	if err != nil {
		return err
	}
	return console.PrintBriefing(b)
}

// scannerConfig traduce la configuración cargada a la del pipeline.
func scannerConfig(cfg *config.Config) scanner.Config {
	sc := scanner.DefaultConfig(cfg.Mode)
	sc.Query = cfg.Scanner.Query
	sc.Limit = cfg.Scanner.Limit
	sc.Filter = scanner.FilterConfig{
		MinOpportunityScore: cfg.Scanner.MinOpportunityScore,
		ExcludeFast:         cfg.Scanner.ExcludeFast,
		MinVolume24h:        cfg.Scanner.MinVolume24h,
	}
	sc.MaxContexts = cfg.Scanner.MaxContexts
	sc.ContextWorkers = cfg.Scanner.ContextWorkers
	sc.MaxTradeUSD = cfg.Scanner.MaxUSD
	sc.MaxSpreadPct = cfg.Scanner.MaxSpreadPct
	sc.ScanInterval = cfg.ScanInterval()
	return sc
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// stderr: stdout queda reservado para los reportes
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
