package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"TickerLens/internal/config"
	"TickerLens/internal/content"
	"TickerLens/internal/hub"
	"TickerLens/internal/notifier"
	"TickerLens/internal/recorder"
	"TickerLens/internal/scheduler"
	"TickerLens/internal/web"
)

const shutdownTimeout = 10 * time.Second

func setupLogging(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, cfgPath)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("TickerLens failed")
	}
}

func openRecorder(path string) recorder.Recorder {
	if path == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(path)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}

// run serves until ctx is cancelled or the HTTP server fails. Every
// resource it opens is closed before it returns.
func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	setupLogging(cfg.Logging.Level, cfg.Logging.Pretty)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	log.Info().Str("config", cfgPath).Msg("TickerLens starting")

	catalog, err := content.Load(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	rec := openRecorder(cfg.Database.SQLitePath)
	defer func() {
		if err := rec.Close(); err != nil {
			log.Warn().Err(err).Msg("close recorder")
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := hub.New(cfg.Server.ToastHistory)

	srv, err := web.NewDashboardServer(web.Options{
		Latency:    cfg.Server.Latency,
		RatePerSec: cfg.Server.RatePerSec,
		Burst:      cfg.Server.Burst,
	}, catalog, rec, events)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	// Init Telegram notifier
	var sender scheduler.Sender
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.Proxy)
		sender = tn
	}

	sched := scheduler.NewScheduler(ctx, catalog, sender, events, rec, time.Duration(cfg.Database.RetentionDays)*24*time.Hour)
	if err := sched.RegisterAll(cfg.Schedule.DigestCron, cfg.Schedule.RetentionCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("http server: %w", err)
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutdown signal received, stopping")

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("TickerLens stopped")
	return nil
}
