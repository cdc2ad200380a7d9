package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/codearena/internal/adapters/api"
	"github.com/okian/codearena/internal/adapters/console"
	"github.com/okian/codearena/internal/adapters/store"
	"github.com/okian/codearena/internal/app"
	"github.com/okian/codearena/internal/config"
	"github.com/okian/codearena/internal/domain/editor"
	"github.com/okian/codearena/pkg/logger"
	"github.com/okian/codearena/pkg/metrics"
)

// Metrics server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return errors.New("failed to load config: " + err.Error())
	}

	if err := initLogging(cfg); err != nil {
		return errors.New("failed to initialize logging: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.MetricsAddr != "" {
		srv := newMetricsServer(cfg.MetricsAddr)
		go func() {
			log.Info(ctx, "starting metrics server", logger.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(ctx, "metrics server failed", logger.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error(ctx, "metrics server shutdown failed", logger.Error(err))
			}
		}()
	}

	prefs, err := store.Open(ctx, cfg.StatePath, store.WithLogger(logger.Named("store")))
	if err != nil {
		return errors.New("failed to open state: " + err.Error())
	}

	client := api.New(cfg.BaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger.Named("api")),
	)

	host := editor.NewHost(editor.WithLintDelay(cfg.LintDelay()))
	defer host.Close()

	view := console.New(os.Stdout, console.WithLogger(logger.Named("console")))
	ctrl := app.New(client, prefs, host, app.WithLogger(logger.Named("app")))
	ctrl.Register(view)

	log.Info(ctx, "client starting", logger.String("base_url", client.BaseURL()))
	ctrl.Start(ctx)

	shell := console.NewShell(view, host,
		console.WithHistoryFile(cfg.HistoryFile),
		console.WithShellLogger(logger.Named("shell")),
	)
	if err := shell.Run(ctx); err != nil {
		return err
	}

	log.Info(ctx, "client stopped")
	return nil
}

// initLogging sends logs to the configured file, or stderr when none is set.
func initLogging(cfg *config.Config) error {
	if cfg.LogFile != "" {
		return logger.InitFile(cfg.LogFile)
	}
	return logger.Init()
}

func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
