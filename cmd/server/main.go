package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/me/jsonsettings/internal/config"
	"github.com/me/jsonsettings/internal/logging"
	"github.com/me/jsonsettings/internal/server"
	"github.com/me/jsonsettings/internal/store"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML config file (default settings.yaml)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	driver := flag.String("db-driver", "", "Database driver: sqlite, postgres, memory (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (default ~/.jsonsettings/settings.db)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "Log format (text, json)")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	overrideString(&cfg.Server.Addr, *addr)
	overrideString(&cfg.Database.Driver, *driver)
	overrideString(&cfg.Database.Path, *dbPath)
	overrideString(&cfg.Logging.Level, *logLevel)
	overrideString(&cfg.Logging.Format, *logFormat)
	if *debug {
		cfg.Logging.Level = "debug"
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()
	logger.Info("database ready", "driver", cfg.Database.Driver)

	srv := server.New(cfg.Server, st, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           otelhttp.NewHandler(srv.Handler(), "settings-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
