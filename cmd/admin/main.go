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

	"github.com/me/jsonsettings/internal/client"
	"github.com/me/jsonsettings/internal/config"
	"github.com/me/jsonsettings/internal/logging"
	"github.com/me/jsonsettings/internal/ui"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML config file (default settings.yaml)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	apiURL := flag.String("api", "", "Settings API base URL (overrides config and SETTINGS_API_URL)")
	secure := flag.Bool("secure", false, "Mark cookies Secure (serve behind HTTPS)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Admin.Addr = *addr
	}
	if *apiURL != "" {
		cfg.Admin.APIURL = *apiURL
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)

	api := client.New(cfg.Admin.APIURL,
		client.WithLogger(logger),
		client.WithTimeout(cfg.Admin.Timeout),
	)
	web := ui.New(api, logger, ui.Config{
		PageSize:   cfg.Admin.PageSize,
		TimeLayout: cfg.Admin.TimeLayout,
		Secure:     *secure,
	})

	httpServer := &http.Server{
		Addr:              cfg.Admin.Addr,
		Handler:           web.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("admin ui starting", "addr", cfg.Admin.Addr, "api", api.BaseURL())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin ui failed", "error", err)
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
}
