// Package main - Entry point for the booking cost server
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"booking-cost/api"
	"booking-cost/core/booking"
	"booking-cost/internal/config"
	"booking-cost/internal/logging"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", config.DefaultPath(), "Config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	ratesPath := flag.String("rates", "", "HCL rate table (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *ratesPath != "" {
		cfg.Pricing.RatesFile = *ratesPath
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer logging.Sync()
	log := logging.Named("server")

	table, err := cfg.RateTable()
	if err != nil {
		return err
	}

	apiServer := api.NewServer(booking.NewCalculator(table), api.Options{
		Version:   version,
		Logger:    logging.Named("api"),
		RateLimit: cfg.Server.RateLimitRPS,
		Burst:     cfg.Server.RateLimitBurst,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))

	srv := apiServer.HTTPServer(cfg.Server.Addr,
		time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
		time.Duration(cfg.Server.WriteTimeoutSeconds)*time.Second,
	)
	srv.Handler = mux

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("version", version),
			zap.String("currency", table.Currency()),
			zap.Int("bands", table.Len()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
