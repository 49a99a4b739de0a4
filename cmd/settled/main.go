package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"crowdpay/internal/adapter/repo"
	"crowdpay/internal/infra"
	"crowdpay/internal/infra/credentials"
	"crowdpay/internal/providers/blink"
	"crowdpay/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "settled").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("settled: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	blinkKey := strings.TrimSpace(cfg.BlinkAPIKey)
	if blinkKey == "" {
		stored, err := credentials.NewStore(runner).BlinkAPIKey(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("settled: failed to load blink api key from store")
		} else {
			blinkKey = stored
		}
	}
	blinkClient, err := blink.NewClient(blink.Options{
		APIKey:     blinkKey,
		BaseURL:    cfg.BlinkAPIURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("settled: failed to configure blink client")
	}

	settler := service.NewSettler(
		blinkClient,
		repo.NewPendingInvoiceRepository(runner),
		repo.NewContributionRepository(runner),
		logger,
	)

	logger.Info().Dur("interval", cfg.SettlePollInterval).Msg("settled: started")
	ticker := time.NewTicker(cfg.SettlePollInterval)
	defer ticker.Stop()

	for {
		if err := settler.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("settled: settlement pass failed")
		}
		select {
		case <-ctx.Done():
			logger.Info().Msg("settled: stopped")
			return
		case <-ticker.C:
		}
	}
}
