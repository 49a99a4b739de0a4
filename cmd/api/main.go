package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"crowdpay/internal/adapter/repo"
	"crowdpay/internal/feed"
	"crowdpay/internal/http/handlers"
	httpapi "crowdpay/internal/http/httpapi"
	"crowdpay/internal/infra"
	"crowdpay/internal/infra/credentials"
	"crowdpay/internal/infra/geoip"
	appmw "crowdpay/internal/middleware"
	"crowdpay/internal/providers/blink"
	"crowdpay/internal/service"
	"crowdpay/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	// Blink API key: environment first, credentials store as fallback.
	blinkKey := strings.TrimSpace(cfg.BlinkAPIKey)
	if blinkKey == "" {
		stored, err := credentials.NewStore(runner).BlinkAPIKey(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to load blink api key from store")
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
		logger.Fatal().Err(err).Msg("failed to configure blink client")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	var lookup appmw.CountryLookup
	if resolver != nil {
		defer resolver.Close()
		lookup = resolver.CountryCode
	}

	storagePath := cfg.StoragePath
	if !filepath.IsAbs(storagePath) {
		if abs, err := filepath.Abs(storagePath); err == nil {
			storagePath = abs
		}
	}
	fileStore, err := storage.NewFileStore(storagePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}

	listener, err := feed.NewPGListener(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start change feed listener")
	}
	defer listener.Close()

	campaignRepo := repo.NewCampaignRepository(runner)
	contributionRepo := repo.NewContributionRepository(runner)
	profileRepo := repo.NewProfileRepository(runner)
	pendingRepo := repo.NewPendingInvoiceRepository(runner)

	app := &handlers.App{
		Logger:           logger,
		Campaigns:        service.NewCampaignService(campaignRepo, logger),
		Contributions:    service.NewContributionService(campaignRepo, contributionRepo, logger),
		Invoices:         service.NewInvoiceService(blinkClient, campaignRepo, pendingRepo, cfg.InvoiceTTL, logger),
		Wallets:          service.NewWalletService(blinkClient, profileRepo, cfg.PlatformDomain, logger),
		ContributionRepo: contributionRepo,
		Notifier:         listener,
		Files:            fileStore,
		FileBaseURL:      cfg.StorageBaseURL,
	}

	router := httpapi.NewRouter(app, cfg, logger, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
