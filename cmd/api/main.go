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

	"go.uber.org/zap"

	"github.com/eduaccess/api/internal/domain"
	"github.com/eduaccess/api/internal/geo"
	"github.com/eduaccess/api/internal/handlers"
	"github.com/eduaccess/api/internal/payments"
	"github.com/eduaccess/api/internal/platform/config"
	"github.com/eduaccess/api/internal/platform/observability"
	"github.com/eduaccess/api/internal/repositories/memory"
	"github.com/eduaccess/api/internal/repositories/seed"
	"github.com/eduaccess/api/internal/services"
)

func main() {
	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	catalogStore := memory.NewCatalogStore(seed.Catalog())
	regionStore := memory.NewRegionStore(seed.RegionProfiles())

	catalogService, err := services.NewCatalogService(services.CatalogServiceDeps{
		Catalog: catalogStore,
	})
	if err != nil {
		logger.Fatal("failed to initialise catalog service", zap.Error(err))
	}

	regionService, err := services.NewRegionService(services.RegionServiceDeps{
		Regions: regionStore,
		Default: seed.DefaultProfile(),
	})
	if err != nil {
		logger.Fatal("failed to initialise region service", zap.Error(err))
	}

	detector := geo.NewSimulatedDetector(seed.RegionIDs(), cfg.Location.SimulatedLatency)
	locationService, err := services.NewLocationService(services.LocationServiceDeps{
		Detector:       detector,
		Timeout:        cfg.Location.DetectTimeout,
		FallbackRegion: cfg.Location.FallbackRegion,
	})
	if err != nil {
		logger.Fatal("failed to initialise location service", zap.Error(err))
	}
	locationLogger := logger.Named("location")
	locationService.Subscribe(func(region string) {
		locationLogger.Info("active region changed", zap.String("region", region))
	})

	promptLogger := logger.Named("checkout")
	checkoutService, err := services.NewCheckoutService(services.CheckoutServiceDeps{
		Catalog: catalogStore,
		Link: payments.LinkBuilder{
			Scheme:          cfg.Payments.Scheme,
			PayeeAddress:    cfg.Payments.PayeeAddress,
			PayeeName:       cfg.Payments.PayeeName,
			Currency:        cfg.Payments.Currency,
			WebFallbackBase: cfg.Payments.WebFallbackBase,
		},
		ConfirmFallbackDelay: cfg.Payments.ConfirmFallbackDelay,
		Clock:                time.Now,
		OnPrompt: func(intent domain.PaymentIntent) {
			promptLogger.Info("confirmation prompt surfaced",
				zap.String("intent_id", intent.ID),
				zap.String("transaction_id", intent.TransactionID),
			)
		},
		Logger: promptLogger,
	})
	if err != nil {
		logger.Fatal("failed to initialise checkout service", zap.Error(err))
	}

	router := handlers.NewRouter(
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(logger),
			observability.RequestLoggerMiddleware(),
			observability.RecoveryMiddleware(logger),
		),
		handlers.WithCatalogRoutes(handlers.NewCatalogHandlers(catalogService).Routes),
		handlers.WithRegionRoutes(handlers.NewRegionHandlers(regionService).Routes),
		handlers.WithLocationRoutes(handlers.NewLocationHandlers(locationService, regionService).Routes),
		handlers.WithCheckoutRoutes(handlers.NewCheckoutHandlers(checkoutService).Routes),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("eduaccess api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
