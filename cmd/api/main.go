package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"grocery-storefront/internal/auth"
	"grocery-storefront/internal/backend"
	"grocery-storefront/internal/config"
	"grocery-storefront/internal/db"
	"grocery-storefront/internal/httpserver"
	addressrepo "grocery-storefront/internal/repository/address"
	cartrepo "grocery-storefront/internal/repository/cart"
	orderrepo "grocery-storefront/internal/repository/order"
	cartsvc "grocery-storefront/internal/service/cart"
	catalogsvc "grocery-storefront/internal/service/catalog"
	checkoutsvc "grocery-storefront/internal/service/checkout"
	"grocery-storefront/internal/telemetry"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	verifier, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
	if err != nil {
		logger.Fatalf("init token verifier: %v", err)
	}

	metrics := telemetry.New()
	backendClient := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout, logger)

	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)
	addressRepo := addressrepo.NewPostgres(dbpool)

	cartStore := cartsvc.NewStore(cartRepo, logger)
	catalogService := catalogsvc.New(backendClient, logger)
	checkoutService := checkoutsvc.New(cartStore, backendClient, orderRepo, addressRepo, metrics, logger, checkoutsvc.Config{
		FallbackOnError: cfg.FallbackOnError,
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:     catalogService,
		Cart:        cartStore,
		Checkout:    checkoutService,
		Backend:     backendClient,
		Offline:     orderRepo,
		Addresses:   addressRepo,
		Verifier:    verifier,
		Metrics:     metrics,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
