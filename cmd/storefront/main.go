package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erix3333/site-template/internal/blob"
	"github.com/erix3333/site-template/internal/catalog"
	"github.com/erix3333/site-template/internal/checkout"
	"github.com/erix3333/site-template/internal/config"
	"github.com/erix3333/site-template/internal/db"
	"github.com/erix3333/site-template/internal/events"
	"github.com/erix3333/site-template/internal/httpapi"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- blob store ---
	store, cleanupStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("blob store: %v", err)
	}
	defer cleanupStore()

	catalogSvc := catalog.NewService(store)

	// --- payment provider ---
	var provider checkout.Provider
	if cfg.StripeSecretKey != "" {
		provider = checkout.NewStripeProvider(cfg.StripeSecretKey)
	} else {
		logger.Printf("STRIPE_SECRET_KEY not set; checkout disabled")
	}
	builder := checkout.NewBuilder(catalogSvc, provider)

	// --- events (optional) ---
	var publisher httpapi.CatalogEventsPublisher
	if cfg.RabbitURL != "" {
		conn, err := events.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("rabbitmq connect: %v", err)
		}
		defer conn.Close()

		pub, err := events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("rabbitmq publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	// --- HTTP ---
	catalogH := httpapi.NewCatalogHandler(catalogSvc, publisher, logger)
	checkoutH := httpapi.NewCheckoutHandler(builder, logger)
	uploadH := httpapi.NewUploadHandler(store, logger)
	verifier := httpapi.StaticKeyVerifier{Key: cfg.AdminKey}

	router := httpapi.NewRouter(catalogH, checkoutH, uploadH, verifier)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Printf("http listening on %s (store backend: %s)", cfg.HTTPAddr, cfg.StoreBackend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("shutdown signal: %s", sig)
	case err := <-errCh:
		logger.Printf("fatal error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = httpServer.Shutdown(shutdownCtx)
	cancel()

	logger.Printf("shutdown complete")
}

func newStore(ctx context.Context, cfg config.Config, logger *log.Logger) (blob.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.StoreMemory:
		return blob.NewMemoryStore(), noop, nil

	case config.StoreFS:
		return blob.NewFSStore(cfg.DataDir), noop, nil

	case config.StoreRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		client := redis.NewClient(opts)
		return blob.NewRedisStore(client), func() { _ = client.Close() }, nil

	case config.StorePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		if cfg.RunMigrations {
			if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		return blob.NewPostgresStore(pool), pool.Close, nil

	default:
		return nil, nil, errors.New("unknown STORE_BACKEND: " + cfg.StoreBackend)
	}
}
