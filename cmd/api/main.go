package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"atelier-storefront/internal/catalog"
	"atelier-storefront/internal/config"
	"atelier-storefront/internal/db"
	"atelier-storefront/internal/httpserver"
	"atelier-storefront/internal/payment"
	"atelier-storefront/internal/repository/session"
	authsvc "atelier-storefront/internal/service/auth"
	cartsvc "atelier-storefront/internal/service/cart"
	checkoutsvc "atelier-storefront/internal/service/checkout"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	sessionRepo, cleanup, err := buildSessionRepo(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("init session store: %v", err)
	}
	defer cleanup()

	cat := catalog.NewDefault()
	cartService := cartsvc.New(sessionRepo, cat, logger)
	authService, err := authsvc.New(sessionRepo, logger)
	if err != nil {
		logger.Fatalf("init auth service: %v", err)
	}

	var processor payment.Processor
	if cfg.PaymentURL != "" {
		logger.Printf("charging through processor at %s", cfg.PaymentURL)
		processor = payment.NewClient(cfg.PaymentURL)
	} else {
		processor = payment.NewSimulator(cfg.PaymentDelay)
	}
	checkoutService := checkoutsvc.New(cartService, authService, processor, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Catalog:     cat,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		AuthSvc:     authService,
		SessionRepo: sessionRepo,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// buildSessionRepo picks the session store backend and returns a cleanup for
// whatever connection it opened.
func buildSessionRepo(ctx context.Context, cfg config.Config, logger *log.Logger) (session.Repository, func(), error) {
	noop := func() {}
	switch cfg.SessionBackend {
	case config.BackendMemory:
		logger.Printf("session store: in-memory")
		return session.NewMemory(), noop, nil
	case config.BackendFile:
		logger.Printf("session store: files under %s", cfg.SessionFileDir)
		repo, err := session.NewFile(cfg.SessionFileDir)
		return repo, noop, err
	case config.BackendRedis:
		logger.Printf("session store: redis at %s", cfg.RedisAddr)
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, noop, err
		}
		return session.NewRedis(client, cfg.SessionTTL), func() { _ = client.Close() }, nil
	case config.BackendPostgres:
		logger.Printf("session store: postgres")
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, noop, err
		}
		return session.NewPostgres(pool), pool.Close, nil
	default:
		return nil, noop, errors.New("unknown SESSION_BACKEND " + cfg.SessionBackend)
	}
}
