package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"billing-core/config"
	httpHandler "billing-core/internal/adapter/http/handler"
	fileStorage "billing-core/internal/adapter/storage/file"
	pgStorage "billing-core/internal/adapter/storage/postgres"
	redisStorage "billing-core/internal/adapter/storage/redis"
	"billing-core/internal/core/ports"
	"billing-core/internal/service"
	"billing-core/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting billing core")

	ctx := context.Background()

	// Policy-signing backend (KMS strategy selected at the boundary)
	signer, err := newSigner(cfg.KMS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize policy signer")
	}

	var (
		walletRepo     ports.WalletRepository
		ledgerRepo     ports.LedgerRepository
		subStore       ports.SubscriptionStore
		policyRepo     ports.PolicyRepository
		idempRepo      ports.IdempotencyRepository
		merkleRepo     ports.MerkleRepository
		transactor     ports.DBTransactor
		idempCache     ports.IdempotencyCache
		rateLimitStore *redisStorage.RateLimitStore
		healthCheckers []ports.HealthChecker
	)

	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		log.Info().Msg("PostgreSQL connected")

		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		walletRepo = pgStorage.NewWalletRepo(pool)
		ledgerRepo = pgStorage.NewLedgerRepo(pool)
		subStore = pgStorage.NewSubscriptionRepo(pool)
		policyRepo = pgStorage.NewPolicyRepo(pool)
		idempRepo = pgStorage.NewIdempotencyRepo(pool)
		merkleRepo = pgStorage.NewMerkleRepo(pool)
		transactor = pgStorage.NewTransactor(pool)
		idempCache = redisStorage.NewIdempotencyCache(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = []ports.HealthChecker{pgStorage.NewHealthCheck(pool), redisStorage.NewHealthCheck(rdb)}

	case "file":
		store, err := fileStorage.New(cfg.Storage.FilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open file store")
		}
		log.Info().Str("path", cfg.Storage.FilePath).Msg("File store loaded")

		walletRepo = store.Wallets()
		ledgerRepo = store.Ledger()
		subStore = store.Subscriptions()
		policyRepo = store.Policies()
		idempRepo = store.Idempotency()
		merkleRepo = store.MerkleRoots()
		transactor = store.Transactor()
		idempCache = fileStorage.NewLocalCache()
		healthCheckers = []ports.HealthChecker{store}

	default:
		log.Fatal().Str("driver", cfg.Storage.Driver).Msg("Unknown storage driver")
	}

	// Core services
	ledgerSvc := service.NewLedgerService(ledgerRepo)
	engines := service.NewEngineRegistry()
	policies := service.NewPolicyRegistry(policyRepo, signer, log)
	auditSvc := service.NewAuditService(ledgerRepo, merkleRepo, log)
	orchestrator := service.NewOrchestrator(
		ledgerSvc,
		walletRepo,
		subStore,
		policies,
		engines,
		idempRepo,
		idempCache,
		transactor,
		log,
	)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Orchestrator:   orchestrator,
		PolicyRegistry: policies,
		AuditSvc:       auditSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newSigner selects the KMS backend from configuration.
func newSigner(cfg config.KMSConfig) (ports.Signer, error) {
	switch cfg.Driver {
	case "hmac":
		return service.NewHMACSigner(cfg.HMACSecret)
	case "ed25519":
		return service.NewEd25519Signer(cfg.Ed25519Seed)
	default:
		return nil, fmt.Errorf("unknown kms driver %q", cfg.Driver)
	}
}
