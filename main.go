package main

import (
	"context"
	"fmt"
	"os"

	"player-auction/internal/auction"
	"player-auction/internal/auth"
	"player-auction/internal/bidding"
	"player-auction/internal/config"
	"player-auction/internal/locks"
	"player-auction/internal/metrics"
	"player-auction/internal/registry"
	"player-auction/internal/repository"
	"player-auction/internal/server"
	"player-auction/utils"
)

func main() {
	cfg := config.Load()
	utils.SetLevel(cfg.LogLevel)

	store, health, err := buildStore(cfg)
	if err != nil {
		utils.Fatal("failed to initialize store", map[string]any{"error": err.Error()})
	}

	lockTable := locks.NewTable()

	auctionService := auction.NewService(store, lockTable)
	auctionService.SetLockWait(cfg.LockWait)

	biddingService := bidding.NewService(store, lockTable, cfg.BidRules())
	biddingService.SetLockBudget(cfg.LockWait, cfg.LockRetries)

	registryService := registry.NewService(store)

	tokens := auth.NewTokenProvider(cfg.JWTSecret, cfg.JWTExpiry)
	authService := auth.NewService(store, tokens)

	metrics.StartServer(cfg.MetricsPort, health)

	router := server.SetupRouter(authService, auctionService, biddingService, registryService)

	addr := ":" + cfg.HTTPPort
	utils.Info("starting auction server", map[string]any{"addr": addr, "env": cfg.Env})
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// buildStore selects Postgres when a DSN is configured, otherwise the
// in-memory store.
func buildStore(cfg config.Config) (repository.Store, metrics.HealthFunc, error) {
	if cfg.PostgresDSN == "" {
		return repository.NewMemoryRepo(), func(ctx context.Context) error { return nil }, nil
	}

	db, err := repository.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewPostgres(db), func(ctx context.Context) error { return db.PingContext(ctx) }, nil
}
