package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/0shq/ddc/internal/api"
	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/engine"
	"github.com/0shq/ddc/internal/feed"
	"github.com/0shq/ddc/internal/logging"
	"github.com/0shq/ddc/internal/settlement"
	"github.com/0shq/ddc/internal/storage"
	"github.com/0shq/ddc/internal/version"

	"github.com/gin-gonic/gin"
)

func main() {
	if os.Getenv(constants.EnvSessionSecret) == "" {
		logging.Warn("SESSION_SECRET not set; sessions will not survive a restart", nil, nil)
	}
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Path may be provided via DDC_CONFIG or defaults to ./ddc_config.json
	// in the current working directory.
	cfg := loadConfigOrExit(envOr(constants.EnvConfigPath, constants.DefaultConfigPath))
	db := openDatabaseOrExit(envOr(constants.EnvDBPath, constants.DefaultDBPath), cfg.NFTs)
	repo := storage.NewSQLiteRepository(db)

	// One shared generator serves battle rolls and mint rolls.
	rng := engine.NewLockedSource(time.Now().UnixNano())
	resolver := engine.NewResolver(rng)
	hub := feed.NewHub()

	handler := api.NewGameHandler(repo, resolver, rng, hub, api.Options{
		Rarities:     cfg.Rarities,
		HistoryLimit: cfg.HistoryLimit,
		SessionTTL:   cfg.SessionTTL,
	})
	router := api.NewRouter(handler, hub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settler := settlement.New(cfg.Settlement.Endpoint, cfg.Settlement.Timeout)
	sweeperDone := startSettlementSweeper(ctx, repo, settler, cfg.Settlement)

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.ServerAddress, "version": version.Get().String(), "settlement_endpoint": cfg.Settlement.Endpoint})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to start server", err, nil)
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down", nil)
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server shutdown failed", err, nil)
	}
	<-sweeperDone
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
