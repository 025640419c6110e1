package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shinyyama/leaderboard-backend/internal/config"
	"github.com/shinyyama/leaderboard-backend/internal/reward"
	"github.com/shinyyama/leaderboard-backend/internal/server"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	// A bad DB config never heals, so fail here instead of retrying forever.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validate error: %v", err)
	}

	rewards := reward.NewSource()
	if cfg.RewardSeed != 0 {
		log.Printf("using seeded rewards (seed=%d)", cfg.RewardSeed)
		rewards = reward.NewSeededSource(cfg.RewardSeed)
	}

	srv := server.New(nil, server.Options{
		SHA:            cfg.GitSHA,
		BuildTime:      cfg.BuildTime,
		OriginSuffixes: cfg.CORSOriginSuffixes,
		Rewards:        rewards,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// Serve 503s until the database is reachable rather than failing startup.
	go func() {
		err := attachDB(ctx, openDB(cfg), func(conn *gorm.DB) {
			srv.SetDB(conn)
			log.Printf("database attached (driver=%s)", cfg.DBDriver)
		}, defaultBackoff)
		if err != nil {
			log.Printf("database never attached: %v", err)
		}
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	case <-ctx.Done():
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
