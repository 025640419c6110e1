package main

import (
	"context"
	"fmt"
	"log"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/shinyyama/leaderboard-backend/internal/config"
	"github.com/shinyyama/leaderboard-backend/internal/db"
	"github.com/shinyyama/leaderboard-backend/internal/repository"
	"github.com/shinyyama/leaderboard-backend/internal/reward"
	"github.com/shinyyama/leaderboard-backend/internal/service"
)

type seedConfig struct {
	RosterPath string `env:"SEED_ROSTER" envDefault:"cmd/seed/roster.yaml"`
	ForceSeed  bool   `env:"FORCE_SEED" envDefault:"false"`
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	var scfg seedConfig
	if err := env.Parse(&scfg); err != nil {
		return fmt.Errorf("parse seed env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	r, err := loadRoster(scfg.RosterPath)
	if err != nil {
		return err
	}

	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	userRepo := repository.NewUserRepository(gdb)
	cnt, err := userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if cnt > 0 && !scfg.ForceSeed {
		log.Printf("users already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	rewards := reward.NewSource()
	if cfg.RewardSeed != 0 {
		rewards = reward.NewSeededSource(cfg.RewardSeed)
	}
	users := service.NewUserService(userRepo)
	claims := service.NewClaimService(
		repository.NewClaimRepository(gdb),
		userRepo,
		repository.NewClaimEventRepository(gdb),
		rewards,
	)

	var totalClaims int
	for _, entry := range r.Users {
		u, err := users.Create(ctx, entry.Name)
		if err != nil {
			return fmt.Errorf("create %q: %w", entry.Name, err)
		}
		for i := 0; i < entry.Claims; i++ {
			if _, err := claims.Claim(ctx, u.ID); err != nil {
				return fmt.Errorf("claim for %q: %w", entry.Name, err)
			}
			totalClaims++
		}
	}

	log.Printf("seeded %d users with %d claims", len(r.Users), totalClaims)
	return nil
}
