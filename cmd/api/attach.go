package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shinyyama/leaderboard-backend/internal/config"
	"github.com/shinyyama/leaderboard-backend/internal/db"
	"gorm.io/gorm"
)

type backoff struct {
	initial time.Duration
	max     time.Duration
}

var defaultBackoff = backoff{initial: time.Second, max: 30 * time.Second}

// attachDB calls open until it succeeds, then hands the connection to attach.
// The wait between attempts doubles up to b.max. It gives up only when ctx
// is done.
func attachDB(ctx context.Context, open func() (*gorm.DB, error), attach func(*gorm.DB), b backoff) error {
	wait := b.initial
	for attempt := 1; ; attempt++ {
		conn, err := open()
		if err == nil {
			attach(conn)
			return nil
		}
		log.Printf("database attempt %d failed: %v (retry in %s)", attempt, err, wait)
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait = min(wait*2, b.max)
	}
}

// openDB connects and migrates. A pool whose migration failed is closed so
// retries do not leak connections.
func openDB(cfg *config.Config) func() (*gorm.DB, error) {
	return func() (*gorm.DB, error) {
		conn, err := db.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		if err := db.Migrate(conn); err != nil {
			if sqlDB, derr := conn.DB(); derr == nil {
				_ = sqlDB.Close()
			}
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		return conn, nil
	}
}
