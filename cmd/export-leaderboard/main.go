package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/storage"
	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/shinyyama/leaderboard-backend/internal/config"
	"github.com/shinyyama/leaderboard-backend/internal/db"
	"github.com/shinyyama/leaderboard-backend/internal/model"
	"github.com/shinyyama/leaderboard-backend/internal/repository"
	"github.com/shinyyama/leaderboard-backend/internal/service"
	"google.golang.org/api/option"
)

type exportConfig struct {
	StorageBucket   string `env:"STORAGE_BUCKET,required"`
	ObjectPrefix    string `env:"EXPORT_PREFIX" envDefault:"leaderboards"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	TimeoutSeconds  int    `env:"TIMEOUT_SECONDS" envDefault:"60"`
}

type snapshotEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	TotalPoints int64  `json:"totalPoints"`
}

type snapshot struct {
	GeneratedAt string          `json:"generatedAt"`
	Total       int             `json:"total"`
	Entries     []snapshotEntry `json:"entries"`
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("export failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	var ecfg exportConfig
	if err := env.Parse(&ecfg); err != nil {
		return fmt.Errorf("parse export env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(ecfg.TimeoutSeconds)*time.Second)
	defer cancel()

	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	board := service.NewLeaderboardService(repository.NewUserRepository(gdb))
	entries, err := board.Leaderboard(ctx)
	if err != nil {
		return fmt.Errorf("compute leaderboard: %w", err)
	}

	now := time.Now().UTC()
	data, err := buildSnapshot(entries, now)
	if err != nil {
		return err
	}

	var opts []option.ClientOption
	if ecfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(ecfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer client.Close()

	for _, path := range objectPaths(ecfg.ObjectPrefix, now) {
		if err := upload(ctx, client, ecfg.StorageBucket, path, data); err != nil {
			return fmt.Errorf("upload %s: %w", path, err)
		}
		log.Printf("uploaded gs://%s/%s", ecfg.StorageBucket, path)
	}
	log.Printf("exported %d leaderboard entries", len(entries))
	return nil
}

func buildSnapshot(entries []model.LeaderboardEntry, at time.Time) ([]byte, error) {
	s := snapshot{
		GeneratedAt: at.UTC().Format(time.RFC3339),
		Total:       len(entries),
		Entries:     make([]snapshotEntry, 0, len(entries)),
	}
	for _, e := range entries {
		s.Entries = append(s.Entries, snapshotEntry{
			Rank:        e.Rank,
			UserID:      e.UserID,
			Name:        e.Name,
			TotalPoints: e.TotalPoints,
		})
	}
	return json.MarshalIndent(s, "", "  ")
}

// snapshotLayout is ISO 8601 basic format; it sorts like RFC 3339 but has no
// colons, which gsutil and most shells treat specially.
const snapshotLayout = "20060102T150405Z"

// objectPaths returns the timestamped object and the rolling latest pointer.
func objectPaths(prefix string, at time.Time) []string {
	return []string{
		fmt.Sprintf("%s/%s.json", prefix, at.UTC().Format(snapshotLayout)),
		prefix + "/latest.json",
	}
}

func upload(ctx context.Context, client *storage.Client, bucketName, objectPath string, data []byte) error {
	w := client.Bucket(bucketName).Object(objectPath).NewWriter(ctx)
	w.ContentType = "application/json"
	w.CacheControl = "no-cache"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
