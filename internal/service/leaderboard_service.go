package service

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/shinyyama/leaderboard-backend/internal/model"
	"github.com/shinyyama/leaderboard-backend/internal/repository"
)

type LeaderboardService interface {
	Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
	Podium(ctx context.Context, n int) ([]model.LeaderboardEntry, error)
}

type leaderboardService struct {
	users repository.UserRepository
}

func NewLeaderboardService(users repository.UserRepository) LeaderboardService {
	return &leaderboardService{users: users}
}

// Leaderboard ranks every user from a fresh read; nothing is cached between calls.
func (s *leaderboardService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fromRepo("list users", err)
	}
	return Rank(users), nil
}

func (s *leaderboardService) Podium(ctx context.Context, n int) ([]model.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, validationError("n must be positive")
	}
	entries, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	return entries[:min(n, len(entries))], nil
}

// Rank orders users by TotalPoints descending and numbers them by position.
// Equal totals are ordered by CreatedAt, then ID, and still get distinct
// consecutive ranks.
func Rank(users []model.User) []model.LeaderboardEntry {
	sorted := slices.Clone(users)
	slices.SortStableFunc(sorted, func(a, b model.User) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	entries := make([]model.LeaderboardEntry, len(sorted))
	for i, u := range sorted {
		entries[i] = model.LeaderboardEntry{
			UserID:      u.ID,
			Name:        u.Name,
			TotalPoints: u.TotalPoints,
			Rank:        i + 1,
		}
	}
	return entries
}
