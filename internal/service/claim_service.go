package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shinyyama/leaderboard-backend/internal/model"
	"github.com/shinyyama/leaderboard-backend/internal/repository"
	"github.com/shinyyama/leaderboard-backend/internal/reward"
)

// ClaimResult carries the points awarded by this call separately from the
// user's new cumulative total.
type ClaimResult struct {
	User          *model.User
	ClaimedPoints int
	Event         *model.ClaimEvent
}

// ClaimObserver is notified of claim outcomes, typically for metrics.
type ClaimObserver interface {
	ClaimSucceeded(points int)
	ClaimFailed(reason string)
}

type nopObserver struct{}

func (nopObserver) ClaimSucceeded(int) {}
func (nopObserver) ClaimFailed(string) {}

type ClaimService interface {
	Claim(ctx context.Context, userID string) (*ClaimResult, error)
	History(ctx context.Context) ([]model.ClaimHistoryEntry, error)
	UserHistory(ctx context.Context, userID string) ([]model.ClaimHistoryEntry, error)
}

type ClaimOption func(*claimService)

func WithClock(now func() time.Time) ClaimOption {
	return func(s *claimService) { s.now = now }
}

func WithObserver(o ClaimObserver) ClaimOption {
	return func(s *claimService) {
		if o != nil {
			s.observer = o
		}
	}
}

type claimService struct {
	claims   repository.ClaimRepository
	users    repository.UserRepository
	events   repository.ClaimEventRepository
	rewards  reward.Source
	now      func() time.Time
	observer ClaimObserver
}

func NewClaimService(claims repository.ClaimRepository, users repository.UserRepository, events repository.ClaimEventRepository, rewards reward.Source, opts ...ClaimOption) ClaimService {
	s := &claimService{
		claims:   claims,
		users:    users,
		events:   events,
		rewards:  rewards,
		now:      func() time.Time { return time.Now().UTC() },
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Claim awards a fresh random reward on every call; there is no idempotency key.
func (s *claimService) Claim(ctx context.Context, userID string) (*ClaimResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		s.observer.ClaimFailed("invalid")
		return nil, validationError("userId is required")
	}
	points := s.rewards.Points()
	if !reward.InRange(points) {
		s.observer.ClaimFailed("reward")
		return nil, fmt.Errorf("reward source returned %d", points)
	}
	user, ev, err := s.claims.Claim(ctx, userID, points, s.now())
	if err != nil {
		err = fromRepo("claim points", err)
		if errors.Is(err, ErrNotFound) {
			s.observer.ClaimFailed("not_found")
		} else {
			s.observer.ClaimFailed("storage")
		}
		return nil, err
	}
	s.observer.ClaimSucceeded(points)
	return &ClaimResult{User: user, ClaimedPoints: points, Event: ev}, nil
}

// History returns every claim, newest first.
func (s *claimService) History(ctx context.Context) ([]model.ClaimHistoryEntry, error) {
	list, err := s.events.ListWithUsers(ctx)
	if err != nil {
		return nil, fromRepo("list claim history", err)
	}
	return list, nil
}

// UserHistory returns one user's claims, newest first, each tagged with the
// user's current name.
func (s *claimService) UserHistory(ctx context.Context, userID string) ([]model.ClaimHistoryEntry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, validationError("user id is required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fromRepo("find user", err)
	}
	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return nil, fromRepo("list user claims", err)
	}
	list := make([]model.ClaimHistoryEntry, 0, len(events))
	for _, ev := range events {
		list = append(list, model.ClaimHistoryEntry{ClaimEvent: ev, UserName: &user.Name})
	}
	return list, nil
}
