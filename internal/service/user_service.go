package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/shinyyama/leaderboard-backend/internal/model"
	"github.com/shinyyama/leaderboard-backend/internal/repository"
)

const MaxNameLength = 64

type UserService interface {
	Create(ctx context.Context, name string) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Create does not check for duplicate names.
func (s *userService) Create(ctx context.Context, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("user name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, validationError("user name is too long")
	}
	user := &model.User{Name: name}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fromRepo("create user", err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, validationError("user id is required")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo("find user", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fromRepo("list users", err)
	}
	return users, nil
}
