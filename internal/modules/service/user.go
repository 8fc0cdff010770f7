package service

import (
	"context"

	"github.com/encadra/encadra/internal/modules/model"
	"github.com/encadra/encadra/internal/modules/repo"
)

type UserService interface {
	List(ctx context.Context) ([]model.PublicUser, error)
}

type userService struct{ users repo.UserRepo }

func NewUserService(users repo.UserRepo) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}
