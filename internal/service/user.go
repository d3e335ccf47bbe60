package service

import (
	"context"

	"github.com/ndthang/minimart/internal/repo"
	"github.com/ndthang/minimart/internal/transport"
)

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) ListUsers(ctx context.Context, f transport.UserFilter) ([]transport.UserView, error) {
	users, err := s.Repo.GetUsersByFilter(ctx, f)
	if err != nil {
		return nil, err
	}

	views := make([]transport.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, transport.UserView{
			Username: u.Username,
			Role:     u.Role,
			Status:   u.Status,
		})
	}
	return views, nil
}
