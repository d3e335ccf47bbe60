package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ndthang/minimart/internal/hash"
	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/repo"
	"github.com/ndthang/minimart/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

// Register creates a plain user account. Role is never taken from the caller.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	if _, err := s.Repo.GetUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
		Status:       models.StatusActive,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username already exists", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed 1-hour access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
		}
		return "", nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	role, ok := models.ParseRole(string(user.Role))
	if !ok {
		return "", nil, fmt.Errorf("%w: account has an invalid role", ErrForbidden)
	}

	token, err := tokens.SignAccessToken(user.Username, role, s.JWTSecret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
