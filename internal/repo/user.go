package repo

import (
	"context"

	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/transport"
)

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormRepo) GetUsersByFilter(ctx context.Context, f transport.UserFilter) ([]models.User, error) {
	q := r.DB.WithContext(ctx).Model(&models.User{})
	if f.Username != "" {
		q = q.Where("username = ?", f.Username)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var users []models.User
	if err := paginate(q.Order("username ASC"), f.Start, f.Num).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
