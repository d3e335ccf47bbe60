package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ndthang/minimart/internal/models"
)

func (r *GormRepo) GetCartByUsername(ctx context.Context, username string) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("username = ?", username).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateCart lazily creates an empty cart on first access.
func (r *GormRepo) GetOrCreateCart(ctx context.Context, username string) (*models.Cart, error) {
	cart, err := r.GetCartByUsername(ctx, username)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := models.Cart{Username: username, Items: []models.CartItem{}}
	if err := r.DB.WithContext(ctx).Create(&fresh).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// ReplaceCartItems swaps the cart's line items wholesale and touches
// updated_at, all inside one transaction.
func (r *GormRepo) ReplaceCartItems(ctx context.Context, cart *models.Cart, items []models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].CartID = cart.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Cart{}).
			Where("id = ?", cart.ID).
			Update("updated_at", time.Now().UTC()).Error; err != nil {
			return err
		}
		cart.Items = items
		return nil
	})
}
