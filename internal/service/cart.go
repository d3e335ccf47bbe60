package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/repo"
	"github.com/ndthang/minimart/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, username string) (*models.Cart, error) {
	return s.Repo.GetOrCreateCart(ctx, username)
}

// AddItem appends a line item, or bumps the quantity and refreshes the price
// when the product is already in the cart. The product must exist and have
// stock left.
func (s *CartService) AddItem(ctx context.Context, username string, req transport.AddCartItemRequest) (*models.Cart, error) {
	if req.ProductID == "" || req.ProductName == "" {
		return nil, fmt.Errorf("%w: product_id and product_name are required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := s.Repo.GetProductByCode(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product '%s' does not exist", ErrNotFound, req.ProductID)
		}
		return nil, err
	}
	if product.TotalQuantity <= 0 {
		return nil, fmt.Errorf("%w: product '%s' is out of stock", ErrValidation, product.Name)
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, username)
	if err != nil {
		return nil, err
	}

	items := cart.Items
	merged := false
	for i := range items {
		if items[i].ProductID == req.ProductID {
			items[i].Quantity += req.Quantity
			items[i].Price = req.Price
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{
			ProductID:   req.ProductID,
			ProductName: req.ProductName,
			Price:       req.Price,
			Quantity:    req.Quantity,
			ImageURL:    req.ImageURL,
		})
	}

	if err := s.Repo.ReplaceCartItems(ctx, cart, items); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItemQuantity overwrites a line's quantity; zero removes the line.
func (s *CartService) UpdateItemQuantity(ctx context.Context, username, productID string, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	}

	cart, err := s.Repo.GetCartByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart does not exist", ErrNotFound)
		}
		return nil, err
	}

	items := cart.Items
	found := false
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		found = true
		if quantity == 0 {
			items = append(items[:i], items[i+1:]...)
		} else {
			items[i].Quantity = quantity
		}
		break
	}
	if !found {
		return nil, fmt.Errorf("%w: product '%s' is not in the cart", ErrNotFound, productID)
	}

	if err := s.Repo.ReplaceCartItems(ctx, cart, items); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, username, productID string) (*models.Cart, error) {
	cart, err := s.Repo.GetCartByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart does not exist", ErrNotFound)
		}
		return nil, err
	}

	items := cart.Items
	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil, fmt.Errorf("%w: product '%s' is not in the cart", ErrNotFound, productID)
	}

	if err := s.Repo.ReplaceCartItems(ctx, cart, kept); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, username string) (*models.Cart, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.ReplaceCartItems(ctx, cart, nil); err != nil {
		return nil, err
	}
	return cart, nil
}
