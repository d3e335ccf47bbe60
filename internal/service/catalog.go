package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ndthang/minimart/internal/logging"
	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/repo"
	"github.com/ndthang/minimart/internal/transport"
)

// ProductIndexer mirrors catalog writes into the search index.
// A nil indexer disables search synchronization.
type ProductIndexer interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	RemoveProduct(ctx context.Context, code string) error
}

type CatalogService struct {
	Repo  *repo.GormRepo
	Index ProductIndexer
}

// ListProducts resolves supplier name/code cross-references and applies the
// role gate: non-admin callers only ever see active products.
func (s *CatalogService) ListProducts(ctx context.Context, f transport.ProductFilter, role models.Role) ([]models.Product, error) {
	if f.SupplierName != "" && f.SupplierCode == "" {
		supplier, err := s.Repo.GetSupplierByName(ctx, f.SupplierName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: supplier does not exist", ErrNotFound)
			}
			return nil, err
		}
		f.SupplierCode = supplier.Code
	} else if f.SupplierCode != "" && f.SupplierName == "" {
		if _, err := s.Repo.GetSupplierByCode(ctx, f.SupplierCode); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: supplier does not exist", ErrNotFound)
			}
			return nil, err
		}
	}

	if role != models.RoleAdmin {
		f.Status = models.StatusActive
	}

	return s.Repo.GetProductsByFilter(ctx, f)
}

func (s *CatalogService) GetProduct(ctx context.Context, code string) (*models.Product, error) {
	product, err := s.Repo.GetProductByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product does not exist", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Code == "" || req.Name == "" || req.Category == "" || req.SupplierID == "" {
		return nil, fmt.Errorf("%w: code, name, category and supplier_id are required", ErrValidation)
	}
	if req.SellPrice < 0 || req.ImportPrice < 0 {
		return nil, fmt.Errorf("%w: prices must be >= 0", ErrValidation)
	}
	if req.TotalQuantity < 0 {
		return nil, fmt.Errorf("%w: total_quantity must be >= 0", ErrValidation)
	}
	if req.Status == "" {
		req.Status = models.StatusActive
	}
	if req.Status != models.StatusActive && req.Status != models.StatusInactive {
		return nil, fmt.Errorf("%w: status must be active or inactive", ErrValidation)
	}

	if _, err := s.Repo.GetSupplierByCode(ctx, req.SupplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: supplier '%s' does not exist", ErrValidation, req.SupplierID)
		}
		return nil, err
	}

	if _, err := s.Repo.GetProductByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("%w: product '%s' already exists", ErrConflict, req.Code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &models.Product{
		Code:          req.Code,
		Name:          req.Name,
		Category:      req.Category,
		SupplierID:    req.SupplierID,
		SellPrice:     req.SellPrice,
		ImportPrice:   req.ImportPrice,
		TotalQuantity: req.TotalQuantity,
		Status:        req.Status,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: product '%s' already exists", ErrConflict, req.Code)
		}
		return nil, err
	}

	s.reindex(ctx, product)
	return product, nil
}

// PatchProduct applies a partial update; absent fields stay untouched.
func (s *CatalogService) PatchProduct(ctx context.Context, code string, req transport.PatchProductRequest) (*models.Product, error) {
	if _, err := s.GetProduct(ctx, code); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		fields["name"] = *req.Name
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.SupplierID != nil {
		if _, err := s.Repo.GetSupplierByCode(ctx, *req.SupplierID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: supplier '%s' does not exist", ErrValidation, *req.SupplierID)
			}
			return nil, err
		}
		fields["supplier_id"] = *req.SupplierID
	}
	if req.SellPrice != nil {
		if *req.SellPrice < 0 {
			return nil, fmt.Errorf("%w: sell_price must be >= 0", ErrValidation)
		}
		fields["sell_price"] = *req.SellPrice
	}
	if req.ImportPrice != nil {
		if *req.ImportPrice < 0 {
			return nil, fmt.Errorf("%w: import_price must be >= 0", ErrValidation)
		}
		fields["import_price"] = *req.ImportPrice
	}
	if req.TotalQuantity != nil {
		if *req.TotalQuantity < 0 {
			return nil, fmt.Errorf("%w: total_quantity must be >= 0", ErrValidation)
		}
		fields["total_quantity"] = *req.TotalQuantity
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	if err := s.Repo.UpdateProductFields(ctx, code, fields); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, code)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, product)
	return product, nil
}

// SetProductStatus flips the soft status. Setting the current status again is
// not an error; the second return reports that nothing changed.
func (s *CatalogService) SetProductStatus(ctx context.Context, code, status string) (*models.Product, bool, error) {
	if status != models.StatusActive && status != models.StatusInactive {
		return nil, false, fmt.Errorf("%w: status must be active or inactive", ErrValidation)
	}

	product, err := s.GetProduct(ctx, code)
	if err != nil {
		return nil, false, err
	}
	if product.Status == status {
		return product, false, nil
	}

	if err := s.Repo.UpdateProductFields(ctx, code, map[string]any{"status": status}); err != nil {
		return nil, false, err
	}

	product, err = s.GetProduct(ctx, code)
	if err != nil {
		return nil, false, err
	}
	s.reindex(ctx, product)
	return product, true, nil
}

// DeleteProduct hard-deletes an already-inactive product.
func (s *CatalogService) DeleteProduct(ctx context.Context, code string) (*models.Product, error) {
	product, err := s.Repo.GetProductByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product '%s' does not exist", ErrValidation, code)
		}
		return nil, err
	}
	if product.Status == models.StatusActive {
		return nil, fmt.Errorf("%w: cannot delete an active product", ErrValidation)
	}

	if err := s.Repo.DeleteProduct(ctx, code); err != nil {
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.RemoveProduct(ctx, code); err != nil {
			logging.FromContext(ctx).Warn("search_deindex_failed", "code", code, "error", err)
		}
	}
	return product, nil
}

func (s *CatalogService) reindex(ctx context.Context, product *models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, product); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "code", product.Code, "error", err)
	}
}
