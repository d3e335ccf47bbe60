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

type SupplierService struct {
	Repo *repo.GormRepo
}

func (s *SupplierService) ListSuppliers(ctx context.Context, f transport.SupplierFilter, role models.Role) ([]models.Supplier, error) {
	if role != models.RoleAdmin {
		f.Status = models.StatusActive
	}
	return s.Repo.GetSuppliersByFilter(ctx, f)
}

func (s *SupplierService) GetSupplier(ctx context.Context, code string) (*models.Supplier, error) {
	supplier, err := s.Repo.GetSupplierByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: supplier does not exist", ErrNotFound)
		}
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) CreateSupplier(ctx context.Context, req transport.CreateSupplierRequest) (*models.Supplier, error) {
	if req.Code == "" || req.Name == "" || req.Phone == "" || req.Email == "" || req.Address == "" {
		return nil, fmt.Errorf("%w: code, name, phone, email and address are required", ErrValidation)
	}
	if req.Status == "" {
		req.Status = models.StatusActive
	}
	if req.Status != models.StatusActive && req.Status != models.StatusInactive {
		return nil, fmt.Errorf("%w: status must be active or inactive", ErrValidation)
	}

	if _, err := s.Repo.GetSupplierByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("%w: supplier '%s' already exists", ErrConflict, req.Code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	supplier := &models.Supplier{
		Code:    req.Code,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Status:  req.Status,
	}
	if err := s.Repo.CreateSupplier(ctx, supplier); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: supplier '%s' already exists", ErrConflict, req.Code)
		}
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) PatchSupplier(ctx context.Context, code string, req transport.PatchSupplierRequest) (*models.Supplier, error) {
	if _, err := s.GetSupplier(ctx, code); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	if err := s.Repo.UpdateSupplierFields(ctx, code, fields); err != nil {
		return nil, err
	}
	return s.GetSupplier(ctx, code)
}

func (s *SupplierService) SetSupplierStatus(ctx context.Context, code, status string) (*models.Supplier, bool, error) {
	if status != models.StatusActive && status != models.StatusInactive {
		return nil, false, fmt.Errorf("%w: status must be active or inactive", ErrValidation)
	}

	supplier, err := s.GetSupplier(ctx, code)
	if err != nil {
		return nil, false, err
	}
	if supplier.Status == status {
		return supplier, false, nil
	}

	if err := s.Repo.UpdateSupplierFields(ctx, code, map[string]any{"status": status}); err != nil {
		return nil, false, err
	}

	supplier, err = s.GetSupplier(ctx, code)
	if err != nil {
		return nil, false, err
	}
	return supplier, true, nil
}

// DeleteSupplier refuses while the supplier is active or still referenced by
// any product.
func (s *SupplierService) DeleteSupplier(ctx context.Context, code string) (*models.Supplier, error) {
	supplier, err := s.Repo.GetSupplierByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: supplier '%s' does not exist", ErrValidation, code)
		}
		return nil, err
	}
	if supplier.Status == models.StatusActive {
		return nil, fmt.Errorf("%w: cannot delete an active supplier", ErrValidation)
	}

	total, err := s.Repo.CountProductsBySupplier(ctx, code)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		return nil, fmt.Errorf("%w: supplier still has %d associated products", ErrValidation, total)
	}

	if err := s.Repo.DeleteSupplier(ctx, code); err != nil {
		return nil, err
	}
	return supplier, nil
}
