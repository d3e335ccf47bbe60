package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/repo"
	"github.com/ndthang/minimart/internal/transport"
)

type BatchService struct {
	Repo *repo.GormRepo
}

func parseBatchDate(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be an RFC3339 timestamp", ErrValidation, field)
	}
	return t, nil
}

func (s *BatchService) ListBatches(ctx context.Context, f transport.BatchFilter) ([]models.Batch, error) {
	return s.Repo.GetBatchesByFilter(ctx, f)
}

func (s *BatchService) CreateBatch(ctx context.Context, req transport.CreateBatchRequest) (*models.Batch, error) {
	if req.BatchCode == "" || req.ProductID == "" {
		return nil, fmt.Errorf("%w: batch_code and product_id are required", ErrValidation)
	}
	if req.ImportPrice < 0 {
		return nil, fmt.Errorf("%w: import_price must be >= 0", ErrValidation)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	}
	if req.Status == "" {
		req.Status = models.BatchStatusAvailable
	}
	if req.Status != models.BatchStatusAvailable && req.Status != models.BatchStatusUnavailable {
		return nil, fmt.Errorf("%w: status must be available or unavailable", ErrValidation)
	}

	if _, err := s.Repo.GetProductByCode(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product '%s' does not exist", ErrValidation, req.ProductID)
		}
		return nil, err
	}

	if _, err := s.Repo.GetBatchByCode(ctx, req.BatchCode); err == nil {
		return nil, fmt.Errorf("%w: batch '%s' already exists", ErrConflict, req.BatchCode)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	batch := &models.Batch{
		BatchCode:   req.BatchCode,
		ProductID:   req.ProductID,
		ImportPrice: req.ImportPrice,
		Quantity:    req.Quantity,
		Status:      req.Status,
	}

	var err error
	if req.ManufactureDate != "" {
		if batch.ManufactureDate, err = parseBatchDate("manufacture_date", req.ManufactureDate); err != nil {
			return nil, err
		}
	}
	if req.ExpiryDate != "" {
		if batch.ExpiryDate, err = parseBatchDate("expiry_date", req.ExpiryDate); err != nil {
			return nil, err
		}
	}
	if req.ImportDate != "" {
		if batch.ImportDate, err = parseBatchDate("import_date", req.ImportDate); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.CreateBatch(ctx, batch); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: batch '%s' already exists", ErrConflict, req.BatchCode)
		}
		return nil, err
	}
	return batch, nil
}

func (s *BatchService) PatchBatch(ctx context.Context, batchCode string, req transport.PatchBatchRequest) (*models.Batch, error) {
	if _, err := s.Repo.GetBatchByCode(ctx, batchCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: batch does not exist", ErrNotFound)
		}
		return nil, err
	}

	fields := map[string]any{}
	if req.ManufactureDate != nil {
		t, err := parseBatchDate("manufacture_date", *req.ManufactureDate)
		if err != nil {
			return nil, err
		}
		fields["manufacture_date"] = t
	}
	if req.ExpiryDate != nil {
		t, err := parseBatchDate("expiry_date", *req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		fields["expiry_date"] = t
	}
	if req.ImportDate != nil {
		t, err := parseBatchDate("import_date", *req.ImportDate)
		if err != nil {
			return nil, err
		}
		fields["import_date"] = t
	}
	if req.ImportPrice != nil {
		if *req.ImportPrice < 0 {
			return nil, fmt.Errorf("%w: import_price must be >= 0", ErrValidation)
		}
		fields["import_price"] = *req.ImportPrice
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
		}
		fields["quantity"] = *req.Quantity
	}
	if req.Status != nil {
		if *req.Status != models.BatchStatusAvailable && *req.Status != models.BatchStatusUnavailable {
			return nil, fmt.Errorf("%w: status must be available or unavailable", ErrValidation)
		}
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	if err := s.Repo.UpdateBatchFields(ctx, batchCode, fields); err != nil {
		return nil, err
	}
	return s.Repo.GetBatchByCode(ctx, batchCode)
}

func (s *BatchService) DeleteBatch(ctx context.Context, batchCode string) (*models.Batch, error) {
	batch, err := s.Repo.GetBatchByCode(ctx, batchCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: batch '%s' does not exist", ErrValidation, batchCode)
		}
		return nil, err
	}
	if err := s.Repo.DeleteBatch(ctx, batchCode); err != nil {
		return nil, err
	}
	return batch, nil
}
