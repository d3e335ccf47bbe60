package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/transport"
)

func (r *GormRepo) GetBatchByCode(ctx context.Context, batchCode string) (*models.Batch, error) {
	var batch models.Batch
	if err := r.DB.WithContext(ctx).Where("batch_code = ?", batchCode).First(&batch).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *GormRepo) CreateBatch(ctx context.Context, batch *models.Batch) error {
	return r.DB.WithContext(ctx).Create(batch).Error
}

func (r *GormRepo) GetBatchesByFilter(ctx context.Context, f transport.BatchFilter) ([]models.Batch, error) {
	q := r.DB.WithContext(ctx).Model(&models.Batch{})
	if f.BatchCode != "" {
		q = q.Where("batch_code = ?", f.BatchCode)
	}
	if f.ProductID != "" {
		q = q.Where("product_id = ?", f.ProductID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var batches []models.Batch
	if err := paginate(q.Order("batch_code ASC"), f.Start, f.Num).Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *GormRepo) UpdateBatchFields(ctx context.Context, batchCode string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()
	res := r.DB.WithContext(ctx).
		Model(&models.Batch{}).
		Where("batch_code = ?", batchCode).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteBatch(ctx context.Context, batchCode string) error {
	res := r.DB.WithContext(ctx).Where("batch_code = ?", batchCode).Delete(&models.Batch{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
