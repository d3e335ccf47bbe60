package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/transport"
)

func (r *GormRepo) GetSupplierByCode(ctx context.Context, code string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *GormRepo) GetSupplierByName(ctx context.Context, name string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *GormRepo) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.DB.WithContext(ctx).Create(supplier).Error
}

func (r *GormRepo) GetSuppliersByFilter(ctx context.Context, f transport.SupplierFilter) ([]models.Supplier, error) {
	q := r.DB.WithContext(ctx).Model(&models.Supplier{})
	if f.Code != "" {
		q = q.Where("code = ?", f.Code)
	}
	if f.Name != "" {
		q = q.Where("name = ?", f.Name)
	}
	if f.Email != "" {
		q = q.Where("email = ?", f.Email)
	}
	if f.Phone != "" {
		q = q.Where("phone = ?", f.Phone)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var suppliers []models.Supplier
	if err := paginate(q.Order("code ASC"), f.Start, f.Num).Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *GormRepo) UpdateSupplierFields(ctx context.Context, code string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()
	res := r.DB.WithContext(ctx).
		Model(&models.Supplier{}).
		Where("code = ?", code).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteSupplier(ctx context.Context, code string) error {
	res := r.DB.WithContext(ctx).Where("code = ?", code).Delete(&models.Supplier{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
