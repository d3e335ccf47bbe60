package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/transport"
)

func (r *GormRepo) GetProductByCode(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

// GetProductsByFilter applies the typed filter; the public field names map to
// storage columns here (product_name -> name, product_code -> code).
func (r *GormRepo) GetProductsByFilter(ctx context.Context, f transport.ProductFilter) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if f.Name != "" {
		q = q.Where("name = ?", f.Name)
	}
	if f.Code != "" {
		q = q.Where("code = ?", f.Code)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.SupplierCode != "" {
		q = q.Where("supplier_id = ?", f.SupplierCode)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var products []models.Product
	if err := paginate(q.Order("code ASC"), f.Start, f.Num).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) CountProductsBySupplier(ctx context.Context, supplierCode string) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("supplier_id = ?", supplierCode).
		Count(&total).Error
	return total, err
}

// UpdateProductFields applies a partial update keyed by product code.
func (r *GormRepo) UpdateProductFields(ctx context.Context, code string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
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

func (r *GormRepo) DeleteProduct(ctx context.Context, code string) error {
	res := r.DB.WithContext(ctx).Where("code = ?", code).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecreaseProductQuantity performs one conditional decrement. The guard keeps
// total_quantity from going negative; a raced-away decrement surfaces as
// ErrRecordNotFound and the caller decides what to do with it.
func (r *GormRepo) DecreaseProductQuantity(ctx context.Context, code string, quantity int) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("code = ? AND total_quantity >= ?", code, quantity).
		UpdateColumn("total_quantity", gorm.Expr("total_quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
