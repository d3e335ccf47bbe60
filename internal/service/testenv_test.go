package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndthang/minimart/internal/config"
	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	return repo.New(db)
}

func seedSupplier(t *testing.T, r *repo.GormRepo, code string) *models.Supplier {
	t.Helper()
	s := &models.Supplier{
		Code:    code,
		Name:    "supplier " + code,
		Phone:   "0123456789",
		Email:   code + "@example.com",
		Address: "somewhere",
		Status:  models.StatusActive,
	}
	require.NoError(t, r.DB.Create(s).Error)
	return s
}

func seedProduct(t *testing.T, r *repo.GormRepo, code string, qty int, price float64) *models.Product {
	t.Helper()
	p := &models.Product{
		Code:          code,
		Name:          "product " + code,
		Category:      "misc",
		SupplierID:    "SUP-1",
		SellPrice:     price,
		ImportPrice:   price / 2,
		TotalQuantity: qty,
		Status:        models.StatusActive,
	}
	require.NoError(t, r.DB.Create(p).Error)
	return p
}
