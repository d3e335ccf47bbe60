package repo

import (
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// paginate applies the skip/limit window; negative values leave the query
// unbounded, matching filter defaults.
func paginate(q *gorm.DB, start, num int) *gorm.DB {
	if start >= 0 && num >= 0 {
		q = q.Offset(start).Limit(num)
	}
	return q
}
