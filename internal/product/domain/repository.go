package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindDetailByID(ctx context.Context, db *gorm.DB, id int64) (*Detail, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Product, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	// AdjustStock applies units_in_stock = max(units_in_stock + delta, 0)
	// as one statement evaluated by the store. Returns rows affected;
	// zero for an unknown id.
	AdjustStock(ctx context.Context, db *gorm.DB, id int64, delta int64) (int64, error)
}
