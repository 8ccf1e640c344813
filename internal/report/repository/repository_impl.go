package repository

import (
	"context"

	productdomain "github.com/smallbiznis/stockroom/internal/product/domain"
	"github.com/smallbiznis/stockroom/internal/report/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Filter(ctx context.Context, db *gorm.DB, filter domain.Filter) ([]domain.Row, error) {
	stmt := db.WithContext(ctx).
		Model(&productdomain.Product{}).
		Select(`products.id, products.name, products.sku, products.price,
			products.units_in_stock, products.reorder_level,
			c.name AS category_name, s.name AS supplier_name, l.name AS location_name`).
		Joins("JOIN categories c ON c.id = products.category_id").
		Joins("JOIN suppliers s ON s.id = products.supplier_id").
		Joins("JOIN locations l ON l.id = products.location_id")

	if filter.CategoryID != nil {
		stmt = stmt.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.SupplierID != nil {
		stmt = stmt.Where("products.supplier_id = ?", *filter.SupplierID)
	}
	if filter.MinPrice != nil {
		stmt = stmt.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		stmt = stmt.Where("products.price <= ?", *filter.MaxPrice)
	}
	if filter.MinStock != nil {
		stmt = stmt.Where("products.units_in_stock >= ?", *filter.MinStock)
	}
	if filter.MaxStock != nil {
		stmt = stmt.Where("products.units_in_stock <= ?", *filter.MaxStock)
	}

	var rows []domain.Row
	if err := stmt.Order("products.name ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
