package repository

import (
	"context"

	"github.com/smallbiznis/stockroom/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (id, name, sku, price, units_in_stock, reorder_level, created_at, category_id, supplier_id, location_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.Name,
		product.SKU,
		product.Price,
		product.UnitsInStock,
		product.ReorderLevel,
		product.CreatedAt,
		product.CategoryID,
		product.SupplierID,
		product.LocationID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, sku, price, units_in_stock, reorder_level, created_at, category_id, supplier_id, location_id
		 FROM products WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindDetailByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Detail, error) {
	var d domain.Detail
	err := db.WithContext(ctx).Raw(
		`SELECT p.id, p.name, p.sku, p.price, p.units_in_stock, p.reorder_level, p.created_at,
		        p.category_id, p.supplier_id, p.location_id,
		        c.name AS category_name, s.name AS supplier_name, l.name AS location_name
		 FROM products p
		 JOIN categories c ON c.id = p.category_id
		 JOIN suppliers s ON s.id = p.supplier_id
		 JOIN locations l ON l.id = p.location_id
		 WHERE p.id = ?`,
		id,
	).Scan(&d).Error
	if err != nil {
		return nil, err
	}
	if d.ID == 0 {
		return nil, nil
	}
	return &d, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, sku, price, units_in_stock, reorder_level, created_at, category_id, supplier_id, location_id
		 FROM products ORDER BY created_at DESC, name ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET name = ?, sku = ?, price = ?, units_in_stock = ?, reorder_level = ?, created_at = ?,
		     category_id = ?, supplier_id = ?, location_id = ?
		 WHERE id = ?`,
		product.Name,
		product.SKU,
		product.Price,
		product.UnitsInStock,
		product.ReorderLevel,
		product.CreatedAt,
		product.CategoryID,
		product.SupplierID,
		product.LocationID,
		product.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	// Deleting an absent id affects zero rows and is not an error.
	return db.WithContext(ctx).Exec(`DELETE FROM products WHERE id = ?`, id).Error
}

// AdjustStock clamps at zero inside the statement itself. The CASE form is
// portable across postgres, mysql and sqlite, and keeps the read-modify-write
// inside one store-evaluated expression so concurrent adjustments to the same
// row cannot lose updates.
func (r *repo) AdjustStock(ctx context.Context, db *gorm.DB, id int64, delta int64) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE products
		 SET units_in_stock = CASE
		     WHEN units_in_stock + ? < 0 THEN 0
		     ELSE units_in_stock + ?
		 END
		 WHERE id = ?`,
		delta,
		delta,
		id,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
