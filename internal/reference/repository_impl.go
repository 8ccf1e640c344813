package reference

import (
	"context"
	"database/sql"

	"github.com/smallbiznis/stockroom/internal/reference/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, name FROM categories ORDER BY name`).
		Scan(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	type row struct {
		ID           int64          `gorm:"column:id"`
		Name         string         `gorm:"column:name"`
		ContactEmail sql.NullString `gorm:"column:contact_email"`
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, name, contact_email FROM suppliers ORDER BY name`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	suppliers := make([]domain.Supplier, 0, len(rows))
	for _, item := range rows {
		var email *string
		if item.ContactEmail.Valid {
			value := item.ContactEmail.String
			email = &value
		}
		suppliers = append(suppliers, domain.Supplier{
			ID:           item.ID,
			Name:         item.Name,
			ContactEmail: email,
		})
	}
	return suppliers, nil
}

func (r *repository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	type row struct {
		ID      int64          `gorm:"column:id"`
		Name    string         `gorm:"column:name"`
		Address sql.NullString `gorm:"column:address"`
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, name, address FROM locations ORDER BY name`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	locations := make([]domain.Location, 0, len(rows))
	for _, item := range rows {
		var address *string
		if item.Address.Valid {
			value := item.Address.String
			address = &value
		}
		locations = append(locations, domain.Location{
			ID:      item.ID,
			Name:    item.Name,
			Address: address,
		})
	}
	return locations, nil
}
