package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	productdomain "github.com/smallbiznis/stockroom/internal/product/domain"
	referencedomain "github.com/smallbiznis/stockroom/internal/reference/domain"
	"gorm.io/gorm"
)

// EnsureStarterInventory seeds the reference tables and a few sample
// products. Each table is touched only when empty, so invoking this on every
// start never duplicates rows. Reference rows are committed before products
// so the product foreign keys always resolve.
func EnsureStarterInventory(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ensureReferenceTablesTx(ctx, tx, node)
	}); err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ensureStarterProductsTx(ctx, tx, node)
	})
}

func ensureReferenceTablesTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&referencedomain.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		categories := []referencedomain.Category{
			{ID: node.Generate().Int64(), Name: "Electronics"},
			{ID: node.Generate().Int64(), Name: "Office"},
			{ID: node.Generate().Int64(), Name: "Home"},
		}
		if err := tx.WithContext(ctx).Create(&categories).Error; err != nil {
			return err
		}
	}

	if err := tx.WithContext(ctx).Model(&referencedomain.Supplier{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		suppliers := []referencedomain.Supplier{
			{ID: node.Generate().Int64(), Name: "Acme Corp", ContactEmail: strPtr("sales@acme.example")},
			{ID: node.Generate().Int64(), Name: "Globex", ContactEmail: strPtr("contact@globex.example")},
		}
		if err := tx.WithContext(ctx).Create(&suppliers).Error; err != nil {
			return err
		}
	}

	if err := tx.WithContext(ctx).Model(&referencedomain.Location{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		locations := []referencedomain.Location{
			{ID: node.Generate().Int64(), Name: "Warehouse A", Address: strPtr("100 Industrial Way")},
			{ID: node.Generate().Int64(), Name: "Store 1", Address: strPtr("200 Main St")},
		}
		if err := tx.WithContext(ctx).Create(&locations).Error; err != nil {
			return err
		}
	}

	return nil
}

func ensureStarterProductsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&productdomain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count != 0 {
		return nil
	}

	electronics, err := categoryByName(ctx, tx, "Electronics")
	if err != nil {
		return err
	}
	office, err := categoryByName(ctx, tx, "Office")
	if err != nil {
		return err
	}
	acme, err := supplierByName(ctx, tx, "Acme Corp")
	if err != nil {
		return err
	}
	globex, err := supplierByName(ctx, tx, "Globex")
	if err != nil {
		return err
	}
	warehouse, err := locationByName(ctx, tx, "Warehouse A")
	if err != nil {
		return err
	}
	store, err := locationByName(ctx, tx, "Store 1")
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	products := []productdomain.Product{
		{
			ID:           node.Generate().Int64(),
			Name:         "USB-C Cable",
			SKU:          "USB-C-1M",
			Price:        decimal.RequireFromString("9.99"),
			UnitsInStock: 120,
			ReorderLevel: 20,
			CreatedAt:    today,
			CategoryID:   electronics.ID,
			SupplierID:   acme.ID,
			LocationID:   warehouse.ID,
		},
		{
			ID:           node.Generate().Int64(),
			Name:         "Mechanical Keyboard",
			SKU:          "KEY-MECH-87",
			Price:        decimal.RequireFromString("79.99"),
			UnitsInStock: 25,
			ReorderLevel: 5,
			CreatedAt:    today,
			CategoryID:   electronics.ID,
			SupplierID:   globex.ID,
			LocationID:   store.ID,
		},
		{
			ID:           node.Generate().Int64(),
			Name:         "Printer Paper A4",
			SKU:          "PAPER-A4-500",
			Price:        decimal.RequireFromString("6.49"),
			UnitsInStock: 300,
			ReorderLevel: 50,
			CreatedAt:    today,
			CategoryID:   office.ID,
			SupplierID:   acme.ID,
			LocationID:   warehouse.ID,
		},
	}

	return tx.WithContext(ctx).Create(&products).Error
}

func categoryByName(ctx context.Context, tx *gorm.DB, name string) (*referencedomain.Category, error) {
	var category referencedomain.Category
	if err := tx.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, fmt.Errorf("seed category %q: %w", name, err)
	}
	return &category, nil
}

func supplierByName(ctx context.Context, tx *gorm.DB, name string) (*referencedomain.Supplier, error) {
	var supplier referencedomain.Supplier
	if err := tx.WithContext(ctx).Where("name = ?", name).First(&supplier).Error; err != nil {
		return nil, fmt.Errorf("seed supplier %q: %w", name, err)
	}
	return &supplier, nil
}

func locationByName(ctx context.Context, tx *gorm.DB, name string) (*referencedomain.Location, error) {
	var location referencedomain.Location
	if err := tx.WithContext(ctx).Where("name = ?", name).First(&location).Error; err != nil {
		return nil, fmt.Errorf("seed location %q: %w", name, err)
	}
	return &location, nil
}

func strPtr(value string) *string { return &value }
