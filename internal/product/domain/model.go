package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the inventory row. Price carries exactly two fractional digits;
// UnitsInStock and ReorderLevel never go negative. CreatedAt is a calendar
// date, not a timestamp.
type Product struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"type:varchar(200);not null"`
	SKU          string          `json:"sku" gorm:"column:sku;type:varchar(50);not null;uniqueIndex:ux_products_sku"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;index:ix_products_price"`
	UnitsInStock int             `json:"units_in_stock" gorm:"not null;default:0"`
	ReorderLevel int             `json:"reorder_level" gorm:"not null;default:0"`
	CreatedAt    time.Time       `json:"created_at" gorm:"type:date;not null"`

	CategoryID int64 `json:"category_id" gorm:"not null;index:ix_products_category"`
	SupplierID int64 `json:"supplier_id" gorm:"not null;index:ix_products_supplier"`
	LocationID int64 `json:"location_id" gorm:"not null;index:ix_products_location"`
}

func (Product) TableName() string { return "products" }

// Detail is a product joined with its reference names for display.
type Detail struct {
	Product
	CategoryName string `json:"category_name" gorm:"column:category_name"`
	SupplierName string `json:"supplier_name" gorm:"column:supplier_name"`
	LocationName string `json:"location_name" gorm:"column:location_name"`
}
