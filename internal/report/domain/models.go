package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidFilter = errors.New("invalid_filter")

// Filter selects the product subset the report runs over. Nil fields are
// not applied; bounds are inclusive.
type Filter struct {
	CategoryID *int64
	SupplierID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	MinStock   *int
	MaxStock   *int
}

// Row is one matching product with its reference names joined in.
type Row struct {
	ID           int64           `gorm:"column:id"`
	Name         string          `gorm:"column:name"`
	SKU          string          `gorm:"column:sku"`
	Price        decimal.Decimal `gorm:"column:price"`
	UnitsInStock int             `gorm:"column:units_in_stock"`
	ReorderLevel int             `gorm:"column:reorder_level"`
	CategoryName string          `gorm:"column:category_name"`
	SupplierName string          `gorm:"column:supplier_name"`
	LocationName string          `gorm:"column:location_name"`
}

type Repository interface {
	// Filter returns matching rows ordered by product name ascending.
	Filter(ctx context.Context, db *gorm.DB, filter Filter) ([]Row, error)
}

type Service interface {
	ProductReport(ctx context.Context, req Request) (*Result, error)
}

// Request carries raw query values; the service owns parsing.
type Request struct {
	CategoryID string `form:"category_id"`
	SupplierID string `form:"supplier_id"`
	MinPrice   string `form:"min_price"`
	MaxPrice   string `form:"max_price"`
	MinStock   string `form:"min_stock"`
	MaxStock   string `form:"max_stock"`
}

type ResultRow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Price        string `json:"price"`
	UnitsInStock int    `json:"units_in_stock"`
	ReorderLevel int    `json:"reorder_level"`
	CategoryName string `json:"category_name"`
	SupplierName string `json:"supplier_name"`
	LocationName string `json:"location_name"`
	BelowReorder bool   `json:"below_reorder"`
}

// Result is the filtered rows plus aggregates computed over exactly that
// row set. All aggregates are zero for an empty set.
type Result struct {
	Rows       []ResultRow `json:"rows"`
	AvgPrice   string      `json:"avg_price"`
	AvgStock   float64     `json:"avg_stock"`
	TotalValue string      `json:"total_value"`

	// Chart series derived from the same snapshot of rows.
	Labels []string  `json:"labels"`
	Prices []float64 `json:"prices"`
	Stocks []int     `json:"stocks"`
}
