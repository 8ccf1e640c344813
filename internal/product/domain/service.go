package domain

import (
	"context"
	"errors"
)

type Service interface {
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*DetailResponse, error)
	Create(ctx context.Context, req FormRequest) (*Response, error)
	Update(ctx context.Context, id string, req FormRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta int64) error
}

// FormRequest carries raw field values as submitted; the service owns all
// coercion and validation.
type FormRequest struct {
	Name         string `form:"name" json:"name"`
	SKU          string `form:"sku" json:"sku"`
	Price        string `form:"price" json:"price"`
	UnitsInStock string `form:"units_in_stock" json:"units_in_stock"`
	ReorderLevel string `form:"reorder_level" json:"reorder_level"`
	CreatedAt    string `form:"created_at" json:"created_at"`
	CategoryID   string `form:"category_id" json:"category_id"`
	SupplierID   string `form:"supplier_id" json:"supplier_id"`
	LocationID   string `form:"location_id" json:"location_id"`
}

type Response struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Price        string `json:"price"`
	UnitsInStock int    `json:"units_in_stock"`
	ReorderLevel int    `json:"reorder_level"`
	CreatedAt    string `json:"created_at"`
	CategoryID   string `json:"category_id"`
	SupplierID   string `json:"supplier_id"`
	LocationID   string `json:"location_id"`
}

type DetailResponse struct {
	Response
	CategoryName string `json:"category_name"`
	SupplierName string `json:"supplier_name"`
	LocationName string `json:"location_name"`
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidSKU          = errors.New("invalid_sku")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidStock        = errors.New("invalid_units_in_stock")
	ErrInvalidReorderLevel = errors.New("invalid_reorder_level")
	ErrInvalidDate         = errors.New("invalid_created_at")
	ErrInvalidReference    = errors.New("invalid_reference")
	ErrSKUTaken            = errors.New("sku_taken")
	ErrNotFound            = errors.New("not_found")
)
