package domain

import "context"

type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListSuppliers(ctx context.Context) ([]Supplier, error)
	ListLocations(ctx context.Context) ([]Location, error)
}
