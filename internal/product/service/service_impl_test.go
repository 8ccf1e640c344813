package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/stockroom/internal/config"
	"github.com/smallbiznis/stockroom/internal/product/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	products map[int64]*domain.Product

	createErr   error
	lastCreated *domain.Product
	lastDeleted int64
	adjustCalls []int64
	adjustRows  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[int64]*domain.Product{}, adjustRows: 1}
}

func (f *fakeRepo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.lastCreated = product
	f.products[product.ID] = product
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	return f.products[id], nil
}

func (f *fakeRepo) FindDetailByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Detail, error) {
	p := f.products[id]
	if p == nil {
		return nil, nil
	}
	return &domain.Detail{
		Product:      *p,
		CategoryName: "Electronics",
		SupplierName: "Acme Corp",
		LocationName: "Warehouse A",
	}, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	items := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		items = append(items, *p)
	}
	return items, nil
}

func (f *fakeRepo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	f.lastDeleted = id
	delete(f.products, id)
	return nil
}

func (f *fakeRepo) AdjustStock(ctx context.Context, db *gorm.DB, id int64, delta int64) (int64, error) {
	f.adjustCalls = append(f.adjustCalls, delta)
	return f.adjustRows, nil
}

func newTestService(t *testing.T, repo domain.Repository, cfg config.InventoryConfig) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      repo,
		Inventory: config.NewStaticInventoryConfigHolder(cfg),
	})
}

func validForm() domain.FormRequest {
	return domain.FormRequest{
		Name:         "  USB-C Cable  ",
		SKU:          " USB-C-1M ",
		Price:        "9.99",
		UnitsInStock: "120",
		ReorderLevel: "20",
		CreatedAt:    "2024-03-01",
		CategoryID:   "1",
		SupplierID:   "1",
		LocationID:   "1",
	}
}

func TestCreateTrimsAndFormats(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo, config.DefaultInventoryConfig())

	resp, err := svc.Create(context.Background(), validForm())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "USB-C Cable", resp.Name)
	assert.Equal(t, "USB-C-1M", resp.SKU)
	assert.Equal(t, "9.99", resp.Price)
	assert.Equal(t, 120, resp.UnitsInStock)
	assert.Equal(t, 20, resp.ReorderLevel)
	assert.Equal(t, "2024-03-01", resp.CreatedAt)
	require.NotNil(t, repo.lastCreated)
	assert.NotZero(t, repo.lastCreated.ID)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.FormRequest)
		wantErr error
	}{
		{"blank name", func(r *domain.FormRequest) { r.Name = "   " }, domain.ErrInvalidName},
		{"blank sku", func(r *domain.FormRequest) { r.SKU = "" }, domain.ErrInvalidSKU},
		{"malformed price", func(r *domain.FormRequest) { r.Price = "abc" }, domain.ErrInvalidPrice},
		{"malformed stock", func(r *domain.FormRequest) { r.UnitsInStock = "lots" }, domain.ErrInvalidStock},
		{"malformed reorder", func(r *domain.FormRequest) { r.ReorderLevel = "x" }, domain.ErrInvalidReorderLevel},
		{"malformed date", func(r *domain.FormRequest) { r.CreatedAt = "03/01/2024" }, domain.ErrInvalidDate},
		{"missing category", func(r *domain.FormRequest) { r.CategoryID = "" }, domain.ErrInvalidReference},
		{"zero supplier", func(r *domain.FormRequest) { r.SupplierID = "0" }, domain.ErrInvalidReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, newFakeRepo(), config.DefaultInventoryConfig())

			req := validForm()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateLenientCoercion(t *testing.T) {
	lenient := config.InventoryConfig{StrictInput: false, DefaultReorderLevel: 7}

	repo := newFakeRepo()
	svc := newTestService(t, repo, lenient)

	req := validForm()
	req.Price = "not-a-number"
	req.UnitsInStock = "lots"
	req.ReorderLevel = ""
	req.CreatedAt = "garbage"

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "0.00", resp.Price)
	assert.Equal(t, 0, resp.UnitsInStock)
	assert.Equal(t, 7, resp.ReorderLevel)
	today := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, today, resp.CreatedAt)
}

func TestCreateNegativeValuesClampToZero(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo, config.DefaultInventoryConfig())

	req := validForm()
	req.Price = "-5.00"
	req.UnitsInStock = "-10"

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "0.00", resp.Price)
	assert.Equal(t, 0, resp.UnitsInStock)
}

func TestCreateDuplicateSKUMapsToConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = gorm.ErrDuplicatedKey
	svc := newTestService(t, repo, config.DefaultInventoryConfig())

	_, err := svc.Create(context.Background(), validForm())
	assert.ErrorIs(t, err, domain.ErrSKUTaken)
}

func TestGetUnknownID(t *testing.T) {
	svc := newTestService(t, newFakeRepo(), config.DefaultInventoryConfig())

	_, err := svc.Get(context.Background(), "12345")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUpdateKeepsStoredDateWhenAbsent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo, config.DefaultInventoryConfig())

	created, err := svc.Create(context.Background(), validForm())
	require.NoError(t, err)

	req := validForm()
	req.Name = "USB-C Cable 2m"
	req.CreatedAt = ""

	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "USB-C Cable 2m", updated.Name)
	assert.Equal(t, "2024-03-01", updated.CreatedAt)
}

func TestUpdateUnknownID(t *testing.T) {
	svc := newTestService(t, newFakeRepo(), config.DefaultInventoryConfig())

	_, err := svc.Update(context.Background(), "99999", validForm())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStockPassesDelta(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo, config.DefaultInventoryConfig())

	require.NoError(t, svc.AdjustStock(context.Background(), "424242", -7))
	require.Len(t, repo.adjustCalls, 1)
	assert.EqualValues(t, -7, repo.adjustCalls[0])

	// Zero matched rows is not an error; the redirect flow treats it as done.
	repo.adjustRows = 0
	assert.NoError(t, svc.AdjustStock(context.Background(), "424242", 1))
}

func TestDeleteParsesID(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo, config.DefaultInventoryConfig())

	require.NoError(t, svc.Delete(context.Background(), "777"))
	assert.EqualValues(t, 777, repo.lastDeleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), "bogus"), domain.ErrInvalidID)
}
