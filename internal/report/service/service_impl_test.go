package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/stockroom/internal/report/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeReportRepo struct {
	rows       []domain.Row
	lastFilter domain.Filter
}

func (f *fakeReportRepo) Filter(ctx context.Context, db *gorm.DB, filter domain.Filter) ([]domain.Row, error) {
	f.lastFilter = filter
	return f.rows, nil
}

func newTestService(t *testing.T, repo domain.Repository) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	return New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repo,
	})
}

func reportRow(id int64, name, price string, units, reorder int) domain.Row {
	return domain.Row{
		ID:           id,
		Name:         name,
		SKU:          name,
		Price:        decimal.RequireFromString(price),
		UnitsInStock: units,
		ReorderLevel: reorder,
		CategoryName: "Electronics",
		SupplierName: "Acme Corp",
		LocationName: "Warehouse A",
	}
}

func TestProductReportAggregates(t *testing.T) {
	repo := &fakeReportRepo{rows: []domain.Row{
		reportRow(1, "Cable", "10.00", 5, 10),
		reportRow(2, "Keyboard", "20.00", 15, 10),
	}}
	svc := newTestService(t, repo)

	result, err := svc.ProductReport(context.Background(), domain.Request{})
	require.NoError(t, err)

	assert.Equal(t, "15.00", result.AvgPrice)
	assert.Equal(t, 10.0, result.AvgStock)
	// 10.00*5 + 20.00*15
	assert.Equal(t, "350.00", result.TotalValue)

	require.Len(t, result.Rows, 2)
	assert.True(t, result.Rows[0].BelowReorder)
	assert.False(t, result.Rows[1].BelowReorder)

	assert.Equal(t, []string{"Cable", "Keyboard"}, result.Labels)
	assert.Equal(t, []float64{10.0, 20.0}, result.Prices)
	assert.Equal(t, []int{5, 15}, result.Stocks)
}

func TestProductReportBelowReorderIncludesEqual(t *testing.T) {
	repo := &fakeReportRepo{rows: []domain.Row{
		reportRow(1, "Cable", "10.00", 10, 10),
	}}
	svc := newTestService(t, repo)

	result, err := svc.ProductReport(context.Background(), domain.Request{})
	require.NoError(t, err)
	assert.True(t, result.Rows[0].BelowReorder)
}

func TestProductReportEmpty(t *testing.T) {
	svc := newTestService(t, &fakeReportRepo{})

	result, err := svc.ProductReport(context.Background(), domain.Request{})
	require.NoError(t, err)

	assert.Empty(t, result.Rows)
	assert.Equal(t, "0.00", result.AvgPrice)
	assert.Equal(t, 0.0, result.AvgStock)
	assert.Equal(t, "0.00", result.TotalValue)
}

func TestProductReportFilterParsing(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestService(t, repo)

	_, err := svc.ProductReport(context.Background(), domain.Request{
		CategoryID: " 42 ",
		MinPrice:   "5.50",
		MaxStock:   "100",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.CategoryID)
	assert.EqualValues(t, 42, *repo.lastFilter.CategoryID)
	assert.Nil(t, repo.lastFilter.SupplierID)
	require.NotNil(t, repo.lastFilter.MinPrice)
	assert.True(t, repo.lastFilter.MinPrice.Equal(decimal.RequireFromString("5.50")))
	assert.Nil(t, repo.lastFilter.MaxPrice)
	assert.Nil(t, repo.lastFilter.MinStock)
	require.NotNil(t, repo.lastFilter.MaxStock)
	assert.Equal(t, 100, *repo.lastFilter.MaxStock)
}

func TestProductReportMalformedFilter(t *testing.T) {
	svc := newTestService(t, &fakeReportRepo{})

	tests := []domain.Request{
		{CategoryID: "abc"},
		{SupplierID: "1.5"},
		{MinPrice: "cheap"},
		{MaxPrice: "$10"},
		{MinStock: "few"},
		{MaxStock: "many"},
	}

	for _, req := range tests {
		_, err := svc.ProductReport(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	}
}
