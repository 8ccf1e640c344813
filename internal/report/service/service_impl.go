package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/stockroom/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("report.service"),
		repo: p.Repo,
	}
}

func (s *Service) ProductReport(ctx context.Context, req domain.Request) (*domain.Result, error) {
	filter, err := parseFilter(req)
	if err != nil {
		return nil, err
	}

	// One scan; every aggregate below is computed from this snapshot so the
	// listed rows and the statistics can never disagree.
	rows, err := s.repo.Filter(ctx, s.db, *filter)
	if err != nil {
		return nil, err
	}

	result := &domain.Result{
		Rows:   make([]domain.ResultRow, 0, len(rows)),
		Labels: make([]string, 0, len(rows)),
		Prices: make([]float64, 0, len(rows)),
		Stocks: make([]int, 0, len(rows)),
	}

	priceSum := decimal.Zero
	totalValue := decimal.Zero
	stockSum := 0
	for _, row := range rows {
		result.Rows = append(result.Rows, domain.ResultRow{
			ID:           snowflake.ID(row.ID).String(),
			Name:         row.Name,
			SKU:          row.SKU,
			Price:        row.Price.StringFixed(2),
			UnitsInStock: row.UnitsInStock,
			ReorderLevel: row.ReorderLevel,
			CategoryName: row.CategoryName,
			SupplierName: row.SupplierName,
			LocationName: row.LocationName,
			BelowReorder: row.UnitsInStock <= row.ReorderLevel,
		})
		result.Labels = append(result.Labels, row.Name)
		result.Prices = append(result.Prices, row.Price.InexactFloat64())
		result.Stocks = append(result.Stocks, row.UnitsInStock)

		priceSum = priceSum.Add(row.Price)
		stockSum += row.UnitsInStock
		totalValue = totalValue.Add(row.Price.Mul(decimal.NewFromInt(int64(row.UnitsInStock))))
	}

	if n := len(rows); n > 0 {
		count := decimal.NewFromInt(int64(n))
		result.AvgPrice = priceSum.Div(count).Round(2).StringFixed(2)
		result.AvgStock = float64(stockSum) / float64(n)
	} else {
		result.AvgPrice = decimal.Zero.StringFixed(2)
		result.AvgStock = 0
	}
	result.TotalValue = totalValue.Round(2).StringFixed(2)

	return result, nil
}

func parseFilter(req domain.Request) (*domain.Filter, error) {
	filter := &domain.Filter{}

	categoryID, err := parseOptionalInt64(req.CategoryID)
	if err != nil {
		return nil, domain.ErrInvalidFilter
	}
	filter.CategoryID = categoryID

	supplierID, err := parseOptionalInt64(req.SupplierID)
	if err != nil {
		return nil, domain.ErrInvalidFilter
	}
	filter.SupplierID = supplierID

	filter.MinPrice, err = parseOptionalDecimal(req.MinPrice)
	if err != nil {
		return nil, domain.ErrInvalidFilter
	}
	filter.MaxPrice, err = parseOptionalDecimal(req.MaxPrice)
	if err != nil {
		return nil, domain.ErrInvalidFilter
	}

	filter.MinStock, err = parseOptionalInt(req.MinStock)
	if err != nil {
		return nil, domain.ErrInvalidFilter
	}
	filter.MaxStock, err = parseOptionalInt(req.MaxStock)
	if err != nil {
		return nil, domain.ErrInvalidFilter
	}

	return filter, nil
}

func parseOptionalInt64(value string) (*int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalDecimal(value string) (*decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
