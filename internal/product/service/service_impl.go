package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/stockroom/internal/config"
	"github.com/smallbiznis/stockroom/internal/product/domain"
	"github.com/smallbiznis/stockroom/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateOnlyLayout = "2006-01-02"

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Inventory *config.InventoryConfigHolder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	repo      domain.Repository
	genID     *snowflake.Node
	inventory *config.InventoryConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("product.service"),
		repo:      p.Repo,
		genID:     p.GenID,
		inventory: p.Inventory,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(&item))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.DetailResponse, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindDetailByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := domain.DetailResponse{
		Response:     toResponse(&item.Product),
		CategoryName: item.CategoryName,
		SupplierName: item.SupplierName,
		LocationName: item.LocationName,
	}
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.FormRequest) (*domain.Response, error) {
	cfg := s.inventory.Get()

	fields, err := s.coerce(req, cfg, nil)
	if err != nil {
		return nil, err
	}

	p := &domain.Product{
		ID:           s.genID.Generate().Int64(),
		Name:         fields.name,
		SKU:          fields.sku,
		Price:        fields.price,
		UnitsInStock: fields.unitsInStock,
		ReorderLevel: fields.reorderLevel,
		CreatedAt:    fields.createdAt,
		CategoryID:   fields.categoryID,
		SupplierID:   fields.supplierID,
		LocationID:   fields.locationID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, p)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSKUTaken
		}
		return nil, err
	}

	s.log.Info("product created", zap.Int64("product_id", p.ID), zap.String("sku", p.SKU))

	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.FormRequest) (*domain.Response, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	cfg := s.inventory.Get()
	fields, err := s.coerce(req, cfg, item)
	if err != nil {
		return nil, err
	}

	item.Name = fields.name
	item.SKU = fields.sku
	item.Price = fields.price
	item.UnitsInStock = fields.unitsInStock
	item.ReorderLevel = fields.reorderLevel
	item.CreatedAt = fields.createdAt
	item.CategoryID = fields.categoryID
	item.SupplierID = fields.supplierID
	item.LocationID = fields.locationID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Update(ctx, tx, item)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSKUTaken
		}
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, productID)
	})
}

func (s *Service) AdjustStock(ctx context.Context, id string, delta int64) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.repo.AdjustStock(ctx, tx, productID, delta)
		if err != nil {
			return err
		}
		if rows == 0 {
			s.log.Debug("stock adjustment matched no rows", zap.Int64("product_id", productID))
		}
		return nil
	})
}

// coercedFields holds form input after coercion and validation.
type coercedFields struct {
	name         string
	sku          string
	price        decimal.Decimal
	unitsInStock int
	reorderLevel int
	createdAt    time.Time
	categoryID   int64
	supplierID   int64
	locationID   int64
}

// coerce applies the form coercion rules: name/sku trimmed and required,
// price a non-negative 2-decimal amount, counts non-negative integers,
// created_at a calendar date. Absent values take defaults; malformed values
// are rejected when strict input is on, and silently defaulted otherwise.
// existing is non-nil for updates, where an absent date keeps the stored one.
func (s *Service) coerce(req domain.FormRequest, cfg config.InventoryConfig, existing *domain.Product) (*coercedFields, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, domain.ErrInvalidSKU
	}

	price, err := parsePrice(req.Price, cfg.StrictInput)
	if err != nil {
		return nil, err
	}

	units, err := parseCount(req.UnitsInStock, 0, cfg.StrictInput, domain.ErrInvalidStock)
	if err != nil {
		return nil, err
	}

	reorder, err := parseCount(req.ReorderLevel, cfg.DefaultReorderLevel, cfg.StrictInput, domain.ErrInvalidReorderLevel)
	if err != nil {
		return nil, err
	}

	defaultDate := today()
	if existing != nil {
		defaultDate = existing.CreatedAt
	}
	createdAt, err := parseDate(req.CreatedAt, defaultDate, cfg.StrictInput)
	if err != nil {
		return nil, err
	}

	categoryID, err := parseReference(req.CategoryID)
	if err != nil {
		return nil, err
	}
	supplierID, err := parseReference(req.SupplierID)
	if err != nil {
		return nil, err
	}
	locationID, err := parseReference(req.LocationID)
	if err != nil {
		return nil, err
	}

	return &coercedFields{
		name:         name,
		sku:          sku,
		price:        price,
		unitsInStock: units,
		reorderLevel: reorder,
		createdAt:    createdAt,
		categoryID:   categoryID,
		supplierID:   supplierID,
		locationID:   locationID,
	}, nil
}

func parseID(id string) (int64, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return parsed.Int64(), nil
}

func parsePrice(raw string, strict bool) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		if strict {
			return decimal.Zero, domain.ErrInvalidPrice
		}
		return decimal.Zero, nil
	}
	if parsed.IsNegative() {
		parsed = decimal.Zero
	}
	return parsed.Round(2), nil
}

func parseCount(raw string, def int, strict bool, invalid error) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		if strict {
			return 0, invalid
		}
		return def, nil
	}
	if parsed < 0 {
		return 0, nil
	}
	return parsed, nil
}

func parseDate(raw string, def time.Time, strict bool) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return def, nil
	}
	parsed, err := time.ParseInLocation(dateOnlyLayout, trimmed, time.UTC)
	if err != nil {
		if strict {
			return time.Time{}, domain.ErrInvalidDate
		}
		return def, nil
	}
	return parsed, nil
}

func parseReference(raw string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || parsed == 0 {
		return 0, domain.ErrInvalidReference
	}
	return parsed, nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func toResponse(p *domain.Product) domain.Response {
	return domain.Response{
		ID:           snowflake.ID(p.ID).String(),
		Name:         p.Name,
		SKU:          p.SKU,
		Price:        p.Price.StringFixed(2),
		UnitsInStock: p.UnitsInStock,
		ReorderLevel: p.ReorderLevel,
		CreatedAt:    p.CreatedAt.Format(dateOnlyLayout),
		CategoryID:   snowflake.ID(p.CategoryID).String(),
		SupplierID:   snowflake.ID(p.SupplierID).String(),
		LocationID:   snowflake.ID(p.LocationID).String(),
	}
}
