package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/stockroom/internal/config"
	productdomain "github.com/smallbiznis/stockroom/internal/product/domain"
	referencedomain "github.com/smallbiznis/stockroom/internal/reference/domain"
	reportdomain "github.com/smallbiznis/stockroom/internal/report/domain"
)

type fakeProductService struct {
	listResp []productdomain.Response
	getResp  *productdomain.DetailResponse
	getErr   error

	createErr error
	createReq *productdomain.FormRequest

	updateErr error
	updateID  string

	deleteErr error
	deletedID string

	adjustErr   error
	adjustID    string
	adjustDelta int64
}

func (f *fakeProductService) List(ctx context.Context) ([]productdomain.Response, error) {
	return f.listResp, nil
}

func (f *fakeProductService) Get(ctx context.Context, id string) (*productdomain.DetailResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResp, nil
}

func (f *fakeProductService) Create(ctx context.Context, req productdomain.FormRequest) (*productdomain.Response, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createReq = &req
	return &productdomain.Response{ID: "1"}, nil
}

func (f *fakeProductService) Update(ctx context.Context, id string, req productdomain.FormRequest) (*productdomain.Response, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updateID = id
	return &productdomain.Response{ID: id}, nil
}

func (f *fakeProductService) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

func (f *fakeProductService) AdjustStock(ctx context.Context, id string, delta int64) error {
	if f.adjustErr != nil {
		return f.adjustErr
	}
	f.adjustID = id
	f.adjustDelta = delta
	return nil
}

type fakeReportService struct {
	result  *reportdomain.Result
	err     error
	lastReq reportdomain.Request
}

func (f *fakeReportService) ProductReport(ctx context.Context, req reportdomain.Request) (*reportdomain.Result, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeReferenceRepo struct{}

func (f *fakeReferenceRepo) ListCategories(ctx context.Context) ([]referencedomain.Category, error) {
	return []referencedomain.Category{{ID: 1, Name: "Electronics"}}, nil
}

func (f *fakeReferenceRepo) ListSuppliers(ctx context.Context) ([]referencedomain.Supplier, error) {
	return []referencedomain.Supplier{{ID: 1, Name: "Acme Corp"}}, nil
}

func (f *fakeReferenceRepo) ListLocations(ctx context.Context) ([]referencedomain.Location, error) {
	return []referencedomain.Location{{ID: 1, Name: "Warehouse A"}}, nil
}

func newTestServer(productSvc productdomain.Service, reportSvc reportdomain.Service) *Server {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine:     engine,
		cfg:        config.Config{AppName: "stockroom", AppVersion: "test"},
		productSvc: productSvc,
		reportSvc:  reportSvc,
		refrepo:    &fakeReferenceRepo{},
	}
	srv.registerRoutes()
	return srv
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	srv.engine.ServeHTTP(resp, req)
	return resp
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	srv.engine.ServeHTTP(resp, req)
	return resp
}

func TestCreateProductRedirects(t *testing.T) {
	svc := &fakeProductService{}
	srv := newTestServer(svc, &fakeReportService{})

	form := url.Values{}
	form.Set("name", "USB-C Cable")
	form.Set("sku", "USB-C-1M")
	form.Set("price", "9.99")
	form.Set("category_id", "1")
	form.Set("supplier_id", "1")
	form.Set("location_id", "1")

	resp := postForm(srv, "/products", form)

	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", resp.Code)
	}
	if got := resp.Header().Get("Location"); got != "/products" {
		t.Fatalf("expected redirect to /products, got %q", got)
	}
	if svc.createReq == nil {
		t.Fatal("expected create to be called")
	}
	if svc.createReq.Name != "USB-C Cable" || svc.createReq.SKU != "USB-C-1M" {
		t.Fatalf("unexpected bound form: %+v", svc.createReq)
	}
}

func TestCreateProductValidationError(t *testing.T) {
	svc := &fakeProductService{createErr: productdomain.ErrInvalidName}
	srv := newTestServer(svc, &fakeReportService{})

	resp := postForm(srv, "/products", url.Values{})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var body errorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error.Type != "validation_error" {
		t.Fatalf("expected validation_error, got %q", body.Error.Type)
	}
	if len(body.Error.Errors) != 1 || body.Error.Errors[0].Field != "name" {
		t.Fatalf("unexpected validation details: %+v", body.Error.Errors)
	}
}

func TestCreateProductDuplicateSKUConflicts(t *testing.T) {
	svc := &fakeProductService{createErr: productdomain.ErrSKUTaken}
	srv := newTestServer(svc, &fakeReportService{})

	resp := postForm(srv, "/products", url.Values{})

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestEditUnknownProductReturns404(t *testing.T) {
	svc := &fakeProductService{getErr: productdomain.ErrNotFound}
	srv := newTestServer(svc, &fakeReportService{})

	resp := get(srv, "/products/12345/edit")

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestEditProductIncludesReferenceLists(t *testing.T) {
	svc := &fakeProductService{getResp: &productdomain.DetailResponse{
		Response: productdomain.Response{ID: "12345", Name: "Cable"},
	}}
	srv := newTestServer(svc, &fakeReportService{})

	resp := get(srv, "/products/12345/edit")

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, key := range []string{"product", "categories", "suppliers", "locations"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("expected %q in response body", key)
		}
	}
}

func TestDeleteProductRedirects(t *testing.T) {
	svc := &fakeProductService{}
	srv := newTestServer(svc, &fakeReportService{})

	resp := postForm(srv, "/products/777/delete", url.Values{})

	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", resp.Code)
	}
	if svc.deletedID != "777" {
		t.Fatalf("expected delete of 777, got %q", svc.deletedID)
	}
}

func TestAdjustStock(t *testing.T) {
	svc := &fakeProductService{}
	srv := newTestServer(svc, &fakeReportService{})

	form := url.Values{}
	form.Set("inc", "-5")
	resp := postForm(srv, "/products/42/txn-adjust", form)

	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", resp.Code)
	}
	if svc.adjustID != "42" || svc.adjustDelta != -5 {
		t.Fatalf("unexpected adjust call: id=%q delta=%d", svc.adjustID, svc.adjustDelta)
	}
}

func TestAdjustStockRejectsMalformedInc(t *testing.T) {
	svc := &fakeProductService{}
	srv := newTestServer(svc, &fakeReportService{})

	for _, inc := range []string{"", "abc", "1.5"} {
		form := url.Values{}
		if inc != "" {
			form.Set("inc", inc)
		}
		resp := postForm(srv, "/products/42/txn-adjust", form)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("inc=%q: expected status 400, got %d", inc, resp.Code)
		}
	}
	if svc.adjustID != "" {
		t.Fatal("expected adjust service not to be called")
	}
}
