package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	productdomain "github.com/smallbiznis/stockroom/internal/product/domain"
)

func (s *Server) ListProducts(c *gin.Context) {
	resp, err := s.productSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// NewProductFormData returns the reference lists a create form needs.
func (s *Server) NewProductFormData(c *gin.Context) {
	refs, err := s.referenceLists(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, refs)
}

// EditProductFormData returns the product plus the reference lists an edit
// form needs. 404 when the product does not exist.
func (s *Server) EditProductFormData(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.productSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	refs, err := s.referenceLists(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	refs["product"] = resp
	c.JSON(http.StatusOK, refs)
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req productdomain.FormRequest
	if err := c.ShouldBind(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if _, err := s.productSvc.Create(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordProductCreated()
	}

	c.Redirect(http.StatusSeeOther, "/products")
}

func (s *Server) UpdateProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req productdomain.FormRequest
	if err := c.ShouldBind(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if _, err := s.productSvc.Update(c.Request.Context(), id, req); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/products")
}

// DeleteProduct removes the product if present. Deleting an absent product
// still redirects; the operation is idempotent.
func (s *Server) DeleteProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.productSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordProductDeleted()
	}

	c.Redirect(http.StatusSeeOther, "/products")
}

func (s *Server) AdjustProductStock(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	inc, err := parseFormInt64(c, "inc")
	if err != nil {
		AbortWithError(c, newValidationError("inc", "invalid_inc", "invalid inc"))
		return
	}

	if err := s.productSvc.AdjustStock(c.Request.Context(), id, inc); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordStockAdjustment(inc)
	}

	c.Redirect(http.StatusSeeOther, "/products")
}
