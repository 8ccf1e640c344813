package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/smallbiznis/stockroom/internal/report/domain"
)

func (s *Server) ProductReport(c *gin.Context) {
	var query reportdomain.Request
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reportSvc.ProductReport(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// The filter form selects by category and supplier, so the reference
	// lists ride along with every report response.
	ctx := c.Request.Context()
	categories, err := s.refrepo.ListCategories(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	suppliers, err := s.refrepo.ListSuppliers(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       resp,
		"categories": categories,
		"suppliers":  suppliers,
	})
}
