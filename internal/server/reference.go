package server

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) referenceLists(c *gin.Context) (gin.H, error) {
	ctx := c.Request.Context()

	categories, err := s.refrepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.refrepo.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := s.refrepo.ListLocations(ctx)
	if err != nil {
		return nil, err
	}

	return gin.H{
		"categories": categories,
		"suppliers":  suppliers,
		"locations":  locations,
	}, nil
}
