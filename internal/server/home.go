package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/stockroom/internal/seed"
)

// Home returns the service landing payload with the main entry points.
func (s *Server) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": s.cfg.AppName,
		"version": s.cfg.AppVersion,
		"links": gin.H{
			"products": "/products",
			"report":   "/reports/products",
			"init_db":  "/init-db",
		},
	})
}

// InitDB re-runs the starter seed. The seed only writes into empty tables,
// so hitting this on a populated database is a no-op.
func (s *Server) InitDB(c *gin.Context) {
	if err := seed.EnsureStarterInventory(s.db); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}
