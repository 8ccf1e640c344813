package server

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseFormInt64 reads a required integer form field. Query values are
// accepted too so clients can adjust stock with a plain link.
func parseFormInt64(c *gin.Context, field string) (int64, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		raw = strings.TrimSpace(c.Query(field))
	}
	if raw == "" {
		return 0, errors.New("missing_" + field)
	}
	return strconv.ParseInt(raw, 10, 64)
}
