package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vivek91319165/nebula-financial-verse/internal/palette"
)

// GetCategories is the handler for GET /v1/categories.
// Static data, so it's public: the charts need it before login too.
func (h *Handlers) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": palette.CategoryColors})
}
