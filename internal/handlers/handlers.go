package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/vivek91319165/nebula-financial-verse/internal/ai"
	"github.com/vivek91319165/nebula-financial-verse/internal/config"
	"github.com/vivek91319165/nebula-financial-verse/internal/ocr"
	"github.com/vivek91319165/nebula-financial-verse/internal/wallet"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB     *sql.DB
	Cfg    *config.Config
	AI     *ai.Service
	OCR    *ocr.Service
	Assets wallet.AssetSource
}

// userID pulls the authenticated user's ID out of the gin context.
// Only valid behind AuthMiddleware.
func userID(c *gin.Context) int64 {
	raw, _ := c.Get("userID")
	id, _ := raw.(int64)
	return id
}
