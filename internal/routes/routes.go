package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vivek91319165/nebula-financial-verse/internal/handlers"
	"github.com/vivek91319165/nebula-financial-verse/internal/middleware"
)

// CORSMiddleware tells the browser the configured frontend origin may
// talk to us, and answers preflight OPTIONS requests with 204.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	// CORS must run before anything else.
	router.Use(CORSMiddleware(h.Cfg.AllowedOrigin))
	router.Use(middleware.RequestID())

	// Uploaded receipts are served without auth.
	router.Static("/uploads", h.Cfg.UploadDir)

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Category Palette (Public) ---
		v1.GET("/categories", h.GetCategories)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware([]byte(h.Cfg.JWTSecret)))
		{
			auth.GET("/profile/me", h.GetMyProfile)

			// --- Expense Routes ---
			auth.POST("/expenses", h.CreateExpense)
			auth.GET("/expenses", h.GetMyExpenses)
			auth.GET("/expenses/by-category", h.GetExpensesByCategory)
			auth.GET("/expenses/monthly", h.GetMonthlyExpenses)

			// --- Balance Routes ---
			auth.GET("/balance", h.GetBalance)
			auth.PUT("/balance", h.UpdateBalance)

			// --- Wallet Routes ---
			auth.POST("/wallet/connect", h.ConnectWallet)
			auth.GET("/wallet", h.GetMyWallet)
			auth.POST("/wallet/disconnect", h.DisconnectWallet)
			auth.GET("/wallet/assets", h.GetWalletAssets)

			// --- AI Insight Routes ---
			auth.GET("/insights", h.GetMyInsights)
			auth.POST("/insights/generate", h.GenerateInsights)
			auth.POST("/insights/chat", h.Chat)
			auth.PATCH("/insights/:id/read", h.MarkInsightAsRead)

			// --- Receipt Routes ---
			auth.POST("/receipts", h.UploadReceipt)
			auth.POST("/receipts/scan", h.ScanReceipt)
		}
	}

	return router
}
