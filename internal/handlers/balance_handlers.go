package handlers

import (
	"database/sql"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vivek91319165/nebula-financial-verse/internal/logger"
)

//
// --- Balance Handlers ---
//

// GetBalance is the handler for GET /v1/balance.
// A user who has never set a balance gets 0, not an error.
func (h *Handlers) GetBalance(c *gin.Context) {
	id := userID(c)

	var total float64
	err := h.DB.QueryRow(
		"SELECT total_balance FROM balances WHERE user_id = ?", id,
	).Scan(&total)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusOK, gin.H{"totalBalance": 0.0})
		return
	}
	if err != nil {
		logger.Errorf("balance: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"totalBalance": total})
}

type UpdateBalanceInput struct {
	TotalBalance *float64 `json:"totalBalance" binding:"required"`
}

// UpdateBalance is the handler for PUT /v1/balance.
// It upserts on user_id: the stored value is replaced wholesale,
// last write wins, and writing the same value twice is a no-op.
func (h *Handlers) UpdateBalance(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	// A pointer so that an explicit 0 passes "required".
	var input UpdateBalanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newBalance := *input.TotalBalance
	if math.IsNaN(newBalance) || math.IsInf(newBalance, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Balance must be a finite number"})
		return
	}

	// 2. --- Upsert keyed on user_id ---
	id := userID(c)
	_, err := h.DB.Exec(`
		INSERT INTO balances (user_id, total_balance)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE total_balance = VALUES(total_balance)`,
		id, newBalance,
	)
	if err != nil {
		logger.Errorf("balance: upsert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Balance updated successfully",
		"totalBalance": newBalance,
	})
}
