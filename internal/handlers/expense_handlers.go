package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vivek91319165/nebula-financial-verse/internal/analytics"
	"github.com/vivek91319165/nebula-financial-verse/internal/logger"
	"github.com/vivek91319165/nebula-financial-verse/internal/models"
)

//
// --- Expense Handlers ---
//

// CreateExpenseInput validates everything before any DB call: a
// non-positive amount or an unknown category never reaches MySQL.
type CreateExpenseInput struct {
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	Category        string  `json:"category" binding:"required,oneof=food transport entertainment utilities housing shopping health education other"`
	Currency        string  `json:"currency"`
	TransactionType string  `json:"transactionType" binding:"omitempty,oneof=fiat crypto"`
	Merchant        string  `json:"merchant"`
	Description     string  `json:"description"`
	ReceiptURL      string  `json:"receiptUrl"`
	TransactionHash string  `json:"transactionHash"`
}

// CreateExpense is the handler for POST /v1/expenses.
// Expenses are insert-only: created_at is set here and never touched
// again, and no update or delete route exists.
func (h *Handlers) CreateExpense(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Currency == "" {
		input.Currency = "USD"
	}
	if input.TransactionType == "" {
		input.TransactionType = "fiat"
	}

	// 2. --- Insert ---
	id := userID(c)
	result, err := h.DB.Exec(`
		INSERT INTO expenses
		(user_id, amount, category, currency, merchant, description, transaction_type, receipt_url, transaction_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, input.Amount, input.Category, input.Currency,
		nullIfEmpty(input.Merchant), nullIfEmpty(input.Description),
		input.TransactionType, nullIfEmpty(input.ReceiptURL), nullIfEmpty(input.TransactionHash),
		time.Now(),
	)
	if err != nil {
		logger.Errorf("expense: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save expense"})
		return
	}

	newID, _ := result.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"message": "Expense recorded",
		"id":      newID,
	})
}

// GetMyExpenses is the handler for GET /v1/expenses.
// It returns the user's expenses, newest first.
func (h *Handlers) GetMyExpenses(c *gin.Context) {
	expenses, err := h.loadExpenses(userID(c), true)
	if err != nil {
		logger.Errorf("expense: list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load expenses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// GetExpensesByCategory is the handler for GET /v1/expenses/by-category.
// It reduces all of the user's expenses into per-category totals.
// A user with no expenses gets an empty list, not an error.
func (h *Handlers) GetExpensesByCategory(c *gin.Context) {
	// Oldest first, so the breakdown keeps first-occurrence order.
	expenses, err := h.loadExpenses(userID(c), false)
	if err != nil {
		logger.Errorf("expense: by-category query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load expenses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": analytics.CategoryTotals(expenses)})
}

// GetMonthlyExpenses is the handler for GET /v1/expenses/monthly.
// It returns the current calendar month's total spend.
func (h *Handlers) GetMonthlyExpenses(c *gin.Context) {
	expenses, err := h.loadExpenses(userID(c), false)
	if err != nil {
		logger.Errorf("expense: monthly query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load expenses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": analytics.MonthlyTotal(expenses, time.Now())})
}

// loadExpenses fetches every expense row belonging to a user. Shared
// by the list, aggregation, and insight-snapshot paths.
func (h *Handlers) loadExpenses(id int64, newestFirst bool) ([]models.Expense, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}
	rows, err := h.DB.Query(`
		SELECT id, user_id, amount, category, currency, merchant, description,
		       transaction_type, receipt_url, transaction_hash, created_at
		FROM expenses
		WHERE user_id = ?
		ORDER BY created_at `+order+`, id `+order, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Amount,
			&e.Category,
			&e.Currency,
			&e.Merchant,
			&e.Description,
			&e.TransactionType,
			&e.ReceiptURL,
			&e.TransactionHash,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}
