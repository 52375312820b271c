package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vivek91319165/nebula-financial-verse/internal/ai"
	"github.com/vivek91319165/nebula-financial-verse/internal/logger"
	"github.com/vivek91319165/nebula-financial-verse/internal/models"
)

//
// --- AI Insight Handlers ---
//

// GetMyInsights is the handler for GET /v1/insights.
// It returns the user's latest insights, newest first.
func (h *Handlers) GetMyInsights(c *gin.Context) {
	id := userID(c)

	rows, err := h.DB.Query(`
		SELECT id, user_id, content, insight_type, is_read, created_at
		FROM ai_insights
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT 10`, id)
	if err != nil {
		logger.Errorf("insight: list query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load insights"})
		return
	}
	defer rows.Close()

	insights := []models.AIInsight{}
	for rows.Next() {
		var ins models.AIInsight
		if err := rows.Scan(
			&ins.ID,
			&ins.UserID,
			&ins.Content,
			&ins.InsightType,
			&ins.IsRead,
			&ins.CreatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan insight row"})
			return
		}
		insights = append(insights, ins)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating insight rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// GenerateInsights is the handler for POST /v1/insights/generate.
// It snapshots the user's finances, asks the model for three
// insights, and persists the reply as a new unread row.
func (h *Handlers) GenerateInsights(c *gin.Context) {
	id := userID(c)

	// 1. --- Build the Snapshot ---
	snap, err := h.buildSnapshot(id)
	if err != nil {
		logger.Errorf("insight: snapshot failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate insights", "details": err.Error()})
		return
	}

	// 2. --- Ask the Model ---
	content, err := h.AI.GenerateInsights(c.Request.Context(), snap)
	if err != nil {
		logger.Errorf("insight: generation failed: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, ai.ErrUnexpectedFormat) {
			// Explicitly distinguished so the client can tell a broken
			// upstream from an unreachable one.
			c.JSON(status, gin.H{"error": "Failed to generate insights", "details": ai.ErrUnexpectedFormat.Error()})
			return
		}
		c.JSON(status, gin.H{"error": "Failed to generate insights", "details": err.Error()})
		return
	}

	// 3. --- Persist the Insight ---
	// If this fails the generated text is lost; there is no
	// retry-persist.
	now := time.Now()
	result, err := h.DB.Exec(`
		INSERT INTO ai_insights (user_id, content, insight_type, is_read, created_at)
		VALUES (?, ?, 'financial', 0, ?)`,
		id, content, now,
	)
	if err != nil {
		logger.Errorf("insight: persist failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store insight"})
		return
	}
	newID, _ := result.LastInsertId()

	c.JSON(http.StatusOK, gin.H{
		"insights": models.AIInsight{
			ID:          newID,
			UserID:      id,
			Content:     content,
			InsightType: "financial",
			IsRead:      false,
			CreatedAt:   now,
		},
	})
}

type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// Chat is the handler for POST /v1/insights/chat.
// Same snapshot as generation, but the reply goes straight back to
// the user and nothing is persisted.
func (h *Handlers) Chat(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Build the Snapshot ---
	id := userID(c)
	snap, err := h.buildSnapshot(id)
	if err != nil {
		logger.Errorf("insight: snapshot failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get chat response", "details": err.Error()})
		return
	}

	// 3. --- Ask the Model ---
	reply, err := h.AI.Chat(c.Request.Context(), snap, input.Message)
	if err != nil {
		logger.Errorf("insight: chat failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get chat response", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": reply})
}

// MarkInsightAsRead is the handler for PATCH /v1/insights/:id/read.
// The update is scoped to the owning user so nobody can flip another
// user's insights.
func (h *Handlers) MarkInsightAsRead(c *gin.Context) {
	id := userID(c)
	insightID := c.Param("id")

	result, err := h.DB.Exec(`
		UPDATE ai_insights
		SET is_read = 1
		WHERE id = ? AND user_id = ?`,
		insightID, id,
	)
	if err != nil {
		logger.Errorf("insight: mark-read failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update insight"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Insight not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Insight marked as read"})
}

// buildSnapshot gathers the user's expenses, balance, and active
// wallets into the bundle the model sees. Assembled fresh every call.
func (h *Handlers) buildSnapshot(id int64) (ai.Snapshot, error) {
	snap := ai.Snapshot{}

	// Expenses (oldest first, same order they were recorded).
	expenses, err := h.loadExpenses(id, false)
	if err != nil {
		return snap, err
	}
	snap.Expenses = expenses

	// Balance: absent row means 0.
	err = h.DB.QueryRow(
		"SELECT total_balance FROM balances WHERE user_id = ?", id,
	).Scan(&snap.TotalBalance)
	if err != nil && err != sql.ErrNoRows {
		return snap, err
	}

	// Active wallets only.
	rows, err := h.DB.Query(`
		SELECT id, user_id, wallet_address, wallet_type, is_active, created_at, updated_at
		FROM wallets
		WHERE user_id = ? AND is_active = 1`, id)
	if err != nil {
		return snap, err
	}
	defer rows.Close()

	wallets := []models.Wallet{}
	for rows.Next() {
		var w models.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.WalletAddress, &w.WalletType, &w.IsActive, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return snap, err
		}
		wallets = append(wallets, w)
	}
	snap.Wallets = wallets

	return snap, rows.Err()
}
