package models

import "time"

// AIInsight is the model for the 'ai_insights' table.
// Rows are created only by insight generation and mutated only to
// flip is_read; never deleted.
type AIInsight struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	Content     string    `json:"content" db:"content"`
	InsightType string    `json:"insightType" db:"insight_type"`
	IsRead      bool      `json:"isRead" db:"is_read"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
