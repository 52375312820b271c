package models

import "time"

// Balance is the model for the 'balances' table.
// Exactly one row per user (UNIQUE KEY on user_id); the value is
// self-reported and independent of the sum of Expense rows.
type Balance struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	TotalBalance float64   `json:"totalBalance" db:"total_balance"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
