package models

import "time"

// Expense categories accepted by the API. Kept in sync with the
// ENUM column in the expenses migration.
var ExpenseCategories = []string{
	"food",
	"transport",
	"entertainment",
	"utilities",
	"housing",
	"shopping",
	"health",
	"education",
	"other",
}

// Expense is the model for the 'expenses' table.
// Rows are insert-only: there is no update or delete path.
type Expense struct {
	ID              int64   `json:"id" db:"id"`
	UserID          int64   `json:"userId" db:"user_id"`
	Amount          float64 `json:"amount" db:"amount"` // always > 0
	Category        string  `json:"category" db:"category"`
	Currency        string  `json:"currency" db:"currency"`
	TransactionType string  `json:"transactionType" db:"transaction_type"` // fiat or crypto

	// --- Optional Fields (Pointers = Clean JSON) ---
	Merchant        *string `json:"merchant,omitempty" db:"merchant"`
	Description     *string `json:"description,omitempty" db:"description"`
	ReceiptURL      *string `json:"receiptUrl,omitempty" db:"receipt_url"`
	TransactionHash *string `json:"transactionHash,omitempty" db:"transaction_hash"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
