package models

import "time"

// Wallet types accepted by the API. Kept in sync with the ENUM
// column in the wallets migration.
var WalletTypes = []string{"metamask", "phantom", "stellar"}

// Wallet is the model for the 'wallets' table.
// One row per (user_id, wallet_type); disconnecting flips is_active
// to false instead of deleting, so connection history is retained.
type Wallet struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	WalletAddress string    `json:"walletAddress" db:"wallet_address"`
	WalletType    string    `json:"walletType" db:"wallet_type"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
