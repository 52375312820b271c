package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vivek91319165/nebula-financial-verse/internal/logger"
	"github.com/vivek91319165/nebula-financial-verse/internal/models"
)

//
// --- Wallet Handlers ---
//

// ConnectWalletInput carries the address the browser obtained from
// its injected provider (eth_requestAccounts happens client-side; the
// server only persists the result).
type ConnectWalletInput struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
	WalletType    string `json:"walletType" binding:"required,oneof=metamask phantom stellar"`
}

// ConnectWallet is the handler for POST /v1/wallet/connect.
// It upserts on (user_id, wallet_type) and reactivates the row, so
// reconnecting the same provider replaces the address in place.
func (h *Handlers) ConnectWallet(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input ConnectWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Upsert the Wallet Row ---
	id := userID(c)
	_, err := h.DB.Exec(`
		INSERT INTO wallets (user_id, wallet_address, wallet_type, is_active)
		VALUES (?, ?, ?, 1)
		ON DUPLICATE KEY UPDATE wallet_address = VALUES(wallet_address), is_active = 1`,
		id, input.WalletAddress, input.WalletType,
	)
	if err != nil {
		logger.Errorf("wallet: upsert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Wallet connected successfully",
		"walletAddress": input.WalletAddress,
	})
}

// GetMyWallet is the handler for GET /v1/wallet.
// It returns the user's active wallet for the requested type (default
// metamask), or a null wallet when none is connected.
func (h *Handlers) GetMyWallet(c *gin.Context) {
	id := userID(c)

	walletType := c.DefaultQuery("type", "metamask")

	var w models.Wallet
	err := h.DB.QueryRow(`
		SELECT id, user_id, wallet_address, wallet_type, is_active, created_at, updated_at
		FROM wallets
		WHERE user_id = ? AND wallet_type = ? AND is_active = 1`,
		id, walletType,
	).Scan(&w.ID, &w.UserID, &w.WalletAddress, &w.WalletType, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusOK, gin.H{"wallet": nil})
		return
	}
	if err != nil {
		logger.Errorf("wallet: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallet": w})
}

type DisconnectWalletInput struct {
	WalletType string `json:"walletType" binding:"required,oneof=metamask phantom stellar"`
}

// DisconnectWallet is the handler for POST /v1/wallet/disconnect.
// The row is deactivated, not deleted: connection history stays.
func (h *Handlers) DisconnectWallet(c *gin.Context) {
	var input DisconnectWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := userID(c)
	_, err := h.DB.Exec(`
		UPDATE wallets
		SET is_active = 0
		WHERE user_id = ? AND wallet_type = ?`,
		id, input.WalletType,
	)
	if err != nil {
		logger.Errorf("wallet: disconnect failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disconnect wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Wallet disconnected successfully"})
}

// GetWalletAssets is the handler for GET /v1/wallet/assets.
// It resolves the user's active wallet address and asks the configured
// asset source for its holdings.
func (h *Handlers) GetWalletAssets(c *gin.Context) {
	id := userID(c)

	walletType := c.DefaultQuery("type", "metamask")

	// 1. --- Resolve the Active Address ---
	var address string
	err := h.DB.QueryRow(`
		SELECT wallet_address
		FROM wallets
		WHERE user_id = ? AND wallet_type = ? AND is_active = 1`,
		id, walletType,
	).Scan(&address)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusOK, gin.H{"assets": []interface{}{}})
		return
	}
	if err != nil {
		logger.Errorf("wallet: address query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wallet"})
		return
	}

	// 2. --- Fetch the Assets ---
	assets, err := h.Assets.FetchAssets(c.Request.Context(), address)
	if err != nil {
		logger.Errorf("wallet: asset fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch crypto assets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}
