package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vivek91319165/nebula-financial-verse/internal/auth"
	"github.com/vivek91319165/nebula-financial-verse/internal/logger"
	"github.com/vivek91319165/nebula-financial-verse/internal/models"
)

//
// --- User Registration & Login ---
//

// RegisterInput is separate from models.Profile because we don't want
// to accept an 'id' or timestamps from the client.
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Register is the handler for POST /v1/register.
// It creates a profiles row and returns a token right away, so a new
// user lands on the dashboard without a second login step.
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	// 3. --- Insert the Profile ---
	result, err := h.DB.Exec(`
		INSERT INTO profiles (email, password_hash, first_name, last_name)
		VALUES (?, ?, ?, ?)`,
		strings.ToLower(input.Email), password.Hash,
		nullIfEmpty(input.FirstName), nullIfEmpty(input.LastName),
	)
	if err != nil {
		// A duplicate email is by far the most common failure here.
		if strings.Contains(err.Error(), "Duplicate entry") {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}
		logger.Errorf("register: insert profile failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	newID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	// 4. --- Issue a Token ---
	token, err := auth.GenerateToken([]byte(h.Cfg.JWTSecret), newID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
	})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/login.
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Look Up the Profile ---
	var id int64
	var hash string
	err := h.DB.QueryRow(
		"SELECT id, password_hash FROM profiles WHERE email = ?",
		strings.ToLower(input.Email),
	).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		// Same message as a wrong password, so the response doesn't
		// reveal which emails are registered.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		logger.Errorf("login: query profile failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	// 3. --- Check the Password ---
	password := models.Password{Hash: hash}
	matches, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	if !matches {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// 4. --- Issue a Token ---
	token, err := auth.GenerateToken([]byte(h.Cfg.JWTSecret), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetMyProfile is the handler for GET /v1/profile/me.
func (h *Handlers) GetMyProfile(c *gin.Context) {
	id := userID(c)

	var profile models.Profile
	err := h.DB.QueryRow(`
		SELECT id, email, first_name, last_name, created_at, updated_at
		FROM profiles
		WHERE id = ?`, id,
	).Scan(
		&profile.ID,
		&profile.Email,
		&profile.FirstName,
		&profile.LastName,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		logger.Errorf("profile: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// nullIfEmpty maps "" to NULL for optional text columns.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
