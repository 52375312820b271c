package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vivek91319165/nebula-financial-verse/internal/logger"
)

//
// --- Receipt Handlers ---
//

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// UploadReceipt is the handler for POST /v1/receipts.
// It stores the file under a timestamp-prefixed sanitized name and
// returns a publicly resolvable URL. No file-type validation: any
// upload is accepted and forwarded as-is, the OCR model deals with it.
func (h *Handlers) UploadReceipt(c *gin.Context) {
	// 1. --- Get the file from the request ---
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// 2. --- Create the upload directory lazily ---
	uploadPath := h.Cfg.UploadDir
	if _, err := os.Stat(uploadPath); os.IsNotExist(err) {
		if err := os.MkdirAll(uploadPath, 0o755); err != nil {
			logger.Errorf("receipt: create upload dir: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}
	}

	// 3. --- Build a timestamp-prefixed, sanitized filename ---
	newFilename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), SanitizeFilename(file.Filename))
	savePath := filepath.Join(uploadPath, newFilename)

	// 4. --- Save the file ---
	if err := c.SaveUploadedFile(file, savePath); err != nil {
		logger.Errorf("receipt: save file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	// 5. --- Return the public URL ---
	publicURL := fmt.Sprintf("%s/uploads/%s", h.Cfg.BaseURL, newFilename)
	c.JSON(http.StatusOK, gin.H{"url": publicURL})
}

type ScanReceiptInput struct {
	ImageURL string `json:"image_url" binding:"required"`
}

// ScanReceipt is the handler for POST /v1/receipts/scan.
// A reply the model can't shape into JSON comes back as empty fields
// with a 200; only a missing image_url (400) or an upstream failure
// (500) is an error.
func (h *Handlers) ScanReceipt(c *gin.Context) {
	var input ScanReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image_url provided"})
		return
	}

	result, err := h.OCR.ScanReceipt(c.Request.Context(), input.ImageURL)
	if err != nil {
		logger.Errorf("receipt: scan failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SanitizeFilename strips anything that doesn't belong in a filename.
// A name that sanitizes to nothing gets a UUID instead, keeping its
// extension if that part survived.
func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")

	if base == "" {
		return uuid.New().String()
	}
	return base
}
