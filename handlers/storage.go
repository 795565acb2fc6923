package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"spedocity/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler handles item photo uploads for bookings.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// allowedBuckets defines permitted buckets for photo uploads.
var allowedBuckets = map[string]bool{
	"items":    true,
	"receipts": true,
}

// UploadItemPhotoHandler accepts a multipart photo upload and returns its
// permanent URL for attachment to a booking draft's item details.
func (h *StorageHandler) UploadItemPhotoHandler(c *gin.Context) {
	logger := getLogger(c)

	if _, ok := authedUserID(c); !ok {
		return
	}

	bucket := c.Param("bucket")
	if !allowedBuckets[bucket] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bucket; allowed values are 'items' and 'receipts'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		logger.Error("Failed to save uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}
	defer os.Remove(tempFilePath)

	destFolder := "bookings/" + bucket

	publicID, err := h.StorageSvc.UploadFile(c, tempFilePath, destFolder)
	if err != nil {
		logger.Error("Failed to upload file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
		return
	}

	downloadURL, err := h.StorageSvc.GetDownloadURL(c, "image", publicID)
	if err != nil {
		logger.Error("Failed to construct download URL", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to construct download URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"publicId": publicID,
		"url":      downloadURL,
	})
}

// DeleteItemPhotoHandler removes an uploaded photo by public ID.
func (h *StorageHandler) DeleteItemPhotoHandler(c *gin.Context) {
	logger := getLogger(c)

	if _, ok := authedUserID(c); !ok {
		return
	}

	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publicId is required"})
		return
	}

	if err := h.StorageSvc.DeleteFile(c, publicID); err != nil {
		logger.Error("Failed to delete file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
