package handlers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nesba5git/onpointflies/internal/storage"
)

// maxUploadBytes caps the decoded payload size.
const maxUploadBytes = 5 * 1024 * 1024

var allowedUploadTypes = map[string]bool{
	"image/jpeg":       true,
	"image/png":        true,
	"image/gif":        true,
	"image/webp":       true,
	"application/pdf":  true,
	"text/csv":         true,
	"application/json": true,
}

// UploadHandler stores and serves uploaded assets (catalog images,
// price lists) via object storage.
type UploadHandler struct {
	store *storage.MinIOStorage
}

func NewUploadHandler(store *storage.MinIOStorage) *UploadHandler {
	return &UploadHandler{store: store}
}

type uploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	Data        string `json:"data" binding:"required"`
}

func (h *UploadHandler) Upload(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Upload storage is not configured"})
		return
	}
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename, contentType and data are required"})
		return
	}
	if !allowedUploadTypes[req.ContentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Content type %s is not allowed", req.ContentType)})
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data must be base64-encoded"})
		return
	}
	if len(data) > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 5MB upload limit"})
		return
	}
	key := uploadKey(req.Filename)
	if err := h.store.Upload(c.Request.Context(), key, bytes.NewReader(data), int64(len(data)), req.ContentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Upload complete", "key": key})
}

func (h *UploadHandler) Serve(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Upload storage is not configured"})
		return
	}
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing object key"})
		return
	}
	reader, contentType, size, err := h.store.Fetch(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	defer reader.Close()
	c.Header("Cache-Control", "public, max-age=31536000")
	c.DataFromReader(http.StatusOK, size, contentType, reader, nil)
}

func (h *UploadHandler) List(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Upload storage is not configured"})
		return
	}
	objects, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if objects == nil {
		objects = []storage.ObjectInfo{}
	}
	c.JSON(http.StatusOK, objects)
}

// uploadKey derives a collision-resistant object key from the original
// filename, keeping the extension so the content type round-trips.
func uploadKey(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '-'
	}, base)
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
}
