// internal/api/handlers/upload_handler.go
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/ingest"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/service"
)

// maxUploadBytes caps spreadsheet uploads at 50 MB.
const maxUploadBytes = 50 << 20

type UploadHandler struct {
	service *service.IngestService
}

func NewUploadHandler(service *service.IngestService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload ingests one multipart spreadsheet into the dataset named by the
// :kind path parameter.
func (h *UploadHandler) Upload(c *gin.Context) {
	kind := c.Param("kind")
	if !ingest.ValidKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown dataset kind: " + kind})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload: " + err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload: " + err.Error()})
		return
	}

	count, err := h.service.Upload(c.Request.Context(), kind, fileHeader.Filename, data)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":    kind,
		"file":    fileHeader.Filename,
		"records": count,
	})
}
