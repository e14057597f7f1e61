package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/otabekdev/invoice-data-extraction/dto"
	"github.com/otabekdev/invoice-data-extraction/service"
	"github.com/otabekdev/invoice-data-extraction/store"
)

const (
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler serves extraction batches as downloadable spreadsheets
type ExportHandler struct {
	exportService *service.ExportService
	resultsStore  *store.ResultsStore
}

// NewExportHandler creates a new ExportHandler instance
func NewExportHandler(exportService *service.ExportService, resultsStore *store.ResultsStore) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		resultsStore:  resultsStore,
	}
}

// Export handles the GET /invoices/export/:batchID endpoint.
// The format query parameter selects csv (default) or xlsx.
func (h *ExportHandler) Export(c *gin.Context) {
	batchID := c.Param("batchID")
	format := c.DefaultQuery("format", "csv")

	batch, err := h.resultsStore.Get(batchID)
	if err != nil {
		if errors.Is(err, dto.ErrBatchNotFound) {
			h.sendError(c, http.StatusNotFound, "Extraction batch not found", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "Failed to load extraction batch", err)
		return
	}

	var data []byte
	var contentType string
	switch format {
	case "csv":
		data, err = h.exportService.ExportCSV(batch.Results)
		contentType = contentTypeCSV
	case "xlsx":
		data, err = h.exportService.ExportXLSX(batch.Results)
		contentType = contentTypeXLSX
	default:
		h.sendError(c, http.StatusBadRequest, "Unsupported export format: "+format, nil)
		return
	}
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to build export", err)
		return
	}

	log.Printf("Exporting batch %s as %s (%d bytes)", batchID, format, len(data))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exportService.Filename(format)))
	c.Data(http.StatusOK, contentType, data)
}

// sendError sends a structured error response
func (h *ExportHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXPORT_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
