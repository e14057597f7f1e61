package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/otabekdev/invoice-data-extraction/dto"
	"github.com/otabekdev/invoice-data-extraction/service"
	"github.com/otabekdev/invoice-data-extraction/store"
)

// ExtractHandler handles invoice extraction requests
type ExtractHandler struct {
	extractionService *service.ExtractionService
	resultsStore      *store.ResultsStore
}

// NewExtractHandler creates a new ExtractHandler instance
func NewExtractHandler(extractionService *service.ExtractionService, resultsStore *store.ResultsStore) *ExtractHandler {
	return &ExtractHandler{
		extractionService: extractionService,
		resultsStore:      resultsStore,
	}
}

// Extract handles the POST /invoices/extract endpoint
func (h *ExtractHandler) Extract(c *gin.Context) {
	log.Println("Received invoice extraction request")

	// Parse multipart form
	form, err := c.MultipartForm()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	// Build request DTO
	request := &dto.ExtractionRequest{
		Files:    form.File["files[]"],
		Factory:  c.PostForm("factory"),
		Password: c.PostForm("password"),
	}

	// Validate request
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	log.Printf("Processing %d files for factory %s", len(request.Files), request.Factory)

	// Call service layer
	results := h.extractionService.ProcessDocuments(request.Files, request.Factory, request.Password)

	// Keep the batch around for export and 1C upload
	batch := h.resultsStore.Save(request.Factory, results)

	log.Printf("Extraction batch %s completed", batch.ID)
	c.JSON(http.StatusOK, dto.ExtractionResponse{
		BatchID:     batch.ID,
		Factory:     batch.Factory,
		Results:     batch.Results,
		ProcessedAt: batch.ProcessedAt.Format(time.RFC3339),
	})
}

// sendError sends a structured error response
func (h *ExtractHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
