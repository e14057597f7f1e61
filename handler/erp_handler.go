package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/otabekdev/invoice-data-extraction/client"
	"github.com/otabekdev/invoice-data-extraction/dto"
	"github.com/otabekdev/invoice-data-extraction/store"
)

// ERPHandler pushes extraction batches into the 1C accounting system
type ERPHandler struct {
	erpClient    *client.ERPClient
	resultsStore *store.ResultsStore
}

// NewERPHandler creates a new ERPHandler instance
func NewERPHandler(erpClient *client.ERPClient, resultsStore *store.ResultsStore) *ERPHandler {
	return &ERPHandler{
		erpClient:    erpClient,
		resultsStore: resultsStore,
	}
}

// Push handles the POST /invoices/push/:batchID endpoint
func (h *ERPHandler) Push(c *gin.Context) {
	batchID := c.Param("batchID")
	log.Printf("Received 1C upload request for batch %s", batchID)

	batch, err := h.resultsStore.Get(batchID)
	if err != nil {
		if errors.Is(err, dto.ErrBatchNotFound) {
			h.sendError(c, http.StatusNotFound, "Extraction batch not found", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "Failed to load extraction batch", err)
		return
	}

	documents := client.TransformResults(batch.Results)
	if len(documents) == 0 {
		h.sendError(c, http.StatusBadRequest, "No valid invoice data found to upload", nil)
		return
	}

	result, err := h.erpClient.Push(c.Request.Context(), documents)
	if err != nil {
		h.sendError(c, http.StatusBadGateway, "Failed to upload documents to 1C", err)
		return
	}

	log.Printf("Uploaded %d documents to 1C for batch %s", result.DocumentsSent, batchID)
	c.JSON(http.StatusOK, result)
}

// sendError sends a structured error response
func (h *ERPHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "ERP_UPLOAD_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
