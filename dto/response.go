package dto

import "errors"

// Custom errors
var (
	ErrNoFiles         = errors.New("at least one file is required")
	ErrFactoryRequired = errors.New("factory is required")
	ErrBatchNotFound   = errors.New("no extraction results found for batch")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractionResponse is the final response structure
type ExtractionResponse struct {
	BatchID     string             `json:"batch_id"`
	Factory     string             `json:"factory"`
	Results     []ExtractionResult `json:"results"`
	ProcessedAt string             `json:"processed_at"`
}
