package dto

import (
	"mime/multipart"
	"strings"
)

// ExtractionRequest represents the incoming upload request. Password is
// optional and applies to every file in the batch.
type ExtractionRequest struct {
	Files    []*multipart.FileHeader `form:"files[]" binding:"required"`
	Factory  string                  `form:"factory" binding:"required"`
	Password string                  `form:"password"`
}

// Validate performs basic validation on the request
func (r *ExtractionRequest) Validate() error {
	if len(r.Files) == 0 {
		return ErrNoFiles
	}
	if strings.TrimSpace(r.Factory) == "" {
		return ErrFactoryRequired
	}
	return nil
}
