// Package store keeps finished extraction batches in memory so they can be
// exported or pushed to 1C after the upload request has completed.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/otabekdev/invoice-data-extraction/dto"
)

// Batch is one processed upload: the factory it was extracted for and the
// per-file results in upload order.
type Batch struct {
	ID          string
	Factory     string
	Results     []dto.ExtractionResult
	ProcessedAt time.Time
}

// ResultsStore is an in-memory batch store. It is safe for concurrent use.
// Data is lost on service restart.
type ResultsStore struct {
	mu      sync.RWMutex
	batches map[string]Batch
}

func NewResultsStore() *ResultsStore {
	return &ResultsStore{
		batches: make(map[string]Batch),
	}
}

// Save stores a finished batch under a generated ID and returns it. The
// stored copy is detached: mutating the caller's results afterwards, or
// any batch the store hands out, cannot reach it.
func (s *ResultsStore) Save(factory string, results []dto.ExtractionResult) Batch {
	batch := Batch{
		ID:          uuid.NewString(),
		Factory:     factory,
		Results:     cloneResults(results),
		ProcessedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batch.ID] = batch

	batch.Results = cloneResults(batch.Results)
	return batch
}

// Get returns a detached copy of the batch with the given ID, or
// dto.ErrBatchNotFound.
func (s *ResultsStore) Get(batchID string) (Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch, exists := s.batches[batchID]
	if !exists {
		return Batch{}, fmt.Errorf("%w: %s", dto.ErrBatchNotFound, batchID)
	}

	batch.Results = cloneResults(batch.Results)
	return batch, nil
}

// cloneResults copies results deeply enough that the copy shares no
// mutable state with the input: the invoice record, its line items and
// the diagnostics all get their own backing. Decimal values are immutable
// and safe to share.
func cloneResults(results []dto.ExtractionResult) []dto.ExtractionResult {
	cloned := append([]dto.ExtractionResult(nil), results...)
	for i := range cloned {
		if cloned[i].Diagnostics != nil {
			cloned[i].Diagnostics = append([]dto.Diagnostic{}, cloned[i].Diagnostics...)
		}

		if cloned[i].Invoice == nil {
			continue
		}
		invoice := *cloned[i].Invoice
		if invoice.LineItems != nil {
			invoice.LineItems = append([]dto.LineItem{}, invoice.LineItems...)
		}
		if invoice.TotalAmount != nil {
			total := *invoice.TotalAmount
			invoice.TotalAmount = &total
		}
		cloned[i].Invoice = &invoice
	}
	return cloned
}
