package extractor

import "github.com/otabekdev/invoice-data-extraction/dto"

// ScoreWeights are the per-check contributions to the completeness score.
type ScoreWeights struct {
	InvoiceNumber float64
	InvoiceDate   float64
	LineItems     float64
	TotalAmount   float64
	CompleteItems float64
}

// DefaultWeights returns the standard weighting: header fields 0.4, item
// presence 0.3, grand total 0.15, item completeness 0.15.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		InvoiceNumber: 0.2,
		InvoiceDate:   0.2,
		LineItems:     0.3,
		TotalAmount:   0.15,
		CompleteItems: 0.15,
	}
}

// Score computes a deterministic completeness score in [0,1]: a weighted
// checklist of field-presence checks, summed and capped at 1.0. It
// quantifies how much of the invoice was recovered, not statistical
// confidence in the values.
func (e *Extractor) Score(record *dto.InvoiceRecord) float64 {
	score := 0.0

	if record.InvoiceNumber != "" {
		score += e.weights.InvoiceNumber
	}
	if record.InvoiceDate != "" {
		score += e.weights.InvoiceDate
	}
	if len(record.LineItems) > 0 {
		score += e.weights.LineItems
		if allItemsComplete(record.LineItems) {
			score += e.weights.CompleteItems
		}
	}
	if record.TotalAmount != nil {
		score += e.weights.TotalAmount
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// allItemsComplete reports whether every item carries the full field set.
// The numeric fields are always populated on a successful parse, so
// presence reduces to the identifying strings.
func allItemsComplete(items []dto.LineItem) bool {
	for _, item := range items {
		if item.Position == "" || item.CatalogCode == "" || item.Unit == "" {
			return false
		}
	}
	return true
}
