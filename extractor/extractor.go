// Package extractor recovers structured purchase data from the text layer
// of supplier invoices. The input is loosely formatted page text; the
// output is a typed invoice record plus a completeness score.
package extractor

import (
	"regexp"
	"strings"

	"github.com/otabekdev/invoice-data-extraction/dto"
)

// Default patterns for Hettich-style invoice text. Item line group layout:
// position, CA code, country of origin, quantity, unit, unit price,
// per-basis, line total.
const (
	defaultItemPattern      = `^(\d{4,})\s+CA:(\d+)\s+([A-Z]{2})\s+([\d.,]+)\s*([A-Z]+)\s+([\d.,]+)\s+(\d+)\s+([\d.,]+)`
	defaultOrderPattern     = `(?i)^Order\s+(\d+)\s+-\s+(\d{2}\.\d{2}\.\d{4})`
	defaultItemStartPattern = `^\d{4,}\s+CA:`
	defaultMarkerPattern    = `(?i)^(Order \d+|Your Order:|Delivery \d+|Ship to)`
	defaultNumberPattern    = `(?i)Number:\s*(\d+)`
	defaultDatePattern      = `(?i)Date:\s*(\d{2}\.\d{2}\.\d{4})`
	defaultTotalPattern     = `(?i)Total amount\s+([\d.,]+)`
)

// Patterns holds the compiled expressions that define one invoice layout.
// Callers targeting a different supplier layout can supply their own set.
type Patterns struct {
	Item          *regexp.Regexp // full item line, anchored at line start
	Order         *regexp.Regexp // order marker carrying number and date
	ItemStart     *regexp.Regexp // cheap item-line prefix, stops description skips
	Marker        *regexp.Regexp // order/delivery/shipping markers, stop description skips
	InvoiceNumber *regexp.Regexp
	InvoiceDate   *regexp.Regexp
	Total         *regexp.Regexp
}

// DefaultPatterns returns the pattern set for Hettich-style invoices.
func DefaultPatterns() Patterns {
	return Patterns{
		Item:          regexp.MustCompile(defaultItemPattern),
		Order:         regexp.MustCompile(defaultOrderPattern),
		ItemStart:     regexp.MustCompile(defaultItemStartPattern),
		Marker:        regexp.MustCompile(defaultMarkerPattern),
		InvoiceNumber: regexp.MustCompile(defaultNumberPattern),
		InvoiceDate:   regexp.MustCompile(defaultDatePattern),
		Total:         regexp.MustCompile(defaultTotalPattern),
	}
}

// Extractor runs the extraction pipeline. It holds compiled patterns and
// scoring weights only, so one instance is safe for concurrent use.
type Extractor struct {
	patterns Patterns
	weights  ScoreWeights
}

// New creates an Extractor with the default patterns and weights.
func New() *Extractor {
	return NewWithConfig(DefaultPatterns(), DefaultWeights())
}

// NewWithConfig creates an Extractor with a custom pattern set and weights.
func NewWithConfig(patterns Patterns, weights ScoreWeights) *Extractor {
	return &Extractor{patterns: patterns, weights: weights}
}

// ExtractPages runs the full pipeline over per-page text in document order.
// The header comes from the first non-empty page, line items and the grand
// total from all pages joined by a line break. There is no error return:
// when every page is empty the result is an unset record with score 0.
func (e *Extractor) ExtractPages(pages []string) (*dto.InvoiceRecord, float64, []dto.Diagnostic) {
	var kept []string
	for _, page := range pages {
		if page != "" {
			kept = append(kept, page)
		}
	}
	if len(kept) == 0 {
		return &dto.InvoiceRecord{LineItems: []dto.LineItem{}}, 0.0, nil
	}

	return e.extract(CleanText(kept[0]), CleanText(strings.Join(kept, "\n")))
}

// ExtractText is the single-blob variant for callers that already hold
// combined text; the header is searched in the same text as the items.
func (e *Extractor) ExtractText(text string) (*dto.InvoiceRecord, float64, []dto.Diagnostic) {
	cleaned := CleanText(text)
	return e.extract(cleaned, cleaned)
}

func (e *Extractor) extract(headerText, fullText string) (*dto.InvoiceRecord, float64, []dto.Diagnostic) {
	record := &dto.InvoiceRecord{}
	record.InvoiceNumber, record.InvoiceDate = e.ExtractHeader(headerText)

	items, diags := e.ParseItems(fullText)
	record.LineItems = items

	total, totalDiag := e.ExtractTotal(fullText)
	record.TotalAmount = total
	if totalDiag != nil {
		diags = append(diags, *totalDiag)
	}

	return record, e.Score(record), diags
}
