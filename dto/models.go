package dto

import "github.com/shopspring/decimal"

// LineItem is a single purchase line recovered from the invoice body.
// Amounts are exact decimals; rendering is left to the caller.
type LineItem struct {
	Position    string          `json:"position"`
	CatalogCode string          `json:"catalog_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	OrderNumber string          `json:"order_number,omitempty"`
	OrderDate   string          `json:"order_date,omitempty"` // "YYYY-MM-DD"
}

// InvoiceRecord is the structured output of one extraction run. Fields the
// source text did not yield stay at their zero value; TotalAmount is nil
// when no grand total was found.
type InvoiceRecord struct {
	InvoiceNumber string           `json:"invoice_number,omitempty"`
	InvoiceDate   string           `json:"invoice_date,omitempty"` // "YYYY-MM-DD"
	LineItems     []LineItem       `json:"line_items"`
	TotalAmount   *decimal.Decimal `json:"total_amount,omitempty"`
}

// Diagnostic records a value that matched an invoice pattern but could not
// be converted, with enough context to find it in the source text.
type Diagnostic struct {
	Line   int    `json:"line,omitempty"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// ExtractionResult is the per-file outcome of a batch upload.
type ExtractionResult struct {
	Filename    string         `json:"filename"`
	Factory     string         `json:"factory"`
	Invoice     *InvoiceRecord `json:"invoice_data,omitempty"`
	Confidence  float64        `json:"confidence"`
	Diagnostics []Diagnostic   `json:"diagnostics,omitempty"`
	Success     bool           `json:"success"`
	Error       string         `json:"error,omitempty"`
}
