package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ERPLineItem is one invoice line in the shape the 1C OData API expects.
type ERPLineItem struct {
	Position     string          `json:"Position"`
	Nomenclature string          `json:"Nomenclature"` // CA code
	Quantity     decimal.Decimal `json:"Quantity"`
	Unit         string          `json:"Unit"`
	UnitPrice    decimal.Decimal `json:"UnitPrice"`
	LineTotal    decimal.Decimal `json:"LineTotal"`
	OrderNumber  string          `json:"OrderNumber"`
	OrderDate    string          `json:"OrderDate"`
}

// ERPDocument is a goods-purchase document for the 1C OData API.
type ERPDocument struct {
	InvoiceNumber string           `json:"InvoiceNumber"`
	InvoiceDate   string           `json:"InvoiceDate"`
	TotalAmount   *decimal.Decimal `json:"TotalAmount"`
	LineItems     []ERPLineItem    `json:"LineItems"`
}

// ERPDocumentResponse pairs a pushed document with the API's reply.
type ERPDocumentResponse struct {
	Document   ERPDocument     `json:"document"`
	StatusCode int             `json:"status_code"`
	Response   json.RawMessage `json:"response,omitempty"`
}

// ERPPushResult summarizes one push run.
type ERPPushResult struct {
	DocumentsSent int                   `json:"documents_sent"`
	Responses     []ERPDocumentResponse `json:"responses"`
}
