package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/otabekdev/invoice-data-extraction/dto"
)

// erpDocumentEndpoint is the goods-purchase document collection of the 1C
// OData service.
const erpDocumentEndpoint = "Document_ПриобретениеТоваровУслуг"

// ERPClient pushes extracted invoices into the 1C accounting system.
type ERPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewERPClient creates a client for the given OData base URL. The base URL
// is expected to end with a slash.
func NewERPClient(baseURL, token string) *ERPClient {
	return &ERPClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// TransformResults converts successful extraction results into 1C
// documents. Failed results and results without invoice data are skipped.
func TransformResults(results []dto.ExtractionResult) []dto.ERPDocument {
	var documents []dto.ERPDocument

	for _, result := range results {
		if !result.Success || result.Invoice == nil {
			continue
		}

		doc := dto.ERPDocument{
			InvoiceNumber: result.Invoice.InvoiceNumber,
			InvoiceDate:   result.Invoice.InvoiceDate,
			TotalAmount:   result.Invoice.TotalAmount,
			LineItems:     []dto.ERPLineItem{},
		}

		for _, item := range result.Invoice.LineItems {
			doc.LineItems = append(doc.LineItems, dto.ERPLineItem{
				Position:     item.Position,
				Nomenclature: item.CatalogCode,
				Quantity:     item.Quantity,
				Unit:         item.Unit,
				UnitPrice:    item.UnitPrice,
				LineTotal:    item.LineTotal,
				OrderNumber:  item.OrderNumber,
				OrderDate:    item.OrderDate,
			})
		}

		documents = append(documents, doc)
	}

	return documents
}

// Push sends each document in its own POST request, aborting on the first
// failure. The returned result reflects what the API accepted before the
// abort.
func (c *ERPClient) Push(ctx context.Context, documents []dto.ERPDocument) (*dto.ERPPushResult, error) {
	if c.token == "" {
		return nil, fmt.Errorf("ERP API token is not configured")
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("no documents to push")
	}

	url := c.baseURL + erpDocumentEndpoint
	result := &dto.ERPPushResult{Responses: []dto.ERPDocumentResponse{}}

	for _, doc := range documents {
		resp, err := c.postDocument(ctx, url, doc)
		if err != nil {
			return result, fmt.Errorf("failed to push invoice %q: %w", doc.InvoiceNumber, err)
		}
		result.Responses = append(result.Responses, *resp)
		result.DocumentsSent++
	}

	return result, nil
}

func (c *ERPClient) postDocument(ctx context.Context, url string, doc dto.ERPDocument) (*dto.ERPDocumentResponse, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-TOKEN", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ERP API returned status %d: %s", resp.StatusCode, string(body))
	}

	response := &dto.ERPDocumentResponse{
		Document:   doc,
		StatusCode: resp.StatusCode,
	}
	if json.Valid(body) {
		response.Response = json.RawMessage(body)
	}

	log.Printf("Pushed invoice %q to ERP (status %d)", doc.InvoiceNumber, resp.StatusCode)
	return response, nil
}
