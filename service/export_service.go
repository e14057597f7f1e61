package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/otabekdev/invoice-data-extraction/dto"
)

// exportColumns is the column layout shared by the CSV and XLSX exports.
var exportColumns = []string{
	"Filename",
	"Factory",
	"Invoice Number",
	"Invoice Date",
	"Order Number",
	"Order Date",
	"Position",
	"Nomenclature (CA Code)",
	"Quantity",
	"Unit",
	"Unit Price",
	"Line Total",
}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// Filename builds the attachment name for an export download,
// e.g. extraction_results_20240301_154500.csv.
func (s *ExportService) Filename(ext string) string {
	return fmt.Sprintf("extraction_results_%s.%s", time.Now().Format("20060102_150405"), ext)
}

// ExportCSV renders one row per extracted line item. Invoices that carry
// header data but no items still get a single row; failed results are skipped.
func (s *ExportService) ExportCSV(results []dto.ExtractionResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range exportRows(results) {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportXLSX renders the same table as ExportCSV into a single-sheet workbook.
func (s *ExportService) ExportXLSX(results []dto.ExtractionResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Extraction Results"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for rowIdx, row := range exportRows(results) {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 24) // filename, factory
	_ = f.SetColWidth(sheet, "C", "F", 16) // invoice and order header
	_ = f.SetColWidth(sheet, "G", "H", 22) // position, nomenclature
	_ = f.SetColWidth(sheet, "I", "L", 12) // amounts

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func exportRows(results []dto.ExtractionResult) [][]string {
	var rows [][]string
	for _, result := range results {
		if !result.Success || result.Invoice == nil {
			continue
		}
		invoice := result.Invoice
		if len(invoice.LineItems) == 0 {
			rows = append(rows, []string{
				result.Filename,
				result.Factory,
				invoice.InvoiceNumber,
				invoice.InvoiceDate,
				"", "", "", "", "", "", "", "",
			})
			continue
		}
		for _, item := range invoice.LineItems {
			rows = append(rows, []string{
				result.Filename,
				result.Factory,
				invoice.InvoiceNumber,
				invoice.InvoiceDate,
				item.OrderNumber,
				item.OrderDate,
				item.Position,
				item.CatalogCode,
				item.Quantity.String(),
				item.Unit,
				item.UnitPrice.String(),
				item.LineTotal.String(),
			})
		}
	}
	return rows
}
