package service

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/otabekdev/invoice-data-extraction/dto"
	"github.com/otabekdev/invoice-data-extraction/extractor"
)

// Below this many text-layer characters a PDF is treated as scanned and
// sent through OCR instead.
const minTextLayerChars = 20

var qrDigitRun = regexp.MustCompile(`^\d{4,}$`)

// OCRClient recognizes the text on an image file. client.TesseractClient
// is the production implementation.
type OCRClient interface {
	ExtractText(imagePath string) (string, error)
}

// ExtractionService turns uploaded invoice PDFs into structured records.
type ExtractionService struct {
	engine       *extractor.Extractor
	pdfProcessor PDFProcessor
	ocrClient    OCRClient
}

func NewExtractionService(
	engine *extractor.Extractor,
	pdfProcessor PDFProcessor,
	ocrClient OCRClient,
) *ExtractionService {
	return &ExtractionService{
		engine:       engine,
		pdfProcessor: pdfProcessor,
		ocrClient:    ocrClient,
	}
}

// ProcessDocuments extracts every uploaded file concurrently and returns
// one result per file, preserving upload order.
func (s *ExtractionService) ProcessDocuments(files []*multipart.FileHeader, factory, password string) []dto.ExtractionResult {
	results := make([]dto.ExtractionResult, len(files))

	var wg sync.WaitGroup
	for idx, fileHeader := range files {
		wg.Add(1)
		go func(i int, file *multipart.FileHeader) {
			defer wg.Done()
			results[i] = s.processDocument(file, factory, password)
		}(idx, fileHeader)
	}
	wg.Wait()

	return results
}

// processDocument handles one file end to end. Extraction itself never
// fails: an unreadable document yields an empty record with score 0, and
// Success is false only when the upload could not be read at all.
func (s *ExtractionService) processDocument(fileHeader *multipart.FileHeader, factory, password string) dto.ExtractionResult {
	result := dto.ExtractionResult{
		Filename: fileHeader.Filename,
		Factory:  factory,
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		result.Error = "only PDF files are supported"
		return result
	}

	f, err := fileHeader.Open()
	if err != nil {
		result.Error = fmt.Sprintf("failed to open file: %v", err)
		return result
	}
	defer f.Close()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read file: %v", err)
		return result
	}

	pages, err := s.pdfProcessor.ExtractPageTexts(fileBytes, password)
	if err != nil {
		log.Printf("PDF text extraction failed for %s: %v", fileHeader.Filename, err)
		pages = nil
	}

	// OCR and the QR fallback read the same embedded images; pull them out
	// of the PDF at most once per document.
	var images []image.Image
	imagesLoaded := false

	// Scanned invoices carry no usable text layer; OCR the embedded page
	// images instead.
	if textLength(pages) < minTextLayerChars {
		log.Printf("PDF %s has minimal text, attempting image-based OCR", fileHeader.Filename)
		images = s.extractImages(fileBytes, password, fileHeader.Filename)
		imagesLoaded = true
		if ocrPages := s.ocrPages(images, fileHeader.Filename); len(ocrPages) > 0 {
			pages = ocrPages
		}
	}

	record, confidence, diags := s.engine.ExtractPages(pages)

	// Hettich documents print a QR code next to the header; use it when
	// the number label did not survive text extraction.
	if record.InvoiceNumber == "" {
		if !imagesLoaded {
			images = s.extractImages(fileBytes, password, fileHeader.Filename)
		}
		if number := s.invoiceNumberFromQR(images, fileHeader.Filename); number != "" {
			record.InvoiceNumber = number
			confidence = s.engine.Score(record)
		}
	}

	result.Invoice = record
	result.Confidence = confidence
	result.Diagnostics = diags
	result.Success = true
	return result
}

// extractImages pulls the embedded page images out of the PDF. Failures
// are logged and yield an empty set; extraction carries on with whatever
// text is already there.
func (s *ExtractionService) extractImages(pdfData []byte, password, filename string) []image.Image {
	images, err := s.pdfProcessor.ExtractImages(pdfData, password)
	if err != nil {
		log.Printf("Failed to extract images from PDF %s: %v", filename, err)
		return nil
	}
	return images
}

// ocrPages runs OCR over each embedded page image, producing one text blob
// per image.
func (s *ExtractionService) ocrPages(images []image.Image, filename string) []string {
	var pages []string
	for _, img := range images {
		tempImgFile, err := saveImageToTempFile(img)
		if err != nil {
			log.Printf("Failed to save temporary image for OCR: %v", err)
			continue
		}

		pageText, err := s.ocrClient.ExtractText(tempImgFile)
		os.Remove(tempImgFile)
		if err != nil {
			log.Printf("OCR failed for a page in %s: %v", filename, err)
			continue
		}
		pages = append(pages, pageText)
	}

	return pages
}

// invoiceNumberFromQR scans the page images for a QR code whose payload
// carries the invoice number, either labeled or as a bare digit run.
func (s *ExtractionService) invoiceNumberFromQR(images []image.Image, filename string) string {
	for _, img := range images {
		bmp, err := gozxing.NewBinaryBitmapFromImage(img)
		if err != nil {
			continue
		}

		qrResult, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
		if err != nil {
			continue
		}

		payload := qrResult.GetText()
		if number, _ := s.engine.ExtractHeader(payload); number != "" {
			log.Printf("Recovered invoice number from QR code in %s", filename)
			return number
		}
		if trimmed := strings.TrimSpace(payload); qrDigitRun.MatchString(trimmed) {
			log.Printf("Recovered invoice number from QR code in %s", filename)
			return trimmed
		}
	}

	return ""
}

func textLength(pages []string) int {
	total := 0
	for _, page := range pages {
		total += len(strings.TrimSpace(page))
	}
	return total
}

// saveImageToTempFile writes an image to a temporary PNG file for OCR.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "invoice-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
