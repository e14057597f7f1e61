package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"mime/multipart"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"

	"github.com/otabekdev/invoice-data-extraction/extractor"
)

// fakePDFProcessor returns canned pages and images regardless of input.
type fakePDFProcessor struct {
	pages      []string
	images     []image.Image
	err        error
	imageCalls int
}

func (f *fakePDFProcessor) ExtractPageTexts(pdfData []byte, password string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

func (f *fakePDFProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	f.imageCalls++
	return f.images, nil
}

// fakeOCRClient recognizes every page image as the same canned text.
type fakeOCRClient struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCRClient) ExtractText(imagePath string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// echoPDFProcessor reflects the uploaded bytes back as a single text page,
// so each file in a batch produces a distinguishable result.
type echoPDFProcessor struct{}

func (echoPDFProcessor) ExtractPageTexts(pdfData []byte, password string) ([]string, error) {
	return []string{string(pdfData)}, nil
}

func (echoPDFProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	return nil, nil
}

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("files[]", filename)
	assert.NoError(t, err)
	_, err = fw.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	assert.NoError(t, err)
	return form.File["files[]"][0]
}

// qrCodeImage renders a payload as a QR code; *gozxing.BitMatrix satisfies
// image.Image.
func qrCodeImage(t *testing.T, payload string) image.Image {
	t.Helper()

	matrix, err := qrcode.NewQRCodeWriter().Encode(payload, gozxing.BarcodeFormat_QR_CODE, 256, 256, nil)
	assert.NoError(t, err)
	return matrix
}

const fullInvoiceText = `Invoice
Number: 12345
Date: 01.03.2024

Order 77 - 15.02.2024
0001 CA:9988 DE 10,000 PCS 2,50 1 25,00
Total amount 25,00`

// Same document without the labeled invoice number.
const headerlessInvoiceText = `Invoice
Date: 01.03.2024

Order 77 - 15.02.2024
0001 CA:9988 DE 10,000 PCS 2,50 1 25,00
Total amount 25,00`

func TestProcessDocumentsFullInvoice(t *testing.T) {
	svc := NewExtractionService(extractor.New(), &fakePDFProcessor{pages: []string{fullInvoiceText}}, nil)

	file := makeFileHeader(t, "invoice.pdf", []byte("%PDF-1.4 fake"))
	results := svc.ProcessDocuments([]*multipart.FileHeader{file}, "leuze", "")

	assert.Len(t, results, 1)
	result := results[0]
	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, "invoice.pdf", result.Filename)
	assert.Equal(t, "leuze", result.Factory)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Empty(t, result.Diagnostics)

	assert.Equal(t, "12345", result.Invoice.InvoiceNumber)
	assert.Equal(t, "2024-03-01", result.Invoice.InvoiceDate)
	assert.Len(t, result.Invoice.LineItems, 1)
	assert.Equal(t, "77", result.Invoice.LineItems[0].OrderNumber)
	assert.Equal(t, "10", result.Invoice.LineItems[0].Quantity.String())
	assert.NotNil(t, result.Invoice.TotalAmount)
	assert.Equal(t, "25", result.Invoice.TotalAmount.String())
}

func TestProcessDocumentsRejectsNonPDF(t *testing.T) {
	svc := NewExtractionService(extractor.New(), &fakePDFProcessor{}, nil)

	file := makeFileHeader(t, "photo.jpg", []byte("not a pdf"))
	results := svc.ProcessDocuments([]*multipart.FileHeader{file}, "leuze", "")

	assert.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, "only PDF files are supported", results[0].Error)
	assert.Nil(t, results[0].Invoice)
}

func TestProcessDocumentsPreservesUploadOrder(t *testing.T) {
	svc := NewExtractionService(extractor.New(), echoPDFProcessor{}, nil)

	var files []*multipart.FileHeader
	for i := 0; i < 8; i++ {
		content := fmt.Sprintf("Invoice\nNumber: %d\nDate: 01.03.2024\npadding padding padding", 1000+i)
		files = append(files, makeFileHeader(t, fmt.Sprintf("invoice-%d.pdf", i), []byte(content)))
	}

	results := svc.ProcessDocuments(files, "leuze", "")

	assert.Len(t, results, 8)
	for i, result := range results {
		assert.Equal(t, fmt.Sprintf("invoice-%d.pdf", i), result.Filename)
		assert.True(t, result.Success)
		assert.Equal(t, fmt.Sprintf("%d", 1000+i), result.Invoice.InvoiceNumber)
	}
}

func TestProcessDocumentsUnreadablePDFStillSucceeds(t *testing.T) {
	svc := NewExtractionService(extractor.New(), &fakePDFProcessor{err: errors.New("malformed xref table")}, nil)

	file := makeFileHeader(t, "broken.pdf", []byte("garbage"))
	results := svc.ProcessDocuments([]*multipart.FileHeader{file}, "leuze", "")

	assert.Len(t, results, 1)
	result := results[0]
	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, 0.0, result.Confidence)
	assert.NotNil(t, result.Invoice)
	assert.Empty(t, result.Invoice.InvoiceNumber)
	assert.Empty(t, result.Invoice.LineItems)
}

func TestProcessDocumentsOCRFallbackOnScannedPDF(t *testing.T) {
	proc := &fakePDFProcessor{
		pages:  []string{"scan"},
		images: []image.Image{image.NewGray(image.Rect(0, 0, 8, 8))},
	}
	ocr := &fakeOCRClient{text: fullInvoiceText}
	svc := NewExtractionService(extractor.New(), proc, ocr)

	file := makeFileHeader(t, "scanned.pdf", []byte("%PDF-1.4 fake"))
	results := svc.ProcessDocuments([]*multipart.FileHeader{file}, "leuze", "")

	assert.Len(t, results, 1)
	result := results[0]
	assert.True(t, result.Success)
	assert.Equal(t, 1, ocr.calls)
	assert.Equal(t, "12345", result.Invoice.InvoiceNumber)
	assert.Len(t, result.Invoice.LineItems, 1)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestProcessDocumentsQRRecoversInvoiceNumber(t *testing.T) {
	for _, payload := range []string{"7001234", "Number: 7001234"} {
		proc := &fakePDFProcessor{
			pages:  []string{headerlessInvoiceText},
			images: []image.Image{qrCodeImage(t, payload)},
		}
		ocr := &fakeOCRClient{text: "should not run"}
		svc := NewExtractionService(extractor.New(), proc, ocr)

		file := makeFileHeader(t, "qr.pdf", []byte("%PDF-1.4 fake"))
		results := svc.ProcessDocuments([]*multipart.FileHeader{file}, "leuze", "")

		result := results[0]
		assert.Equal(t, "7001234", result.Invoice.InvoiceNumber, "payload %q", payload)
		assert.Equal(t, 1.0, result.Confidence, "payload %q", payload)
		assert.Equal(t, 1, proc.imageCalls, "payload %q", payload)
		assert.Equal(t, 0, ocr.calls, "payload %q", payload)
	}
}

func TestProcessDocumentsQRDoesNotOverwriteNumber(t *testing.T) {
	proc := &fakePDFProcessor{
		pages:  []string{fullInvoiceText},
		images: []image.Image{qrCodeImage(t, "9999999")},
	}
	ocr := &fakeOCRClient{text: "should not run"}
	svc := NewExtractionService(extractor.New(), proc, ocr)

	file := makeFileHeader(t, "qr.pdf", []byte("%PDF-1.4 fake"))
	results := svc.ProcessDocuments([]*multipart.FileHeader{file}, "leuze", "")

	assert.Equal(t, "12345", results[0].Invoice.InvoiceNumber)
	assert.Equal(t, 0, ocr.calls)
	assert.Equal(t, 0, proc.imageCalls)
}

func TestProcessDocumentsExtractsImagesOnce(t *testing.T) {
	proc := &fakePDFProcessor{pages: []string{"scan"}}
	svc := NewExtractionService(extractor.New(), proc, &fakeOCRClient{})

	file := makeFileHeader(t, "scanned.pdf", []byte("%PDF-1.4 fake"))
	results := svc.ProcessDocuments([]*multipart.FileHeader{file}, "leuze", "")

	// A sparse text layer and a missing invoice number both reach for the
	// embedded images.
	assert.Equal(t, 1, proc.imageCalls)
	assert.True(t, results[0].Success)
	assert.Empty(t, results[0].Invoice.InvoiceNumber)
}
