package client

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient runs Tesseract OCR over image files. Invoices from
// European suppliers mix English and German, so the client accepts a list
// of language models.
type TesseractClient struct {
	tessdataPrefix string
	languages      []string
}

func NewTesseractClient(tessdataPrefix string, languages ...string) *TesseractClient {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractClient{
		tessdataPrefix: tessdataPrefix,
		languages:      languages,
	}
}

// ExtractText extracts text from the image at the given path.
func (tc *TesseractClient) ExtractText(imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.tessdataPrefix != "" {
		client.SetTessdataPrefix(tc.tessdataPrefix)
	}

	if err := client.SetLanguage(tc.languages...); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return text, nil
}
