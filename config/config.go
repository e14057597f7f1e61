package config

import (
	"os"
	"strings"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	OCRLanguages      []string
	ERPBaseURL        string
	ERPToken          string
	MaxUploadSize     int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/4.00/tessdata"
	}

	languages := []string{"eng"}
	if raw := os.Getenv("OCR_LANGUAGES"); raw != "" {
		languages = nil
		for _, lang := range strings.Split(raw, ",") {
			if lang = strings.TrimSpace(lang); lang != "" {
				languages = append(languages, lang)
			}
		}
	}

	erpBaseURL := os.Getenv("ERP_API_BASE_URL")
	if erpBaseURL == "" {
		erpBaseURL = "https://api.eman.uz/api/odata/eman_materials/"
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		OCRLanguages:      languages,
		ERPBaseURL:        erpBaseURL,
		ERPToken:          os.Getenv("ERP_API_TOKEN"),
		MaxUploadSize:     32 * 1024 * 1024, // 32 MB
	}
}
