package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/otabekdev/invoice-data-extraction/client"
	"github.com/otabekdev/invoice-data-extraction/config"
	"github.com/otabekdev/invoice-data-extraction/extractor"
	"github.com/otabekdev/invoice-data-extraction/handler"
	"github.com/otabekdev/invoice-data-extraction/service"
	"github.com/otabekdev/invoice-data-extraction/store"
)

func main() {
	// Load .env if present; deployments usually set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	// Amounts go out as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize clients
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguages...)
	erpClient := client.NewERPClient(cfg.ERPBaseURL, cfg.ERPToken)

	// Initialize PDF processor and extraction engine
	pdfProcessor := service.NewPDFProcessor()
	engine := extractor.New()

	// Initialize storage
	resultsStore := store.NewResultsStore()

	// Initialize service layer
	extractionService := service.NewExtractionService(engine, pdfProcessor, tesseractClient)
	exportService := service.NewExportService()

	// Initialize handler layer
	extractHandler := handler.NewExtractHandler(extractionService, resultsStore)
	exportHandler := handler.NewExportHandler(exportService, resultsStore)
	erpHandler := handler.NewERPHandler(erpClient, resultsStore)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory
	router.MaxMultipartMemory = cfg.MaxUploadSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Invoice Data Extraction",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		invoices := api.Group("/invoices")
		{
			invoices.POST("/extract", extractHandler.Extract)
			invoices.GET("/export/:batchID", exportHandler.Export)
			invoices.POST("/push/:batchID", erpHandler.Push)
		}
	}

	// Start server
	log.Printf("Starting Invoice Data Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
