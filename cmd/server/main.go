package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/brexcellence/intranet-server/internal/api"
	"github.com/brexcellence/intranet-server/internal/config"
	"github.com/brexcellence/intranet-server/internal/docgen"
	"github.com/brexcellence/intranet-server/internal/mailer"
	"github.com/brexcellence/intranet-server/internal/service"
	"github.com/brexcellence/intranet-server/internal/sheets"
	"github.com/brexcellence/intranet-server/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	logger := utils.NewLogger()

	// Set up database connection
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}
	defer db.Close()

	// Create the tabular store and seed missing sheets
	store := sheets.NewPostgresStore(db)
	if err := config.SeedSheets(context.Background(), store); err != nil {
		log.Fatalf("Failed to seed sheets: %v", err)
	}

	// Create the mail sink
	var mail mailer.Mailer
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		logger.Warn("SMTP_HOST not set; reset mails are recorded, not delivered")
		mail = mailer.NewRecorder()
	}

	// Create the document generator
	docs := docgen.NewGenerator(docgen.Config{
		TemplatesDir: cfg.Documents.TemplatesDir,
		OutputDir:    cfg.Documents.OutputDir,
		DirectorDir:  cfg.Documents.DirectorDir,
		BaseURL:      cfg.Documents.BaseURL,
	}, logger)

	// Create service
	svc := service.NewDefaultService(store, mail, docs, logger, cfg.Auth.JWTSecret, cfg.Server.AppURL)

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	router := gin.Default()
	router.Use(cors.Default())

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
