package main

import (
	"context"
	"log"

	"github.com/growcally/backend/internal/router"
	"github.com/growcally/backend/pkg/cognito"
	"github.com/growcally/backend/pkg/config"
	"github.com/growcally/backend/pkg/storage"
	"github.com/growcally/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	ctx := context.Background()

	// Initialize AWS clients
	provider, err := cognito.NewClient(ctx, cfg.AWSRegion, cfg.CognitoClientID)
	if err != nil {
		log.Fatalf("Failed to initialize Cognito: %v", err)
	}
	verifier, err := cognito.NewVerifier(cfg.AWSRegion, cfg.CognitoUserPoolID, cfg.CognitoClientID)
	if err != nil {
		log.Fatalf("Failed to initialize token verifier: %v", err)
	}
	blobStore, err := storage.NewClient(ctx, cfg.AWSRegion)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, provider, verifier, blobStore, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
