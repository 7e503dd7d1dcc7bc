package router

import (
	"log"

	"github.com/growcally/backend/internal/handlers"
	"github.com/growcally/backend/internal/middleware"
	"github.com/growcally/backend/internal/models"
	"github.com/growcally/backend/internal/repositories"
	"github.com/growcally/backend/internal/services"
	"github.com/growcally/backend/pkg/cognito"
	"github.com/growcally/backend/pkg/config"
	"github.com/growcally/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(
	e *echo.Echo,
	pgdb *gorm.DB,
	provider cognito.Provider,
	verifier cognito.TokenVerifier,
	blobStore storage.BlobStore,
	cfg *config.Config,
) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.ProfileImage{},
		&models.Post{},
		&models.MediaFile{},
		&models.Like{},
		&models.Comment{},
		&models.Reply{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)

	// --- Initialize Services ---
	userAssembler := services.NewUserAssembler(userRepo, postRepo, blobStore, cfg.ProfileImageBucketName)
	feedAssembler := services.NewFeedAssembler(userRepo, commentRepo, userAssembler, blobStore, cfg.PostBucketName)
	likeService := services.NewLikeService(likeRepo, postRepo)
	commentService := services.NewCommentService(commentRepo, postRepo, feedAssembler)
	postService := services.NewPostService(postRepo, userAssembler, feedAssembler, blobStore, cfg.PostBucketName)
	profileService := services.NewProfileService(userRepo, userAssembler, blobStore, cfg.ProfileImageBucketName)

	authHandler := handlers.NewAuthHandler(
		userRepo, postRepo, provider, userAssembler, feedAssembler, profileService, cfg.CookieDomain)

	// --- Unprotected routes for authentication ---
	public := e.Group("/api/v1")
	authHandler.RegisterPublicRoutes(public)
	log.Println("Auth routes configured.")

	// --- Protected routes (require a valid session) ---
	api := e.Group("/api/v1")
	api.Use(middleware.SessionGuard(userRepo, provider, verifier, cfg.CookieDomain))
	log.Println("Session guard applied to /api/v1 group.")

	authHandler.RegisterGuardedRoutes(api)

	postHandler := handlers.NewPostHandler(postService)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	likeHandler := handlers.NewLikeHandler(likeService)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	commentHandler := handlers.NewCommentHandler(commentService)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	log.Println("All routes configured.")
}
