package app

import (
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"typedrill/internal/config"
	"typedrill/internal/db"
	"typedrill/internal/handlers"
	"typedrill/internal/pdfextract"
	"typedrill/internal/repository"
	"typedrill/internal/routes"
	"typedrill/internal/services"
)

// InitApp wires the whole service: database, repositories, services,
// handlers and routes.
func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := repository.NewUserRepository(conn)
	textRepo := repository.NewTextRepository(conn)
	categoryRepo := repository.NewCategoryRepository(conn)

	// PDF extraction
	extractTimeout, err := time.ParseDuration(cfg.ExtractTimeout)
	if err != nil {
		extractTimeout = 30 * time.Second
	}
	extractor := pdfextract.New(cfg.PdftotextPath, cfg.UploadTmpDir, extractTimeout)

	// Services
	authService := services.NewAuthService(userRepo)
	textService := services.NewTextService(textRepo, extractor, categoryRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	summaryService := services.NewSummaryService(cfg.OpenAIKey, cfg.OpenAIModel, textRepo)

	// Handlers
	maxUploadMB, err := strconv.ParseInt(cfg.MaxUploadMB, 10, 64)
	if err != nil {
		maxUploadMB = 10
	}
	authHandler := handlers.NewAuthHandler(authService, cfg)
	textHandler := handlers.NewTextHandler(textService, maxUploadMB)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	router := mux.NewRouter()
	routes.InitRoutes(router, cfg.JWTSecret, textRepo, authHandler, textHandler, categoryHandler, summaryHandler)

	return router, nil
}
