package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"typedrill/internal/handlers"
	"typedrill/internal/middleware"
)

func InitRoutes(
	router *mux.Router,
	jwtSecret string,
	textLoader middleware.TextLoader,
	authHandler *handlers.AuthHandler,
	textHandler *handlers.TextHandler,
	categoryHandler *handlers.CategoryHandler,
	summaryHandler *handlers.SummaryHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- Public ---
	api.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/refresh", authHandler.Refresh).Methods(http.MethodPost)

	// --- JWT protected ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth(jwtSecret))

	protected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/profile", authHandler.Profile).Methods(http.MethodGet)

	protected.HandleFunc("/texts", textHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/texts", textHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/texts/order", textHandler.Reorder).Methods(http.MethodPost)

	protected.HandleFunc("/categories", categoryHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/categories", categoryHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/categories/{id:[0-9]+}", categoryHandler.Delete).Methods(http.MethodDelete)

	// --- Ownership guarded: every route with a text id ---
	owned := protected.PathPrefix("/texts").Subrouter()
	owned.Use(middleware.TextOwnership(textLoader))

	owned.HandleFunc("/{id:[0-9]+}", textHandler.Get).Methods(http.MethodGet)
	owned.HandleFunc("/{id:[0-9]+}", textHandler.Update).Methods(http.MethodPut)
	owned.HandleFunc("/{id:[0-9]+}", textHandler.Delete).Methods(http.MethodDelete)
	owned.HandleFunc("/{id:[0-9]+}/practice", textHandler.Practice).Methods(http.MethodGet)
	owned.HandleFunc("/{id:[0-9]+}/progress", textHandler.SaveProgress).Methods(http.MethodPut)
	owned.HandleFunc("/{id:[0-9]+}/summarize", summaryHandler.Summarize).Methods(http.MethodPost)
}
