package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/deckbuilder/internal/api/apierr"
	"github.com/mcoot/deckbuilder/internal/api/handler"
	"github.com/mcoot/deckbuilder/internal/api/response"
	apimiddleware "github.com/mcoot/deckbuilder/internal/api/middleware"
	"github.com/mcoot/deckbuilder/internal/middleware"
	"github.com/mcoot/deckbuilder/internal/services/auth"
	"github.com/mcoot/deckbuilder/internal/services/catalog"
	"github.com/mcoot/deckbuilder/internal/services/decks"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	Catalog        *catalog.Service
	DeckController *decks.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.AuthService)
	cardHandler := handler.NewCardHandler(cfg.Catalog)
	deckHandler := handler.NewDeckHandler(cfg.DeckController)

	// Common middleware, outermost first
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewInternalError())
	})))
	r.Use(middleware.Logging(cfg.Logger))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, handler.NewNotFoundError())
	})

	// Public routes
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/user/create", userHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/user/login", userHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/definition/{word}", cardHandler.Definition).Methods(http.MethodGet)
	r.HandleFunc("/cards/search", cardHandler.Search).Methods(http.MethodGet)
	r.HandleFunc("/cards/autocomplete", cardHandler.Autocomplete).Methods(http.MethodGet)
	r.HandleFunc("/card/{id}", cardHandler.Get).Methods(http.MethodGet)

	// Deck routes (all require auth)
	authMiddleware := apimiddleware.Auth(cfg.AuthService)

	deck := r.PathPrefix("/deck").Subrouter()
	deck.Use(authMiddleware)
	deck.HandleFunc("/create", deckHandler.Create).Methods(http.MethodPost)
	deck.HandleFunc("/addCard", deckHandler.AddCards).Methods(http.MethodPost)
	deck.HandleFunc("/removeCard", deckHandler.RemoveCard).Methods(http.MethodDelete)
	deck.HandleFunc("/delete/{id}", deckHandler.Delete).Methods(http.MethodDelete)
	deck.HandleFunc("/{id}", deckHandler.Get).Methods(http.MethodGet)

	decksRouter := r.PathPrefix("/decks").Subrouter()
	decksRouter.Use(authMiddleware)
	decksRouter.HandleFunc("/AllUserDecks", deckHandler.ListMine).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
