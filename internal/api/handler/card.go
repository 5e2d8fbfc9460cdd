package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/deckbuilder/internal/api/response"
	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/services/catalog"
)

// CardHandler handles card and definition lookups
type CardHandler struct {
	catalog *catalog.Service
}

// NewCardHandler creates a new card handler
func NewCardHandler(catalog *catalog.Service) *CardHandler {
	return &CardHandler{
		catalog: catalog,
	}
}

// Definition handles GET /definition/{word}
func (h *CardHandler) Definition(w http.ResponseWriter, r *http.Request) {
	def, err := h.catalog.Definition(mux.Vars(r)["word"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, def)
}

// Search handles GET /cards/search?cardName=
func (h *CardHandler) Search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("cardName")
	if name == "" {
		WriteError(w, NewInvalidRequestError("cardName is required"))
		return
	}

	cards, err := h.catalog.Search(name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, cards)
}

// Get handles GET /card/{id}
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	card, err := h.catalog.Card(model.CardID(mux.Vars(r)["id"]))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, card)
}

// Autocomplete handles GET /cards/autocomplete?q=
func (h *CardHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	names := h.catalog.Autocomplete(r.URL.Query().Get("q"))
	response.JSON(w, http.StatusOK, response.CatalogFromNames(names))
}
