package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/deckbuilder/internal/api/middleware"
	"github.com/mcoot/deckbuilder/internal/api/response"
	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/services/decks"
)

// DeckHandler handles deck endpoints. Every route requires auth.
type DeckHandler struct {
	controller *decks.Controller
}

// NewDeckHandler creates a new deck handler
func NewDeckHandler(controller *decks.Controller) *DeckHandler {
	return &DeckHandler{
		controller: controller,
	}
}

// Create handles POST /deck/create?deckName=&deckType=&commanderName=
func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner := middleware.MustGetUsername(r.Context())
	q := r.URL.Query()

	deck, err := h.controller.CreateDeck(
		r.Context(),
		owner,
		q.Get("deckName"),
		model.DeckType(q.Get("deckType")),
		q.Get("commanderName"),
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.DeckFromModel(deck))
}

// ListMine handles GET /decks/AllUserDecks
func (h *DeckHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	owner := middleware.MustGetUsername(r.Context())

	list, err := h.controller.ListDecks(r.Context(), owner)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DecksFromModel(list))
}

// Get handles GET /deck/{id}
func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner := middleware.MustGetUsername(r.Context())

	deck, err := h.controller.GetDeck(r.Context(), owner, model.DeckID(mux.Vars(r)["id"]))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DeckFromModel(deck))
}

// AddCards handles POST /deck/addCard?deckId=&cardNames=...
func (h *DeckHandler) AddCards(w http.ResponseWriter, r *http.Request) {
	owner := middleware.MustGetUsername(r.Context())
	q := r.URL.Query()

	deckID := q.Get("deckId")
	if deckID == "" {
		WriteError(w, NewInvalidRequestError("deckId is required"))
		return
	}

	deck, err := h.controller.AddCards(r.Context(), owner, model.DeckID(deckID), q["cardNames"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DeckFromModel(deck))
}

// RemoveCard handles DELETE /deck/removeCard?deckId=&cardId=
func (h *DeckHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	owner := middleware.MustGetUsername(r.Context())
	q := r.URL.Query()

	deckID, cardID := q.Get("deckId"), q.Get("cardId")
	if deckID == "" || cardID == "" {
		WriteError(w, NewInvalidRequestError("deckId and cardId are required"))
		return
	}

	deck, err := h.controller.RemoveCard(r.Context(), owner, model.DeckID(deckID), model.CardID(cardID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DeckFromModel(deck))
}

// Delete handles DELETE /deck/delete/{id}
func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner := middleware.MustGetUsername(r.Context())

	if err := h.controller.DeleteDeck(r.Context(), owner, model.DeckID(mux.Vars(r)["id"])); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
