package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/deckbuilder/internal/api/request"
	"github.com/mcoot/deckbuilder/internal/api/response"
	"github.com/mcoot/deckbuilder/internal/services/auth"
)

// UserHandler handles account endpoints
type UserHandler struct {
	authService *auth.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// Create handles POST /user/create
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.authService.Register(r.Context(), req.Username, req.Password); err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.Message{Message: "User created"})
}

// Login handles POST /user/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Private(w, http.StatusOK, response.Login{JWT: token})
}
