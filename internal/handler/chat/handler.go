package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatservice "github.com/safarly/backend/internal/service/chat"
	"github.com/safarly/backend/pkg/utils"
)

// Handler drives the chat-widget session lifecycle over HTTP.
type Handler struct {
	manager *chatservice.Manager
}

// New creates the chat handler.
func New(manager *chatservice.Manager) *Handler {
	return &Handler{manager: manager}
}

// RegisterRoutes mounts the widget session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/session", h.handleOpenSession)
	r.Get("/chat/session/{sessionID}", h.handleGetSession)
	r.Post("/chat/session/{sessionID}/messages", h.handleSubmitMessage)
	r.Delete("/chat/session/{sessionID}", h.handleCloseSession)
	r.Get("/chat/{sessionID}/events", h.handleEvents)
}

func (h *Handler) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Open(r.Context())
	utils.RespondJSON(w, http.StatusCreated, snap)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	snap, err := h.manager.Snapshot(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleSubmitMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.manager.Submit(r.Context(), sessionID, payload.Content); err != nil {
		utils.RespondError(w, submitStatus(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.manager.Close(sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func submitStatus(err error) int {
	switch {
	case errors.Is(err, chatservice.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, chatservice.ErrSessionEnded):
		return http.StatusConflict
	case errors.Is(err, chatservice.ErrEmptyMessage):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
