package agent

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/safarly/backend/internal/service/ai"
	"github.com/safarly/backend/pkg/utils"
)

// Gateway is the slice of the AI client this proxy needs.
type Gateway interface {
	Reply(ctx context.Context, req ai.Request) string
	Validate(ctx context.Context, credential string) error
}

// Handler is the thin proxy between the chat widget and the
// generative-language model. It speaks the widget's envelope:
// {success, response} on the happy path, {success:false, message} otherwise.
type Handler struct {
	gateway Gateway
}

// New creates the agent proxy handler.
func New(gateway Gateway) *Handler {
	return &Handler{gateway: gateway}
}

// RegisterRoutes mounts the proxy routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/agent/validate-credential", h.handleValidateCredential)
	r.Post("/agent/chat", h.handleChat)
}

func (h *Handler) handleValidateCredential(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Credential string `json:"credential"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Credential == "" {
		utils.RespondFailure(w, http.StatusBadRequest, "credential is required")
		return
	}

	if err := h.gateway.Validate(r.Context(), payload.Credential); err != nil {
		utils.RespondFailure(w, http.StatusOK, "credential rejected by the model provider")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "credential is valid",
	})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Credential       string    `json:"credential"`
		Message          string    `json:"message"`
		PersonaName      string    `json:"personaName"`
		PersonaNameCanon string    `json:"personaNameCanonical"`
		Language         string    `json:"language"`
		History          []ai.Turn `json:"history"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Message == "" {
		utils.RespondFailure(w, http.StatusBadRequest, "message is required")
		return
	}

	// Reply never fails: upstream errors come back as the localized apology.
	response := h.gateway.Reply(r.Context(), ai.Request{
		Credential:       payload.Credential,
		Message:          payload.Message,
		PersonaName:      payload.PersonaNameCanon,
		PersonaLocalName: payload.PersonaName,
		Language:         payload.Language,
		History:          payload.History,
	})

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"response": response,
	})
}
