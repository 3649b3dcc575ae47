package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/safarly/backend/internal/config"
	"github.com/safarly/backend/internal/service/auth"
	"github.com/safarly/backend/internal/service/settings"
	"github.com/safarly/backend/pkg/utils"
)

// Handler exposes the admin console: login plus the chat-agent settings.
type Handler struct {
	auth     *auth.Service
	settings *settings.Store
}

// New creates the admin handler.
func New(authSvc *auth.Service, store *settings.Store) *Handler {
	return &Handler{auth: authSvc, settings: store}
}

// RegisterRoutes mounts the admin routes. Everything except login requires
// the opaque token from a prior login.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/admin/login", h.handleLogin)
	r.Group(func(g chi.Router) {
		g.Use(h.requireToken)
		g.Get("/admin/agent-settings", h.handleGetSettings)
		g.Put("/admin/agent-settings", h.handleUpdateSettings)
		g.Post("/admin/logout", h.handleLogout)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.auth.Login(payload.Username, payload.Password)
	if err != nil {
		utils.RespondFailure(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Header.Get("X-Admin-Token"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	utils.RespondData(w, http.StatusOK, h.settings.Get())
}

// settingsPayload is the wire form of the agent settings; durations travel
// as strings ("8s", "2m") so the console stays readable.
type settingsPayload struct {
	Enabled    bool              `json:"enabled"`
	Credential string            `json:"credential"`
	Language   string            `json:"language"`
	Timing     map[string]string `json:"timing"`
}

func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var payload settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	next := h.settings.Get()
	next.Enabled = payload.Enabled
	next.Credential = payload.Credential
	if payload.Language != "" {
		next.Language = payload.Language
	}

	if err := applyTiming(&next.Timing, payload.Timing); err != nil {
		utils.RespondFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	h.settings.Update(next)
	utils.RespondData(w, http.StatusOK, next)
}

func applyTiming(timing *config.AgentTiming, overrides map[string]string) error {
	targets := map[string]*time.Duration{
		"queueDelay":       &timing.QueueDelay,
		"idleTimeout":      &timing.IdleTimeout,
		"typingStartDelay": &timing.TypingStartDelay,
		"perWord":          &timing.PerWord,
		"minReveal":        &timing.MinReveal,
		"maxReveal":        &timing.MaxReveal,
		"revealJitterCap":  &timing.RevealJitterCap,
		"deliveredDelay":   &timing.DeliveredDelay,
		"readDelay":        &timing.ReadDelay,
	}

	for key, raw := range overrides {
		target, ok := targets[key]
		if !ok {
			return &timingError{key: key, reason: "unknown timing field"}
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return &timingError{key: key, reason: "invalid duration"}
		}
		*target = d
	}

	if timing.MinReveal > timing.MaxReveal {
		return &timingError{key: "minReveal", reason: "exceeds maxReveal"}
	}
	return nil
}

type timingError struct {
	key    string
	reason string
}

func (e *timingError) Error() string {
	return "timing." + e.key + ": " + e.reason
}

// requireToken guards the admin surface with the opaque login token.
func (h *Handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Admin-Token")
		if token == "" || !h.auth.Check(token) {
			utils.RespondFailure(w, http.StatusUnauthorized, "admin token required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
