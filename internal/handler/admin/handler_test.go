package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/safarly/backend/internal/config"
	"github.com/safarly/backend/internal/service/auth"
	"github.com/safarly/backend/internal/service/settings"
)

func setupRouter() (*chi.Mux, *settings.Store) {
	authSvc := auth.NewService(config.AdminConfig{Username: "admin", Password: "secret"})
	store := settings.NewStore(config.AgentConfig{Enabled: true, Language: "ar", Timing: config.DefaultAgentTiming()}, "seed-key")

	r := chi.NewRouter()
	New(authSvc, store).RegisterRoutes(r)
	return r, store
}

func doJSON(r *chi.Mux, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Admin-Token", token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func login(t *testing.T, r *chi.Mux) string {
	t.Helper()

	resp := doJSON(r, http.MethodPost, "/admin/login", "", map[string]string{
		"username": "admin",
		"password": "secret",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed: %d", resp.Code)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if body.Token == "" {
		t.Fatal("empty token")
	}
	return body.Token
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(r, http.MethodPost, "/admin/login", "", map[string]string{
		"username": "admin",
		"password": "nope",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestSettingsRequireToken(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(r, http.MethodGet, "/admin/agent-settings", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	resp = doJSON(r, http.MethodGet, "/admin/agent-settings", "forged", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", resp.Code)
	}
}

func TestUpdateSettings(t *testing.T) {
	r, store := setupRouter()
	token := login(t, r)

	resp := doJSON(r, http.MethodPut, "/admin/agent-settings", token, map[string]any{
		"enabled":    false,
		"credential": "rotated-key",
		"language":   "en",
		"timing": map[string]string{
			"idleTimeout": "90s",
			"queueDelay":  "5s",
		},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	got := store.Get()
	if got.Enabled {
		t.Fatal("enabled flag not applied")
	}
	if got.Credential != "rotated-key" {
		t.Fatalf("credential not applied: %q", got.Credential)
	}
	if got.Language != "en" {
		t.Fatalf("language not applied: %q", got.Language)
	}
	if got.Timing.IdleTimeout != 90*time.Second {
		t.Fatalf("idle timeout not applied: %s", got.Timing.IdleTimeout)
	}
	if got.Timing.QueueDelay != 5*time.Second {
		t.Fatalf("queue delay not applied: %s", got.Timing.QueueDelay)
	}
	// Untouched fields keep their defaults.
	if got.Timing.MaxReveal != 25*time.Second {
		t.Fatalf("unrelated timing mutated: %s", got.Timing.MaxReveal)
	}
}

func TestUpdateSettingsRejectsBadTiming(t *testing.T) {
	r, _ := setupRouter()
	token := login(t, r)

	resp := doJSON(r, http.MethodPut, "/admin/agent-settings", token, map[string]any{
		"enabled": true,
		"timing":  map[string]string{"idleTimeout": "soon"},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	resp = doJSON(r, http.MethodPut, "/admin/agent-settings", token, map[string]any{
		"enabled": true,
		"timing":  map[string]string{"warpSpeed": "1s"},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", resp.Code)
	}
}

func TestLogout(t *testing.T) {
	r, _ := setupRouter()
	token := login(t, r)

	resp := doJSON(r, http.MethodPost, "/admin/logout", token, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	resp = doJSON(r, http.MethodGet, "/admin/agent-settings", token, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.Code)
	}
}
