package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/safarly/backend/internal/service/ai"
)

type fakeGateway struct {
	validateErr error
	lastRequest ai.Request
}

func (f *fakeGateway) Reply(_ context.Context, req ai.Request) string {
	f.lastRequest = req
	return "reply to " + req.Message
}

func (f *fakeGateway) Validate(_ context.Context, credential string) error {
	return f.validateErr
}

func setupRouter(gw Gateway) *chi.Mux {
	r := chi.NewRouter()
	New(gw).RegisterRoutes(r)
	return r
}

func post(r *chi.Mux, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestValidateCredentialSuccess(t *testing.T) {
	r := setupRouter(&fakeGateway{})

	resp := post(r, "/agent/validate-credential", map[string]string{"credential": "key-123"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Fatalf("expected success, got message %q", body.Message)
	}
}

func TestValidateCredentialRejected(t *testing.T) {
	r := setupRouter(&fakeGateway{validateErr: errors.New("denied")})

	resp := post(r, "/agent/validate-credential", map[string]string{"credential": "bad"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Fatal("expected rejection")
	}
}

func TestValidateCredentialMissing(t *testing.T) {
	r := setupRouter(&fakeGateway{})

	resp := post(r, "/agent/validate-credential", map[string]string{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatProxiesToGateway(t *testing.T) {
	gw := &fakeGateway{}
	r := setupRouter(gw)

	resp := post(r, "/agent/chat", map[string]any{
		"credential":           "key-123",
		"message":              "When does the Istanbul package depart?",
		"personaName":          "أميرة",
		"personaNameCanonical": "Amira",
		"language":             "ar",
		"history": []map[string]string{
			{"role": "user", "text": "hi"},
			{"role": "agent", "text": "hello"},
		},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Response != "reply to When does the Istanbul package depart?" {
		t.Fatalf("unexpected body: %+v", body)
	}

	if gw.lastRequest.PersonaName != "Amira" {
		t.Fatalf("canonical name not forwarded: %q", gw.lastRequest.PersonaName)
	}
	if gw.lastRequest.PersonaLocalName != "أميرة" {
		t.Fatalf("localized name not forwarded: %q", gw.lastRequest.PersonaLocalName)
	}
	if len(gw.lastRequest.History) != 2 {
		t.Fatalf("history not forwarded: %+v", gw.lastRequest.History)
	}
}

func TestChatRequiresMessage(t *testing.T) {
	r := setupRouter(&fakeGateway{})

	resp := post(r, "/agent/chat", map[string]string{"credential": "key-123"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Fatal("expected success=false")
	}
}
