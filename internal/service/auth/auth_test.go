package auth

import (
	"testing"

	"github.com/safarly/backend/internal/config"
)

func newTestService() *Service {
	return NewService(config.AdminConfig{Username: "admin", Password: "secret"})
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.Login("admin", "secret")
	if err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !svc.Check(token) {
		t.Fatal("issued token not accepted")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Login("admin", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("root", "secret"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.Login("admin", "secret")
	if err != nil {
		t.Fatalf("Login err: %v", err)
	}

	svc.Logout(token)
	if svc.Check(token) {
		t.Fatal("revoked token still accepted")
	}
	svc.Logout(token) // no-op
}

func TestCheckUnknownToken(t *testing.T) {
	svc := newTestService()
	if svc.Check("made-up") {
		t.Fatal("unknown token accepted")
	}
}
