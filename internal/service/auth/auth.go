package auth

import (
	"crypto/subtle"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/safarly/backend/internal/config"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service guards the admin console with the single configured credential
// pair. Successful logins mint opaque tokens held in memory; restarting the
// process signs everyone out.
type Service struct {
	cfg config.AdminConfig

	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewService creates the admin auth service.
func NewService(cfg config.AdminConfig) *Service {
	return &Service{
		cfg:    cfg,
		tokens: make(map[string]struct{}),
	}
}

// Login validates the credential pair and returns an opaque token.
func (s *Service) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()
	return token, nil
}

// Check reports whether a token was issued by Login.
func (s *Service) Check(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok
}

// Logout revokes a token. Revoking an unknown token is a no-op.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}
