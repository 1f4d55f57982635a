package client

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session carries the bearer token and the expiry hook for all outgoing
// requests. It is injected into the Client at construction so nothing in
// the call tree reads ambient credential storage.
type Session struct {
	mu        sync.Mutex
	token     string
	onExpired func()
	expired   bool
}

// NewSession creates a Session holding the given bearer token. An empty
// token is allowed; requests then go out unauthenticated (the login call
// itself needs this).
func NewSession(token string) *Session {
	return &Session{token: token}
}

// Token returns the current bearer token.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken replaces the token, e.g. after a successful login, and re-arms
// the expiry hook.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expired = false
}

// OnExpired registers fn to run when the server rejects the session's
// credentials. It fires at most once per token.
func (s *Session) OnExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = fn
}

// expire invokes the expiry hook. Called by the Client on 401/403.
func (s *Session) expire() {
	s.mu.Lock()
	if s.expired {
		s.mu.Unlock()
		return
	}
	s.expired = true
	fn := s.onExpired
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// ExpiresAt reads the expiry claim from the token payload without
// verifying the signature; verification is the server's job. Returns an
// error when the token is not a JWT or carries no expiry.
func (s *Session) ExpiresAt() (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token(), claims); err != nil {
		return time.Time{}, fmt.Errorf("client.Session.ExpiresAt: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("client.Session.ExpiresAt: token has no expiry claim")
	}
	return claims.ExpiresAt.Time, nil
}
