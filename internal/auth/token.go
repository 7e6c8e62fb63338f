// Package auth implements OAuth2 client-credentials token acquisition for
// the Orchestrator identity endpoint.
package auth

import (
	"context"
	"sync"
	"time"
)

// TokenManager produces bearer tokens for outgoing requests.
type TokenManager interface {
	// GetToken returns the cached token, acquiring one on first call.
	GetToken(ctx context.Context) (string, error)

	// SetToken seeds the cache, bypassing acquisition.
	SetToken(token string, acquiredAt time.Time)
}

// Token is the identity endpoint's token response. There is no expiry
// handling: once acquired, a token is treated as valid for the process
// lifetime.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`

	AcquiredAt time.Time `json:"-"`
}

// tokenStore holds the cached token behind a read/write mutex.
type tokenStore struct {
	mu    sync.RWMutex
	token *Token
}

func (s *tokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *tokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}
