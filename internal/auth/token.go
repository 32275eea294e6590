package auth

import (
	"context"
	"sync"
	"time"

	"github.com/oktakit/okta/internal/constants"
)

// TokenManager provides access tokens for API requests.
type TokenManager interface {
	// GetToken returns a valid access token, refreshing it if necessary.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces a refresh regardless of the cached token's state.
	RefreshToken(ctx context.Context) error
	// SetToken manually installs a token.
	SetToken(token string, expiresAt time.Time)
}

// Token is a cached access token.
type Token struct {
	AccessToken string
	TokenType   string
	Scope       string
	ExpiresIn   int
	ExpiresAt   time.Time
}

// Valid reports whether the token can still be attached to a request. Tokens
// within the expiration buffer of their expiry are treated as stale so that a
// request never leaves the process with a token about to expire.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpirationBuffer).Before(t.ExpiresAt)
}

// TokenStore holds the cached token behind a lock. The token is always
// replaced wholesale, never partially mutated, so readers can never observe a
// torn token.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the current token or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the current token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear discards the current token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
