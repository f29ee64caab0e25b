package auth

import (
	"context"
	"sync"
	"time"

	"github.com/conoha-io/conoha-go/internal/constants"
)

// TokenManager handles token acquisition and refresh.
type TokenManager interface {
	// GetToken returns a valid token, authenticating if necessary.
	GetToken(ctx context.Context) (string, error)

	// RefreshToken forces a new credential exchange, bypassing the
	// validity fast path.
	RefreshToken(ctx context.Context) error

	// SetToken manually seeds the token.
	SetToken(token string, expiresAt time.Time)
}

// Token is an opaque authentication token with its validity window.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Valid reports whether the token can still be presented. A safety margin
// is applied so a token is never used right at its expiration instant.
// A zero ExpiresAt means the server advertised no expiry.
func (t *Token) Valid() bool {
	if t == nil || t.Value == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Before(t.ExpiresAt.Add(-constants.TokenExpiryMargin))
}

// TokenStore holds the current token and the service catalog issued with
// it. The two are read and replaced together so a catalog is never paired
// with a token from a different authentication event.
type TokenStore struct {
	mu      sync.RWMutex
	token   *Token
	catalog Catalog
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the current token and catalog.
func (s *TokenStore) Get() (*Token, Catalog) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token, s.catalog
}

// Set replaces the token and catalog atomically.
func (s *TokenStore) Set(token *Token, catalog Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.catalog = catalog
}

// Clear drops the token and catalog.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
	s.catalog = nil
}
