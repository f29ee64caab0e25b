package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/conoha-io/conoha-go/internal/constants"
	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// KeystoneConfig configures password authentication against the identity
// service.
type KeystoneConfig struct {
	// IdentityURL is the identity service base URL (no path).
	IdentityURL string
	// Username or UserID identifies the user; Password is required.
	Username string
	UserID   string
	Password string
	// TenantID or TenantName scopes the issued token to a project.
	TenantID   string
	TenantName string
	// Region selects which catalog endpoint variant is recorded per service.
	Region string
	// HTTPClient is used for the token exchange. Defaults to a client with
	// the standard request timeout.
	HTTPClient *http.Client
}

// KeystoneTokenManager exchanges username/password credentials for a token
// and the service catalog issued with it. State transitions are serialized:
// concurrent callers of GetToken perform at most one exchange per expiry
// window, and the token/catalog pair is swapped atomically.
type KeystoneTokenManager struct {
	config     *KeystoneConfig
	httpClient *http.Client
	store      *TokenStore

	mu       sync.Mutex
	tenantID string
	userID   string
}

// NewKeystoneTokenManager creates a password-based token manager.
func NewKeystoneTokenManager(config *KeystoneConfig) *KeystoneTokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}

	return &KeystoneTokenManager{
		config:     config,
		httpClient: httpClient,
		store:      NewTokenStore(),
		tenantID:   config.TenantID,
		userID:     config.UserID,
	}
}

// GetToken returns a valid token, authenticating if necessary. When the
// stored token is still inside its validity window no network call is made.
func (m *KeystoneTokenManager) GetToken(ctx context.Context) (string, error) {
	token, _ := m.store.Get()
	if token.Valid() {
		return token.Value, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check: another caller may have finished the exchange while this
	// one waited on the lock.
	token, _ = m.store.Get()
	if token.Valid() {
		return token.Value, nil
	}

	return m.authenticate(ctx)
}

// RefreshToken forces a new credential exchange regardless of the stored
// token's validity.
func (m *KeystoneTokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.authenticate(ctx)

	return err
}

// SetToken seeds a pre-issued token. The current catalog, if any, is kept.
func (m *KeystoneTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, catalog := m.store.Get()
	m.store.Set(&Token{Value: token, IssuedAt: time.Now(), ExpiresAt: expiresAt}, catalog)
}

// Catalog returns the service catalog from the last successful exchange.
func (m *KeystoneTokenManager) Catalog() Catalog {
	_, catalog := m.store.Get()

	return catalog
}

// TenantID returns the configured or discovered project ID.
func (m *KeystoneTokenManager) TenantID() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.tenantID
}

// UserID returns the configured or discovered user ID.
func (m *KeystoneTokenManager) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.userID
}

// tokenRequest is the identity token issuance payload.
type tokenRequest struct {
	Auth tokenRequestAuth `json:"auth"`
}

type tokenRequestAuth struct {
	Identity tokenRequestIdentity `json:"identity"`
	Scope    *tokenRequestScope   `json:"scope,omitempty"`
}

type tokenRequestIdentity struct {
	Methods  []string             `json:"methods"`
	Password tokenRequestPassword `json:"password"`
}

type tokenRequestPassword struct {
	User tokenRequestUser `json:"user"`
}

type tokenRequestUser struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

type tokenRequestScope struct {
	Project tokenRequestProject `json:"project"`
}

type tokenRequestProject struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// tokenResponse is the identity token issuance response body. The token
// value itself arrives in the X-Subject-Token header.
type tokenResponse struct {
	Token struct {
		ExpiresAt string         `json:"expires_at"`
		Catalog   []CatalogEntry `json:"catalog"`
		Project   struct {
			ID string `json:"id"`
		} `json:"project"`
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	} `json:"token"`
}

// authenticate performs the credential exchange. The caller must hold m.mu.
func (m *KeystoneTokenManager) authenticate(ctx context.Context) (string, error) {
	payload := m.buildTokenRequest()

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding token request: %w", err)
	}

	url := m.config.IdentityURL + "/v3/auth/tokens"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		message := conoha.ExtractErrorMessage(resp.StatusCode, respBody)

		return "", conoha.NewError(conoha.ErrorKindAuthentication, resp.StatusCode, message)
	}

	value := resp.Header.Get("X-Subject-Token")
	if value == "" {
		return "", conoha.NewError(conoha.ErrorKindAuthentication, resp.StatusCode, "token missing from identity response")
	}

	var parsed tokenResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parsing token response: %w", err)
	}

	now := time.Now()

	expiresAt, err := time.Parse(time.RFC3339, parsed.Token.ExpiresAt)
	if err != nil || parsed.Token.ExpiresAt == "" {
		expiresAt = now.Add(constants.TokenValidity)
	}

	if parsed.Token.Project.ID != "" {
		m.tenantID = parsed.Token.Project.ID
	}

	if parsed.Token.User.ID != "" {
		m.userID = parsed.Token.User.ID
	}

	catalog := ParseCatalog(parsed.Token.Catalog, m.config.Region)
	m.store.Set(&Token{Value: value, IssuedAt: now, ExpiresAt: expiresAt}, catalog)

	return value, nil
}

func (m *KeystoneTokenManager) buildTokenRequest() tokenRequest {
	user := tokenRequestUser{Password: m.config.Password}
	if m.config.UserID != "" {
		user.ID = m.config.UserID
	} else {
		user.Name = m.config.Username
	}

	var scope *tokenRequestScope

	switch {
	case m.config.TenantID != "":
		scope = &tokenRequestScope{Project: tokenRequestProject{ID: m.config.TenantID}}
	case m.config.TenantName != "":
		scope = &tokenRequestScope{Project: tokenRequestProject{Name: m.config.TenantName}}
	}

	return tokenRequest{
		Auth: tokenRequestAuth{
			Identity: tokenRequestIdentity{
				Methods:  []string{"password"},
				Password: tokenRequestPassword{User: user},
			},
			Scope: scope,
		},
	}
}
