package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/conoha-io/conoha-go/internal/http"
	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// IdentityClient implements conoha.IdentityClient
type IdentityClient struct {
	httpClient *http.Client
}

// NewIdentityClient creates a new identity client
func NewIdentityClient(httpClient *http.Client) *IdentityClient {
	return &IdentityClient{httpClient: httpClient}
}

// ServiceName implements conoha.ServiceClient.ServiceName
func (c *IdentityClient) ServiceName() string {
	return conoha.ServiceIdentity
}

// ListCredentials implements conoha.IdentityClient.ListCredentials
func (c *IdentityClient) ListCredentials(ctx context.Context, userID string) ([]conoha.Credential, error) {
	path := fmt.Sprintf("/v3/users/%s/credentials/OS-EC2", userID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceIdentity, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing credentials: %w", err)
	}

	var result struct {
		Credentials []conoha.Credential `json:"credentials"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing credentials list response: %w", err)
	}

	return result.Credentials, nil
}

// CreateCredential implements conoha.IdentityClient.CreateCredential. Each
// user can hold at most three credentials.
func (c *IdentityClient) CreateCredential(ctx context.Context, userID, tenantID string) (*conoha.Credential, error) {
	path := fmt.Sprintf("/v3/users/%s/credentials/OS-EC2", userID)
	body := map[string]string{"tenant_id": tenantID}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceIdentity, path, body)
	if err != nil {
		return nil, fmt.Errorf("creating credential: %w", err)
	}

	var result struct {
		Credential conoha.Credential `json:"credential"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing credential response: %w", err)
	}

	return &result.Credential, nil
}

// GetCredential implements conoha.IdentityClient.GetCredential
func (c *IdentityClient) GetCredential(ctx context.Context, userID, credentialID string) (*conoha.Credential, error) {
	path := fmt.Sprintf("/v3/users/%s/credentials/OS-EC2/%s", userID, credentialID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceIdentity, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting credential: %w", err)
	}

	var result struct {
		Credential conoha.Credential `json:"credential"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing credential response: %w", err)
	}

	return &result.Credential, nil
}

// DeleteCredential implements conoha.IdentityClient.DeleteCredential
func (c *IdentityClient) DeleteCredential(ctx context.Context, userID, credentialID string) error {
	path := fmt.Sprintf("/v3/users/%s/credentials/OS-EC2/%s", userID, credentialID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceIdentity, path)
	if err != nil {
		return fmt.Errorf("deleting credential: %w", err)
	}

	return nil
}
