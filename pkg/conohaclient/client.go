// Package conohaclient provides the main entry point for creating ConoHa API clients
package conohaclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/conoha-io/conoha-go/internal/client"
	"github.com/conoha-io/conoha-go/internal/constants"
	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// envEndpointPrefix prefixes per-service endpoint override variables, e.g.
// CONOHA_ENDPOINT_COMPUTE.
const envEndpointPrefix = "CONOHA_ENDPOINT_"

// New creates a new ConoHa API client from the given config.
func New(ctx context.Context, config *conoha.Config) (conoha.Client, error) {
	if config == nil {
		return nil, conoha.ErrConfigRequired
	}

	err := validateConfig(config)
	if err != nil {
		return nil, err
	}

	applyDefaults(config)
	mergeEndpointOverrides(config)

	// Use the internal client implementation
	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	if config.AuthenticateOnInit {
		err = apiClient.Authenticate(ctx)
		if err != nil {
			return nil, fmt.Errorf("authenticating: %w", err)
		}
	}

	return apiClient, nil
}

// validateConfig checks that exactly one authentication mode is configured
// and the token can be scoped to a project.
func validateConfig(config *conoha.Config) error {
	hasUser := config.Username != "" || config.UserID != ""
	hasPassword := config.Password != ""
	hasToken := config.Token != ""

	if hasUser != hasPassword {
		return conoha.ErrAmbiguousCredentials
	}

	if !hasToken && !hasPassword {
		return conoha.ErrNoCredentials
	}

	// A static token is already project-scoped; a password exchange needs a
	// project to scope the new token to.
	if hasPassword && config.TenantID == "" && config.TenantName == "" {
		return conoha.ErrTenantRequired
	}

	return nil
}

func applyDefaults(config *conoha.Config) {
	if config.Region == "" {
		config.Region = constants.DefaultRegion
	}
}

// mergeEndpointOverrides folds CONOHA_ENDPOINT_* variables into
// Config.Endpoints. Explicit config entries win.
func mergeEndpointOverrides(config *conoha.Config) {
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || value == "" || !strings.HasPrefix(name, envEndpointPrefix) {
			continue
		}

		service := strings.ToLower(strings.TrimPrefix(name, envEndpointPrefix))
		if service == "" {
			continue
		}

		if _, exists := config.Endpoints[service]; exists {
			continue
		}

		if config.Endpoints == nil {
			config.Endpoints = make(map[string]string)
		}

		config.Endpoints[service] = strings.TrimSuffix(value, "/")
	}
}
