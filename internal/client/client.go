// Package client implements the conoha.Client interface.
package client

import (
	"context"
	"fmt"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/conoha-io/conoha-go/internal/auth"
	"github.com/conoha-io/conoha-go/internal/constants"
	"github.com/conoha-io/conoha-go/internal/http"
	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// Client implements the conoha.Client interface. Service clients are
// stateless delegates bound to the shared request executor; they are
// created on first access and memoized for the lifetime of the Client.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	config       *conoha.Config

	mu            sync.Mutex
	identity      conoha.IdentityClient
	compute       conoha.ComputeClient
	volume        conoha.VolumeClient
	image         conoha.ImageClient
	network       conoha.NetworkClient
	loadBalancer  conoha.LoadBalancerClient
	dns           conoha.DNSClient
	objectStorage conoha.ObjectStorageClient
}

// New creates a client from a validated config. The token manager is chosen
// from the credentials: password (with an optional seed token) uses the
// identity exchange, a bare token is static and cannot be refreshed.
func New(config *conoha.Config) (*Client, error) {
	if config == nil {
		return nil, conoha.ErrConfigRequired
	}

	tokenManager := createTokenManager(config)
	if tokenManager == nil {
		return nil, conoha.ErrNoCredentials
	}

	resolver := newEndpointResolver(config, tokenManager)

	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(resolver, tokenManager, httpOpts...)

	return &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		config:       config,
	}, nil
}

// createTokenManager creates the appropriate token manager for the
// configured credentials.
func createTokenManager(config *conoha.Config) auth.TokenManager {
	hasPassword := config.Password != "" && (config.Username != "" || config.UserID != "")

	if hasPassword {
		manager := auth.NewKeystoneTokenManager(&auth.KeystoneConfig{
			IdentityURL: identityURL(config),
			Username:    config.Username,
			UserID:      config.UserID,
			Password:    config.Password,
			TenantID:    config.TenantID,
			TenantName:  config.TenantName,
			Region:      region(config),
			HTTPClient:  &nethttp.Client{Timeout: timeout(config)},
		})

		// A seed token is a warm start; expiry falls back to the exchange.
		if config.Token != "" {
			manager.SetToken(config.Token, time.Now().Add(constants.TokenValidity))
		}

		return manager
	}

	if config.Token != "" {
		return &staticTokenManager{token: config.Token}
	}

	return nil
}

// createHTTPClientOptions builds executor options from config.
func createHTTPClientOptions(config *conoha.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	httpOpts = append(httpOpts, http.WithTimeout(timeout(config)))

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

func region(config *conoha.Config) string {
	if config.Region != "" {
		return config.Region
	}

	return constants.DefaultRegion
}

func timeout(config *conoha.Config) time.Duration {
	if config.Timeout > 0 {
		return time.Duration(config.Timeout) * time.Second
	}

	return constants.DefaultHTTPTimeout
}

func identityURL(config *conoha.Config) string {
	if override, ok := config.Endpoints[conoha.ServiceIdentity]; ok {
		return override
	}

	return fmt.Sprintf(constants.IdentityEndpointTemplate, region(config))
}

// Authenticate implements conoha.Client.Authenticate. It is a no-op when a
// valid token is already held.
func (c *Client) Authenticate(ctx context.Context) error {
	_, err := c.tokenManager.GetToken(ctx)

	return err
}

// Token implements conoha.Client.Token.
func (c *Client) Token(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", conoha.ErrNoTokenManagerConfigured
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// tenantID returns the configured project ID, preferring the one discovered
// during authentication.
func (c *Client) tenantID() string {
	if source, ok := c.tokenManager.(interface{ TenantID() string }); ok {
		if id := source.TenantID(); id != "" {
			return id
		}
	}

	return c.config.TenantID
}

// Service accessors. Each client is constructed once and reused.

// Identity implements conoha.Client.Identity.
func (c *Client) Identity() conoha.IdentityClient {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.identity == nil {
		c.identity = NewIdentityClient(c.httpClient)
	}

	return c.identity
}

// Compute implements conoha.Client.Compute.
func (c *Client) Compute() conoha.ComputeClient {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.compute == nil {
		c.compute = NewComputeClient(c.httpClient)
	}

	return c.compute
}

// Volume implements conoha.Client.Volume.
func (c *Client) Volume() conoha.VolumeClient {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.volume == nil {
		c.volume = NewVolumeClient(c.httpClient, c.tenantID)
	}

	return c.volume
}

// Image implements conoha.Client.Image.
func (c *Client) Image() conoha.ImageClient {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.image == nil {
		c.image = NewImageClient(c.httpClient)
	}

	return c.image
}

// Network implements conoha.Client.Network.
func (c *Client) Network() conoha.NetworkClient {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.network == nil {
		c.network = NewNetworkClient(c.httpClient)
	}

	return c.network
}

// LoadBalancer implements conoha.Client.LoadBalancer.
func (c *Client) LoadBalancer() conoha.LoadBalancerClient {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loadBalancer == nil {
		c.loadBalancer = NewLoadBalancerClient(c.httpClient)
	}

	return c.loadBalancer
}

// DNS implements conoha.Client.DNS.
func (c *Client) DNS() conoha.DNSClient {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dns == nil {
		c.dns = NewDNSClient(c.httpClient)
	}

	return c.dns
}

// ObjectStorage implements conoha.Client.ObjectStorage.
func (c *Client) ObjectStorage() conoha.ObjectStorageClient {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.objectStorage == nil {
		c.objectStorage = NewObjectStorageClient(c.httpClient, c.tenantID)
	}

	return c.objectStorage
}

// Service implements conoha.Client.Service: the same memoized instances the
// typed accessors return, looked up by catalog name.
func (c *Client) Service(name string) (conoha.ServiceClient, error) {
	switch name {
	case conoha.ServiceIdentity:
		return c.Identity(), nil
	case conoha.ServiceCompute:
		return c.Compute(), nil
	case conoha.ServiceVolume:
		return c.Volume(), nil
	case conoha.ServiceImage:
		return c.Image(), nil
	case conoha.ServiceNetwork:
		return c.Network(), nil
	case conoha.ServiceLoadBalancer:
		return c.LoadBalancer(), nil
	case conoha.ServiceDNS:
		return c.DNS(), nil
	case conoha.ServiceObjectStorage:
		return c.ObjectStorage(), nil
	default:
		return nil, conoha.NewError(conoha.ErrorKindEndpoint, 0, fmt.Sprintf("unknown service %q", name))
	}
}

// staticTokenManager provides a pre-issued token that cannot be refreshed.
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(ctx context.Context) error {
	return conoha.ErrStaticTokenCannotRefresh
}

func (m *staticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// loggerAdapter adapts conoha.Logger to http.Logger.
type loggerAdapter struct {
	logger conoha.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
