// Package http provides the authenticated request executor shared by all
// service clients.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/conoha-io/conoha-go/internal/auth"
	"github.com/conoha-io/conoha-go/internal/constants"
	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// Logger interface for HTTP client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// EndpointResolver resolves a service name to its base URL.
type EndpointResolver interface {
	Endpoint(service string) (string, error)
}

// Request represents an API request to a named service.
type Request struct {
	Service string
	Method  string
	Path    string
	Query   url.Values
	// Body is JSON-encoded unless it is a []byte or io.Reader, which pass
	// through unencoded (object uploads, ISO images).
	Body    interface{}
	Headers map[string]string
}

// Response represents an API response. Body is the raw payload; callers
// unmarshal JSON themselves, binary payloads are returned as-is.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retryClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables transport-level retries for transient failures
// (5xx, 429, connection errors). API-level failures are never retried here;
// the single 401 re-authentication retry is handled separately in Do.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.retryClient.RetryMax = retryMax
		c.retryClient.RetryWaitMin = retryWaitMin
		c.retryClient.RetryWaitMax = retryWaitMax
	}
}

// Client executes authenticated requests against catalog-resolved service
// endpoints. On a 401 it forces exactly one re-authentication and retries
// the request exactly once; a second 401 surfaces as a token-expired error.
type Client struct {
	resolver     EndpointResolver
	tokenManager auth.TokenManager
	retryClient  *retryablehttp.Client
	logger       Logger
	debug        bool
	userAgent    string
}

// NewClient creates a request executor. tokenManager may be nil for
// unauthenticated use in tests.
func NewClient(resolver EndpointResolver, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		resolver:     resolver,
		tokenManager: tokenManager,
		retryClient:  retryClient,
		userAgent:    "conoha-go",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes the request. Non-2xx responses are returned together with a
// typed error so callers can still inspect the status and headers.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	token, err := c.currentToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, req, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == nethttp.StatusUnauthorized && c.tokenManager != nil {
		resp, err = c.retryAfterReauth(ctx, req, resp)
		if err != nil {
			return resp, err
		}
	}

	if resp.StatusCode >= nethttp.StatusBadRequest {
		return resp, conoha.MapStatusError(resp.StatusCode, resp.Body)
	}

	return resp, nil
}

// retryAfterReauth handles the single permitted 401 recovery: one forced
// re-authentication, one retry. A refresh failure or a second 401 is
// surfaced as a token-expired error and never retried again.
func (c *Client) retryAfterReauth(ctx context.Context, req *Request, first *Response) (*Response, error) {
	if err := c.tokenManager.RefreshToken(ctx); err != nil {
		if errors.Is(err, conoha.ErrStaticTokenCannotRefresh) {
			return first, conoha.NewError(conoha.ErrorKindTokenExpired, first.StatusCode,
				"token expired and no credentials are available to refresh it")
		}

		return first, fmt.Errorf("re-authenticating after 401: %w", err)
	}

	token, err := c.currentToken(ctx)
	if err != nil {
		return first, err
	}

	resp, err := c.send(ctx, req, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == nethttp.StatusUnauthorized {
		message := conoha.ExtractErrorMessage(resp.StatusCode, resp.Body)

		return resp, conoha.NewError(conoha.ErrorKindTokenExpired, resp.StatusCode, message)
	}

	return resp, nil
}

func (c *Client) currentToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", nil
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("getting token: %w", err)
	}

	return token, nil
}

// send issues a single HTTP exchange. The caller's request is never
// mutated.
func (c *Client) send(ctx context.Context, req *Request, token string) (*Response, error) {
	fullURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if token != "" {
		httpReq.Header.Set("X-Auth-Token", token)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":  req.Method,
			"url":     fullURL,
			"service": req.Service,
		})
	}

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"url":    fullURL,
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

func (c *Client) buildURL(req *Request) (string, error) {
	base, err := c.resolver.Endpoint(req.Service)
	if err != nil {
		return "", err
	}

	fullURL := strings.TrimSuffix(base, "/") + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	return fullURL, nil
}

func encodeBody(body interface{}) (interface{}, string, error) {
	switch value := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return value, "", nil
	case io.Reader:
		return value, "", nil
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, "", fmt.Errorf("encoding request body: %w", err)
		}

		return bytes.NewReader(encoded), "application/json", nil
	}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, service, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Service: service, Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, service, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Service: service, Method: nethttp.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, service, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Service: service, Method: nethttp.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, service, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Service: service, Method: nethttp.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, service, path string) (*Response, error) {
	return c.Do(ctx, &Request{Service: service, Method: nethttp.MethodDelete, Path: path})
}

// Head issues a HEAD request.
func (c *Client) Head(ctx context.Context, service, path string) (*Response, error) {
	return c.Do(ctx, &Request{Service: service, Method: nethttp.MethodHead, Path: path})
}
