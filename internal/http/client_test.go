package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	conohahttp "github.com/conoha-io/conoha-go/internal/http"
	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// staticResolver maps every service to one base URL.
type staticResolver struct {
	baseURL string
	err     error
}

func (r *staticResolver) Endpoint(service string) (string, error) {
	return r.baseURL, r.err
}

// mockTokenManager hands out tokens from a list, advancing on refresh.
type mockTokenManager struct {
	tokens     []string
	index      int64
	refreshErr error
	refreshes  int64
}

func (m *mockTokenManager) GetToken(ctx context.Context) (string, error) {
	index := atomic.LoadInt64(&m.index)
	if int(index) >= len(m.tokens) {
		index = int64(len(m.tokens) - 1)
	}

	return m.tokens[index], nil
}

func (m *mockTokenManager) RefreshToken(ctx context.Context) error {
	atomic.AddInt64(&m.refreshes, 1)

	if m.refreshErr != nil {
		return m.refreshErr
	}

	atomic.AddInt64(&m.index, 1)

	return nil
}

func (m *mockTokenManager) SetToken(token string, expiresAt time.Time) {}

func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2.1/servers", request.URL.Path)
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, "test-token", request.Header.Get("X-Auth-Token"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"servers": []string{}})
		}))
		defer server.Close()

		tokenManager := &mockTokenManager{tokens: []string{"test-token"}}
		client := conohahttp.NewClient(&staticResolver{baseURL: server.URL}, tokenManager)

		resp, err := client.Do(context.Background(), &conohahttp.Request{
			Service: conoha.ServiceCompute,
			Method:  http.MethodGet,
			Path:    "/v2.1/servers",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "limit=5", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := conohahttp.NewClient(&staticResolver{baseURL: server.URL}, &mockTokenManager{tokens: []string{"t"}})

		query := url.Values{}
		query.Set("limit", "5")

		_, err := client.Get(context.Background(), conoha.ServiceImage, "/v2/images", query)
		require.NoError(t, err)
	})

	t.Run("JSON body is encoded with content type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "web-1", body["name"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := conohahttp.NewClient(&staticResolver{baseURL: server.URL}, &mockTokenManager{tokens: []string{"t"}})

		resp, err := client.Post(context.Background(), conoha.ServiceNetwork, "/v2.0/networks", map[string]string{"name": "web-1"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("byte slice body passes through unencoded", func(t *testing.T) {
		t.Parallel()

		payload := []byte{0x00, 0x01, 0xFF}

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/octet-stream", request.Header.Get("Content-Type"))

			body := make([]byte, 3)
			_, _ = request.Body.Read(body)
			assert.Equal(t, payload, body)

			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := conohahttp.NewClient(&staticResolver{baseURL: server.URL}, &mockTokenManager{tokens: []string{"t"}})

		_, err := client.Do(context.Background(), &conohahttp.Request{
			Service: conoha.ServiceImage,
			Method:  http.MethodPut,
			Path:    "/v2/images/img-1/file",
			Body:    payload,
			Headers: map[string]string{"Content-Type": "application/octet-stream"},
		})
		require.NoError(t, err)
	})

	t.Run("endpoint resolution failure", func(t *testing.T) {
		t.Parallel()

		resolverErr := conoha.NewError(conoha.ErrorKindEndpoint, 0, "no endpoint for service \"dns\"")
		client := conohahttp.NewClient(&staticResolver{err: resolverErr}, &mockTokenManager{tokens: []string{"t"}})

		_, err := client.Get(context.Background(), conoha.ServiceDNS, "/v1/domains", nil)
		require.Error(t, err)
		assert.True(t, conoha.IsEndpointNotFound(err))
	})
}

func TestClient_Do_ReauthRetry(t *testing.T) {
	t.Parallel()

	t.Run("single 401 is refreshed and retried once", func(t *testing.T) {
		t.Parallel()

		var requests int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Header.Get("X-Auth-Token") == "stale-token" {
				writer.WriteHeader(http.StatusUnauthorized)

				return
			}

			atomic.AddInt64(&requests, 1)
			assert.Equal(t, "fresh-token", request.Header.Get("X-Auth-Token"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		tokenManager := &mockTokenManager{tokens: []string{"stale-token", "fresh-token"}}
		client := conohahttp.NewClient(&staticResolver{baseURL: server.URL}, tokenManager)

		resp, err := client.Get(context.Background(), conoha.ServiceCompute, "/v2.1/servers", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int64(1), atomic.LoadInt64(&tokenManager.refreshes))
	})

	t.Run("second 401 surfaces token expired without a third attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt64(&attempts, 1)
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"error": {"message": "token is invalid"}}`))
		}))
		defer server.Close()

		tokenManager := &mockTokenManager{tokens: []string{"stale-token", "fresh-token"}}
		client := conohahttp.NewClient(&staticResolver{baseURL: server.URL}, tokenManager)

		_, err := client.Get(context.Background(), conoha.ServiceCompute, "/v2.1/servers", nil)
		require.Error(t, err)
		assert.True(t, conoha.IsTokenExpired(err))
		assert.Equal(t, int64(2), atomic.LoadInt64(&attempts))
	})

	t.Run("static token 401 surfaces token expired immediately", func(t *testing.T) {
		t.Parallel()

		var attempts int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt64(&attempts, 1)
			writer.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		tokenManager := &mockTokenManager{
			tokens:     []string{"static-token"},
			refreshErr: conoha.ErrStaticTokenCannotRefresh,
		}
		client := conohahttp.NewClient(&staticResolver{baseURL: server.URL}, tokenManager)

		_, err := client.Get(context.Background(), conoha.ServiceCompute, "/v2.1/servers", nil)
		require.Error(t, err)
		assert.True(t, conoha.IsTokenExpired(err))
		assert.Equal(t, int64(1), atomic.LoadInt64(&attempts))
	})
}

func TestClient_Do_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		check      func(error) bool
	}{
		{name: "bad request", statusCode: http.StatusBadRequest, check: conoha.IsBadRequest},
		{name: "forbidden", statusCode: http.StatusForbidden, check: conoha.IsForbidden},
		{name: "not found", statusCode: http.StatusNotFound, check: conoha.IsNotFound},
		{name: "conflict", statusCode: http.StatusConflict, check: conoha.IsConflict},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(tt.statusCode)
				_, _ = writer.Write([]byte(`{"message": "nope"}`))
			}))
			defer server.Close()

			client := conohahttp.NewClient(&staticResolver{baseURL: server.URL}, &mockTokenManager{tokens: []string{"t"}})

			resp, err := client.Get(context.Background(), conoha.ServiceCompute, "/v2.1/servers", nil)
			require.Error(t, err)
			assert.True(t, tt.check(err))

			// The response stays inspectable alongside the typed error.
			require.NotNil(t, resp)
			assert.Equal(t, tt.statusCode, resp.StatusCode)
		})
	}
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	var lastMethod atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		lastMethod.Store(request.Method)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := conohahttp.NewClient(&staticResolver{baseURL: server.URL}, &mockTokenManager{tokens: []string{"t"}})
	ctx := context.Background()

	_, err := client.Get(ctx, conoha.ServiceCompute, "/p", nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, lastMethod.Load())

	_, err = client.Post(ctx, conoha.ServiceCompute, "/p", nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, lastMethod.Load())

	_, err = client.Put(ctx, conoha.ServiceCompute, "/p", nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, lastMethod.Load())

	_, err = client.Patch(ctx, conoha.ServiceCompute, "/p", nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, lastMethod.Load())

	_, err = client.Delete(ctx, conoha.ServiceCompute, "/p")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, lastMethod.Load())

	_, err = client.Head(ctx, conoha.ServiceCompute, "/p")
	require.NoError(t, err)
	assert.Equal(t, http.MethodHead, lastMethod.Load())
}

func TestClient_CustomUserAgent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "my-tool/1.0", request.Header.Get("User-Agent"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := conohahttp.NewClient(
		&staticResolver{baseURL: server.URL},
		&mockTokenManager{tokens: []string{"t"}},
		conohahttp.WithUserAgent("my-tool/1.0"),
	)

	_, err := client.Get(context.Background(), conoha.ServiceCompute, "/p", nil)
	require.NoError(t, err)
}
