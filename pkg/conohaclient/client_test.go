package conohaclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conoha-io/conoha-go/pkg/conoha"
	"github.com/conoha-io/conoha-go/pkg/conohaclient"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		config  *conoha.Config
		wantErr error
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: conoha.ErrConfigRequired,
		},
		{
			name:    "no credentials at all",
			config:  &conoha.Config{Region: "c3j1"},
			wantErr: conoha.ErrNoCredentials,
		},
		{
			name:    "username without password",
			config:  &conoha.Config{Username: "api-user"},
			wantErr: conoha.ErrAmbiguousCredentials,
		},
		{
			name:    "password without username",
			config:  &conoha.Config{Password: "secret"},
			wantErr: conoha.ErrAmbiguousCredentials,
		},
		{
			name:    "password credentials without a tenant",
			config:  &conoha.Config{Username: "api-user", Password: "secret"},
			wantErr: conoha.ErrTenantRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := conohaclient.New(context.Background(), tt.config)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("static token needs no tenant", func(t *testing.T) {
		client, err := conohaclient.New(context.Background(), &conoha.Config{Token: "pre-issued"})
		require.NoError(t, err)
		require.NotNil(t, client)
	})

	t.Run("tenant name satisfies the scope requirement", func(t *testing.T) {
		client, err := conohaclient.New(context.Background(), &conoha.Config{
			Username:   "api-user",
			Password:   "secret",
			TenantName: "my-project",
		})
		require.NoError(t, err)
		require.NotNil(t, client)
	})
}

func TestNew_StaticTokenWithEndpointOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2.1/servers", r.URL.Path)
		assert.Equal(t, "pre-issued", r.Header.Get("X-Auth-Token"))

		_, _ = w.Write([]byte(`{"servers": [{"id": "srv-1", "name": "web-1"}]}`))
	}))
	defer server.Close()

	client, err := conohaclient.New(context.Background(), &conoha.Config{
		Token:     "pre-issued",
		Endpoints: map[string]string{conoha.ServiceCompute: server.URL},
	})
	require.NoError(t, err)

	servers, err := client.Compute().ListServers(context.Background())
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, "web-1", servers[0].Name)
}

func TestNew_AuthenticateOnInit(t *testing.T) {
	var exchanges int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/auth/tokens", r.URL.Path)
		atomic.AddInt64(&exchanges, 1)

		w.Header().Set("X-Subject-Token", "issued-token")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token": {"expires_at": "2099-01-01T00:00:00Z", "catalog": []}}`))
	}))
	defer server.Close()

	client, err := conohaclient.New(context.Background(), &conoha.Config{
		Username:           "api-user",
		Password:           "secret",
		TenantID:           "tenant-1",
		Endpoints:          map[string]string{conoha.ServiceIdentity: server.URL},
		AuthenticateOnInit: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&exchanges))

	token, err := client.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)
	assert.Equal(t, int64(1), atomic.LoadInt64(&exchanges))
}

func TestNew_AuthenticateOnInitFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid credentials"}}`))
	}))
	defer server.Close()

	_, err := conohaclient.New(context.Background(), &conoha.Config{
		Username:           "api-user",
		Password:           "wrong",
		TenantID:           "tenant-1",
		Endpoints:          map[string]string{conoha.ServiceIdentity: server.URL},
		AuthenticateOnInit: true,
	})
	require.Error(t, err)
	assert.True(t, conoha.IsAuthentication(err))
}

func TestNew_EndpointOverridesFromEnvironment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"domains": []}`))
	}))
	defer server.Close()

	t.Setenv("CONOHA_ENDPOINT_DNS", server.URL+"/")

	client, err := conohaclient.New(context.Background(), &conoha.Config{Token: "pre-issued"})
	require.NoError(t, err)

	// The trailing slash from the variable is trimmed before use.
	domains, err := client.DNS().ListDomains(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, domains)
}

func TestNew_ExplicitEndpointWinsOverEnvironment(t *testing.T) {
	configured := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"domains": [{"id": "dom-1", "name": "example.com."}]}`))
	}))
	defer configured.Close()

	t.Setenv("CONOHA_ENDPOINT_DNS", "http://unused.invalid")

	client, err := conohaclient.New(context.Background(), &conoha.Config{
		Token:     "pre-issued",
		Endpoints: map[string]string{conoha.ServiceDNS: configured.URL},
	})
	require.NoError(t, err)

	domains, err := client.DNS().ListDomains(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, domains, 1)
}
