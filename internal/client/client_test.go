package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// newTestClient builds a client whose every service resolves to the given
// test server, authenticated with a static token.
func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	endpoints := map[string]string{}
	for _, service := range []string{
		conoha.ServiceIdentity,
		conoha.ServiceCompute,
		conoha.ServiceVolume,
		conoha.ServiceImage,
		conoha.ServiceNetwork,
		conoha.ServiceLoadBalancer,
		conoha.ServiceDNS,
		conoha.ServiceObjectStorage,
	} {
		endpoints[service] = serverURL
	}

	client, err := New(&conoha.Config{
		Token:     "test-token",
		TenantID:  "tenant-1",
		Endpoints: endpoints,
	})
	require.NoError(t, err)

	return client
}

func TestNew(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, conoha.ErrConfigRequired)
	})

	t.Run("no credentials", func(t *testing.T) {
		_, err := New(&conoha.Config{Region: "c3j1"})
		assert.ErrorIs(t, err, conoha.ErrNoCredentials)
	})

	t.Run("static token", func(t *testing.T) {
		client, err := New(&conoha.Config{Token: "pre-issued"})
		require.NoError(t, err)

		token, err := client.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "pre-issued", token)
	})

	t.Run("password credentials seed the identity exchange", func(t *testing.T) {
		client, err := New(&conoha.Config{
			Username: "api-user",
			Password: "secret",
			TenantID: "tenant-1",
			Token:    "seed-token",
		})
		require.NoError(t, err)

		// The seed token is served until it nears expiry, so no identity
		// request happens here.
		token, err := client.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "seed-token", token)
	})
}

func TestClient_ServiceAccessorsAreMemoized(t *testing.T) {
	client := newTestClient(t, "http://example.invalid")

	assert.Same(t, client.Compute(), client.Compute())
	assert.Same(t, client.Volume(), client.Volume())
	assert.Same(t, client.Image(), client.Image())
	assert.Same(t, client.Network(), client.Network())
	assert.Same(t, client.LoadBalancer(), client.LoadBalancer())
	assert.Same(t, client.DNS(), client.DNS())
	assert.Same(t, client.ObjectStorage(), client.ObjectStorage())
	assert.Same(t, client.Identity(), client.Identity())
}

func TestClient_Service(t *testing.T) {
	client := newTestClient(t, "http://example.invalid")

	tests := []struct {
		name     string
		accessor func() conoha.ServiceClient
	}{
		{conoha.ServiceIdentity, func() conoha.ServiceClient { return client.Identity() }},
		{conoha.ServiceCompute, func() conoha.ServiceClient { return client.Compute() }},
		{conoha.ServiceVolume, func() conoha.ServiceClient { return client.Volume() }},
		{conoha.ServiceImage, func() conoha.ServiceClient { return client.Image() }},
		{conoha.ServiceNetwork, func() conoha.ServiceClient { return client.Network() }},
		{conoha.ServiceLoadBalancer, func() conoha.ServiceClient { return client.LoadBalancer() }},
		{conoha.ServiceDNS, func() conoha.ServiceClient { return client.DNS() }},
		{conoha.ServiceObjectStorage, func() conoha.ServiceClient { return client.ObjectStorage() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceClient, err := client.Service(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, serviceClient.ServiceName())
			assert.Same(t, tt.accessor(), serviceClient)
		})
	}

	t.Run("unknown service", func(t *testing.T) {
		_, err := client.Service("bare-metal")
		require.Error(t, err)
		assert.True(t, conoha.IsEndpointNotFound(err))
		assert.Contains(t, err.Error(), "bare-metal")
	})
}

func TestClient_Authenticate(t *testing.T) {
	// A static token is always valid, so Authenticate succeeds without
	// touching the network.
	client, err := New(&conoha.Config{Token: "pre-issued"})
	require.NoError(t, err)

	require.NoError(t, client.Authenticate(context.Background()))
}

func TestClient_TenantIDFallsBackToConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/tenant-1/volumes", r.URL.Path)
		_, _ = w.Write([]byte(`{"volumes": []}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Volume().ListVolumes(context.Background())
	require.NoError(t, err)
}
