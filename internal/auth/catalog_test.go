package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conoha-io/conoha-go/internal/auth"
)

func TestParseCatalog(t *testing.T) {
	t.Parallel()

	entries := []auth.CatalogEntry{
		{
			Type: "compute",
			Endpoints: []auth.CatalogEndpoint{
				{Interface: "internal", Region: "c3j1", URL: "https://internal.compute.c3j1.conoha.io/v2.1"},
				{Interface: "public", Region: "c3j1", URL: "https://compute.c3j1.conoha.io/v2.1"},
			},
		},
		{
			Type: "volumev3",
			Endpoints: []auth.CatalogEndpoint{
				{Interface: "public", Region: "other", URL: "https://block-storage.other.conoha.io/v3"},
				{Interface: "public", Region: "c3j1", URL: "https://block-storage.c3j1.conoha.io/v3"},
			},
		},
		{
			Type: "object-store",
			Endpoints: []auth.CatalogEndpoint{
				{Interface: "public", Region: "other", URL: "https://object-storage.other.conoha.io/v1"},
			},
		},
		{
			Type: "load-balancer",
			Endpoints: []auth.CatalogEndpoint{
				{Interface: "public", RegionID: "c3j1", URL: "https://lbaas.c3j1.conoha.io"},
			},
		},
		{
			Type: "unknown-service",
			Endpoints: []auth.CatalogEndpoint{
				{Interface: "public", Region: "c3j1", URL: "https://unknown.c3j1.conoha.io"},
			},
		},
	}

	catalog := auth.ParseCatalog(entries, "c3j1")

	t.Run("selects public endpoint for the region", func(t *testing.T) {
		t.Parallel()

		endpoint, ok := catalog.Endpoint("compute")
		assert.True(t, ok)
		assert.Equal(t, "https://compute.c3j1.conoha.io/v2.1", endpoint)
	})

	t.Run("prefers region match over listing order", func(t *testing.T) {
		t.Parallel()

		endpoint, ok := catalog.Endpoint("volume")
		assert.True(t, ok)
		assert.Equal(t, "https://block-storage.c3j1.conoha.io/v3", endpoint)
	})

	t.Run("falls back to first public endpoint", func(t *testing.T) {
		t.Parallel()

		endpoint, ok := catalog.Endpoint("object_storage")
		assert.True(t, ok)
		assert.Equal(t, "https://object-storage.other.conoha.io/v1", endpoint)
	})

	t.Run("matches region by region_id", func(t *testing.T) {
		t.Parallel()

		endpoint, ok := catalog.Endpoint("load_balancer")
		assert.True(t, ok)
		assert.Equal(t, "https://lbaas.c3j1.conoha.io", endpoint)
	})

	t.Run("ignores unknown service types", func(t *testing.T) {
		t.Parallel()

		_, ok := catalog.Endpoint("unknown-service")
		assert.False(t, ok)
	})

	t.Run("absent service is not resolvable", func(t *testing.T) {
		t.Parallel()

		_, ok := catalog.Endpoint("dns")
		assert.False(t, ok)
	})
}

func TestParseCatalog_SkipsNonPublicOnly(t *testing.T) {
	t.Parallel()

	entries := []auth.CatalogEntry{
		{
			Type: "image",
			Endpoints: []auth.CatalogEndpoint{
				{Interface: "internal", Region: "c3j1", URL: "https://internal.image.c3j1.conoha.io"},
				{Interface: "admin", Region: "c3j1", URL: "https://admin.image.c3j1.conoha.io"},
			},
		},
	}

	catalog := auth.ParseCatalog(entries, "c3j1")

	_, ok := catalog.Endpoint("image")
	assert.False(t, ok)
}
