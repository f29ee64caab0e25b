package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conoha-io/conoha-go/pkg/conoha"
)

func TestImageClient_ListImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/images", r.URL.Path)
		assert.Equal(t, "private", r.URL.Query().Get("visibility"))
		assert.Equal(t, "lin", r.URL.Query().Get("os_type"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"images": []conoha.Image{{ID: "img-1", Name: "ubuntu-24.04"}},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	images, err := client.Image().ListImages(context.Background(), &conoha.ImageListOptions{
		Visibility: "private",
		OSType:     "lin",
	})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "ubuntu-24.04", images[0].Name)
}

func TestImageClient_GetImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/images/img-1", r.URL.Path)

		// The image endpoint returns the image unwrapped.
		_ = json.NewEncoder(w).Encode(conoha.Image{ID: "img-1", Name: "ubuntu-24.04", Status: "active"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	image, err := client.Image().GetImage(context.Background(), "img-1")
	require.NoError(t, err)
	assert.Equal(t, "img-1", image.ID)
	assert.Equal(t, "active", image.Status)
}

func TestImageClient_CreateISOImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/images", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "rescue.iso", payload["name"])
		assert.Equal(t, "iso", payload["disk_format"])
		assert.Equal(t, "bare", payload["container_format"])
		assert.Equal(t, "ide", payload["hw_rescue_bus"])
		assert.Equal(t, "cdrom", payload["hw_rescue_device"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(conoha.Image{ID: "img-1", Name: "rescue.iso", Status: "queued"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	image, err := client.Image().CreateISOImage(context.Background(), "rescue.iso")
	require.NoError(t, err)
	assert.Equal(t, "queued", image.Status)
}

func TestImageClient_UploadISOImage(t *testing.T) {
	data := []byte("iso image bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/images/img-1/file", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, data, body)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	require.NoError(t, client.Image().UploadISOImage(context.Background(), "img-1", data))
}

func TestImageClient_GetImageUsage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/images/total", r.URL.Path)

		_, _ = w.Write([]byte(`{"images": {"total_usage": 53687091200}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	usage, err := client.Image().GetImageUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(53687091200), usage.TotalUsage)
}

func TestImageClient_UpdateImageQuota(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/quota", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var payload map[string]map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "550GB", payload["quota"]["image_size"])

		_, _ = w.Write([]byte(`{"quota": {"image_size": "550GB"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	quota, err := client.Image().UpdateImageQuota(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "550GB", quota.ImageSize)
}
