package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"

	"github.com/conoha-io/conoha-go/internal/http"
	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// ImageClient implements conoha.ImageClient
type ImageClient struct {
	httpClient *http.Client
}

// NewImageClient creates a new image client
func NewImageClient(httpClient *http.Client) *ImageClient {
	return &ImageClient{httpClient: httpClient}
}

// ServiceName implements conoha.ServiceClient.ServiceName
func (c *ImageClient) ServiceName() string {
	return conoha.ServiceImage
}

// ListImages implements conoha.ImageClient.ListImages
func (c *ImageClient) ListImages(ctx context.Context, opts *conoha.ImageListOptions) ([]conoha.Image, error) {
	var query url.Values

	if opts != nil {
		query = url.Values{}

		if opts.Limit > 0 {
			query.Set("limit", strconv.Itoa(opts.Limit))
		}

		if opts.Marker != "" {
			query.Set("marker", opts.Marker)
		}

		if opts.Visibility != "" {
			query.Set("visibility", opts.Visibility)
		}

		if opts.OSType != "" {
			query.Set("os_type", opts.OSType)
		}

		if opts.SortKey != "" {
			query.Set("sort_key", opts.SortKey)
		}

		if opts.SortDir != "" {
			query.Set("sort_dir", opts.SortDir)
		}

		if opts.Name != "" {
			query.Set("name", opts.Name)
		}

		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
	}

	resp, err := c.httpClient.Get(ctx, conoha.ServiceImage, "/v2/images", query)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}

	var result struct {
		Images []conoha.Image `json:"images"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing images list response: %w", err)
	}

	return result.Images, nil
}

// GetImage implements conoha.ImageClient.GetImage. The image endpoint
// returns the image unwrapped.
func (c *ImageClient) GetImage(ctx context.Context, imageID string) (*conoha.Image, error) {
	path := fmt.Sprintf("/v2/images/%s", imageID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceImage, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting image: %w", err)
	}

	var image conoha.Image
	if err := json.Unmarshal(resp.Body, &image); err != nil {
		return nil, fmt.Errorf("parsing image response: %w", err)
	}

	return &image, nil
}

// DeleteImage implements conoha.ImageClient.DeleteImage
func (c *ImageClient) DeleteImage(ctx context.Context, imageID string) error {
	path := fmt.Sprintf("/v2/images/%s", imageID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceImage, path)
	if err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}

	return nil
}

// CreateISOImage implements conoha.ImageClient.CreateISOImage. It registers
// the image metadata only; the file data is uploaded separately with
// UploadISOImage.
func (c *ImageClient) CreateISOImage(ctx context.Context, name string) (*conoha.Image, error) {
	body := map[string]string{
		"name":             name,
		"disk_format":      "iso",
		"hw_rescue_bus":    "ide",
		"hw_rescue_device": "cdrom",
		"container_format": "bare",
	}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceImage, "/v2/images", body)
	if err != nil {
		return nil, fmt.Errorf("creating ISO image: %w", err)
	}

	var image conoha.Image
	if err := json.Unmarshal(resp.Body, &image); err != nil {
		return nil, fmt.Errorf("parsing image response: %w", err)
	}

	return &image, nil
}

// UploadISOImage implements conoha.ImageClient.UploadISOImage
func (c *ImageClient) UploadISOImage(ctx context.Context, imageID string, data []byte) error {
	req := &http.Request{
		Service: conoha.ServiceImage,
		Method:  nethttp.MethodPut,
		Path:    fmt.Sprintf("/v2/images/%s/file", imageID),
		Body:    data,
		Headers: map[string]string{"Content-Type": "application/octet-stream"},
	}

	_, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("uploading ISO image: %w", err)
	}

	return nil
}

// GetImageUsage implements conoha.ImageClient.GetImageUsage
func (c *ImageClient) GetImageUsage(ctx context.Context) (*conoha.ImageUsage, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceImage, "/v2/images/total", nil)
	if err != nil {
		return nil, fmt.Errorf("getting image usage: %w", err)
	}

	var result struct {
		Images conoha.ImageUsage `json:"images"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing image usage response: %w", err)
	}

	return &result.Images, nil
}

// GetImageQuota implements conoha.ImageClient.GetImageQuota
func (c *ImageClient) GetImageQuota(ctx context.Context) (*conoha.ImageQuota, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceImage, "/v2/quota", nil)
	if err != nil {
		return nil, fmt.Errorf("getting image quota: %w", err)
	}

	var result struct {
		Quota conoha.ImageQuota `json:"quota"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing image quota response: %w", err)
	}

	return &result.Quota, nil
}

// UpdateImageQuota implements conoha.ImageClient.UpdateImageQuota. Quota
// sizes grow in 500GB increments above the 50GB default.
func (c *ImageClient) UpdateImageQuota(ctx context.Context, imageSizeGB int) (*conoha.ImageQuota, error) {
	body := map[string]interface{}{
		"quota": map[string]string{"image_size": fmt.Sprintf("%dGB", imageSizeGB)},
	}

	resp, err := c.httpClient.Put(ctx, conoha.ServiceImage, "/v2/quota", body)
	if err != nil {
		return nil, fmt.Errorf("updating image quota: %w", err)
	}

	var result struct {
		Quota conoha.ImageQuota `json:"quota"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing image quota response: %w", err)
	}

	return &result.Quota, nil
}
