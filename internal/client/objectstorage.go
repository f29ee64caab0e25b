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

// ObjectStorageClient implements conoha.ObjectStorageClient. The storage
// account path embeds the tenant ID; usage figures come back in response
// headers rather than bodies.
type ObjectStorageClient struct {
	httpClient *http.Client
	tenantID   func() string
}

// NewObjectStorageClient creates a new object storage client
func NewObjectStorageClient(httpClient *http.Client, tenantID func() string) *ObjectStorageClient {
	return &ObjectStorageClient{httpClient: httpClient, tenantID: tenantID}
}

// ServiceName implements conoha.ServiceClient.ServiceName
func (c *ObjectStorageClient) ServiceName() string {
	return conoha.ServiceObjectStorage
}

func (c *ObjectStorageClient) accountPath(suffix string) string {
	return fmt.Sprintf("/v1/AUTH_%s%s", c.tenantID(), suffix)
}

func parseHeaderInt(headers nethttp.Header, name string) int64 {
	value, err := strconv.ParseInt(headers.Get(name), 10, 64)
	if err != nil {
		return 0
	}

	return value
}

// GetAccountInfo implements conoha.ObjectStorageClient.GetAccountInfo
func (c *ObjectStorageClient) GetAccountInfo(ctx context.Context) (*conoha.AccountInfo, error) {
	resp, err := c.httpClient.Head(ctx, conoha.ServiceObjectStorage, c.accountPath(""))
	if err != nil {
		return nil, fmt.Errorf("getting account info: %w", err)
	}

	return &conoha.AccountInfo{
		ContainerCount: parseHeaderInt(resp.Headers, "X-Account-Container-Count"),
		ObjectCount:    parseHeaderInt(resp.Headers, "X-Account-Object-Count"),
		BytesUsed:      parseHeaderInt(resp.Headers, "X-Account-Bytes-Used"),
	}, nil
}

// SetAccountQuota implements conoha.ObjectStorageClient.SetAccountQuota.
// Capacity grows in 100GB increments starting at 100.
func (c *ObjectStorageClient) SetAccountQuota(ctx context.Context, sizeGB int) error {
	req := &http.Request{
		Service: conoha.ServiceObjectStorage,
		Method:  nethttp.MethodPost,
		Path:    c.accountPath(""),
		Headers: map[string]string{"X-Account-Meta-Quota-Giga-Bytes": strconv.Itoa(sizeGB)},
	}

	_, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("setting account quota: %w", err)
	}

	return nil
}

func listingQuery(opts *conoha.ObjectListOptions) url.Values {
	query := url.Values{}
	query.Set("format", "json")

	if opts == nil {
		return query
	}

	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	if opts.Marker != "" {
		query.Set("marker", opts.Marker)
	}

	if opts.EndMarker != "" {
		query.Set("end_marker", opts.EndMarker)
	}

	if opts.Prefix != "" {
		query.Set("prefix", opts.Prefix)
	}

	if opts.Delimiter != "" {
		query.Set("delimiter", opts.Delimiter)
	}

	if opts.Reverse {
		query.Set("reverse", "true")
	}

	return query
}

// ListContainers implements conoha.ObjectStorageClient.ListContainers
func (c *ObjectStorageClient) ListContainers(ctx context.Context, opts *conoha.ObjectListOptions) ([]conoha.Container, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceObjectStorage, c.accountPath(""), listingQuery(opts))
	if err != nil {
		return nil, fmt.Errorf("listing containers: %w", err)
	}

	var containers []conoha.Container
	if err := json.Unmarshal(resp.Body, &containers); err != nil {
		return nil, fmt.Errorf("parsing containers list response: %w", err)
	}

	return containers, nil
}

// GetContainerMetadata implements
// conoha.ObjectStorageClient.GetContainerMetadata
func (c *ObjectStorageClient) GetContainerMetadata(ctx context.Context, container string) (*conoha.ContainerMetadata, error) {
	path := c.accountPath("/" + container)
	resp, err := c.httpClient.Head(ctx, conoha.ServiceObjectStorage, path)
	if err != nil {
		return nil, fmt.Errorf("getting container metadata: %w", err)
	}

	return &conoha.ContainerMetadata{
		ObjectCount:     parseHeaderInt(resp.Headers, "X-Container-Object-Count"),
		BytesUsed:       parseHeaderInt(resp.Headers, "X-Container-Bytes-Used"),
		BytesUsedActual: parseHeaderInt(resp.Headers, "X-Container-Bytes-Used-Actual"),
	}, nil
}

// CreateContainer implements conoha.ObjectStorageClient.CreateContainer
func (c *ObjectStorageClient) CreateContainer(ctx context.Context, container string) error {
	path := c.accountPath("/" + container)

	_, err := c.httpClient.Put(ctx, conoha.ServiceObjectStorage, path, nil)
	if err != nil {
		return fmt.Errorf("creating container: %w", err)
	}

	return nil
}

// DeleteContainer implements conoha.ObjectStorageClient.DeleteContainer. The
// container must be empty.
func (c *ObjectStorageClient) DeleteContainer(ctx context.Context, container string) error {
	path := c.accountPath("/" + container)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceObjectStorage, path)
	if err != nil {
		return fmt.Errorf("deleting container: %w", err)
	}

	return nil
}

// ListObjects implements conoha.ObjectStorageClient.ListObjects
func (c *ObjectStorageClient) ListObjects(ctx context.Context, container string, opts *conoha.ObjectListOptions) ([]conoha.ObjectInfo, error) {
	path := c.accountPath("/" + container)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceObjectStorage, path, listingQuery(opts))
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}

	var objects []conoha.ObjectInfo
	if err := json.Unmarshal(resp.Body, &objects); err != nil {
		return nil, fmt.Errorf("parsing objects list response: %w", err)
	}

	return objects, nil
}

// UploadObject implements conoha.ObjectStorageClient.UploadObject. Objects
// are capped at 5GB.
func (c *ObjectStorageClient) UploadObject(ctx context.Context, container, objectName string, data []byte, contentType string) error {
	req := &http.Request{
		Service: conoha.ServiceObjectStorage,
		Method:  nethttp.MethodPut,
		Path:    c.accountPath(fmt.Sprintf("/%s/%s", container, objectName)),
		Body:    data,
	}

	if contentType != "" {
		req.Headers = map[string]string{"Content-Type": contentType}
	}

	_, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("uploading object: %w", err)
	}

	return nil
}

// DownloadObject implements conoha.ObjectStorageClient.DownloadObject
func (c *ObjectStorageClient) DownloadObject(ctx context.Context, container, objectName string) ([]byte, error) {
	path := c.accountPath(fmt.Sprintf("/%s/%s", container, objectName))
	resp, err := c.httpClient.Get(ctx, conoha.ServiceObjectStorage, path, nil)
	if err != nil {
		return nil, fmt.Errorf("downloading object: %w", err)
	}

	return resp.Body, nil
}

// DeleteObject implements conoha.ObjectStorageClient.DeleteObject
func (c *ObjectStorageClient) DeleteObject(ctx context.Context, container, objectName string) error {
	path := c.accountPath(fmt.Sprintf("/%s/%s", container, objectName))

	_, err := c.httpClient.Delete(ctx, conoha.ServiceObjectStorage, path)
	if err != nil {
		return fmt.Errorf("deleting object: %w", err)
	}

	return nil
}

// CopyObject implements conoha.ObjectStorageClient.CopyObject
func (c *ObjectStorageClient) CopyObject(ctx context.Context, srcContainer, srcObject, dstContainer, dstObject string) error {
	req := &http.Request{
		Service: conoha.ServiceObjectStorage,
		Method:  "COPY",
		Path:    c.accountPath(fmt.Sprintf("/%s/%s", srcContainer, srcObject)),
		Headers: map[string]string{"Destination": fmt.Sprintf("%s/%s", dstContainer, dstObject)},
	}

	_, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("copying object: %w", err)
	}

	return nil
}

// ScheduleObjectDeletion implements
// conoha.ObjectStorageClient.ScheduleObjectDeletion
func (c *ObjectStorageClient) ScheduleObjectDeletion(ctx context.Context, container, objectName string, seconds int) error {
	req := &http.Request{
		Service: conoha.ServiceObjectStorage,
		Method:  nethttp.MethodPost,
		Path:    c.accountPath(fmt.Sprintf("/%s/%s", container, objectName)),
		Headers: map[string]string{"X-Delete-After": strconv.Itoa(seconds)},
	}

	_, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("scheduling object deletion: %w", err)
	}

	return nil
}

// GetObjectMetadata implements conoha.ObjectStorageClient.GetObjectMetadata
func (c *ObjectStorageClient) GetObjectMetadata(ctx context.Context, container, objectName string) (map[string]string, error) {
	path := c.accountPath(fmt.Sprintf("/%s/%s", container, objectName))
	resp, err := c.httpClient.Head(ctx, conoha.ServiceObjectStorage, path)
	if err != nil {
		return nil, fmt.Errorf("getting object metadata: %w", err)
	}

	metadata := make(map[string]string, len(resp.Headers))
	for name := range resp.Headers {
		metadata[name] = resp.Headers.Get(name)
	}

	return metadata, nil
}
