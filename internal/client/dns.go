package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/conoha-io/conoha-go/internal/http"
	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// DNSClient implements conoha.DNSClient. The DNS endpoints return domains
// and records unwrapped except for the listings.
type DNSClient struct {
	httpClient *http.Client
}

// NewDNSClient creates a new DNS client
func NewDNSClient(httpClient *http.Client) *DNSClient {
	return &DNSClient{httpClient: httpClient}
}

// ServiceName implements conoha.ServiceClient.ServiceName
func (c *DNSClient) ServiceName() string {
	return conoha.ServiceDNS
}

// ListDomains implements conoha.DNSClient.ListDomains
func (c *DNSClient) ListDomains(ctx context.Context, opts *conoha.DomainListOptions) ([]conoha.Domain, error) {
	var query url.Values

	if opts != nil {
		query = url.Values{}

		if opts.Limit > 0 {
			query.Set("limit", strconv.Itoa(opts.Limit))
		}

		if opts.Offset > 0 {
			query.Set("offset", strconv.Itoa(opts.Offset))
		}

		if opts.SortType != "" {
			query.Set("sort_type", opts.SortType)
		}

		if opts.SortKey != "" {
			query.Set("sort_key", opts.SortKey)
		}
	}

	resp, err := c.httpClient.Get(ctx, conoha.ServiceDNS, "/v1/domains", query)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}

	var result struct {
		Domains []conoha.Domain `json:"domains"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing domains list response: %w", err)
	}

	return result.Domains, nil
}

// GetDomain implements conoha.DNSClient.GetDomain
func (c *DNSClient) GetDomain(ctx context.Context, domainID string) (*conoha.Domain, error) {
	path := fmt.Sprintf("/v1/domains/%s", domainID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceDNS, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting domain: %w", err)
	}

	var domain conoha.Domain
	if err := json.Unmarshal(resp.Body, &domain); err != nil {
		return nil, fmt.Errorf("parsing domain response: %w", err)
	}

	return &domain, nil
}

// CreateDomain implements conoha.DNSClient.CreateDomain. The name must be
// fully qualified and end with a dot.
func (c *DNSClient) CreateDomain(ctx context.Context, request *conoha.DomainCreateRequest) (*conoha.Domain, error) {
	resp, err := c.httpClient.Post(ctx, conoha.ServiceDNS, "/v1/domains", request)
	if err != nil {
		return nil, fmt.Errorf("creating domain: %w", err)
	}

	var domain conoha.Domain
	if err := json.Unmarshal(resp.Body, &domain); err != nil {
		return nil, fmt.Errorf("parsing domain response: %w", err)
	}

	return &domain, nil
}

// UpdateDomain implements conoha.DNSClient.UpdateDomain
func (c *DNSClient) UpdateDomain(ctx context.Context, domainID string, request *conoha.DomainUpdateRequest) (*conoha.Domain, error) {
	body := map[string]interface{}{}

	if request.TTL != nil {
		body["ttl"] = *request.TTL
	}

	if request.Email != nil {
		body["email"] = *request.Email
	}

	path := fmt.Sprintf("/v1/domains/%s", domainID)

	resp, err := c.httpClient.Put(ctx, conoha.ServiceDNS, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating domain: %w", err)
	}

	var domain conoha.Domain
	if err := json.Unmarshal(resp.Body, &domain); err != nil {
		return nil, fmt.Errorf("parsing domain response: %w", err)
	}

	return &domain, nil
}

// DeleteDomain implements conoha.DNSClient.DeleteDomain
func (c *DNSClient) DeleteDomain(ctx context.Context, domainID string) error {
	path := fmt.Sprintf("/v1/domains/%s", domainID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceDNS, path)
	if err != nil {
		return fmt.Errorf("deleting domain: %w", err)
	}

	return nil
}

// ListRecords implements conoha.DNSClient.ListRecords
func (c *DNSClient) ListRecords(ctx context.Context, domainID string) ([]conoha.Record, error) {
	path := fmt.Sprintf("/v1/domains/%s/records", domainID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceDNS, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	var result struct {
		Records []conoha.Record `json:"records"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing records list response: %w", err)
	}

	return result.Records, nil
}

// GetRecord implements conoha.DNSClient.GetRecord
func (c *DNSClient) GetRecord(ctx context.Context, domainID, recordID string) (*conoha.Record, error) {
	path := fmt.Sprintf("/v1/domains/%s/records/%s", domainID, recordID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceDNS, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}

	var record conoha.Record
	if err := json.Unmarshal(resp.Body, &record); err != nil {
		return nil, fmt.Errorf("parsing record response: %w", err)
	}

	return &record, nil
}

// CreateRecord implements conoha.DNSClient.CreateRecord
func (c *DNSClient) CreateRecord(ctx context.Context, domainID string, request *conoha.RecordCreateRequest) (*conoha.Record, error) {
	body := map[string]interface{}{
		"name": request.Name,
		"type": request.Type,
		"data": request.Data,
	}

	if request.TTL != nil {
		body["ttl"] = *request.TTL
	}

	if request.Priority != nil {
		body["priority"] = *request.Priority
	}

	path := fmt.Sprintf("/v1/domains/%s/records", domainID)

	resp, err := c.httpClient.Post(ctx, conoha.ServiceDNS, path, body)
	if err != nil {
		return nil, fmt.Errorf("creating record: %w", err)
	}

	var record conoha.Record
	if err := json.Unmarshal(resp.Body, &record); err != nil {
		return nil, fmt.Errorf("parsing record response: %w", err)
	}

	return &record, nil
}

// UpdateRecord implements conoha.DNSClient.UpdateRecord
func (c *DNSClient) UpdateRecord(ctx context.Context, domainID, recordID string, request *conoha.RecordUpdateRequest) (*conoha.Record, error) {
	body := map[string]interface{}{}

	if request.Name != nil {
		body["name"] = *request.Name
	}

	if request.Data != nil {
		body["data"] = *request.Data
	}

	if request.TTL != nil {
		body["ttl"] = *request.TTL
	}

	if request.Priority != nil {
		body["priority"] = *request.Priority
	}

	path := fmt.Sprintf("/v1/domains/%s/records/%s", domainID, recordID)

	resp, err := c.httpClient.Put(ctx, conoha.ServiceDNS, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating record: %w", err)
	}

	var record conoha.Record
	if err := json.Unmarshal(resp.Body, &record); err != nil {
		return nil, fmt.Errorf("parsing record response: %w", err)
	}

	return &record, nil
}

// DeleteRecord implements conoha.DNSClient.DeleteRecord
func (c *DNSClient) DeleteRecord(ctx context.Context, domainID, recordID string) error {
	path := fmt.Sprintf("/v1/domains/%s/records/%s", domainID, recordID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceDNS, path)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	return nil
}
