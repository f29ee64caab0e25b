package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/conoha-io/conoha-go/internal/http"
	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// LoadBalancerClient implements conoha.LoadBalancerClient
type LoadBalancerClient struct {
	httpClient *http.Client
}

// NewLoadBalancerClient creates a new load balancer client
func NewLoadBalancerClient(httpClient *http.Client) *LoadBalancerClient {
	return &LoadBalancerClient{httpClient: httpClient}
}

// ServiceName implements conoha.ServiceClient.ServiceName
func (c *LoadBalancerClient) ServiceName() string {
	return conoha.ServiceLoadBalancer
}

// ListLoadBalancers implements conoha.LoadBalancerClient.ListLoadBalancers
func (c *LoadBalancerClient) ListLoadBalancers(ctx context.Context) ([]conoha.LoadBalancer, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceLoadBalancer, "/v2.0/lbaas/loadbalancers", nil)
	if err != nil {
		return nil, fmt.Errorf("listing load balancers: %w", err)
	}

	var result struct {
		LoadBalancers []conoha.LoadBalancer `json:"loadbalancers"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing load balancers response: %w", err)
	}

	return result.LoadBalancers, nil
}

// GetLoadBalancer implements conoha.LoadBalancerClient.GetLoadBalancer
func (c *LoadBalancerClient) GetLoadBalancer(ctx context.Context, loadBalancerID string) (*conoha.LoadBalancer, error) {
	path := fmt.Sprintf("/v2.0/lbaas/loadbalancers/%s", loadBalancerID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceLoadBalancer, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting load balancer: %w", err)
	}

	var result struct {
		LoadBalancer conoha.LoadBalancer `json:"loadbalancer"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing load balancer response: %w", err)
	}

	return &result.LoadBalancer, nil
}

// CreateLoadBalancer implements conoha.LoadBalancerClient.CreateLoadBalancer
func (c *LoadBalancerClient) CreateLoadBalancer(ctx context.Context, request *conoha.LoadBalancerCreateRequest) (*conoha.LoadBalancer, error) {
	adminStateUp := true
	if request.AdminStateUp != nil {
		adminStateUp = *request.AdminStateUp
	}

	body := map[string]interface{}{
		"loadbalancer": map[string]interface{}{
			"name":           request.Name,
			"vip_subnet_id":  request.VIPSubnetID,
			"admin_state_up": adminStateUp,
		},
	}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceLoadBalancer, "/v2.0/lbaas/loadbalancers", body)
	if err != nil {
		return nil, fmt.Errorf("creating load balancer: %w", err)
	}

	var result struct {
		LoadBalancer conoha.LoadBalancer `json:"loadbalancer"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing load balancer response: %w", err)
	}

	return &result.LoadBalancer, nil
}

// UpdateLoadBalancer implements conoha.LoadBalancerClient.UpdateLoadBalancer
func (c *LoadBalancerClient) UpdateLoadBalancer(ctx context.Context, loadBalancerID string, request *conoha.LoadBalancerUpdateRequest) (*conoha.LoadBalancer, error) {
	lb := map[string]interface{}{}

	if request.Name != nil {
		lb["name"] = *request.Name
	}

	if request.AdminStateUp != nil {
		lb["admin_state_up"] = *request.AdminStateUp
	}

	body := map[string]interface{}{"loadbalancer": lb}
	path := fmt.Sprintf("/v2.0/lbaas/loadbalancers/%s", loadBalancerID)

	resp, err := c.httpClient.Put(ctx, conoha.ServiceLoadBalancer, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating load balancer: %w", err)
	}

	var result struct {
		LoadBalancer conoha.LoadBalancer `json:"loadbalancer"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing load balancer response: %w", err)
	}

	return &result.LoadBalancer, nil
}

// DeleteLoadBalancer implements conoha.LoadBalancerClient.DeleteLoadBalancer
func (c *LoadBalancerClient) DeleteLoadBalancer(ctx context.Context, loadBalancerID string) error {
	path := fmt.Sprintf("/v2.0/lbaas/loadbalancers/%s", loadBalancerID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceLoadBalancer, path)
	if err != nil {
		return fmt.Errorf("deleting load balancer: %w", err)
	}

	return nil
}

// ListListeners implements conoha.LoadBalancerClient.ListListeners
func (c *LoadBalancerClient) ListListeners(ctx context.Context) ([]conoha.Listener, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceLoadBalancer, "/v2.0/lbaas/listeners", nil)
	if err != nil {
		return nil, fmt.Errorf("listing listeners: %w", err)
	}

	var result struct {
		Listeners []conoha.Listener `json:"listeners"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing listeners response: %w", err)
	}

	return result.Listeners, nil
}

// GetListener implements conoha.LoadBalancerClient.GetListener
func (c *LoadBalancerClient) GetListener(ctx context.Context, listenerID string) (*conoha.Listener, error) {
	path := fmt.Sprintf("/v2.0/lbaas/listeners/%s", listenerID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceLoadBalancer, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting listener: %w", err)
	}

	var result struct {
		Listener conoha.Listener `json:"listener"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing listener response: %w", err)
	}

	return &result.Listener, nil
}

// CreateListener implements conoha.LoadBalancerClient.CreateListener
func (c *LoadBalancerClient) CreateListener(ctx context.Context, request *conoha.ListenerCreateRequest) (*conoha.Listener, error) {
	listener := map[string]interface{}{
		"loadbalancer_id": request.LoadBalancerID,
		"protocol":        request.Protocol,
		"protocol_port":   request.ProtocolPort,
	}

	if request.Name != "" {
		listener["name"] = request.Name
	}

	if request.ConnectionLimit != nil {
		listener["connection_limit"] = *request.ConnectionLimit
	}

	body := map[string]interface{}{"listener": listener}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceLoadBalancer, "/v2.0/lbaas/listeners", body)
	if err != nil {
		return nil, fmt.Errorf("creating listener: %w", err)
	}

	var result struct {
		Listener conoha.Listener `json:"listener"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing listener response: %w", err)
	}

	return &result.Listener, nil
}

// UpdateListener implements conoha.LoadBalancerClient.UpdateListener
func (c *LoadBalancerClient) UpdateListener(ctx context.Context, listenerID string, request *conoha.ListenerUpdateRequest) (*conoha.Listener, error) {
	listener := map[string]interface{}{}

	if request.Name != nil {
		listener["name"] = *request.Name
	}

	if request.ConnectionLimit != nil {
		listener["connection_limit"] = *request.ConnectionLimit
	}

	body := map[string]interface{}{"listener": listener}
	path := fmt.Sprintf("/v2.0/lbaas/listeners/%s", listenerID)

	resp, err := c.httpClient.Put(ctx, conoha.ServiceLoadBalancer, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating listener: %w", err)
	}

	var result struct {
		Listener conoha.Listener `json:"listener"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing listener response: %w", err)
	}

	return &result.Listener, nil
}

// DeleteListener implements conoha.LoadBalancerClient.DeleteListener
func (c *LoadBalancerClient) DeleteListener(ctx context.Context, listenerID string) error {
	path := fmt.Sprintf("/v2.0/lbaas/listeners/%s", listenerID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceLoadBalancer, path)
	if err != nil {
		return fmt.Errorf("deleting listener: %w", err)
	}

	return nil
}

// ListPools implements conoha.LoadBalancerClient.ListPools
func (c *LoadBalancerClient) ListPools(ctx context.Context) ([]conoha.Pool, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceLoadBalancer, "/v2.0/lbaas/pools", nil)
	if err != nil {
		return nil, fmt.Errorf("listing pools: %w", err)
	}

	var result struct {
		Pools []conoha.Pool `json:"pools"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing pools response: %w", err)
	}

	return result.Pools, nil
}

// GetPool implements conoha.LoadBalancerClient.GetPool
func (c *LoadBalancerClient) GetPool(ctx context.Context, poolID string) (*conoha.Pool, error) {
	path := fmt.Sprintf("/v2.0/lbaas/pools/%s", poolID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceLoadBalancer, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting pool: %w", err)
	}

	var result struct {
		Pool conoha.Pool `json:"pool"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing pool response: %w", err)
	}

	return &result.Pool, nil
}

// CreatePool implements conoha.LoadBalancerClient.CreatePool
func (c *LoadBalancerClient) CreatePool(ctx context.Context, request *conoha.PoolCreateRequest) (*conoha.Pool, error) {
	pool := map[string]interface{}{
		"listener_id":  request.ListenerID,
		"protocol":     request.Protocol,
		"lb_algorithm": request.LBAlgorithm,
	}

	if request.Name != "" {
		pool["name"] = request.Name
	}

	body := map[string]interface{}{"pool": pool}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceLoadBalancer, "/v2.0/lbaas/pools", body)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	var result struct {
		Pool conoha.Pool `json:"pool"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing pool response: %w", err)
	}

	return &result.Pool, nil
}

// UpdatePool implements conoha.LoadBalancerClient.UpdatePool
func (c *LoadBalancerClient) UpdatePool(ctx context.Context, poolID string, request *conoha.PoolUpdateRequest) (*conoha.Pool, error) {
	pool := map[string]interface{}{}

	if request.Name != nil {
		pool["name"] = *request.Name
	}

	if request.LBAlgorithm != nil {
		pool["lb_algorithm"] = *request.LBAlgorithm
	}

	body := map[string]interface{}{"pool": pool}
	path := fmt.Sprintf("/v2.0/lbaas/pools/%s", poolID)

	resp, err := c.httpClient.Put(ctx, conoha.ServiceLoadBalancer, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating pool: %w", err)
	}

	var result struct {
		Pool conoha.Pool `json:"pool"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing pool response: %w", err)
	}

	return &result.Pool, nil
}

// DeletePool implements conoha.LoadBalancerClient.DeletePool
func (c *LoadBalancerClient) DeletePool(ctx context.Context, poolID string) error {
	path := fmt.Sprintf("/v2.0/lbaas/pools/%s", poolID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceLoadBalancer, path)
	if err != nil {
		return fmt.Errorf("deleting pool: %w", err)
	}

	return nil
}

// ListMembers implements conoha.LoadBalancerClient.ListMembers
func (c *LoadBalancerClient) ListMembers(ctx context.Context, poolID string) ([]conoha.Member, error) {
	path := fmt.Sprintf("/v2.0/lbaas/pools/%s/members", poolID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceLoadBalancer, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	var result struct {
		Members []conoha.Member `json:"members"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing members response: %w", err)
	}

	return result.Members, nil
}

// GetMember implements conoha.LoadBalancerClient.GetMember
func (c *LoadBalancerClient) GetMember(ctx context.Context, poolID, memberID string) (*conoha.Member, error) {
	path := fmt.Sprintf("/v2.0/lbaas/pools/%s/members/%s", poolID, memberID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceLoadBalancer, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting member: %w", err)
	}

	var result struct {
		Member conoha.Member `json:"member"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing member response: %w", err)
	}

	return &result.Member, nil
}

// CreateMember implements conoha.LoadBalancerClient.CreateMember
func (c *LoadBalancerClient) CreateMember(ctx context.Context, poolID string, request *conoha.MemberCreateRequest) (*conoha.Member, error) {
	member := map[string]interface{}{
		"address":       request.Address,
		"protocol_port": request.ProtocolPort,
	}

	if request.Name != "" {
		member["name"] = request.Name
	}

	if request.Weight != nil {
		member["weight"] = *request.Weight
	}

	if request.SubnetID != "" {
		member["subnet_id"] = request.SubnetID
	}

	body := map[string]interface{}{"member": member}
	path := fmt.Sprintf("/v2.0/lbaas/pools/%s/members", poolID)

	resp, err := c.httpClient.Post(ctx, conoha.ServiceLoadBalancer, path, body)
	if err != nil {
		return nil, fmt.Errorf("creating member: %w", err)
	}

	var result struct {
		Member conoha.Member `json:"member"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing member response: %w", err)
	}

	return &result.Member, nil
}

// UpdateMember implements conoha.LoadBalancerClient.UpdateMember
func (c *LoadBalancerClient) UpdateMember(ctx context.Context, poolID, memberID string, request *conoha.MemberUpdateRequest) (*conoha.Member, error) {
	member := map[string]interface{}{}

	if request.Name != nil {
		member["name"] = *request.Name
	}

	if request.Weight != nil {
		member["weight"] = *request.Weight
	}

	body := map[string]interface{}{"member": member}
	path := fmt.Sprintf("/v2.0/lbaas/pools/%s/members/%s", poolID, memberID)

	resp, err := c.httpClient.Put(ctx, conoha.ServiceLoadBalancer, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating member: %w", err)
	}

	var result struct {
		Member conoha.Member `json:"member"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing member response: %w", err)
	}

	return &result.Member, nil
}

// DeleteMember implements conoha.LoadBalancerClient.DeleteMember
func (c *LoadBalancerClient) DeleteMember(ctx context.Context, poolID, memberID string) error {
	path := fmt.Sprintf("/v2.0/lbaas/pools/%s/members/%s", poolID, memberID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceLoadBalancer, path)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}

	return nil
}

// ListHealthMonitors implements conoha.LoadBalancerClient.ListHealthMonitors
func (c *LoadBalancerClient) ListHealthMonitors(ctx context.Context) ([]conoha.HealthMonitor, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceLoadBalancer, "/v2.0/lbaas/healthmonitors", nil)
	if err != nil {
		return nil, fmt.Errorf("listing health monitors: %w", err)
	}

	var result struct {
		HealthMonitors []conoha.HealthMonitor `json:"healthmonitors"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing health monitors response: %w", err)
	}

	return result.HealthMonitors, nil
}

// GetHealthMonitor implements conoha.LoadBalancerClient.GetHealthMonitor
func (c *LoadBalancerClient) GetHealthMonitor(ctx context.Context, healthMonitorID string) (*conoha.HealthMonitor, error) {
	path := fmt.Sprintf("/v2.0/lbaas/healthmonitors/%s", healthMonitorID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceLoadBalancer, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting health monitor: %w", err)
	}

	var result struct {
		HealthMonitor conoha.HealthMonitor `json:"healthmonitor"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing health monitor response: %w", err)
	}

	return &result.HealthMonitor, nil
}

// CreateHealthMonitor implements
// conoha.LoadBalancerClient.CreateHealthMonitor. Timeout must be less than
// Delay.
func (c *LoadBalancerClient) CreateHealthMonitor(ctx context.Context, request *conoha.HealthMonitorCreateRequest) (*conoha.HealthMonitor, error) {
	monitor := map[string]interface{}{
		"pool_id":     request.PoolID,
		"type":        request.Type,
		"delay":       request.Delay,
		"timeout":     request.Timeout,
		"max_retries": request.MaxRetries,
	}

	if request.Name != "" {
		monitor["name"] = request.Name
	}

	if request.URLPath != "" {
		monitor["url_path"] = request.URLPath
	}

	if request.ExpectedCodes != "" {
		monitor["expected_codes"] = request.ExpectedCodes
	}

	body := map[string]interface{}{"healthmonitor": monitor}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceLoadBalancer, "/v2.0/lbaas/healthmonitors", body)
	if err != nil {
		return nil, fmt.Errorf("creating health monitor: %w", err)
	}

	var result struct {
		HealthMonitor conoha.HealthMonitor `json:"healthmonitor"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing health monitor response: %w", err)
	}

	return &result.HealthMonitor, nil
}

// UpdateHealthMonitor implements
// conoha.LoadBalancerClient.UpdateHealthMonitor. Only the name is mutable.
func (c *LoadBalancerClient) UpdateHealthMonitor(ctx context.Context, healthMonitorID, name string) (*conoha.HealthMonitor, error) {
	body := map[string]interface{}{
		"healthmonitor": map[string]string{"name": name},
	}
	path := fmt.Sprintf("/v2.0/lbaas/healthmonitors/%s", healthMonitorID)

	resp, err := c.httpClient.Put(ctx, conoha.ServiceLoadBalancer, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating health monitor: %w", err)
	}

	var result struct {
		HealthMonitor conoha.HealthMonitor `json:"healthmonitor"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing health monitor response: %w", err)
	}

	return &result.HealthMonitor, nil
}

// DeleteHealthMonitor implements
// conoha.LoadBalancerClient.DeleteHealthMonitor
func (c *LoadBalancerClient) DeleteHealthMonitor(ctx context.Context, healthMonitorID string) error {
	path := fmt.Sprintf("/v2.0/lbaas/healthmonitors/%s", healthMonitorID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceLoadBalancer, path)
	if err != nil {
		return fmt.Errorf("deleting health monitor: %w", err)
	}

	return nil
}
