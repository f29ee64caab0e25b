package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/conoha-io/conoha-go/internal/http"
	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// NetworkClient implements conoha.NetworkClient
type NetworkClient struct {
	httpClient *http.Client
}

// NewNetworkClient creates a new network client
func NewNetworkClient(httpClient *http.Client) *NetworkClient {
	return &NetworkClient{httpClient: httpClient}
}

// ServiceName implements conoha.ServiceClient.ServiceName
func (c *NetworkClient) ServiceName() string {
	return conoha.ServiceNetwork
}

// ListSecurityGroups implements conoha.NetworkClient.ListSecurityGroups
func (c *NetworkClient) ListSecurityGroups(ctx context.Context) ([]conoha.SecurityGroup, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceNetwork, "/v2.0/security-groups", nil)
	if err != nil {
		return nil, fmt.Errorf("listing security groups: %w", err)
	}

	var result struct {
		SecurityGroups []conoha.SecurityGroup `json:"security_groups"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing security groups response: %w", err)
	}

	return result.SecurityGroups, nil
}

// CreateSecurityGroup implements conoha.NetworkClient.CreateSecurityGroup
func (c *NetworkClient) CreateSecurityGroup(ctx context.Context, name, description string) (*conoha.SecurityGroup, error) {
	group := map[string]string{"name": name}
	if description != "" {
		group["description"] = description
	}

	body := map[string]interface{}{"security_group": group}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceNetwork, "/v2.0/security-groups", body)
	if err != nil {
		return nil, fmt.Errorf("creating security group: %w", err)
	}

	var result struct {
		SecurityGroup conoha.SecurityGroup `json:"security_group"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing security group response: %w", err)
	}

	return &result.SecurityGroup, nil
}

// GetSecurityGroup implements conoha.NetworkClient.GetSecurityGroup
func (c *NetworkClient) GetSecurityGroup(ctx context.Context, securityGroupID string) (*conoha.SecurityGroup, error) {
	path := fmt.Sprintf("/v2.0/security-groups/%s", securityGroupID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceNetwork, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting security group: %w", err)
	}

	var result struct {
		SecurityGroup conoha.SecurityGroup `json:"security_group"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing security group response: %w", err)
	}

	return &result.SecurityGroup, nil
}

// UpdateSecurityGroup implements conoha.NetworkClient.UpdateSecurityGroup
func (c *NetworkClient) UpdateSecurityGroup(ctx context.Context, securityGroupID string, request *conoha.SecurityGroupUpdateRequest) (*conoha.SecurityGroup, error) {
	group := map[string]interface{}{}

	if request.Name != nil {
		group["name"] = *request.Name
	}

	if request.Description != nil {
		group["description"] = *request.Description
	}

	body := map[string]interface{}{"security_group": group}
	path := fmt.Sprintf("/v2.0/security-groups/%s", securityGroupID)

	resp, err := c.httpClient.Put(ctx, conoha.ServiceNetwork, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating security group: %w", err)
	}

	var result struct {
		SecurityGroup conoha.SecurityGroup `json:"security_group"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing security group response: %w", err)
	}

	return &result.SecurityGroup, nil
}

// DeleteSecurityGroup implements conoha.NetworkClient.DeleteSecurityGroup
func (c *NetworkClient) DeleteSecurityGroup(ctx context.Context, securityGroupID string) error {
	path := fmt.Sprintf("/v2.0/security-groups/%s", securityGroupID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceNetwork, path)
	if err != nil {
		return fmt.Errorf("deleting security group: %w", err)
	}

	return nil
}

// ListSecurityGroupRules implements
// conoha.NetworkClient.ListSecurityGroupRules
func (c *NetworkClient) ListSecurityGroupRules(ctx context.Context) ([]conoha.SecurityGroupRule, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceNetwork, "/v2.0/security-group-rules", nil)
	if err != nil {
		return nil, fmt.Errorf("listing security group rules: %w", err)
	}

	var result struct {
		SecurityGroupRules []conoha.SecurityGroupRule `json:"security_group_rules"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing security group rules response: %w", err)
	}

	return result.SecurityGroupRules, nil
}

// CreateSecurityGroupRule implements
// conoha.NetworkClient.CreateSecurityGroupRule. EtherType defaults to IPv4.
func (c *NetworkClient) CreateSecurityGroupRule(ctx context.Context, request *conoha.SecurityGroupRuleCreateRequest) (*conoha.SecurityGroupRule, error) {
	etherType := request.EtherType
	if etherType == "" {
		etherType = "IPv4"
	}

	rule := map[string]interface{}{
		"security_group_id": request.SecurityGroupID,
		"direction":         request.Direction,
		"ethertype":         etherType,
	}

	if request.Protocol != "" {
		rule["protocol"] = request.Protocol
	}

	if request.PortRangeMin != nil {
		rule["port_range_min"] = *request.PortRangeMin
	}

	if request.PortRangeMax != nil {
		rule["port_range_max"] = *request.PortRangeMax
	}

	if request.RemoteIPPrefix != "" {
		rule["remote_ip_prefix"] = request.RemoteIPPrefix
	}

	body := map[string]interface{}{"security_group_rule": rule}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceNetwork, "/v2.0/security-group-rules", body)
	if err != nil {
		return nil, fmt.Errorf("creating security group rule: %w", err)
	}

	var result struct {
		SecurityGroupRule conoha.SecurityGroupRule `json:"security_group_rule"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing security group rule response: %w", err)
	}

	return &result.SecurityGroupRule, nil
}

// GetSecurityGroupRule implements conoha.NetworkClient.GetSecurityGroupRule
func (c *NetworkClient) GetSecurityGroupRule(ctx context.Context, ruleID string) (*conoha.SecurityGroupRule, error) {
	path := fmt.Sprintf("/v2.0/security-group-rules/%s", ruleID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceNetwork, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting security group rule: %w", err)
	}

	var result struct {
		SecurityGroupRule conoha.SecurityGroupRule `json:"security_group_rule"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing security group rule response: %w", err)
	}

	return &result.SecurityGroupRule, nil
}

// DeleteSecurityGroupRule implements
// conoha.NetworkClient.DeleteSecurityGroupRule
func (c *NetworkClient) DeleteSecurityGroupRule(ctx context.Context, ruleID string) error {
	path := fmt.Sprintf("/v2.0/security-group-rules/%s", ruleID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceNetwork, path)
	if err != nil {
		return fmt.Errorf("deleting security group rule: %w", err)
	}

	return nil
}

// ListNetworks implements conoha.NetworkClient.ListNetworks
func (c *NetworkClient) ListNetworks(ctx context.Context) ([]conoha.Network, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceNetwork, "/v2.0/networks", nil)
	if err != nil {
		return nil, fmt.Errorf("listing networks: %w", err)
	}

	var result struct {
		Networks []conoha.Network `json:"networks"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing networks list response: %w", err)
	}

	return result.Networks, nil
}

// GetNetwork implements conoha.NetworkClient.GetNetwork
func (c *NetworkClient) GetNetwork(ctx context.Context, networkID string) (*conoha.Network, error) {
	path := fmt.Sprintf("/v2.0/networks/%s", networkID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceNetwork, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting network: %w", err)
	}

	var result struct {
		Network conoha.Network `json:"network"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing network response: %w", err)
	}

	return &result.Network, nil
}

// CreateNetwork implements conoha.NetworkClient.CreateNetwork
func (c *NetworkClient) CreateNetwork(ctx context.Context, name string) (*conoha.Network, error) {
	network := map[string]string{}
	if name != "" {
		network["name"] = name
	}

	body := map[string]interface{}{"network": network}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceNetwork, "/v2.0/networks", body)
	if err != nil {
		return nil, fmt.Errorf("creating network: %w", err)
	}

	var result struct {
		Network conoha.Network `json:"network"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing network response: %w", err)
	}

	return &result.Network, nil
}

// DeleteNetwork implements conoha.NetworkClient.DeleteNetwork. All subnets
// must be removed first.
func (c *NetworkClient) DeleteNetwork(ctx context.Context, networkID string) error {
	path := fmt.Sprintf("/v2.0/networks/%s", networkID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceNetwork, path)
	if err != nil {
		return fmt.Errorf("deleting network: %w", err)
	}

	return nil
}

// ListSubnets implements conoha.NetworkClient.ListSubnets
func (c *NetworkClient) ListSubnets(ctx context.Context) ([]conoha.Subnet, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceNetwork, "/v2.0/subnets", nil)
	if err != nil {
		return nil, fmt.Errorf("listing subnets: %w", err)
	}

	var result struct {
		Subnets []conoha.Subnet `json:"subnets"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing subnets list response: %w", err)
	}

	return result.Subnets, nil
}

// GetSubnet implements conoha.NetworkClient.GetSubnet
func (c *NetworkClient) GetSubnet(ctx context.Context, subnetID string) (*conoha.Subnet, error) {
	path := fmt.Sprintf("/v2.0/subnets/%s", subnetID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceNetwork, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting subnet: %w", err)
	}

	var result struct {
		Subnet conoha.Subnet `json:"subnet"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing subnet response: %w", err)
	}

	return &result.Subnet, nil
}

// CreateSubnet implements conoha.NetworkClient.CreateSubnet
func (c *NetworkClient) CreateSubnet(ctx context.Context, request *conoha.SubnetCreateRequest) (*conoha.Subnet, error) {
	ipVersion := request.IPVersion
	if ipVersion == 0 {
		ipVersion = 4
	}

	subnet := map[string]interface{}{
		"network_id": request.NetworkID,
		"cidr":       request.CIDR,
		"ip_version": ipVersion,
	}

	if request.Name != "" {
		subnet["name"] = request.Name
	}

	body := map[string]interface{}{"subnet": subnet}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceNetwork, "/v2.0/subnets", body)
	if err != nil {
		return nil, fmt.Errorf("creating subnet: %w", err)
	}

	var result struct {
		Subnet conoha.Subnet `json:"subnet"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing subnet response: %w", err)
	}

	return &result.Subnet, nil
}

// DeleteSubnet implements conoha.NetworkClient.DeleteSubnet
func (c *NetworkClient) DeleteSubnet(ctx context.Context, subnetID string) error {
	path := fmt.Sprintf("/v2.0/subnets/%s", subnetID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceNetwork, path)
	if err != nil {
		return fmt.Errorf("deleting subnet: %w", err)
	}

	return nil
}

// ListPorts implements conoha.NetworkClient.ListPorts
func (c *NetworkClient) ListPorts(ctx context.Context) ([]conoha.Port, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceNetwork, "/v2.0/ports", nil)
	if err != nil {
		return nil, fmt.Errorf("listing ports: %w", err)
	}

	var result struct {
		Ports []conoha.Port `json:"ports"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing ports list response: %w", err)
	}

	return result.Ports, nil
}

// GetPort implements conoha.NetworkClient.GetPort
func (c *NetworkClient) GetPort(ctx context.Context, portID string) (*conoha.Port, error) {
	path := fmt.Sprintf("/v2.0/ports/%s", portID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceNetwork, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting port: %w", err)
	}

	var result struct {
		Port conoha.Port `json:"port"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing port response: %w", err)
	}

	return &result.Port, nil
}

// CreatePort implements conoha.NetworkClient.CreatePort
func (c *NetworkClient) CreatePort(ctx context.Context, request *conoha.PortCreateRequest) (*conoha.Port, error) {
	port := map[string]interface{}{"network_id": request.NetworkID}

	if len(request.FixedIPs) > 0 {
		port["fixed_ips"] = request.FixedIPs
	}

	if len(request.SecurityGroups) > 0 {
		port["security_groups"] = request.SecurityGroups
	}

	if len(request.AllowedAddressPairs) > 0 {
		port["allowed_address_pairs"] = request.AllowedAddressPairs
	}

	body := map[string]interface{}{"port": port}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceNetwork, "/v2.0/ports", body)
	if err != nil {
		return nil, fmt.Errorf("creating port: %w", err)
	}

	var result struct {
		Port conoha.Port `json:"port"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing port response: %w", err)
	}

	return &result.Port, nil
}

// CreateAdditionalIPPort implements
// conoha.NetworkClient.CreateAdditionalIPPort. Count is 1-16.
func (c *NetworkClient) CreateAdditionalIPPort(ctx context.Context, count int, securityGroups []string) (*conoha.Port, error) {
	allocate := map[string]interface{}{"count": count}
	if len(securityGroups) > 0 {
		allocate["security_groups"] = securityGroups
	}

	body := map[string]interface{}{"allocateip": allocate}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceNetwork, "/v2.0/allocateips", body)
	if err != nil {
		return nil, fmt.Errorf("creating additional IP port: %w", err)
	}

	var result struct {
		Port conoha.Port `json:"port"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing port response: %w", err)
	}

	return &result.Port, nil
}

// UpdatePort implements conoha.NetworkClient.UpdatePort
func (c *NetworkClient) UpdatePort(ctx context.Context, portID string, request *conoha.PortUpdateRequest) (*conoha.Port, error) {
	port := map[string]interface{}{}

	if request.SecurityGroups != nil {
		port["security_groups"] = *request.SecurityGroups
	}

	if request.QoSPolicyID != nil {
		port["qos_policy_id"] = *request.QoSPolicyID
	}

	if request.FixedIPs != nil {
		port["fixed_ips"] = request.FixedIPs
	}

	if request.AllowedAddressPairs != nil {
		port["allowed_address_pairs"] = request.AllowedAddressPairs
	}

	body := map[string]interface{}{"port": port}
	path := fmt.Sprintf("/v2.0/ports/%s", portID)

	resp, err := c.httpClient.Put(ctx, conoha.ServiceNetwork, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating port: %w", err)
	}

	var result struct {
		Port conoha.Port `json:"port"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing port response: %w", err)
	}

	return &result.Port, nil
}

// DeletePort implements conoha.NetworkClient.DeletePort. The port must not
// be attached to a server.
func (c *NetworkClient) DeletePort(ctx context.Context, portID string) error {
	path := fmt.Sprintf("/v2.0/ports/%s", portID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceNetwork, path)
	if err != nil {
		return fmt.Errorf("deleting port: %w", err)
	}

	return nil
}

// ListQoSPolicies implements conoha.NetworkClient.ListQoSPolicies
func (c *NetworkClient) ListQoSPolicies(ctx context.Context) ([]conoha.QoSPolicy, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceNetwork, "/v2.0/qos/policies", nil)
	if err != nil {
		return nil, fmt.Errorf("listing QoS policies: %w", err)
	}

	var result struct {
		Policies []conoha.QoSPolicy `json:"policies"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing QoS policies response: %w", err)
	}

	return result.Policies, nil
}

// GetQoSPolicy implements conoha.NetworkClient.GetQoSPolicy
func (c *NetworkClient) GetQoSPolicy(ctx context.Context, policyID string) (*conoha.QoSPolicy, error) {
	path := fmt.Sprintf("/v2.0/qos/policies/%s", policyID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceNetwork, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting QoS policy: %w", err)
	}

	var result struct {
		Policy conoha.QoSPolicy `json:"policy"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing QoS policy response: %w", err)
	}

	return &result.Policy, nil
}
