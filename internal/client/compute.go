package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/conoha-io/conoha-go/internal/http"
	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// ComputeClient implements conoha.ComputeClient
type ComputeClient struct {
	httpClient *http.Client
}

// NewComputeClient creates a new compute client
func NewComputeClient(httpClient *http.Client) *ComputeClient {
	return &ComputeClient{httpClient: httpClient}
}

// ServiceName implements conoha.ServiceClient.ServiceName
func (c *ComputeClient) ServiceName() string {
	return conoha.ServiceCompute
}

// ListServers implements conoha.ComputeClient.ListServers
func (c *ComputeClient) ListServers(ctx context.Context) ([]conoha.Server, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, "/v2.1/servers", nil)
	if err != nil {
		return nil, fmt.Errorf("listing servers: %w", err)
	}

	var result struct {
		Servers []conoha.Server `json:"servers"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing servers list response: %w", err)
	}

	return result.Servers, nil
}

// ListServersDetail implements conoha.ComputeClient.ListServersDetail
func (c *ComputeClient) ListServersDetail(ctx context.Context) ([]conoha.Server, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, "/v2.1/servers/detail", nil)
	if err != nil {
		return nil, fmt.Errorf("listing servers detail: %w", err)
	}

	var result struct {
		Servers []conoha.Server `json:"servers"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing servers list response: %w", err)
	}

	return result.Servers, nil
}

// GetServer implements conoha.ComputeClient.GetServer
func (c *ComputeClient) GetServer(ctx context.Context, serverID string) (*conoha.Server, error) {
	path := fmt.Sprintf("/v2.1/servers/%s", serverID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting server: %w", err)
	}

	var result struct {
		Server conoha.Server `json:"server"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing server response: %w", err)
	}

	return &result.Server, nil
}

// CreateServer implements conoha.ComputeClient.CreateServer. Servers boot
// from an existing volume referenced in the block device mapping.
func (c *ComputeClient) CreateServer(ctx context.Context, request *conoha.ServerCreateRequest) (*conoha.Server, error) {
	server := map[string]interface{}{
		"flavorRef": request.FlavorID,
		"adminPass": request.AdminPass,
		"block_device_mapping_v2": []map[string]interface{}{
			{"uuid": request.VolumeID},
		},
		"metadata": map[string]string{"instance_name_tag": request.InstanceNameTag},
	}

	if request.KeyName != "" {
		server["key_name"] = request.KeyName
	}

	if request.UserData != "" {
		server["user_data"] = request.UserData
	}

	if len(request.SecurityGroups) > 0 {
		groups := make([]map[string]string, 0, len(request.SecurityGroups))
		for _, name := range request.SecurityGroups {
			groups = append(groups, map[string]string{"name": name})
		}

		server["security_groups"] = groups
	}

	body := map[string]interface{}{"server": server}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceCompute, "/v2.1/servers", body)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}

	var result struct {
		Server conoha.Server `json:"server"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing server response: %w", err)
	}

	return &result.Server, nil
}

// DeleteServer implements conoha.ComputeClient.DeleteServer
func (c *ComputeClient) DeleteServer(ctx context.Context, serverID string) error {
	path := fmt.Sprintf("/v2.1/servers/%s", serverID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceCompute, path)
	if err != nil {
		return fmt.Errorf("deleting server: %w", err)
	}

	return nil
}

// serverAction posts one action body to the server action endpoint.
func (c *ComputeClient) serverAction(ctx context.Context, serverID string, action interface{}) error {
	path := fmt.Sprintf("/v2.1/servers/%s/action", serverID)

	_, err := c.httpClient.Post(ctx, conoha.ServiceCompute, path, action)

	return err
}

// StartServer implements conoha.ComputeClient.StartServer
func (c *ComputeClient) StartServer(ctx context.Context, serverID string) error {
	err := c.serverAction(ctx, serverID, map[string]interface{}{"os-start": nil})
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	return nil
}

// StopServer implements conoha.ComputeClient.StopServer
func (c *ComputeClient) StopServer(ctx context.Context, serverID string) error {
	err := c.serverAction(ctx, serverID, map[string]interface{}{"os-stop": nil})
	if err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}

	return nil
}

// ForceStopServer implements conoha.ComputeClient.ForceStopServer
func (c *ComputeClient) ForceStopServer(ctx context.Context, serverID string) error {
	action := map[string]interface{}{
		"os-stop": map[string]bool{"force_shutdown": true},
	}

	err := c.serverAction(ctx, serverID, action)
	if err != nil {
		return fmt.Errorf("force stopping server: %w", err)
	}

	return nil
}

// RebootServer implements conoha.ComputeClient.RebootServer
func (c *ComputeClient) RebootServer(ctx context.Context, serverID string, rebootType conoha.RebootType) error {
	action := map[string]interface{}{
		"reboot": map[string]string{"type": string(rebootType)},
	}

	err := c.serverAction(ctx, serverID, action)
	if err != nil {
		return fmt.Errorf("rebooting server: %w", err)
	}

	return nil
}

// ResizeServer implements conoha.ComputeClient.ResizeServer. The server must
// be stopped.
func (c *ComputeClient) ResizeServer(ctx context.Context, serverID, flavorID string) error {
	action := map[string]interface{}{
		"resize": map[string]string{"flavorRef": flavorID},
	}

	err := c.serverAction(ctx, serverID, action)
	if err != nil {
		return fmt.Errorf("resizing server: %w", err)
	}

	return nil
}

// ConfirmResize implements conoha.ComputeClient.ConfirmResize
func (c *ComputeClient) ConfirmResize(ctx context.Context, serverID string) error {
	err := c.serverAction(ctx, serverID, map[string]interface{}{"confirmResize": nil})
	if err != nil {
		return fmt.Errorf("confirming resize: %w", err)
	}

	return nil
}

// RevertResize implements conoha.ComputeClient.RevertResize
func (c *ComputeClient) RevertResize(ctx context.Context, serverID string) error {
	err := c.serverAction(ctx, serverID, map[string]interface{}{"revertResize": nil})
	if err != nil {
		return fmt.Errorf("reverting resize: %w", err)
	}

	return nil
}

// RebuildServer implements conoha.ComputeClient.RebuildServer
func (c *ComputeClient) RebuildServer(ctx context.Context, serverID, imageID, adminPass string) error {
	action := map[string]interface{}{
		"rebuild": map[string]string{"imageRef": imageID, "adminPass": adminPass},
	}

	err := c.serverAction(ctx, serverID, action)
	if err != nil {
		return fmt.Errorf("rebuilding server: %w", err)
	}

	return nil
}

// MountISO implements conoha.ComputeClient.MountISO
func (c *ComputeClient) MountISO(ctx context.Context, serverID, imageID string) error {
	action := map[string]interface{}{
		"mountImage": map[string]string{"imageid": imageID},
	}

	err := c.serverAction(ctx, serverID, action)
	if err != nil {
		return fmt.Errorf("mounting ISO image: %w", err)
	}

	return nil
}

// UnmountISO implements conoha.ComputeClient.UnmountISO
func (c *ComputeClient) UnmountISO(ctx context.Context, serverID, imageID string) error {
	action := map[string]interface{}{
		"unmountImage": map[string]string{"imageid": imageID},
	}

	err := c.serverAction(ctx, serverID, action)
	if err != nil {
		return fmt.Errorf("unmounting ISO image: %w", err)
	}

	return nil
}

// SetServerSettings implements conoha.ComputeClient.SetServerSettings. The
// server must be stopped. Nil fields are not sent.
func (c *ComputeClient) SetServerSettings(ctx context.Context, serverID string, settings *conoha.ServerSettings) error {
	body := map[string]string{}

	if settings.HWVideoModel != nil {
		body["hwVideoModel"] = *settings.HWVideoModel
	}

	if settings.HWVifModel != nil {
		body["hwVifModel"] = *settings.HWVifModel
	}

	if settings.HWDiskBus != nil {
		body["hwDiskBus"] = *settings.HWDiskBus
	}

	action := map[string]interface{}{"setServerSettings": body}

	err := c.serverAction(ctx, serverID, action)
	if err != nil {
		return fmt.Errorf("setting server settings: %w", err)
	}

	return nil
}

// GetServerMetadata implements conoha.ComputeClient.GetServerMetadata
func (c *ComputeClient) GetServerMetadata(ctx context.Context, serverID string) (map[string]string, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/metadata", serverID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting server metadata: %w", err)
	}

	var result struct {
		Metadata map[string]string `json:"metadata"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing server metadata response: %w", err)
	}

	return result.Metadata, nil
}

// UpdateServerMetadata implements conoha.ComputeClient.UpdateServerMetadata
func (c *ComputeClient) UpdateServerMetadata(ctx context.Context, serverID string, metadata map[string]string) (map[string]string, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/metadata", serverID)
	body := map[string]interface{}{"metadata": metadata}

	resp, err := c.httpClient.Put(ctx, conoha.ServiceCompute, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating server metadata: %w", err)
	}

	var result struct {
		Metadata map[string]string `json:"metadata"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing server metadata response: %w", err)
	}

	return result.Metadata, nil
}

// GetServerAddresses implements conoha.ComputeClient.GetServerAddresses
func (c *ComputeClient) GetServerAddresses(ctx context.Context, serverID string) (map[string][]conoha.ServerAddress, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/ips", serverID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting server addresses: %w", err)
	}

	var result struct {
		Addresses map[string][]conoha.ServerAddress `json:"addresses"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing server addresses response: %w", err)
	}

	return result.Addresses, nil
}

// GetServerAddressesByNetwork implements
// conoha.ComputeClient.GetServerAddressesByNetwork. The response is keyed by
// the network name that was asked for.
func (c *ComputeClient) GetServerAddressesByNetwork(ctx context.Context, serverID, networkName string) ([]conoha.ServerAddress, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/ips/%s", serverID, networkName)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting server addresses: %w", err)
	}

	var result map[string][]conoha.ServerAddress
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing server addresses response: %w", err)
	}

	return result[networkName], nil
}

// GetServerSecurityGroups implements
// conoha.ComputeClient.GetServerSecurityGroups
func (c *ComputeClient) GetServerSecurityGroups(ctx context.Context, serverID string) ([]conoha.SecurityGroup, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/os-security-groups", serverID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting server security groups: %w", err)
	}

	var result struct {
		SecurityGroups []conoha.SecurityGroup `json:"security_groups"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing security groups response: %w", err)
	}

	return result.SecurityGroups, nil
}

// GetConsoleURL implements conoha.ComputeClient.GetConsoleURL
func (c *ComputeClient) GetConsoleURL(ctx context.Context, serverID, consoleType string) (*conoha.RemoteConsole, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/remote-consoles", serverID)
	body := map[string]interface{}{
		"remote_console": map[string]string{"protocol": "vnc", "type": consoleType},
	}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceCompute, path, body)
	if err != nil {
		return nil, fmt.Errorf("getting console URL: %w", err)
	}

	var result struct {
		RemoteConsole conoha.RemoteConsole `json:"remote_console"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing remote console response: %w", err)
	}

	return &result.RemoteConsole, nil
}

// ListFlavors implements conoha.ComputeClient.ListFlavors
func (c *ComputeClient) ListFlavors(ctx context.Context) ([]conoha.Flavor, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, "/v2.1/flavors", nil)
	if err != nil {
		return nil, fmt.Errorf("listing flavors: %w", err)
	}

	var result struct {
		Flavors []conoha.Flavor `json:"flavors"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing flavors list response: %w", err)
	}

	return result.Flavors, nil
}

// ListFlavorsDetail implements conoha.ComputeClient.ListFlavorsDetail
func (c *ComputeClient) ListFlavorsDetail(ctx context.Context) ([]conoha.Flavor, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, "/v2.1/flavors/detail", nil)
	if err != nil {
		return nil, fmt.Errorf("listing flavors detail: %w", err)
	}

	var result struct {
		Flavors []conoha.Flavor `json:"flavors"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing flavors list response: %w", err)
	}

	return result.Flavors, nil
}

// GetFlavor implements conoha.ComputeClient.GetFlavor
func (c *ComputeClient) GetFlavor(ctx context.Context, flavorID string) (*conoha.Flavor, error) {
	path := fmt.Sprintf("/v2.1/flavors/%s", flavorID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting flavor: %w", err)
	}

	var result struct {
		Flavor conoha.Flavor `json:"flavor"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing flavor response: %w", err)
	}

	return &result.Flavor, nil
}

// ListKeyPairs implements conoha.ComputeClient.ListKeyPairs
func (c *ComputeClient) ListKeyPairs(ctx context.Context) ([]conoha.KeyPair, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, "/v2.1/os-keypairs", nil)
	if err != nil {
		return nil, fmt.Errorf("listing keypairs: %w", err)
	}

	// Each list entry wraps the keypair one level deeper.
	var result struct {
		KeyPairs []struct {
			KeyPair conoha.KeyPair `json:"keypair"`
		} `json:"keypairs"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing keypairs list response: %w", err)
	}

	keypairs := make([]conoha.KeyPair, 0, len(result.KeyPairs))
	for _, entry := range result.KeyPairs {
		keypairs = append(keypairs, entry.KeyPair)
	}

	return keypairs, nil
}

// CreateKeyPair implements conoha.ComputeClient.CreateKeyPair. With an empty
// publicKey a keypair is generated server-side and PrivateKey is populated.
func (c *ComputeClient) CreateKeyPair(ctx context.Context, name, publicKey string) (*conoha.KeyPair, error) {
	keypair := map[string]string{"name": name}
	if publicKey != "" {
		keypair["public_key"] = publicKey
	}

	body := map[string]interface{}{"keypair": keypair}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceCompute, "/v2.1/os-keypairs", body)
	if err != nil {
		return nil, fmt.Errorf("creating keypair: %w", err)
	}

	var result struct {
		KeyPair conoha.KeyPair `json:"keypair"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing keypair response: %w", err)
	}

	return &result.KeyPair, nil
}

// GetKeyPair implements conoha.ComputeClient.GetKeyPair
func (c *ComputeClient) GetKeyPair(ctx context.Context, name string) (*conoha.KeyPair, error) {
	path := fmt.Sprintf("/v2.1/os-keypairs/%s", name)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting keypair: %w", err)
	}

	var result struct {
		KeyPair conoha.KeyPair `json:"keypair"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing keypair response: %w", err)
	}

	return &result.KeyPair, nil
}

// DeleteKeyPair implements conoha.ComputeClient.DeleteKeyPair
func (c *ComputeClient) DeleteKeyPair(ctx context.Context, name string) error {
	path := fmt.Sprintf("/v2.1/os-keypairs/%s", name)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceCompute, path)
	if err != nil {
		return fmt.Errorf("deleting keypair: %w", err)
	}

	return nil
}

// ListAttachedPorts implements conoha.ComputeClient.ListAttachedPorts
func (c *ComputeClient) ListAttachedPorts(ctx context.Context, serverID string) ([]conoha.InterfaceAttachment, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/os-interface", serverID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing attached ports: %w", err)
	}

	var result struct {
		InterfaceAttachments []conoha.InterfaceAttachment `json:"interfaceAttachments"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing interface attachments response: %w", err)
	}

	return result.InterfaceAttachments, nil
}

// GetAttachedPort implements conoha.ComputeClient.GetAttachedPort
func (c *ComputeClient) GetAttachedPort(ctx context.Context, serverID, portID string) (*conoha.InterfaceAttachment, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/os-interface/%s", serverID, portID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting attached port: %w", err)
	}

	var result struct {
		InterfaceAttachment conoha.InterfaceAttachment `json:"interfaceAttachment"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing interface attachment response: %w", err)
	}

	return &result.InterfaceAttachment, nil
}

// AttachPort implements conoha.ComputeClient.AttachPort
func (c *ComputeClient) AttachPort(ctx context.Context, serverID, portID string) (*conoha.InterfaceAttachment, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/os-interface", serverID)
	body := map[string]interface{}{
		"interfaceAttachment": map[string]string{"port_id": portID},
	}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceCompute, path, body)
	if err != nil {
		return nil, fmt.Errorf("attaching port: %w", err)
	}

	var result struct {
		InterfaceAttachment conoha.InterfaceAttachment `json:"interfaceAttachment"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing interface attachment response: %w", err)
	}

	return &result.InterfaceAttachment, nil
}

// DetachPort implements conoha.ComputeClient.DetachPort
func (c *ComputeClient) DetachPort(ctx context.Context, serverID, portID string) error {
	path := fmt.Sprintf("/v2.1/servers/%s/os-interface/%s", serverID, portID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceCompute, path)
	if err != nil {
		return fmt.Errorf("detaching port: %w", err)
	}

	return nil
}

// ListAttachedVolumes implements conoha.ComputeClient.ListAttachedVolumes
func (c *ComputeClient) ListAttachedVolumes(ctx context.Context, serverID string) ([]conoha.VolumeAttachment, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/os-volume_attachments", serverID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing attached volumes: %w", err)
	}

	var result struct {
		VolumeAttachments []conoha.VolumeAttachment `json:"volumeAttachments"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing volume attachments response: %w", err)
	}

	return result.VolumeAttachments, nil
}

// GetAttachedVolume implements conoha.ComputeClient.GetAttachedVolume
func (c *ComputeClient) GetAttachedVolume(ctx context.Context, serverID, volumeID string) (*conoha.VolumeAttachment, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/os-volume_attachments/%s", serverID, volumeID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting attached volume: %w", err)
	}

	var result struct {
		VolumeAttachment conoha.VolumeAttachment `json:"volumeAttachment"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing volume attachment response: %w", err)
	}

	return &result.VolumeAttachment, nil
}

// AttachVolume implements conoha.ComputeClient.AttachVolume. The server must
// be stopped.
func (c *ComputeClient) AttachVolume(ctx context.Context, serverID, volumeID string) (*conoha.VolumeAttachment, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/os-volume_attachments", serverID)
	body := map[string]interface{}{
		"volumeAttachment": map[string]string{"volumeId": volumeID},
	}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceCompute, path, body)
	if err != nil {
		return nil, fmt.Errorf("attaching volume: %w", err)
	}

	var result struct {
		VolumeAttachment conoha.VolumeAttachment `json:"volumeAttachment"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing volume attachment response: %w", err)
	}

	return &result.VolumeAttachment, nil
}

// DetachVolume implements conoha.ComputeClient.DetachVolume. The server must
// be stopped.
func (c *ComputeClient) DetachVolume(ctx context.Context, serverID, volumeID string) error {
	path := fmt.Sprintf("/v2.1/servers/%s/os-volume_attachments/%s", serverID, volumeID)

	_, err := c.httpClient.Delete(ctx, conoha.ServiceCompute, path)
	if err != nil {
		return fmt.Errorf("detaching volume: %w", err)
	}

	return nil
}

// graphQuery builds the common query parameters of the rrd endpoints.
func graphQuery(opts *conoha.GraphOptions) url.Values {
	if opts == nil {
		return nil
	}

	query := url.Values{}

	if opts.StartDateRaw != "" {
		query.Set("start_date_raw", opts.StartDateRaw)
	}

	if opts.EndDateRaw != "" {
		query.Set("end_date_raw", opts.EndDateRaw)
	}

	if opts.Mode != "" {
		query.Set("mode", opts.Mode)
	}

	if opts.Device != "" {
		query.Set("device", opts.Device)
	}

	return query
}

// GetCPUGraph implements conoha.ComputeClient.GetCPUGraph
func (c *ComputeClient) GetCPUGraph(ctx context.Context, serverID string, opts *conoha.GraphOptions) (*conoha.Graph, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/rrd/cpu", serverID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, graphQuery(opts))
	if err != nil {
		return nil, fmt.Errorf("getting CPU graph: %w", err)
	}

	var result struct {
		CPU conoha.Graph `json:"cpu"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing CPU graph response: %w", err)
	}

	return &result.CPU, nil
}

// GetDiskIOGraph implements conoha.ComputeClient.GetDiskIOGraph
func (c *ComputeClient) GetDiskIOGraph(ctx context.Context, serverID string, opts *conoha.GraphOptions) (*conoha.Graph, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/rrd/disk", serverID)
	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, graphQuery(opts))
	if err != nil {
		return nil, fmt.Errorf("getting disk I/O graph: %w", err)
	}

	var result struct {
		Disk conoha.Graph `json:"disk"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing disk I/O graph response: %w", err)
	}

	return &result.Disk, nil
}

// GetTrafficGraph implements conoha.ComputeClient.GetTrafficGraph
func (c *ComputeClient) GetTrafficGraph(ctx context.Context, serverID, portID string, opts *conoha.GraphOptions) (*conoha.Graph, error) {
	path := fmt.Sprintf("/v2.1/servers/%s/rrd/interface", serverID)

	query := graphQuery(opts)
	if query == nil {
		query = url.Values{}
	}

	query.Set("port_id", portID)

	resp, err := c.httpClient.Get(ctx, conoha.ServiceCompute, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting traffic graph: %w", err)
	}

	var result struct {
		Interface conoha.Graph `json:"interface"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing traffic graph response: %w", err)
	}

	return &result.Interface, nil
}
