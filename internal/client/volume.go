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

// VolumeClient implements conoha.VolumeClient. Block storage paths are
// scoped to the project, so the client resolves the tenant ID per call.
type VolumeClient struct {
	httpClient *http.Client
	tenantID   func() string
}

// NewVolumeClient creates a new volume client
func NewVolumeClient(httpClient *http.Client, tenantID func() string) *VolumeClient {
	return &VolumeClient{httpClient: httpClient, tenantID: tenantID}
}

// ServiceName implements conoha.ServiceClient.ServiceName
func (c *VolumeClient) ServiceName() string {
	return conoha.ServiceVolume
}

func (c *VolumeClient) projectPath(suffix string) string {
	return fmt.Sprintf("/v3/%s%s", c.tenantID(), suffix)
}

// ListVolumes implements conoha.VolumeClient.ListVolumes
func (c *VolumeClient) ListVolumes(ctx context.Context) ([]conoha.Volume, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceVolume, c.projectPath("/volumes"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing volumes: %w", err)
	}

	var result struct {
		Volumes []conoha.Volume `json:"volumes"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing volumes list response: %w", err)
	}

	return result.Volumes, nil
}

// ListVolumesDetail implements conoha.VolumeClient.ListVolumesDetail
func (c *VolumeClient) ListVolumesDetail(ctx context.Context) ([]conoha.Volume, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceVolume, c.projectPath("/volumes/detail"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing volumes detail: %w", err)
	}

	var result struct {
		Volumes []conoha.Volume `json:"volumes"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing volumes list response: %w", err)
	}

	return result.Volumes, nil
}

// GetVolume implements conoha.VolumeClient.GetVolume
func (c *VolumeClient) GetVolume(ctx context.Context, volumeID string) (*conoha.Volume, error) {
	path := c.projectPath(fmt.Sprintf("/volumes/%s", volumeID))
	resp, err := c.httpClient.Get(ctx, conoha.ServiceVolume, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting volume: %w", err)
	}

	var result struct {
		Volume conoha.Volume `json:"volume"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing volume response: %w", err)
	}

	return &result.Volume, nil
}

// CreateVolume implements conoha.VolumeClient.CreateVolume
func (c *VolumeClient) CreateVolume(ctx context.Context, request *conoha.VolumeCreateRequest) (*conoha.Volume, error) {
	volume := map[string]interface{}{"size": request.Size}

	if request.Name != "" {
		volume["name"] = request.Name
	}

	if request.Description != "" {
		volume["description"] = request.Description
	}

	if request.VolumeType != "" {
		volume["volume_type"] = request.VolumeType
	}

	if request.ImageRef != "" {
		volume["imageRef"] = request.ImageRef
	}

	if request.SourceVolID != "" {
		volume["source_volid"] = request.SourceVolID
	}

	if request.SnapshotID != "" {
		volume["snapshot_id"] = request.SnapshotID
	}

	body := map[string]interface{}{"volume": volume}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceVolume, c.projectPath("/volumes"), body)
	if err != nil {
		return nil, fmt.Errorf("creating volume: %w", err)
	}

	var result struct {
		Volume conoha.Volume `json:"volume"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing volume response: %w", err)
	}

	return &result.Volume, nil
}

// UpdateVolume implements conoha.VolumeClient.UpdateVolume
func (c *VolumeClient) UpdateVolume(ctx context.Context, volumeID string, request *conoha.VolumeUpdateRequest) (*conoha.Volume, error) {
	volume := map[string]interface{}{}

	if request.Name != nil {
		volume["name"] = *request.Name
	}

	if request.Description != nil {
		volume["description"] = *request.Description
	}

	body := map[string]interface{}{"volume": volume}
	path := c.projectPath(fmt.Sprintf("/volumes/%s", volumeID))

	resp, err := c.httpClient.Put(ctx, conoha.ServiceVolume, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating volume: %w", err)
	}

	var result struct {
		Volume conoha.Volume `json:"volume"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing volume response: %w", err)
	}

	return &result.Volume, nil
}

// DeleteVolume implements conoha.VolumeClient.DeleteVolume
func (c *VolumeClient) DeleteVolume(ctx context.Context, volumeID string) error {
	path := c.projectPath(fmt.Sprintf("/volumes/%s", volumeID))

	_, err := c.httpClient.Delete(ctx, conoha.ServiceVolume, path)
	if err != nil {
		return fmt.Errorf("deleting volume: %w", err)
	}

	return nil
}

// SaveVolumeAsImage implements conoha.VolumeClient.SaveVolumeAsImage
func (c *VolumeClient) SaveVolumeAsImage(ctx context.Context, volumeID, imageName string) (*conoha.UploadedImage, error) {
	path := c.projectPath(fmt.Sprintf("/volumes/%s/action", volumeID))
	body := map[string]interface{}{
		"os-volume_upload_image": map[string]string{
			"image_name":       imageName,
			"disk_format":      "qcow2",
			"container_format": "ovf",
		},
	}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceVolume, path, body)
	if err != nil {
		return nil, fmt.Errorf("saving volume as image: %w", err)
	}

	var result struct {
		UploadedImage conoha.UploadedImage `json:"os-volume_upload_image"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing uploaded image response: %w", err)
	}

	return &result.UploadedImage, nil
}

// ListVolumeTypes implements conoha.VolumeClient.ListVolumeTypes
func (c *VolumeClient) ListVolumeTypes(ctx context.Context) ([]conoha.VolumeType, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceVolume, c.projectPath("/types"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing volume types: %w", err)
	}

	var result struct {
		VolumeTypes []conoha.VolumeType `json:"volume_types"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing volume types response: %w", err)
	}

	return result.VolumeTypes, nil
}

// GetVolumeType implements conoha.VolumeClient.GetVolumeType
func (c *VolumeClient) GetVolumeType(ctx context.Context, typeID string) (*conoha.VolumeType, error) {
	path := c.projectPath(fmt.Sprintf("/types/%s", typeID))
	resp, err := c.httpClient.Get(ctx, conoha.ServiceVolume, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting volume type: %w", err)
	}

	var result struct {
		VolumeType conoha.VolumeType `json:"volume_type"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing volume type response: %w", err)
	}

	return &result.VolumeType, nil
}

func backupQuery(opts *conoha.BackupListOptions) url.Values {
	if opts == nil {
		return nil
	}

	query := url.Values{}

	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}

	return query
}

// ListBackups implements conoha.VolumeClient.ListBackups
func (c *VolumeClient) ListBackups(ctx context.Context, opts *conoha.BackupListOptions) ([]conoha.Backup, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceVolume, c.projectPath("/backups"), backupQuery(opts))
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}

	var result struct {
		Backups []conoha.Backup `json:"backups"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing backups list response: %w", err)
	}

	return result.Backups, nil
}

// ListBackupsDetail implements conoha.VolumeClient.ListBackupsDetail
func (c *VolumeClient) ListBackupsDetail(ctx context.Context, opts *conoha.BackupListOptions) ([]conoha.Backup, error) {
	resp, err := c.httpClient.Get(ctx, conoha.ServiceVolume, c.projectPath("/backups/detail"), backupQuery(opts))
	if err != nil {
		return nil, fmt.Errorf("listing backups detail: %w", err)
	}

	var result struct {
		Backups []conoha.Backup `json:"backups"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing backups list response: %w", err)
	}

	return result.Backups, nil
}

// GetBackup implements conoha.VolumeClient.GetBackup
func (c *VolumeClient) GetBackup(ctx context.Context, backupID string) (*conoha.Backup, error) {
	path := c.projectPath(fmt.Sprintf("/backups/%s", backupID))
	resp, err := c.httpClient.Get(ctx, conoha.ServiceVolume, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting backup: %w", err)
	}

	var result struct {
		Backup conoha.Backup `json:"backup"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing backup response: %w", err)
	}

	return &result.Backup, nil
}

// RestoreBackup implements conoha.VolumeClient.RestoreBackup
func (c *VolumeClient) RestoreBackup(ctx context.Context, backupID, volumeID string) (*conoha.Restore, error) {
	path := c.projectPath(fmt.Sprintf("/backups/%s/restore", backupID))
	body := map[string]interface{}{
		"restore": map[string]string{"volume_id": volumeID},
	}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceVolume, path, body)
	if err != nil {
		return nil, fmt.Errorf("restoring backup: %w", err)
	}

	var result struct {
		Restore conoha.Restore `json:"restore"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing restore response: %w", err)
	}

	return &result.Restore, nil
}

// EnableAutoBackup implements conoha.VolumeClient.EnableAutoBackup. Retention
// only applies to the daily schedule.
func (c *VolumeClient) EnableAutoBackup(ctx context.Context, serverID string, request *conoha.AutoBackupRequest) (*conoha.Backup, error) {
	backup := map[string]interface{}{"instance_uuid": serverID}

	if request != nil {
		if request.Schedule != "" {
			backup["schedule"] = request.Schedule
		}

		if request.Retention > 0 {
			backup["retention"] = request.Retention
		}
	}

	body := map[string]interface{}{"backup": backup}

	resp, err := c.httpClient.Post(ctx, conoha.ServiceVolume, c.projectPath("/backups"), body)
	if err != nil {
		return nil, fmt.Errorf("enabling auto backup: %w", err)
	}

	var result struct {
		Backup conoha.Backup `json:"backup"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing backup response: %w", err)
	}

	return &result.Backup, nil
}

// UpdateBackupRetention implements conoha.VolumeClient.UpdateBackupRetention
func (c *VolumeClient) UpdateBackupRetention(ctx context.Context, serverID string, retention int) (*conoha.Backup, error) {
	path := c.projectPath(fmt.Sprintf("/backups/%s", serverID))
	body := map[string]interface{}{
		"backup": map[string]int{"retention": retention},
	}

	resp, err := c.httpClient.Put(ctx, conoha.ServiceVolume, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating backup retention: %w", err)
	}

	var result struct {
		Backup conoha.Backup `json:"backup"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing backup response: %w", err)
	}

	return &result.Backup, nil
}

// DisableAutoBackup implements conoha.VolumeClient.DisableAutoBackup
func (c *VolumeClient) DisableAutoBackup(ctx context.Context, serverID string) error {
	path := c.projectPath(fmt.Sprintf("/backups/%s", serverID))

	_, err := c.httpClient.Delete(ctx, conoha.ServiceVolume, path)
	if err != nil {
		return fmt.Errorf("disabling auto backup: %w", err)
	}

	return nil
}
