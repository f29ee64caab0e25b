package conoha

// Link represents a resource link.
type Link struct {
	Href string `json:"href"          yaml:"href"`
	Rel  string `json:"rel,omitempty" yaml:"rel,omitempty"`
}

// ResourceRef is a bare reference to another resource by ID.
type ResourceRef struct {
	ID string `json:"id" yaml:"id"`
}

// Server represents a VPS instance.
type Server struct {
	ID             string                     `json:"id"`
	Name           string                     `json:"name"`
	Status         string                     `json:"status,omitempty"`
	Created        string                     `json:"created,omitempty"`
	Updated        string                     `json:"updated,omitempty"`
	TenantID       string                     `json:"tenant_id,omitempty"`
	UserID         string                     `json:"user_id,omitempty"`
	KeyName        string                     `json:"key_name,omitempty"`
	HostID         string                     `json:"hostId,omitempty"`
	Flavor         *ServerFlavor              `json:"flavor,omitempty"`
	Addresses      map[string][]ServerAddress `json:"addresses,omitempty"`
	Metadata       map[string]string          `json:"metadata,omitempty"`
	SecurityGroups []ServerSecurityGroupRef   `json:"security_groups,omitempty"`
	Links          []Link                     `json:"links,omitempty"`
}

// ServerFlavor is the flavor block embedded in a server response.
type ServerFlavor struct {
	ID    string `json:"id"`
	Links []Link `json:"links,omitempty"`
}

// ServerAddress is one IP address assigned to a server.
type ServerAddress struct {
	Version int    `json:"version"`
	Addr    string `json:"addr"`
	Type    string `json:"OS-EXT-IPS:type,omitempty"`
	MacAddr string `json:"OS-EXT-IPS-MAC:mac_addr,omitempty"`
}

// ServerSecurityGroupRef names a security group attached to a server.
type ServerSecurityGroupRef struct {
	Name string `json:"name"`
}

// ServerCreateRequest describes a new server. Servers boot from an existing
// volume; the instance name tag is the display name shown in the panel.
type ServerCreateRequest struct {
	FlavorID        string
	AdminPass       string
	VolumeID        string
	InstanceNameTag string
	KeyName         string
	UserData        string
	SecurityGroups  []string
}

// RebootType selects how a server reboot is performed.
type RebootType string

const (
	// RebootSoft requests a graceful OS-level reboot.
	RebootSoft RebootType = "SOFT"

	// RebootHard power-cycles the server.
	RebootHard RebootType = "HARD"
)

// ServerSettings carries optional hardware settings for a stopped server.
// Nil fields are left unchanged.
type ServerSettings struct {
	HWVideoModel *string
	HWVifModel   *string
	HWDiskBus    *string
}

// RemoteConsole is the response to a remote console request.
type RemoteConsole struct {
	Type     string `json:"type"`
	Protocol string `json:"protocol"`
	URL      string `json:"url"`
}

// Flavor represents a server plan.
type Flavor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	VCPUs int    `json:"vcpus,omitempty"`
	RAM   int    `json:"ram,omitempty"`
	Disk  int    `json:"disk,omitempty"`
	Links []Link `json:"links,omitempty"`
}

// KeyPair represents an SSH keypair. PrivateKey is only populated when the
// keypair is generated server-side at creation.
type KeyPair struct {
	Name        string `json:"name"`
	PublicKey   string `json:"public_key,omitempty"`
	PrivateKey  string `json:"private_key,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// VolumeAttachment represents a volume attached to a server.
type VolumeAttachment struct {
	ID       string `json:"id"`
	ServerID string `json:"serverId"`
	VolumeID string `json:"volumeId"`
	Device   string `json:"device,omitempty"`
}

// InterfaceAttachment represents a port attached to a server.
type InterfaceAttachment struct {
	PortID    string    `json:"port_id"`
	NetID     string    `json:"net_id,omitempty"`
	MacAddr   string    `json:"mac_addr,omitempty"`
	PortState string    `json:"port_state,omitempty"`
	FixedIPs  []FixedIP `json:"fixed_ips,omitempty"`
}

// GraphOptions narrows the window and resolution of usage graph queries.
// Zero values are omitted from the request.
type GraphOptions struct {
	StartDateRaw string
	EndDateRaw   string
	Mode         string
	Device       string
}

// Graph is time-series usage data returned by the monitoring endpoints.
type Graph struct {
	Schema []string    `json:"schema"`
	Data   [][]float64 `json:"data"`
}

// Volume represents a block storage volume.
type Volume struct {
	ID          string             `json:"id"`
	Name        string             `json:"name,omitempty"`
	Description string             `json:"description,omitempty"`
	Size        int                `json:"size,omitempty"`
	Status      string             `json:"status,omitempty"`
	VolumeType  string             `json:"volume_type,omitempty"`
	Bootable    string             `json:"bootable,omitempty"`
	CreatedAt   string             `json:"created_at,omitempty"`
	Attachments []VolumeAttachment `json:"attachments,omitempty"`
	Metadata    map[string]string  `json:"metadata,omitempty"`
}

// VolumeCreateRequest describes a new volume. Size is in GB.
type VolumeCreateRequest struct {
	Size        int
	Name        string
	Description string
	VolumeType  string
	ImageRef    string
	SourceVolID string
	SnapshotID  string
}

// VolumeUpdateRequest updates a volume. Nil fields are left unchanged.
type VolumeUpdateRequest struct {
	Name        *string
	Description *string
}

// VolumeType represents a volume type.
type VolumeType struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	ExtraSpecs map[string]string `json:"extra_specs,omitempty"`
}

// UploadedImage is the result of saving a volume as an image.
type UploadedImage struct {
	ImageID         string `json:"image_id"`
	ImageName       string `json:"image_name"`
	Status          string `json:"status,omitempty"`
	Size            int64  `json:"size,omitempty"`
	VolumeType      string `json:"volume_type,omitempty"`
	ContainerFormat string `json:"container_format,omitempty"`
	DiskFormat      string `json:"disk_format,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// Backup represents a volume backup.
type Backup struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	VolumeID     string `json:"volume_id,omitempty"`
	InstanceUUID string `json:"instance_uuid,omitempty"`
	Status       string `json:"status,omitempty"`
	Size         int    `json:"size,omitempty"`
	Schedule     string `json:"schedule,omitempty"`
	Retention    int    `json:"retention,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// BackupListOptions narrows a backup listing. Zero values are omitted.
type BackupListOptions struct {
	Limit  int
	Offset int
	Sort   string
}

// AutoBackupRequest configures auto-backup for a server. Schedule is
// "daily" or "weekly"; Retention (days, 14-30) only applies to daily.
type AutoBackupRequest struct {
	Schedule  string
	Retention int
}

// Restore is the result of restoring a backup to a volume.
type Restore struct {
	BackupID   string `json:"backup_id"`
	VolumeID   string `json:"volume_id"`
	VolumeName string `json:"volume_name,omitempty"`
}

// Image represents a VM or ISO image.
type Image struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Status          string   `json:"status,omitempty"`
	Visibility      string   `json:"visibility,omitempty"`
	Size            int64    `json:"size,omitempty"`
	Checksum        string   `json:"checksum,omitempty"`
	DiskFormat      string   `json:"disk_format,omitempty"`
	ContainerFormat string   `json:"container_format,omitempty"`
	OSType          string   `json:"os_type,omitempty"`
	MinDisk         int      `json:"min_disk,omitempty"`
	MinRAM          int      `json:"min_ram,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// ImageListOptions narrows an image listing. Zero values are omitted.
type ImageListOptions struct {
	Limit      int
	Marker     string
	Visibility string
	OSType     string
	SortKey    string
	SortDir    string
	Name       string
	Status     string
}

// ImageUsage reports total image storage consumption.
type ImageUsage struct {
	TotalUsage int64 `json:"total_usage"`
}

/// ImageQuota is the image storage quota, e.g. {"image_size": "550GB"}.
type ImageQuota struct {
	ImageSize string `json:"image_size"`
}

// Network represents a layer-2 network.
type Network struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	Status       string   `json:"status,omitempty"`
	AdminStateUp bool     `json:"admin_state_up,omitempty"`
	Subnets      []string `json:"subnets,omitempty"`
	TenantID     string   `json:"tenant_id,omitempty"`
}

// Subnet represents an IP range carved out of a network.
type Subnet struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	NetworkID string `json:"network_id"`
	CIDR      string `json:"cidr"`
	IPVersion int    `json:"ip_version,omitempty"`
	GatewayIP string `json:"gateway_ip,omitempty"`
	TenantID  string `json:"tenant_id,omitempty"`
}

// SubnetCreateRequest describes a new subnet. IPVersion defaults to 4.
type SubnetCreateRequest struct {
	NetworkID string
	CIDR      string
	IPVersion int
	Name      string
}

// FixedIP is one address assignment on a port.
type FixedIP struct {
	SubnetID  string `json:"subnet_id,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
}

// AddressPair is an allowed address pair on a port.
type AddressPair struct {
	IPAddress  string `json:"ip_address"`
	MACAddress string `json:"mac_address,omitempty"`
}

// Port represents a network port.
type Port struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name,omitempty"`
	NetworkID           string        `json:"network_id"`
	MACAddress          string        `json:"mac_address,omitempty"`
	Status              string        `json:"status,omitempty"`
	AdminStateUp        bool          `json:"admin_state_up,omitempty"`
	FixedIPs            []FixedIP     `json:"fixed_ips,omitempty"`
	SecurityGroups      []string      `json:"security_groups,omitempty"`
	AllowedAddressPairs []AddressPair `json:"allowed_address_pairs,omitempty"`
	QoSPolicyID         string        `json:"qos_policy_id,omitempty"`
	TenantID            string        `json:"tenant_id,omitempty"`
}

// PortCreateRequest describes a new port on a local network.
type PortCreateRequest struct {
	NetworkID           string
	FixedIPs            []FixedIP
	SecurityGroups      []string
	AllowedAddressPairs []AddressPair
}

// PortUpdateRequest updates a port. Nil fields are left unchanged.
type PortUpdateRequest struct {
	SecurityGroups      *[]string
	QoSPolicyID         *string
	FixedIPs            []FixedIP
	AllowedAddressPairs []AddressPair
}

// SecurityGroup represents a security group.
type SecurityGroup struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Rules       []SecurityGroupRule `json:"security_group_rules,omitempty"`
	TenantID    string              `json:"tenant_id,omitempty"`
}

// SecurityGroupUpdateRequest updates a security group. Nil fields are left
// unchanged.
type SecurityGroupUpdateRequest struct {
	Name        *string
	Description *string
}

// SecurityGroupRule represents one rule within a security group.
type SecurityGroupRule struct {
	ID              string `json:"id"`
	SecurityGroupID string `json:"security_group_id"`
	Direction       string `json:"direction"`
	EtherType       string `json:"ethertype,omitempty"`
	Protocol        string `json:"protocol,omitempty"`
	PortRangeMin    *int   `json:"port_range_min,omitempty"`
	PortRangeMax    *int   `json:"port_range_max,omitempty"`
	RemoteIPPrefix  string `json:"remote_ip_prefix,omitempty"`
	TenantID        string `json:"tenant_id,omitempty"`
}

// SecurityGroupRuleCreateRequest describes a new rule. EtherType defaults
// to IPv4.
type SecurityGroupRuleCreateRequest struct {
	SecurityGroupID string
	Direction       string
	EtherType       string
	Protocol        string
	PortRangeMin    *int
	PortRangeMax    *int
	RemoteIPPrefix  string
}

// QoSPolicy represents a network QoS (bandwidth) policy.
type QoSPolicy struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LoadBalancer represents a load balancer.
type LoadBalancer struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name,omitempty"`
	VIPAddress         string        `json:"vip_address,omitempty"`
	VIPSubnetID        string        `json:"vip_subnet_id,omitempty"`
	ProvisioningStatus string        `json:"provisioning_status,omitempty"`
	OperatingStatus    string        `json:"operating_status,omitempty"`
	AdminStateUp       bool          `json:"admin_state_up,omitempty"`
	Listeners          []ResourceRef `json:"listeners,omitempty"`
}

// LoadBalancerCreateRequest describes a new load balancer.
type LoadBalancerCreateRequest struct {
	Name         string
	VIPSubnetID  string
	AdminStateUp *bool
}

// LoadBalancerUpdateRequest updates a load balancer. Nil fields are left
// unchanged.
type LoadBalancerUpdateRequest struct {
	Name         *string
	AdminStateUp *bool
}

// Listener represents a load balancer listener.
type Listener struct {
	ID              string        `json:"id"`
	Name            string        `json:"name,omitempty"`
	Protocol        string        `json:"protocol,omitempty"`
	ProtocolPort    int           `json:"protocol_port,omitempty"`
	ConnectionLimit int           `json:"connection_limit,omitempty"`
	DefaultPoolID   string        `json:"default_pool_id,omitempty"`
	LoadBalancers   []ResourceRef `json:"loadbalancers,omitempty"`
}

// ListenerCreateRequest describes a new listener. Protocol is one of TCP,
// HTTP, HTTPS, UDP.
type ListenerCreateRequest struct {
	LoadBalancerID  string
	Protocol        string
	ProtocolPort    int
	Name            string
	ConnectionLimit *int
}

// ListenerUpdateRequest updates a listener. Nil fields are left unchanged.
type ListenerUpdateRequest struct {
	Name            *string
	ConnectionLimit *int
}

// Pool represents a load balancer pool.
type Pool struct {
	ID              string        `json:"id"`
	Name            string        `json:"name,omitempty"`
	Protocol        string        `json:"protocol,omitempty"`
	LBAlgorithm     string        `json:"lb_algorithm,omitempty"`
	HealthMonitorID string        `json:"healthmonitor_id,omitempty"`
	Listeners       []ResourceRef `json:"listeners,omitempty"`
	Members         []ResourceRef `json:"members,omitempty"`
}

// PoolCreateRequest describes a new pool. LBAlgorithm is one of
// ROUND_ROBIN, LEAST_CONNECTIONS, SOURCE_IP.
type PoolCreateRequest struct {
	ListenerID  string
	Protocol    string
	LBAlgorithm string
	Name        string
}

// PoolUpdateRequest updates a pool. Nil fields are left unchanged.
type PoolUpdateRequest struct {
	Name        *string
	LBAlgorithm *string
}

// Member represents a backend member of a pool.
type Member struct {
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	Address         string `json:"address"`
	ProtocolPort    int    `json:"protocol_port"`
	Weight          int    `json:"weight,omitempty"`
	SubnetID        string `json:"subnet_id,omitempty"`
	OperatingStatus string `json:"operating_status,omitempty"`
}

// MemberCreateRequest describes a new pool member.
type MemberCreateRequest struct {
	Address      string
	ProtocolPort int
	Name         string
	Weight       *int
	SubnetID     string
}

// MemberUpdateRequest updates a pool member. Nil fields are left unchanged.
type MemberUpdateRequest struct {
	Name   *string
	Weight *int
}

// HealthMonitor represents a pool health monitor.
type HealthMonitor struct {
	ID            string        `json:"id"`
	Name          string        `json:"name,omitempty"`
	Type          string        `json:"type"`
	Delay         int           `json:"delay,omitempty"`
	Timeout       int           `json:"timeout,omitempty"`
	MaxRetries    int           `json:"max_retries,omitempty"`
	URLPath       string        `json:"url_path,omitempty"`
	ExpectedCodes string        `json:"expected_codes,omitempty"`
	Pools         []ResourceRef `json:"pools,omitempty"`
}

// HealthMonitorCreateRequest describes a new health monitor. Type is one of
// TCP, UDP, PING, HTTP, HTTPS; Delay and Timeout are in seconds and Timeout
// must be less than Delay.
type HealthMonitorCreateRequest struct {
	PoolID        string
	Type          string
	Delay         int
	Timeout       int
	MaxRetries    int
	Name          string
	URLPath       string
	ExpectedCodes string
}

// Domain represents a DNS domain.
type Domain struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TTL          int    `json:"ttl,omitempty"`
	Email        string `json:"email,omitempty"`
	SerialNumber int    `json:"serial,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// DomainListOptions narrows a domain listing. Zero values are omitted.
type DomainListOptions struct {
	Limit    int
	Offset   int
	SortType string
	SortKey  string
}

// DomainCreateRequest registers a domain. Name must be fully qualified and
// end with a dot (e.g. "example.com.").
type DomainCreateRequest struct {
	Name  string `json:"name"`
	TTL   int    `json:"ttl"`
	Email string `json:"email"`
}

// DomainUpdateRequest updates a domain. Nil fields are left unchanged.
type DomainUpdateRequest struct {
	TTL   *int
	Email *string
}

// Record represents a DNS record.
type Record struct {
	ID        string `json:"id"`
	DomainID  string `json:"domain_id,omitempty"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Data      string `json:"data"`
	TTL       int    `json:"ttl,omitempty"`
	Priority  *int   `json:"priority,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// RecordCreateRequest describes a new DNS record. Type is A, AAAA, CNAME,
// MX, TXT, SRV, NS, etc.
type RecordCreateRequest struct {
	Name     string
	Type     string
	Data     string
	TTL      *int
	Priority *int
}

// RecordUpdateRequest updates a DNS record. Nil fields are left unchanged.
type RecordUpdateRequest struct {
	Name     *string
	Data     *string
	TTL      *int
	Priority *int
}

// AccountInfo summarizes object storage account usage.
type AccountInfo struct {
	ContainerCount int64
	ObjectCount    int64
	BytesUsed      int64
}

// Container is one entry in a container listing.
type Container struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
	Bytes int64  `json:"bytes"`
}

// ContainerMetadata summarizes a single container's usage.
type ContainerMetadata struct {
	ObjectCount     int64
	BytesUsed       int64
	BytesUsedActual int64
}

// ObjectInfo is one entry in an object listing.
type ObjectInfo struct {
	Name         string `json:"name"`
	Bytes        int64  `json:"bytes"`
	Hash         string `json:"hash,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

// ObjectListOptions narrows container/object listings. Zero values are
// omitted.
type ObjectListOptions struct {
	Limit     int
	Marker    string
	EndMarker string
	Prefix    string
	Delimiter string
	Reverse   bool
}

// Credential represents an API (EC2-style) credential.
type Credential struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Access   string `json:"access"`
	Secret   string `json:"secret"`
}
