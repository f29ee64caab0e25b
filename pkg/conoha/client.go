package conoha

import (
	"context"
	"time"
)

// Service names used by the catalog and the service registry.
const (
	ServiceIdentity      = "identity"
	ServiceCompute       = "compute"
	ServiceVolume        = "volume"
	ServiceImage         = "image"
	ServiceNetwork       = "network"
	ServiceLoadBalancer  = "load_balancer"
	ServiceDNS           = "dns"
	ServiceObjectStorage = "object_storage"
)

// Config represents client configuration for building a conoha.Client.
//
// # Authentication
//
// Exactly one authentication mode must be configured:
//  1. Username (or UserID) + Password: the client exchanges the credentials
//     for a token on first use and re-exchanges them whenever the token
//     expires.
//  2. Token: the pre-issued token is used as-is. Combined with
//     Username/Password it is merely a warm start, and expiry falls back
//     to the password exchange. Alone, expiry is surfaced as a
//     token-expired error because nothing is available to refresh with.
type Config struct {
	// Username is the API user name for password authentication.
	Username string
	// UserID authenticates by user ID instead of name when set.
	UserID string
	// Password is the API user password.
	Password string
	// TenantID scopes the token to a project by ID. Required unless
	// TenantName is set.
	TenantID string
	// TenantName scopes the token to a project by name.
	TenantName string
	// Token is a pre-issued authentication token.
	Token string

	// Region selects the deployment zone. Defaults to "c3j1".
	Region string
	// Timeout is the per-request timeout in seconds. Defaults to 30.
	Timeout int

	// Endpoints overrides service base URLs, keyed by service name. An
	// override wins over the service catalog.
	Endpoints map[string]string

	// AuthenticateOnInit performs the credential exchange eagerly during
	// construction instead of lazily on the first request.
	AuthenticateOnInit bool

	// Logger receives debug/info/warn/error events. Optional.
	Logger Logger
	// Debug enables request/response logging through Logger.
	Debug bool
	// UserAgent overrides the User-Agent header.
	UserAgent string

	// RetryMax enables transport-level retries for transient 5xx/429
	// responses when greater than zero. API-level failures are never
	// retried beyond the single re-authentication retry.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// ServiceClient is implemented by every per-service client.
type ServiceClient interface {
	// ServiceName returns the catalog name the client is bound to.
	ServiceName() string
}

// Client is the top-level API client. Per-service clients are created on
// first access and memoized for the lifetime of the Client.
type Client interface {
	Identity() IdentityClient
	Compute() ComputeClient
	Volume() VolumeClient
	Image() ImageClient
	Network() NetworkClient
	LoadBalancer() LoadBalancerClient
	DNS() DNSClient
	ObjectStorage() ObjectStorageClient

	// Service returns the memoized client for the named service, or an
	// endpoint-kind error for an unknown name.
	Service(name string) (ServiceClient, error)

	// Authenticate forces the credential exchange eagerly. It is a no-op
	// when a valid token is already held.
	Authenticate(ctx context.Context) error

	// Token returns the current token, authenticating if necessary.
	Token(ctx context.Context) (string, error)
}

// IdentityClient manages API credentials.
type IdentityClient interface {
	ServiceClient
	ListCredentials(ctx context.Context, userID string) ([]Credential, error)
	CreateCredential(ctx context.Context, userID, tenantID string) (*Credential, error)
	GetCredential(ctx context.Context, userID, credentialID string) (*Credential, error)
	DeleteCredential(ctx context.Context, userID, credentialID string) error
}

// ComputeClient manages servers, flavors, keypairs and attachments.
type ComputeClient interface {
	ServiceClient

	ListServers(ctx context.Context) ([]Server, error)
	ListServersDetail(ctx context.Context) ([]Server, error)
	GetServer(ctx context.Context, serverID string) (*Server, error)
	CreateServer(ctx context.Context, request *ServerCreateRequest) (*Server, error)
	DeleteServer(ctx context.Context, serverID string) error

	StartServer(ctx context.Context, serverID string) error
	StopServer(ctx context.Context, serverID string) error
	ForceStopServer(ctx context.Context, serverID string) error
	RebootServer(ctx context.Context, serverID string, rebootType RebootType) error
	ResizeServer(ctx context.Context, serverID, flavorID string) error
	ConfirmResize(ctx context.Context, serverID string) error
	RevertResize(ctx context.Context, serverID string) error
	RebuildServer(ctx context.Context, serverID, imageID, adminPass string) error
	MountISO(ctx context.Context, serverID, imageID string) error
	UnmountISO(ctx context.Context, serverID, imageID string) error
	SetServerSettings(ctx context.Context, serverID string, settings *ServerSettings) error

	GetServerMetadata(ctx context.Context, serverID string) (map[string]string, error)
	UpdateServerMetadata(ctx context.Context, serverID string, metadata map[string]string) (map[string]string, error)
	GetServerAddresses(ctx context.Context, serverID string) (map[string][]ServerAddress, error)
	GetServerAddressesByNetwork(ctx context.Context, serverID, networkName string) ([]ServerAddress, error)
	GetServerSecurityGroups(ctx context.Context, serverID string) ([]SecurityGroup, error)
	GetConsoleURL(ctx context.Context, serverID, consoleType string) (*RemoteConsole, error)

	ListFlavors(ctx context.Context) ([]Flavor, error)
	ListFlavorsDetail(ctx context.Context) ([]Flavor, error)
	GetFlavor(ctx context.Context, flavorID string) (*Flavor, error)

	ListKeyPairs(ctx context.Context) ([]KeyPair, error)
	CreateKeyPair(ctx context.Context, name, publicKey string) (*KeyPair, error)
	GetKeyPair(ctx context.Context, name string) (*KeyPair, error)
	DeleteKeyPair(ctx context.Context, name string) error

	ListAttachedPorts(ctx context.Context, serverID string) ([]InterfaceAttachment, error)
	GetAttachedPort(ctx context.Context, serverID, portID string) (*InterfaceAttachment, error)
	AttachPort(ctx context.Context, serverID, portID string) (*InterfaceAttachment, error)
	DetachPort(ctx context.Context, serverID, portID string) error

	ListAttachedVolumes(ctx context.Context, serverID string) ([]VolumeAttachment, error)
	GetAttachedVolume(ctx context.Context, serverID, volumeID string) (*VolumeAttachment, error)
	AttachVolume(ctx context.Context, serverID, volumeID string) (*VolumeAttachment, error)
	DetachVolume(ctx context.Context, serverID, volumeID string) error

	GetCPUGraph(ctx context.Context, serverID string, opts *GraphOptions) (*Graph, error)
	GetDiskIOGraph(ctx context.Context, serverID string, opts *GraphOptions) (*Graph, error)
	GetTrafficGraph(ctx context.Context, serverID, portID string, opts *GraphOptions) (*Graph, error)
}

// VolumeClient manages block storage volumes and backups.
type VolumeClient interface {
	ServiceClient

	ListVolumes(ctx context.Context) ([]Volume, error)
	ListVolumesDetail(ctx context.Context) ([]Volume, error)
	GetVolume(ctx context.Context, volumeID string) (*Volume, error)
	CreateVolume(ctx context.Context, request *VolumeCreateRequest) (*Volume, error)
	UpdateVolume(ctx context.Context, volumeID string, request *VolumeUpdateRequest) (*Volume, error)
	DeleteVolume(ctx context.Context, volumeID string) error
	SaveVolumeAsImage(ctx context.Context, volumeID, imageName string) (*UploadedImage, error)

	ListVolumeTypes(ctx context.Context) ([]VolumeType, error)
	GetVolumeType(ctx context.Context, typeID string) (*VolumeType, error)

	ListBackups(ctx context.Context, opts *BackupListOptions) ([]Backup, error)
	ListBackupsDetail(ctx context.Context, opts *BackupListOptions) ([]Backup, error)
	GetBackup(ctx context.Context, backupID string) (*Backup, error)
	RestoreBackup(ctx context.Context, backupID, volumeID string) (*Restore, error)
	EnableAutoBackup(ctx context.Context, serverID string, request *AutoBackupRequest) (*Backup, error)
	UpdateBackupRetention(ctx context.Context, serverID string, retention int) (*Backup, error)
	DisableAutoBackup(ctx context.Context, serverID string) error
}

// ImageClient manages VM and ISO images.
type ImageClient interface {
	ServiceClient

	ListImages(ctx context.Context, opts *ImageListOptions) ([]Image, error)
	GetImage(ctx context.Context, imageID string) (*Image, error)
	DeleteImage(ctx context.Context, imageID string) error

	CreateISOImage(ctx context.Context, name string) (*Image, error)
	UploadISOImage(ctx context.Context, imageID string, data []byte) error

	GetImageUsage(ctx context.Context) (*ImageUsage, error)
	GetImageQuota(ctx context.Context) (*ImageQuota, error)
	UpdateImageQuota(ctx context.Context, imageSizeGB int) (*ImageQuota, error)
}

// NetworkClient manages networks, subnets, ports and security groups.
type NetworkClient interface {
	ServiceClient

	ListSecurityGroups(ctx context.Context) ([]SecurityGroup, error)
	CreateSecurityGroup(ctx context.Context, name, description string) (*SecurityGroup, error)
	GetSecurityGroup(ctx context.Context, securityGroupID string) (*SecurityGroup, error)
	UpdateSecurityGroup(ctx context.Context, securityGroupID string, request *SecurityGroupUpdateRequest) (*SecurityGroup, error)
	DeleteSecurityGroup(ctx context.Context, securityGroupID string) error

	ListSecurityGroupRules(ctx context.Context) ([]SecurityGroupRule, error)
	CreateSecurityGroupRule(ctx context.Context, request *SecurityGroupRuleCreateRequest) (*SecurityGroupRule, error)
	GetSecurityGroupRule(ctx context.Context, ruleID string) (*SecurityGroupRule, error)
	DeleteSecurityGroupRule(ctx context.Context, ruleID string) error

	ListNetworks(ctx context.Context) ([]Network, error)
	GetNetwork(ctx context.Context, networkID string) (*Network, error)
	CreateNetwork(ctx context.Context, name string) (*Network, error)
	DeleteNetwork(ctx context.Context, networkID string) error

	ListSubnets(ctx context.Context) ([]Subnet, error)
	GetSubnet(ctx context.Context, subnetID string) (*Subnet, error)
	CreateSubnet(ctx context.Context, request *SubnetCreateRequest) (*Subnet, error)
	DeleteSubnet(ctx context.Context, subnetID string) error

	ListPorts(ctx context.Context) ([]Port, error)
	GetPort(ctx context.Context, portID string) (*Port, error)
	CreatePort(ctx context.Context, request *PortCreateRequest) (*Port, error)
	CreateAdditionalIPPort(ctx context.Context, count int, securityGroups []string) (*Port, error)
	UpdatePort(ctx context.Context, portID string, request *PortUpdateRequest) (*Port, error)
	DeletePort(ctx context.Context, portID string) error

	ListQoSPolicies(ctx context.Context) ([]QoSPolicy, error)
	GetQoSPolicy(ctx context.Context, policyID string) (*QoSPolicy, error)
}

// LoadBalancerClient manages load balancers, listeners, pools and monitors.
type LoadBalancerClient interface {
	ServiceClient

	ListLoadBalancers(ctx context.Context) ([]LoadBalancer, error)
	GetLoadBalancer(ctx context.Context, loadBalancerID string) (*LoadBalancer, error)
	CreateLoadBalancer(ctx context.Context, request *LoadBalancerCreateRequest) (*LoadBalancer, error)
	UpdateLoadBalancer(ctx context.Context, loadBalancerID string, request *LoadBalancerUpdateRequest) (*LoadBalancer, error)
	DeleteLoadBalancer(ctx context.Context, loadBalancerID string) error

	ListListeners(ctx context.Context) ([]Listener, error)
	GetListener(ctx context.Context, listenerID string) (*Listener, error)
	CreateListener(ctx context.Context, request *ListenerCreateRequest) (*Listener, error)
	UpdateListener(ctx context.Context, listenerID string, request *ListenerUpdateRequest) (*Listener, error)
	DeleteListener(ctx context.Context, listenerID string) error

	ListPools(ctx context.Context) ([]Pool, error)
	GetPool(ctx context.Context, poolID string) (*Pool, error)
	CreatePool(ctx context.Context, request *PoolCreateRequest) (*Pool, error)
	UpdatePool(ctx context.Context, poolID string, request *PoolUpdateRequest) (*Pool, error)
	DeletePool(ctx context.Context, poolID string) error

	ListMembers(ctx context.Context, poolID string) ([]Member, error)
	GetMember(ctx context.Context, poolID, memberID string) (*Member, error)
	CreateMember(ctx context.Context, poolID string, request *MemberCreateRequest) (*Member, error)
	UpdateMember(ctx context.Context, poolID, memberID string, request *MemberUpdateRequest) (*Member, error)
	DeleteMember(ctx context.Context, poolID, memberID string) error

	ListHealthMonitors(ctx context.Context) ([]HealthMonitor, error)
	GetHealthMonitor(ctx context.Context, healthMonitorID string) (*HealthMonitor, error)
	CreateHealthMonitor(ctx context.Context, request *HealthMonitorCreateRequest) (*HealthMonitor, error)
	UpdateHealthMonitor(ctx context.Context, healthMonitorID, name string) (*HealthMonitor, error)
	DeleteHealthMonitor(ctx context.Context, healthMonitorID string) error
}

// DNSClient manages domains and records.
type DNSClient interface {
	ServiceClient

	ListDomains(ctx context.Context, opts *DomainListOptions) ([]Domain, error)
	GetDomain(ctx context.Context, domainID string) (*Domain, error)
	CreateDomain(ctx context.Context, request *DomainCreateRequest) (*Domain, error)
	UpdateDomain(ctx context.Context, domainID string, request *DomainUpdateRequest) (*Domain, error)
	DeleteDomain(ctx context.Context, domainID string) error

	ListRecords(ctx context.Context, domainID string) ([]Record, error)
	GetRecord(ctx context.Context, domainID, recordID string) (*Record, error)
	CreateRecord(ctx context.Context, domainID string, request *RecordCreateRequest) (*Record, error)
	UpdateRecord(ctx context.Context, domainID, recordID string, request *RecordUpdateRequest) (*Record, error)
	DeleteRecord(ctx context.Context, domainID, recordID string) error
}

// ObjectStorageClient manages containers and objects. Object payloads are
// binary and returned/accepted as raw bytes.
type ObjectStorageClient interface {
	ServiceClient

	GetAccountInfo(ctx context.Context) (*AccountInfo, error)
	SetAccountQuota(ctx context.Context, sizeGB int) error

	ListContainers(ctx context.Context, opts *ObjectListOptions) ([]Container, error)
	GetContainerMetadata(ctx context.Context, container string) (*ContainerMetadata, error)
	CreateContainer(ctx context.Context, container string) error
	DeleteContainer(ctx context.Context, container string) error

	ListObjects(ctx context.Context, container string, opts *ObjectListOptions) ([]ObjectInfo, error)
	UploadObject(ctx context.Context, container, objectName string, data []byte, contentType string) error
	DownloadObject(ctx context.Context, container, objectName string) ([]byte, error)
	DeleteObject(ctx context.Context, container, objectName string) error
	CopyObject(ctx context.Context, srcContainer, srcObject, dstContainer, dstObject string) error
	ScheduleObjectDeletion(ctx context.Context, container, objectName string, seconds int) error
	GetObjectMetadata(ctx context.Context, container, objectName string) (map[string]string, error)
}
