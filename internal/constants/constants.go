package constants

import "time"

// Region and endpoint defaults.
const (
	// DefaultRegion is the region used when none is configured.
	DefaultRegion = "c3j1"

	// IdentityEndpointTemplate is the identity bootstrap URL; %s is the region.
	// All other endpoints come from the service catalog after authentication.
	IdentityEndpointTemplate = "https://identity.%s.conoha.io"
)

// Token lifecycle.
const (
	// TokenValidity is assumed when the identity response omits expires_at.
	TokenValidity = 24 * time.Hour

	// TokenExpiryMargin is subtracted from the advertised expiry so a token
	// is never presented right at its expiration instant.
	TokenExpiryMargin = 5 * time.Minute
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for API requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits for the transport layer. Retries are off unless the caller
// opts in through Config.RetryMax.
const (
	// DefaultRetryWaitMin is the minimum wait time between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between transport retries.
	DefaultRetryWaitMax = 10 * time.Second
)
