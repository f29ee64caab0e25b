package client

import (
	"fmt"

	"github.com/conoha-io/conoha-go/internal/auth"
	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// catalogSource exposes the current service catalog. The keystone token
// manager implements it; the static token manager does not.
type catalogSource interface {
	Catalog() auth.Catalog
}

// endpointResolver maps catalog service names to base URLs. Explicit
// overrides win, the identity endpoint bootstraps from its well-known URL,
// and everything else comes from the catalog returned at authentication.
type endpointResolver struct {
	overrides   map[string]string
	identityURL string
	catalog     catalogSource
}

func newEndpointResolver(config *conoha.Config, tokenManager auth.TokenManager) *endpointResolver {
	resolver := &endpointResolver{
		overrides:   config.Endpoints,
		identityURL: identityURL(config),
	}

	if source, ok := tokenManager.(catalogSource); ok {
		resolver.catalog = source
	}

	return resolver
}

// Endpoint implements http.EndpointResolver.
func (r *endpointResolver) Endpoint(service string) (string, error) {
	if endpoint, ok := r.overrides[service]; ok {
		return endpoint, nil
	}

	if service == conoha.ServiceIdentity {
		return r.identityURL, nil
	}

	if r.catalog != nil {
		if endpoint, ok := r.catalog.Catalog().Endpoint(service); ok {
			return endpoint, nil
		}
	}

	return "", conoha.NewError(conoha.ErrorKindEndpoint, 0,
		fmt.Sprintf("no endpoint for service %q: not in catalog and no override configured", service))
}
