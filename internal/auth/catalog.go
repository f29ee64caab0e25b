package auth

// Catalog maps a service name to its region-resolved base URL. It is built
// once per successful authentication and never mutated afterwards.
type Catalog map[string]string

// Endpoint returns the base URL for a service.
func (c Catalog) Endpoint(service string) (string, bool) {
	url, ok := c[service]

	return url, ok
}

// CatalogEntry is one service block in the identity token response.
type CatalogEntry struct {
	Type      string            `json:"type"`
	Name      string            `json:"name,omitempty"`
	Endpoints []CatalogEndpoint `json:"endpoints"`
}

// CatalogEndpoint is one endpoint variant within a catalog entry.
type CatalogEndpoint struct {
	Interface string `json:"interface"`
	Region    string `json:"region"`
	RegionID  string `json:"region_id,omitempty"`
	URL       string `json:"url"`
}

// serviceNames maps catalog service types to SDK service names.
var serviceNames = map[string]string{
	"identity":      "identity",
	"compute":       "compute",
	"volumev3":      "volume",
	"image":         "image",
	"network":       "network",
	"load-balancer": "load_balancer",
	"dns":           "dns",
	"object-store":  "object_storage",
}

// ParseCatalog resolves the token response catalog into a service-to-URL
// mapping for the given region. For each known service the public endpoint
// matching the region is selected, falling back to the first public
// endpoint when no region-specific entry exists. Unknown service types are
// ignored; absence of a service only surfaces when it is first addressed.
func ParseCatalog(entries []CatalogEntry, region string) Catalog {
	catalog := make(Catalog, len(entries))

	for _, entry := range entries {
		name, ok := serviceNames[entry.Type]
		if !ok {
			continue
		}

		var fallback string

		for _, endpoint := range entry.Endpoints {
			if endpoint.Interface != "public" || endpoint.URL == "" {
				continue
			}

			if endpoint.Region == region || endpoint.RegionID == region {
				fallback = endpoint.URL

				break
			}

			if fallback == "" {
				fallback = endpoint.URL
			}
		}

		if fallback != "" {
			catalog[name] = fallback
		}
	}

	return catalog
}
