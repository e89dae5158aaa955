package graph

import "net/http"

// Client wires tenant discovery, token acquisition and directory calls
// over one HTTP client and one rate limiter.
type Client struct {
	*TenantResolver
	*TokenIssuer
	*DirectoryClient
}

// NewClient builds a Client for the application in settings.
func NewClient(settings Settings, httpClient *http.Client, rateLimit RateLimitConfig) *Client {
	settings = settings.WithDefaults()
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resolver := NewTenantResolver(settings.DiscoveryURL, httpClient)
	issuer := NewTokenIssuer(settings, resolver, httpClient)
	directory := NewDirectoryClient(settings, issuer, httpClient, NewRateLimiter(rateLimit))

	return &Client{
		TenantResolver:  resolver,
		TokenIssuer:     issuer,
		DirectoryClient: directory,
	}
}
