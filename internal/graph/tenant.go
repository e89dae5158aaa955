package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// tenantIDLength is the length of a tenant GUID in its canonical form.
const tenantIDLength = 36

// TenantResolver finds the tenant that owns a mail domain.
type TenantResolver struct {
	discoveryURL string
	httpClient   *http.Client
}

// NewTenantResolver creates a resolver that reads discovery documents below
// discoveryURL. A nil httpClient uses http.DefaultClient.
func NewTenantResolver(discoveryURL string, httpClient *http.Client) *TenantResolver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TenantResolver{
		discoveryURL: strings.TrimSuffix(discoveryURL, "/"),
		httpClient:   httpClient,
	}
}

// ResolveTenantID fetches {discovery}/{domain}/v2.0/.well-known/openid-configuration
// and extracts the tenant id from its authorization endpoint.
func (r *TenantResolver) ResolveTenantID(ctx context.Context, domain string) (string, error) {
	if domain == "" {
		return "", fmt.Errorf("resolve tenant: empty domain")
	}

	issuer := fmt.Sprintf("%s/%s/v2.0", r.discoveryURL, domain)

	// The document's issuer names the tenant rather than the domain, so the
	// usual issuer equality check cannot hold.
	ctx = oidc.ClientContext(ctx, r.httpClient)
	ctx = oidc.InsecureIssuerURLContext(ctx, issuer)

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return "", fmt.Errorf("discover openid configuration for %s: %w", domain, err)
	}

	tenantID, err := ParseTenantID(provider.Endpoint().AuthURL)
	if err != nil {
		return "", fmt.Errorf("resolve tenant for %s: %w", domain, err)
	}

	zerolog.Ctx(ctx).Debug().Str("domain", domain).Str("tenant_id", tenantID).Msg("Resolved tenant")
	return tenantID, nil
}

// ParseTenantID extracts the tenant id from an authorization endpoint such as
// https://login.windows.net/{tenant}/oauth2/v2.0/authorize. The id is the
// first path segment and must be a 36 character GUID.
func ParseTenantID(authorizationEndpoint string) (string, error) {
	u, err := url.Parse(authorizationEndpoint)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedAuthorizationEndpoint, authorizationEndpoint)
	}

	segment, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if len(segment) != tenantIDLength {
		return "", fmt.Errorf("%w: tenant segment %q is not %d characters",
			ErrMalformedAuthorizationEndpoint, segment, tenantIDLength)
	}
	if _, err := uuid.Parse(segment); err != nil {
		return "", fmt.Errorf("%w: tenant segment %q: %v", ErrMalformedAuthorizationEndpoint, segment, err)
	}

	return segment, nil
}
