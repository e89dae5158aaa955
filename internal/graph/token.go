package graph

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// GraphScope requests every application permission granted to the app.
const GraphScope = "https://graph.microsoft.com/.default"

// TokenTenant is an access token together with the tenant it was issued for.
type TokenTenant struct {
	Token      string
	ExpireDate time.Time
	TenantID   string
}

// TenantIDResolver maps a mail domain to a tenant id.
type TenantIDResolver interface {
	ResolveTenantID(ctx context.Context, domain string) (string, error)
}

// TokenIssuer acquires application-only tokens through the client credentials
// grant. Each call performs a fresh discovery and exchange.
type TokenIssuer struct {
	settings   Settings
	tenants    TenantIDResolver
	httpClient *http.Client
}

// NewTokenIssuer creates a token issuer for the given application.
func NewTokenIssuer(settings Settings, tenants TenantIDResolver, httpClient *http.Client) *TokenIssuer {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TokenIssuer{
		settings:   settings.WithDefaults(),
		tenants:    tenants,
		httpClient: httpClient,
	}
}

// TokenURL returns the v2 token endpoint of the tenant.
func (t *TokenIssuer) TokenURL(tenantID string) string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", t.settings.AuthorityURL, tenantID)
}

// AcquireToken resolves the tenant that owns domain and exchanges the
// application credentials for a Graph token. Every failure is logged and
// reported as ErrTokenUnavailable.
func (t *TokenIssuer) AcquireToken(ctx context.Context, domain string) (*TokenTenant, error) {
	logger := zerolog.Ctx(ctx).With().Str("domain", domain).Logger()

	if t.settings.AppID == "" || t.settings.AppSecret == "" {
		logger.Error().Msg("Application credentials are not configured")
		return nil, fmt.Errorf("%w: application credentials are not configured", ErrTokenUnavailable)
	}

	tenantID, err := t.tenants.ResolveTenantID(ctx, domain)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve tenant")
		return nil, fmt.Errorf("%w: %w", ErrTokenUnavailable, err)
	}

	cfg := clientcredentials.Config{
		ClientID:     t.settings.AppID,
		ClientSecret: t.settings.AppSecret,
		TokenURL:     t.TokenURL(tenantID),
		Scopes:       []string{GraphScope},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tok, err := cfg.Token(context.WithValue(ctx, oauth2.HTTPClient, t.httpClient))
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			logger.Error().Str("tenant_id", tenantID).Int("status", retrieveErr.Response.StatusCode).
				Str("error_code", retrieveErr.ErrorCode).Msg("Token endpoint rejected the request")
		} else {
			logger.Error().Err(err).Str("tenant_id", tenantID).Msg("Failed to acquire token")
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenUnavailable, err)
	}

	if tid, err := tokenTenantClaim(tok.AccessToken); err != nil {
		logger.Debug().Err(err).Msg("Access token is not a readable JWT")
	} else if tid != tenantID {
		logger.Warn().Str("tenant_id", tenantID).Str("tid", tid).Msg("Access token was issued for a different tenant")
	}

	return &TokenTenant{
		Token:      tok.AccessToken,
		ExpireDate: tok.Expiry,
		TenantID:   tenantID,
	}, nil
}

// AdminConsentURL returns the URL a tenant administrator visits to grant the
// application its permissions.
func (t *TokenIssuer) AdminConsentURL(tenantID string) string {
	query := url.Values{}
	query.Set("client_id", t.settings.AppID)
	query.Set("redirect_uri", t.settings.RedirectURL)
	return fmt.Sprintf("%s/%s/adminconsent?%s", t.settings.AuthorityURL, url.PathEscape(tenantID), query.Encode())
}

type graphTokenClaims struct {
	jwt.StandardClaims
	TenantID string `json:"tid"`
}

// tokenTenantClaim reads the tid claim without verifying the signature.
func tokenTenantClaim(accessToken string) (string, error) {
	claims := &graphTokenClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(accessToken, claims); err != nil {
		return "", err
	}
	if claims.TenantID == "" {
		return "", errors.New("token has no tid claim")
	}
	return claims.TenantID, nil
}
