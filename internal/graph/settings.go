// Package graph talks to the Microsoft identity platform and the Microsoft
// Graph beta API on behalf of a registered application.
//
// Every directory call derives the mail domain from an email address,
// resolves the tenant for that domain from its OpenID configuration document,
// acquires a fresh application-only token for the tenant and sends exactly one
// request with it. Tenant ids and tokens are never cached.
package graph

import "strings"

// Default endpoint bases.
const (
	DefaultDiscoveryURL = "https://login.windows.net"
	DefaultAuthorityURL = "https://login.microsoftonline.com"
	DefaultGraphURL     = "https://graph.microsoft.com/beta"
)

// Settings holds the application registration and endpoint bases. It is
// read-only once constructed.
type Settings struct {
	AppID       string
	AppSecret   string
	RedirectURL string

	// DiscoveryURL hosts the per-domain well-known OpenID configuration.
	DiscoveryURL string
	// AuthorityURL hosts the per-tenant token and admin consent endpoints.
	AuthorityURL string
	// GraphURL is the directory API base, including the version segment.
	GraphURL string
}

// WithDefaults returns a copy of s with empty endpoint bases filled in and
// trailing slashes removed.
func (s Settings) WithDefaults() Settings {
	if s.DiscoveryURL == "" {
		s.DiscoveryURL = DefaultDiscoveryURL
	}
	if s.AuthorityURL == "" {
		s.AuthorityURL = DefaultAuthorityURL
	}
	if s.GraphURL == "" {
		s.GraphURL = DefaultGraphURL
	}
	s.DiscoveryURL = strings.TrimSuffix(s.DiscoveryURL, "/")
	s.AuthorityURL = strings.TrimSuffix(s.AuthorityURL, "/")
	s.GraphURL = strings.TrimSuffix(s.GraphURL, "/")
	return s
}
