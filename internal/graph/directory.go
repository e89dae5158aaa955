package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	visibilityPrivate = "private"
	visibilityPublic  = "public"

	emptyDescription = "-"
)

// GroupCreationRequest describes a unified group or team to create.
type GroupCreationRequest struct {
	DisplayName  string
	Description  string
	OwnerEmail   string
	MemberEmails []string
	IsPrivate    bool
}

// TokenAcquirer hands out a fresh access token for the tenant owning domain.
type TokenAcquirer interface {
	AcquireToken(ctx context.Context, domain string) (*TokenTenant, error)
}

// DirectoryClient issues directory requests against the Graph API.
type DirectoryClient struct {
	graphURL   string
	tokens     TokenAcquirer
	httpClient *http.Client
	limiter    *RateLimiter
}

// NewDirectoryClient creates a directory client. A nil limiter uses
// DefaultRateLimit and a nil httpClient uses http.DefaultClient.
func NewDirectoryClient(settings Settings, tokens TokenAcquirer, httpClient *http.Client, limiter *RateLimiter) *DirectoryClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if limiter == nil {
		limiter = NewRateLimiter(DefaultRateLimit)
	}
	return &DirectoryClient{
		graphURL:   settings.WithDefaults().GraphURL,
		tokens:     tokens,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

type groupBody struct {
	DisplayName             string   `json:"displayName"`
	Description             string   `json:"description"`
	Visibility              string   `json:"visibility"`
	GroupTypes              []string `json:"groupTypes"`
	MailEnabled             bool     `json:"mailEnabled"`
	MailNickname            string   `json:"mailNickname"`
	ResourceBehaviorOptions []string `json:"resourceBehaviorOptions"`
	SecurityEnabled         bool     `json:"securityEnabled"`
	Owners                  []string `json:"owners@odata.bind"`
	Members                 []string `json:"members@odata.bind"`
}

type teamSettingsBody struct {
	MemberSettings struct {
		AllowCreateUpdateChannels bool `json:"allowCreateUpdateChannels"`
	} `json:"memberSettings"`
	MessagingSettings struct {
		AllowUserEditMessages   bool `json:"allowUserEditMessages"`
		AllowUserDeleteMessages bool `json:"allowUserDeleteMessages"`
	} `json:"messagingSettings"`
	FunSettings struct {
		AllowGiphy         bool   `json:"allowGiphy"`
		GiphyContentRating string `json:"giphyContentRating"`
	} `json:"funSettings"`
}

type teamBody struct {
	Template    string   `json:"template@odata.bind"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Visibility  string   `json:"visibility"`
	Owners      []string `json:"owners@odata.bind"`
	Members     []string `json:"members@odata.bind,omitempty"`
}

type idResponse struct {
	ID string `json:"id"`
}

// CreateGroup creates a unified group owned by req.OwnerEmail and returns
// its id. The owner is always a member, exactly once.
func (c *DirectoryClient) CreateGroup(ctx context.Context, req GroupCreationRequest) (string, error) {
	token, err := c.tokenFor(ctx, req.OwnerEmail)
	if err != nil {
		return "", fmt.Errorf("create group: %w", err)
	}

	body, status, err := c.makeRequest(ctx, http.MethodPost, c.graphURL+"/groups", token.Token, c.newGroupBody(req))
	if err != nil {
		return "", fmt.Errorf("create group: %w", err)
	}
	if !IsSuccess(status) {
		return "", fmt.Errorf("create group: %w: %s", statusError(status), body)
	}

	var created idResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("create group: failed to decode response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("create group: %w", ErrMissingID)
	}

	zerolog.Ctx(ctx).Info().Str("group_id", created.ID).Str("tenant_id", token.TenantID).
		Str("display_name", req.DisplayName).Msg("Group created")
	return created.ID, nil
}

func (c *DirectoryClient) newGroupBody(req GroupCreationRequest) groupBody {
	owner := normaliseEmail(req.OwnerEmail)
	ownerRef := c.userRef(owner)

	members := make([]string, 0, len(req.MemberEmails)+1)
	for _, m := range req.MemberEmails {
		m = normaliseEmail(m)
		if m == "" || strings.EqualFold(m, owner) {
			continue
		}
		members = append(members, c.userRef(m))
	}
	members = append(members, ownerRef)

	description := req.Description
	if description == "" {
		description = emptyDescription
	}

	return groupBody{
		DisplayName:             req.DisplayName,
		Description:             description,
		Visibility:              visibility(req.IsPrivate),
		GroupTypes:              []string{"Unified"},
		MailEnabled:             true,
		MailNickname:            strings.ReplaceAll(req.DisplayName, " ", ""),
		ResourceBehaviorOptions: []string{"WelcomeEmailDisabled"},
		SecurityEnabled:         false,
		Owners:                  []string{ownerRef},
		Members:                 members,
	}
}

// CreateTeamFromGroup turns an existing group into a team. Any HTTP response
// counts as success; a non-2xx status is only logged. Token and transport
// failures are returned.
func (c *DirectoryClient) CreateTeamFromGroup(ctx context.Context, groupID, ownerEmail string) (bool, error) {
	token, err := c.tokenFor(ctx, ownerEmail)
	if err != nil {
		return false, fmt.Errorf("create team from group: %w", err)
	}

	var settings teamSettingsBody
	settings.MemberSettings.AllowCreateUpdateChannels = true
	settings.MessagingSettings.AllowUserEditMessages = true
	settings.MessagingSettings.AllowUserDeleteMessages = true
	settings.FunSettings.AllowGiphy = true
	settings.FunSettings.GiphyContentRating = "strict"

	endpoint := fmt.Sprintf("%s/groups/%s/team", c.graphURL, url.PathEscape(groupID))
	body, status, err := c.makeRequest(ctx, http.MethodPut, endpoint, token.Token, settings)
	if err != nil {
		return false, fmt.Errorf("create team from group: %w", err)
	}

	logger := zerolog.Ctx(ctx).With().Str("group_id", groupID).Int("status", status).Logger()
	if !IsSuccess(status) {
		logger.Warn().Bytes("body", body).Msg("Team creation from group was not accepted")
	} else {
		logger.Info().Msg("Team requested from group")
	}
	return true, nil
}

// RetrieveUserIDFromEmail looks up the directory id of a user. It returns an
// empty string on any failure.
func (c *DirectoryClient) RetrieveUserIDFromEmail(ctx context.Context, email string) string {
	logger := zerolog.Ctx(ctx).With().Str("email", email).Logger()

	token, err := c.tokenFor(ctx, email)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot look up user")
		return ""
	}

	body, status, err := c.makeRequest(ctx, http.MethodGet, c.userRef(normaliseEmail(email)), token.Token, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("User lookup failed")
		return ""
	}
	if !IsSuccess(status) {
		logger.Warn().Int("status", status).Msg("User lookup was rejected")
		return ""
	}

	var user idResponse
	if err := json.Unmarshal(body, &user); err != nil {
		logger.Warn().Err(err).Msg("Failed to decode user")
		return ""
	}
	return user.ID
}

// CreateTeam creates a team from the standard template with owner and members
// bound by directory id. It returns true only when Graph accepted the request.
func (c *DirectoryClient) CreateTeam(ctx context.Context, req GroupCreationRequest) (bool, error) {
	token, err := c.tokenFor(ctx, req.OwnerEmail)
	if err != nil {
		return false, fmt.Errorf("create team: %w", err)
	}

	ownerID := c.RetrieveUserIDFromEmail(ctx, req.OwnerEmail)
	if ownerID == "" {
		return false, fmt.Errorf("create team: owner %s: %w", req.OwnerEmail, ErrUserNotFound)
	}

	payload := teamBody{
		Template:    c.graphURL + "/teamsTemplates('standard')",
		DisplayName: req.DisplayName,
		Description: req.Description,
		Visibility:  visibility(req.IsPrivate),
		Owners:      []string{c.userRef(ownerID)},
	}
	owner := normaliseEmail(req.OwnerEmail)
	for _, m := range req.MemberEmails {
		m = normaliseEmail(m)
		if m == "" || strings.EqualFold(m, owner) {
			continue
		}
		id := c.RetrieveUserIDFromEmail(ctx, m)
		if id == "" {
			zerolog.Ctx(ctx).Warn().Str("email", m).Msg("Skipping member that could not be resolved")
			continue
		}
		payload.Members = append(payload.Members, c.userRef(id))
	}

	body, status, err := c.makeRequest(ctx, http.MethodPost, c.graphURL+"/teams", token.Token, payload)
	if err != nil {
		return false, fmt.Errorf("create team: %w", err)
	}
	if !IsSuccess(status) {
		return false, fmt.Errorf("create team: %w: %s", statusError(status), body)
	}
	return true, nil
}

// ParseMemberEmails splits a comma separated list of addresses, dropping
// empty entries.
func ParseMemberEmails(csv string) []string {
	var emails []string
	for _, e := range strings.Split(csv, ",") {
		if e = strings.TrimSpace(e); e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

// EmailDomain returns the part of an address after the last @.
func EmailDomain(email string) (string, error) {
	addr, err := parseEmail(email)
	if err != nil {
		return "", err
	}
	return addr[strings.LastIndex(addr, "@")+1:], nil
}

// parseEmail accepts "alice@contoso.com" as well as "Alice <alice@contoso.com>"
// and returns the bare address.
func parseEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidEmail, email, err)
	}
	at := strings.LastIndex(addr.Address, "@")
	if at < 0 || at == len(addr.Address)-1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return addr.Address, nil
}

// normaliseEmail returns the bare address of email. Entries that do not parse
// are only trimmed and left for Graph to reject.
func normaliseEmail(email string) string {
	if addr, err := parseEmail(email); err == nil {
		return addr
	}
	return strings.TrimSpace(email)
}

func (c *DirectoryClient) tokenFor(ctx context.Context, email string) (*TokenTenant, error) {
	domain, err := EmailDomain(email)
	if err != nil {
		return nil, err
	}
	token, err := c.tokens.AcquireToken(ctx, domain)
	if err != nil {
		return nil, err
	}
	if token == nil || token.Token == "" {
		return nil, ErrTokenUnavailable
	}
	return token, nil
}

func (c *DirectoryClient) userRef(user string) string {
	return c.graphURL + "/users/" + url.PathEscape(user)
}

// makeRequest sends one authorised request and returns the response body and
// status. Non-2xx statuses are not errors here.
func (c *DirectoryClient) makeRequest(ctx context.Context, method, endpoint, token string, payload any) ([]byte, int, error) {
	var body io.Reader = http.NoBody
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.RecordThrottle(retryAfter(resp.Header))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	seconds, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func statusError(status int) error {
	if err := WrapError(status); err != nil {
		return err
	}
	return fmt.Errorf("graph: unexpected status %d", status)
}

func visibility(private bool) string {
	if private {
		return visibilityPrivate
	}
	return visibilityPublic
}
