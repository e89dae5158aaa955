package models

import (
	"time"

	"github.com/google/uuid"
)

// Provisioning statuses
const (
	StatusPending       = "pending"
	StatusGroupCreated  = "group-created"
	StatusTeamRequested = "team-requested"
	StatusFailed        = "failed"
)

// ProvisioningRecord is one attempt to create a group and promote it to a team.
type ProvisioningRecord struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	DisplayName string    `json:"display_name"`
	OwnerEmail  string    `json:"owner_email"`
	RequestedBy string    `json:"requested_by"`
	TenantID    *string   `json:"tenant_id,omitempty"`
	GroupID     *string   `json:"group_id,omitempty"`
	Status      string    `json:"status"`
	Error       *string   `json:"error,omitempty"`
}

// ProvisionRequest asks for a group with a team on top of it. It is accepted
// over HTTP and from the request topic.
type ProvisionRequest struct {
	DisplayName  string   `json:"display_name"`
	Description  string   `json:"description"`
	OwnerEmail   string   `json:"owner_email"`
	MemberEmails []string `json:"member_emails"`
	IsPrivate    bool     `json:"is_private"`
	RequestedBy  string   `json:"requested_by,omitempty"`
}

// GroupRequest is the body of group and legacy team creation calls.
type GroupRequest struct {
	DisplayName  string   `json:"display_name"`
	Description  string   `json:"description"`
	OwnerEmail   string   `json:"owner_email"`
	MemberEmails []string `json:"member_emails"`
	IsPrivate    bool     `json:"is_private"`
}

// TeamFromGroupRequest is the body of a group to team conversion.
type TeamFromGroupRequest struct {
	OwnerEmail string `json:"owner_email"`
}

type GroupResponse struct {
	ID string `json:"id"`
}

type TeamResponse struct {
	GroupID   string `json:"group_id,omitempty"`
	Requested bool   `json:"requested"`
}

type UserResponse struct {
	Email string `json:"email"`
	ID    string `json:"id"`
}

type TenantResponse struct {
	Domain          string `json:"domain"`
	TenantID        string `json:"tenant_id"`
	AdminConsentURL string `json:"admin_consent_url"`
}

// ProvisioningEvent is published whenever a provisioning record settles.
type ProvisioningEvent struct {
	RecordID    uuid.UUID `json:"record_id"`
	GroupID     string    `json:"group_id,omitempty"`
	OwnerEmail  string    `json:"owner_email"`
	DisplayName string    `json:"display_name"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	Timestamp   int64     `json:"timestamp"`
}
