package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ExpertsInside/Botty-McBotface/internal/events"
	"github.com/ExpertsInside/Botty-McBotface/internal/graph"
	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrInvalidRequest = errors.New("invalid provisioning request")

// RecordStore persists provisioning records.
type RecordStore interface {
	CreateRecord(ctx context.Context, displayName, ownerEmail, requestedBy string) (*models.ProvisioningRecord, error)
	MarkGroupCreated(ctx context.Context, id uuid.UUID, tenantID, groupID string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status, errMsg string) error
}

// GroupDirectory creates groups and teams.
type GroupDirectory interface {
	CreateGroup(ctx context.Context, req graph.GroupCreationRequest) (string, error)
	CreateTeamFromGroup(ctx context.Context, groupID, ownerEmail string) (bool, error)
}

// OwnerMailer tells owners their team was requested.
type OwnerMailer interface {
	TeamRequested(ctx context.Context, ownerEmail, displayName, groupID string) error
}

// Provisioner creates a group, promotes it to a team and records each step.
type Provisioner struct {
	Store     RecordStore
	Directory GroupDirectory
	Tenants   graph.TenantIDResolver
	Events    events.Notifier
	Mailer    OwnerMailer
}

// Provision runs the whole flow for req. On failure the returned record is
// marked failed and the error says which step failed.
func (p *Provisioner) Provision(ctx context.Context, req models.ProvisionRequest) (*models.ProvisioningRecord, error) {
	logger := zerolog.Ctx(ctx).With().Str("display_name", req.DisplayName).Str("owner", req.OwnerEmail).Logger()

	domain, err := validate(req)
	if err != nil {
		return nil, err
	}

	record, err := p.Store.CreateRecord(ctx, req.DisplayName, req.OwnerEmail, req.RequestedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create provisioning record: %w", err)
	}
	logger = logger.With().Str("record_id", record.ID.String()).Logger()
	ctx = logger.WithContext(ctx)

	groupID, err := p.Directory.CreateGroup(ctx, graph.GroupCreationRequest{
		DisplayName:  req.DisplayName,
		Description:  req.Description,
		OwnerEmail:   req.OwnerEmail,
		MemberEmails: req.MemberEmails,
		IsPrivate:    req.IsPrivate,
	})
	if err != nil {
		return p.fail(ctx, record, fmt.Errorf("create group: %w", err))
	}

	tenantID := p.tenantID(ctx, domain)
	if err := p.Store.MarkGroupCreated(ctx, record.ID, tenantID, groupID); err != nil {
		logger.Error().Err(err).Msg("Failed to record group creation")
	}
	record.GroupID = &groupID
	if tenantID != "" {
		record.TenantID = &tenantID
	}
	record.Status = models.StatusGroupCreated

	if _, err := p.Directory.CreateTeamFromGroup(ctx, groupID, req.OwnerEmail); err != nil {
		return p.fail(ctx, record, fmt.Errorf("create team from group: %w", err))
	}

	if err := p.Store.UpdateStatus(ctx, record.ID, models.StatusTeamRequested, ""); err != nil {
		logger.Error().Err(err).Msg("Failed to record team request")
	}
	record.Status = models.StatusTeamRequested
	record.UpdatedAt = time.Now().UTC()

	p.publish(ctx, record, "")
	if p.Mailer != nil {
		if err := p.Mailer.TeamRequested(ctx, req.OwnerEmail, req.DisplayName, groupID); err != nil {
			logger.Warn().Err(err).Msg("Failed to notify owner")
		}
	}

	logger.Info().Str("group_id", groupID).Msg("Team requested")
	return record, nil
}

func (p *Provisioner) fail(ctx context.Context, record *models.ProvisioningRecord, cause error) (*models.ProvisioningRecord, error) {
	logger := zerolog.Ctx(ctx)
	logger.Error().Err(cause).Msg("Provisioning failed")

	msg := cause.Error()
	if err := p.Store.UpdateStatus(ctx, record.ID, models.StatusFailed, msg); err != nil {
		logger.Error().Err(err).Msg("Failed to record provisioning failure")
	}
	record.Status = models.StatusFailed
	record.Error = &msg
	record.UpdatedAt = time.Now().UTC()

	p.publish(ctx, record, msg)
	return record, cause
}

func (p *Provisioner) publish(ctx context.Context, record *models.ProvisioningRecord, errMsg string) {
	if p.Events == nil {
		return
	}

	event := models.ProvisioningEvent{
		RecordID:    record.ID,
		OwnerEmail:  record.OwnerEmail,
		DisplayName: record.DisplayName,
		Status:      record.Status,
		Error:       errMsg,
		Timestamp:   time.Now().Unix(),
	}
	if record.GroupID != nil {
		event.GroupID = *record.GroupID
	}

	if err := p.Events.Notify(ctx, event); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("Failed to publish provisioning event")
	}
}

// tenantID is informational; a lookup failure leaves it empty.
func (p *Provisioner) tenantID(ctx context.Context, domain string) string {
	if p.Tenants == nil {
		return ""
	}
	tenantID, err := p.Tenants.ResolveTenantID(ctx, domain)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("Failed to resolve tenant for record")
		return ""
	}
	return tenantID
}

func validate(req models.ProvisionRequest) (string, error) {
	if strings.TrimSpace(req.DisplayName) == "" {
		return "", fmt.Errorf("%w: display name is required", ErrInvalidRequest)
	}
	domain, err := graph.EmailDomain(req.OwnerEmail)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return domain, nil
}

// RequestHandler consumes ProvisionRequest messages. A request is settled once
// its record exists, failed or not, so the broker never replays a run that may
// already have created a group. Only a failure to write the record asks for
// redelivery. Requests without requester are attributed to source.
func (p *Provisioner) RequestHandler(source string) events.Handler {
	return func(ctx context.Context, payload []byte) error {
		logger := zerolog.Ctx(ctx)

		var req models.ProvisionRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			logger.Error().Err(err).Msg("Dropping malformed provisioning request")
			return nil
		}
		if req.RequestedBy == "" {
			req.RequestedBy = source
		}

		record, err := p.Provision(ctx, req)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrInvalidRequest):
			logger.Error().Err(err).Msg("Dropping invalid provisioning request")
			return nil
		case record != nil:
			logger.Warn().Err(err).Str("record_id", record.ID.String()).Msg("Provisioning request settled as failed")
			return nil
		default:
			return err
		}
	}
}
