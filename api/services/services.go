package services

import (
	"context"

	"github.com/ExpertsInside/Botty-McBotface/internal/appconfig"
	"github.com/ExpertsInside/Botty-McBotface/internal/graph"
	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/google/uuid"
)

// AdminRole lets a caller see every provisioning record.
const AdminRole = "Teams.Admin"

// Directory is the Graph surface exposed over HTTP.
type Directory interface {
	CreateGroup(ctx context.Context, req graph.GroupCreationRequest) (string, error)
	CreateTeamFromGroup(ctx context.Context, groupID, ownerEmail string) (bool, error)
	RetrieveUserIDFromEmail(ctx context.Context, email string) string
	CreateTeam(ctx context.Context, req graph.GroupCreationRequest) (bool, error)
}

// Tenants resolves tenants and builds their admin consent links.
type Tenants interface {
	ResolveTenantID(ctx context.Context, domain string) (string, error)
	AdminConsentURL(tenantID string) string
}

// RecordReader reads the provisioning ledger.
type RecordReader interface {
	GetRecord(ctx context.Context, id uuid.UUID) (*models.ProvisioningRecord, error)
	GetRecords(ctx context.Context, requestedBy string) ([]models.ProvisioningRecord, error)
}

// Provisioner runs the group and team provisioning flow.
type Provisioner interface {
	Provision(ctx context.Context, req models.ProvisionRequest) (*models.ProvisioningRecord, error)
}

// Service contains all shared dependencies for handlers.
type Service struct {
	Config      *appconfig.Config
	DB          RecordReader
	Directory   Directory
	Tenants     Tenants
	Provisioner Provisioner
}
