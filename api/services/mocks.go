package services

import (
	"context"

	"github.com/ExpertsInside/Botty-McBotface/internal/graph"
	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockDirectory struct {
	mock.Mock
}

type MockTenants struct {
	mock.Mock
}

type MockRecordReader struct {
	mock.Mock
}

type MockProvisioner struct {
	mock.Mock
}

func (m *MockDirectory) CreateGroup(ctx context.Context, req graph.GroupCreationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockDirectory) CreateTeamFromGroup(ctx context.Context, groupID, ownerEmail string) (bool, error) {
	args := m.Called(ctx, groupID, ownerEmail)
	return args.Bool(0), args.Error(1)
}

func (m *MockDirectory) RetrieveUserIDFromEmail(ctx context.Context, email string) string {
	return m.Called(ctx, email).String(0)
}

func (m *MockDirectory) CreateTeam(ctx context.Context, req graph.GroupCreationRequest) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenants) ResolveTenantID(ctx context.Context, domain string) (string, error) {
	args := m.Called(ctx, domain)
	return args.String(0), args.Error(1)
}

func (m *MockTenants) AdminConsentURL(tenantID string) string {
	return m.Called(tenantID).String(0)
}

func (m *MockRecordReader) GetRecord(ctx context.Context, id uuid.UUID) (*models.ProvisioningRecord, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*models.ProvisioningRecord)
	return record, args.Error(1)
}

func (m *MockRecordReader) GetRecords(ctx context.Context, requestedBy string) ([]models.ProvisioningRecord, error) {
	args := m.Called(ctx, requestedBy)
	records, _ := args.Get(0).([]models.ProvisioningRecord)
	return records, args.Error(1)
}

func (m *MockProvisioner) Provision(ctx context.Context, req models.ProvisionRequest) (*models.ProvisioningRecord, error) {
	args := m.Called(ctx, req)
	record, _ := args.Get(0).(*models.ProvisioningRecord)
	return record, args.Error(1)
}
