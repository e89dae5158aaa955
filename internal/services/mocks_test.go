package services

import (
	"context"

	"github.com/ExpertsInside/Botty-McBotface/internal/graph"
	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) CreateRecord(ctx context.Context, displayName, ownerEmail, requestedBy string) (*models.ProvisioningRecord, error) {
	args := m.Called(ctx, displayName, ownerEmail, requestedBy)
	record, _ := args.Get(0).(*models.ProvisioningRecord)
	return record, args.Error(1)
}

func (m *MockRecordStore) MarkGroupCreated(ctx context.Context, id uuid.UUID, tenantID, groupID string) error {
	return m.Called(ctx, id, tenantID, groupID).Error(0)
}

func (m *MockRecordStore) UpdateStatus(ctx context.Context, id uuid.UUID, status, errMsg string) error {
	return m.Called(ctx, id, status, errMsg).Error(0)
}

type MockDirectory struct {
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

type MockTenants struct {
	mock.Mock
}

func (m *MockTenants) ResolveTenantID(ctx context.Context, domain string) (string, error) {
	args := m.Called(ctx, domain)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Notify(ctx context.Context, event models.ProvisioningEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() {
	m.Called()
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) TeamRequested(ctx context.Context, ownerEmail, displayName, groupID string) error {
	return m.Called(ctx, ownerEmail, displayName, groupID).Error(0)
}
