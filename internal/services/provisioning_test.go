package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ExpertsInside/Botty-McBotface/internal/graph"
	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tenantID = "72f988bf-86f1-41af-91ab-2d7cd011db47"

type provisionerMocks struct {
	store     *MockRecordStore
	directory *MockDirectory
	tenants   *MockTenants
	events    *MockEventPublisher
	mailer    *MockMailer
}

func newProvisioner() (*Provisioner, provisionerMocks) {
	m := provisionerMocks{
		store:     new(MockRecordStore),
		directory: new(MockDirectory),
		tenants:   new(MockTenants),
		events:    new(MockEventPublisher),
		mailer:    new(MockMailer),
	}
	return &Provisioner{
		Store:     m.store,
		Directory: m.directory,
		Tenants:   m.tenants,
		Events:    m.events,
		Mailer:    m.mailer,
	}, m
}

func testRequest() models.ProvisionRequest {
	return models.ProvisionRequest{
		DisplayName:  "My Team",
		OwnerEmail:   "owner@contoso.com",
		MemberEmails: []string{"a@contoso.com"},
		IsPrivate:    true,
		RequestedBy:  "alice@contoso.com",
	}
}

func pendingRecord() *models.ProvisioningRecord {
	return &models.ProvisioningRecord{
		ID:          uuid.New(),
		DisplayName: "My Team",
		OwnerEmail:  "owner@contoso.com",
		RequestedBy: "alice@contoso.com",
		Status:      models.StatusPending,
	}
}

func TestProvision(t *testing.T) {
	p, m := newProvisioner()
	record := pendingRecord()

	m.store.On("CreateRecord", mock.Anything, "My Team", "owner@contoso.com", "alice@contoso.com").Return(record, nil)
	m.directory.On("CreateGroup", mock.Anything, graph.GroupCreationRequest{
		DisplayName:  "My Team",
		OwnerEmail:   "owner@contoso.com",
		MemberEmails: []string{"a@contoso.com"},
		IsPrivate:    true,
	}).Return("group-id", nil)
	m.tenants.On("ResolveTenantID", mock.Anything, "contoso.com").Return(tenantID, nil)
	m.store.On("MarkGroupCreated", mock.Anything, record.ID, tenantID, "group-id").Return(nil)
	m.directory.On("CreateTeamFromGroup", mock.Anything, "group-id", "owner@contoso.com").Return(true, nil)
	m.store.On("UpdateStatus", mock.Anything, record.ID, models.StatusTeamRequested, "").Return(nil)
	m.events.On("Notify", mock.Anything, mock.MatchedBy(func(e models.ProvisioningEvent) bool {
		return e.RecordID == record.ID && e.Status == models.StatusTeamRequested && e.GroupID == "group-id"
	})).Return(nil)
	m.mailer.On("TeamRequested", mock.Anything, "owner@contoso.com", "My Team", "group-id").Return(nil)

	result, err := p.Provision(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, models.StatusTeamRequested, result.Status)
	require.NotNil(t, result.GroupID)
	assert.Equal(t, "group-id", *result.GroupID)
	require.NotNil(t, result.TenantID)
	assert.Equal(t, tenantID, *result.TenantID)

	m.store.AssertExpectations(t)
	m.directory.AssertExpectations(t)
	m.events.AssertExpectations(t)
	m.mailer.AssertExpectations(t)
}

func TestProvision_GroupCreationFails(t *testing.T) {
	p, m := newProvisioner()
	record := pendingRecord()

	m.store.On("CreateRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(record, nil)
	m.directory.On("CreateGroup", mock.Anything, mock.Anything).Return("", graph.ErrForbidden)
	m.store.On("UpdateStatus", mock.Anything, record.ID, models.StatusFailed, mock.AnythingOfType("string")).Return(nil)
	m.events.On("Notify", mock.Anything, mock.MatchedBy(func(e models.ProvisioningEvent) bool {
		return e.RecordID == record.ID && e.Status == models.StatusFailed && e.Error != ""
	})).Return(nil)

	result, err := p.Provision(context.Background(), testRequest())

	assert.ErrorIs(t, err, graph.ErrForbidden)
	require.NotNil(t, result)
	assert.Equal(t, models.StatusFailed, result.Status)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "forbidden")

	m.directory.AssertNotCalled(t, "CreateTeamFromGroup", mock.Anything, mock.Anything, mock.Anything)
	m.mailer.AssertNotCalled(t, "TeamRequested", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.store.AssertExpectations(t)
	m.events.AssertExpectations(t)
}

func TestProvision_TeamConversionFails(t *testing.T) {
	p, m := newProvisioner()
	record := pendingRecord()

	m.store.On("CreateRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(record, nil)
	m.directory.On("CreateGroup", mock.Anything, mock.Anything).Return("group-id", nil)
	m.tenants.On("ResolveTenantID", mock.Anything, "contoso.com").Return("", errors.New("discovery down"))
	m.store.On("MarkGroupCreated", mock.Anything, record.ID, "", "group-id").Return(nil)
	m.directory.On("CreateTeamFromGroup", mock.Anything, "group-id", "owner@contoso.com").Return(false, graph.ErrTokenUnavailable)
	m.store.On("UpdateStatus", mock.Anything, record.ID, models.StatusFailed, mock.Anything).Return(nil)
	m.events.On("Notify", mock.Anything, mock.MatchedBy(func(e models.ProvisioningEvent) bool {
		return e.Status == models.StatusFailed && e.GroupID == "group-id"
	})).Return(nil)

	result, err := p.Provision(context.Background(), testRequest())

	assert.ErrorIs(t, err, graph.ErrTokenUnavailable)
	assert.Equal(t, models.StatusFailed, result.Status)
	assert.Nil(t, result.TenantID)
	m.events.AssertExpectations(t)
}

func TestProvision_EventAndMailFailuresAreIgnored(t *testing.T) {
	p, m := newProvisioner()
	record := pendingRecord()

	m.store.On("CreateRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(record, nil)
	m.directory.On("CreateGroup", mock.Anything, mock.Anything).Return("group-id", nil)
	m.tenants.On("ResolveTenantID", mock.Anything, mock.Anything).Return(tenantID, nil)
	m.store.On("MarkGroupCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.directory.On("CreateTeamFromGroup", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	m.store.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.events.On("Notify", mock.Anything, mock.Anything).Return(errors.New("broker unavailable"))
	m.mailer.On("TeamRequested", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ses throttled"))

	result, err := p.Provision(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, models.StatusTeamRequested, result.Status)
}

func TestProvision_InvalidRequest(t *testing.T) {
	p, m := newProvisioner()

	_, err := p.Provision(context.Background(), models.ProvisionRequest{DisplayName: "", OwnerEmail: "owner@contoso.com"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = p.Provision(context.Background(), models.ProvisionRequest{DisplayName: "Ops", OwnerEmail: "owner"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.ErrorIs(t, err, graph.ErrInvalidEmail)

	m.store.AssertNotCalled(t, "CreateRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProvision_RecordCreationFails(t *testing.T) {
	p, m := newProvisioner()
	m.store.On("CreateRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	result, err := p.Provision(context.Background(), testRequest())

	assert.Nil(t, result)
	assert.ErrorContains(t, err, "db down")
	m.directory.AssertNotCalled(t, "CreateGroup", mock.Anything, mock.Anything)
}
