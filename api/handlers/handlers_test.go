package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ExpertsInside/Botty-McBotface/api/middleware"
	"github.com/ExpertsInside/Botty-McBotface/api/services"
	"github.com/ExpertsInside/Botty-McBotface/internal/authn"
	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRouter(svc *services.Service) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/provisioning", CreateProvisioning(svc)).Methods(http.MethodPost)
	r.HandleFunc("/provisioning", GetProvisioningRecords(svc)).Methods(http.MethodGet)
	r.HandleFunc("/provisioning/{record-id}", GetProvisioningRecord(svc)).Methods(http.MethodGet)
	r.HandleFunc("/groups", CreateGroup(svc)).Methods(http.MethodPost)
	r.HandleFunc("/groups/{group-id}/team", CreateTeamFromGroup(svc)).Methods(http.MethodPut)
	r.HandleFunc("/teams", CreateTeam(svc)).Methods(http.MethodPost)
	r.HandleFunc("/users/{email}", GetUser(svc)).Methods(http.MethodGet)
	r.HandleFunc("/tenants/{domain}", GetTenant(svc)).Methods(http.MethodGet)
	return r
}

func TestGetUser(t *testing.T) {
	directory := new(services.MockDirectory)
	directory.On("RetrieveUserIDFromEmail", mock.Anything, "jane@contoso.com").Return("user-1")

	req, err := http.NewRequest(http.MethodGet, "/users/jane@contoso.com", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	newRouter(&services.Service{Directory: directory}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"email": "jane@contoso.com", "id": "user-1"}`, rr.Body.String())
}

func TestCreateTeamFromGroup(t *testing.T) {
	directory := new(services.MockDirectory)
	directory.On("CreateTeamFromGroup", mock.Anything, "group-1", "jane@contoso.com").Return(true, nil)

	body := strings.NewReader(`{"owner_email": "jane@contoso.com"}`)
	req, err := http.NewRequest(http.MethodPut, "/groups/group-1/team", body)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	newRouter(&services.Service{Directory: directory}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	directory.AssertExpectations(t)
}

func TestGetProvisioningRecord(t *testing.T) {
	record := &models.ProvisioningRecord{ID: uuid.New(), RequestedBy: "jane@contoso.com", Status: models.StatusTeamRequested}
	db := new(services.MockRecordReader)
	db.On("GetRecord", mock.Anything, record.ID).Return(record, nil)

	req, err := http.NewRequest(http.MethodGet, "/provisioning/"+record.ID.String(), nil)
	assert.NoError(t, err)

	claims := authn.Claims{Email: "jane@contoso.com"}
	req = req.WithContext(context.WithValue(req.Context(), middleware.ClaimsKey, claims))

	rr := httptest.NewRecorder()
	newRouter(&services.Service{DB: db}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"team-requested"`)
}

func TestCreateProvisioning_Unauthorized(t *testing.T) {
	provisioner := new(services.MockProvisioner)

	req, err := http.NewRequest(http.MethodPost, "/provisioning", strings.NewReader(`{}`))
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	newRouter(&services.Service{Provisioner: provisioner}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	provisioner.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything)
}
