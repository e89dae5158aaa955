package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ExpertsInside/Botty-McBotface/api/middleware"
	"github.com/ExpertsInside/Botty-McBotface/internal/authn"
	"github.com/ExpertsInside/Botty-McBotface/internal/graph"
	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func withClaims(req *http.Request, claims authn.Claims) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ClaimsKey, claims)
	return req.WithContext(ctx)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestCreateProvisioningService(t *testing.T) {
	provisioner := new(MockProvisioner)
	svc := &Service{Provisioner: provisioner}

	record := &models.ProvisioningRecord{ID: uuid.New(), Status: models.StatusTeamRequested}
	provisioner.On("Provision", mock.Anything, mock.MatchedBy(func(req models.ProvisionRequest) bool {
		// The caller cannot choose who the request is attributed to
		return req.RequestedBy == "alice@contoso.com" && req.DisplayName == "My Team"
	})).Return(record, nil)

	body := jsonBody(t, models.ProvisionRequest{
		DisplayName: "My Team",
		OwnerEmail:  "owner@contoso.com",
		RequestedBy: "mallory@contoso.com",
	})
	req := withClaims(httptest.NewRequest(http.MethodPost, "/provisioning", body), authn.Claims{Email: "alice@contoso.com"})
	w := httptest.NewRecorder()

	CreateProvisioningService(svc, w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/provisioning/"+record.ID.String(), w.Header().Get("Location"))

	var response models.ProvisioningRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, record.ID, response.ID)
	provisioner.AssertExpectations(t)
}

func TestCreateProvisioningService_Failure(t *testing.T) {
	provisioner := new(MockProvisioner)
	svc := &Service{Provisioner: provisioner}

	provisioner.On("Provision", mock.Anything, mock.Anything).
		Return(&models.ProvisioningRecord{Status: models.StatusFailed}, graph.ErrTokenUnavailable)

	body := jsonBody(t, models.ProvisionRequest{DisplayName: "My Team", OwnerEmail: "owner@contoso.com"})
	req := withClaims(httptest.NewRequest(http.MethodPost, "/provisioning", body), authn.Claims{Email: "alice@contoso.com"})
	w := httptest.NewRecorder()

	CreateProvisioningService(svc, w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var response models.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "token_unavailable", response.ErrorCode)
}

func TestCreateProvisioningService_InvalidPayload(t *testing.T) {
	provisioner := new(MockProvisioner)
	svc := &Service{Provisioner: provisioner}

	req := withClaims(httptest.NewRequest(http.MethodPost, "/provisioning", bytes.NewBufferString("{")), authn.Claims{Email: "alice@contoso.com"})
	w := httptest.NewRecorder()

	CreateProvisioningService(svc, w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	provisioner.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything)
}

func TestCreateProvisioningService_MissingClaims(t *testing.T) {
	svc := &Service{Provisioner: new(MockProvisioner)}
	w := httptest.NewRecorder()

	CreateProvisioningService(svc, w, httptest.NewRequest(http.MethodPost, "/provisioning", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProvisioningRecordsService(t *testing.T) {
	db := new(MockRecordReader)
	svc := &Service{DB: db}

	db.On("GetRecords", mock.Anything, "alice@contoso.com").Return(nil, nil)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/provisioning", nil), authn.Claims{Email: "alice@contoso.com"})
	w := httptest.NewRecorder()

	GetProvisioningRecordsService(svc, w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetProvisioningRecordService(t *testing.T) {
	db := new(MockRecordReader)
	svc := &Service{DB: db}

	own := &models.ProvisioningRecord{ID: uuid.New(), RequestedBy: "alice@contoso.com"}
	other := &models.ProvisioningRecord{ID: uuid.New(), RequestedBy: "bob@contoso.com"}
	db.On("GetRecord", mock.Anything, own.ID).Return(own, nil)
	db.On("GetRecord", mock.Anything, other.ID).Return(other, nil)

	tests := []struct {
		name   string
		id     string
		claims authn.Claims
		want   int
	}{
		{"own record", own.ID.String(), authn.Claims{Email: "alice@contoso.com"}, http.StatusOK},
		{"other caller", other.ID.String(), authn.Claims{Email: "alice@contoso.com"}, http.StatusNotFound},
		{"admin", other.ID.String(), authn.Claims{Email: "alice@contoso.com", Roles: []string{AdminRole}}, http.StatusOK},
		{"bad id", "not-a-uuid", authn.Claims{Email: "alice@contoso.com"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/provisioning/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"record-id": tt.id})
			w := httptest.NewRecorder()

			GetProvisioningRecordService(svc, w, withClaims(req, tt.claims))

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
