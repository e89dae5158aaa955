package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ExpertsInside/Botty-McBotface/internal/graph"
	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	internal "github.com/ExpertsInside/Botty-McBotface/internal/services"
)

func decodeGroupRequest(w http.ResponseWriter, r *http.Request) (models.GroupRequest, bool) {
	var req models.GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Invalid request payload")
		internal.HandleErrResponse(w, http.StatusBadRequest, fmt.Errorf("%w: %v", internal.ErrInvalidRequest, err))
		return req, false
	}
	if strings.TrimSpace(req.DisplayName) == "" || req.OwnerEmail == "" {
		internal.HandleErrResponse(w, http.StatusBadRequest,
			fmt.Errorf("%w: display_name and owner_email are required", internal.ErrInvalidRequest))
		return req, false
	}
	return req, true
}

// CreateGroupService creates a unified group.
func CreateGroupService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	req, ok := decodeGroupRequest(w, r)
	if !ok {
		return
	}

	groupID, err := svc.Directory.CreateGroup(r.Context(), toGroupCreationRequest(req))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create group")
		internal.HandleErrResponse(w, internal.StatusForError(err), err)
		return
	}

	location := fmt.Sprintf("%s/%s", r.URL.Path, groupID)
	WriteResponse(w, http.StatusCreated, models.GroupResponse{ID: groupID}, location)
}

// CreateTeamFromGroupService asks Graph to turn a group into a team. The
// request is accepted whatever Graph answers once a token was obtained.
func CreateTeamFromGroupService(svc *Service, w http.ResponseWriter, r *http.Request) {

	groupID := mux.Vars(r)["group-id"]
	logger := zerolog.Ctx(r.Context()).With().Str("group_id", groupID).Logger()

	var req models.TeamFromGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OwnerEmail == "" {
		logger.Warn().Err(err).Msg("Invalid request payload")
		internal.HandleErrResponse(w, http.StatusBadRequest, fmt.Errorf("%w: owner_email is required", internal.ErrInvalidRequest))
		return
	}

	requested, err := svc.Directory.CreateTeamFromGroup(r.Context(), groupID, req.OwnerEmail)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to request team")
		internal.HandleErrResponse(w, internal.StatusForError(err), err)
		return
	}

	WriteResponse(w, http.StatusAccepted, models.TeamResponse{GroupID: groupID, Requested: requested})
}

// CreateTeamService creates a team from the standard template.
func CreateTeamService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	req, ok := decodeGroupRequest(w, r)
	if !ok {
		return
	}

	created, err := svc.Directory.CreateTeam(r.Context(), toGroupCreationRequest(req))
	if !created {
		if err == nil {
			err = errors.New("team was not created")
		}
		logger.Error().Err(err).Msg("Failed to create team")

		status := http.StatusBadGateway
		if errors.Is(err, graph.ErrInvalidEmail) {
			status = http.StatusBadRequest
		}
		internal.HandleErrResponse(w, status, err)
		return
	}

	WriteResponse(w, http.StatusCreated, models.TeamResponse{Requested: created})
}

// GetUserService resolves the directory id of a user.
func GetUserService(svc *Service, w http.ResponseWriter, r *http.Request) {

	email := mux.Vars(r)["email"]

	id := svc.Directory.RetrieveUserIDFromEmail(r.Context(), email)
	if id == "" {
		internal.HandleErrResponse(w, http.StatusNotFound, fmt.Errorf("%s: %w", email, graph.ErrUserNotFound))
		return
	}

	WriteResponse(w, http.StatusOK, models.UserResponse{Email: email, ID: id})
}

// GetTenantService resolves the tenant owning a domain.
func GetTenantService(svc *Service, w http.ResponseWriter, r *http.Request) {

	domain := mux.Vars(r)["domain"]
	logger := zerolog.Ctx(r.Context()).With().Str("domain", domain).Logger()

	tenantID, err := svc.Tenants.ResolveTenantID(r.Context(), domain)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to resolve tenant")
		internal.HandleErrResponse(w, http.StatusNotFound, err)
		return
	}

	WriteResponse(w, http.StatusOK, models.TenantResponse{
		Domain:          domain,
		TenantID:        tenantID,
		AdminConsentURL: svc.Tenants.AdminConsentURL(tenantID),
	})
}
