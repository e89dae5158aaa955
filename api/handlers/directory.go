package handlers

import (
	"net/http"

	"github.com/ExpertsInside/Botty-McBotface/api/services"
)

// @Summary Create a unified group
// @Description The owner is added to both owners and members. An empty description is stored as "-".
// @Tags directory
// @Accept json
// @Produce json
// @Param request body models.GroupRequest true "Group"
// @Success 201 {object} models.GroupResponse
// @Failure 400 {object} models.Response
// @Failure 429 {object} models.Response
// @Failure 502 {object} models.Response
// @Router /groups [post]
func CreateGroup(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.CreateGroupService(svc, w, r)
	}
}

// @Summary Promote a group to a team
// @Description Graph completes the conversion asynchronously, so the request is accepted once it was sent.
// @Tags directory
// @Accept json
// @Produce json
// @Param group-id path string true "Group ID"
// @Param request body models.TeamFromGroupRequest true "Owner of the group"
// @Success 202 {object} models.TeamResponse
// @Failure 400 {object} models.Response
// @Failure 502 {object} models.Response
// @Router /groups/{group-id}/team [put]
func CreateTeamFromGroup(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.CreateTeamFromGroupService(svc, w, r)
	}
}

// @Summary Create a team from the standard template
// @Tags directory
// @Accept json
// @Produce json
// @Param request body models.GroupRequest true "Team"
// @Success 201 {object} models.TeamResponse
// @Failure 400 {object} models.Response
// @Failure 502 {object} models.Response
// @Router /teams [post]
func CreateTeam(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.CreateTeamService(svc, w, r)
	}
}

// @Summary Look up a user
// @Tags directory
// @Produce json
// @Param email path string true "User email" example(jane@contoso.com)
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} models.Response
// @Router /users/{email} [get]
func GetUser(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetUserService(svc, w, r)
	}
}

// @Summary Resolve the tenant of a domain
// @Description Returns the tenant id and the admin consent link for the application.
// @Tags directory
// @Produce json
// @Param domain path string true "Email domain" example(contoso.com)
// @Success 200 {object} models.TenantResponse
// @Failure 404 {object} models.Response
// @Router /tenants/{domain} [get]
func GetTenant(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetTenantService(svc, w, r)
	}
}
