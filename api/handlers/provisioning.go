package handlers

import (
	"net/http"

	"github.com/ExpertsInside/Botty-McBotface/api/services"
)

// @Summary Provision a group and team
// @Description Create a Microsoft 365 group for the owner, promote it to a team and record the outcome.
// @Tags provisioning
// @Accept json
// @Produce json
// @Param request body models.ProvisionRequest true "Provisioning request"
// @Success 201 {object} models.ProvisioningRecord
// @Failure 400 {object} models.Response
// @Failure 401 {object} models.Response
// @Failure 502 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /provisioning [post]
func CreateProvisioning(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.CreateProvisioningService(svc, w, r)
	}
}

// @Summary List provisioning records
// @Description List the provisioning records requested by the caller, newest first.
// @Tags provisioning
// @Produce json
// @Success 200 {array} models.ProvisioningRecord
// @Failure 401 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /provisioning [get]
func GetProvisioningRecords(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetProvisioningRecordsService(svc, w, r)
	}
}

// @Summary Get a provisioning record
// @Tags provisioning
// @Produce json
// @Param record-id path string true "Record ID"
// @Success 200 {object} models.ProvisioningRecord
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /provisioning/{record-id} [get]
func GetProvisioningRecord(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetProvisioningRecordService(svc, w, r)
	}
}
