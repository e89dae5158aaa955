package services

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	internal "github.com/ExpertsInside/Botty-McBotface/internal/services"
)

// CreateProvisioningService provisions a group and team for the caller.
func CreateProvisioningService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFromRequest(w, r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		return
	}

	var req models.ProvisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("Invalid request payload")
		internal.HandleErrResponse(w, http.StatusBadRequest, fmt.Errorf("%w: %v", internal.ErrInvalidRequest, err))
		return
	}

	// The audit trail always names the authenticated caller
	req.RequestedBy = claims.Caller()

	record, err := svc.Provisioner.Provision(r.Context(), req)
	if err != nil {
		logger.Error().Err(err).Msg("Provisioning failed")
		internal.HandleErrResponse(w, internal.StatusForError(err), err)
		return
	}

	logger.Info().Str("record_id", record.ID.String()).Msg("Provisioning completed")
	location := fmt.Sprintf("%s/%s", r.URL.Path, record.ID)
	WriteResponse(w, http.StatusCreated, record, location)
}

// GetProvisioningRecordsService lists the caller's provisioning records.
func GetProvisioningRecordsService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFromRequest(w, r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		return
	}

	records, err := svc.DB.GetRecords(r.Context(), claims.Caller())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve provisioning records")
		internal.HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	if records == nil {
		records = []models.ProvisioningRecord{}
	}

	logger.Info().Int("record_count", len(records)).Msg("Successfully retrieved provisioning records")
	WriteResponse(w, http.StatusOK, records)
}

// GetProvisioningRecordService returns one record requested by the caller.
// Admins may read any record.
func GetProvisioningRecordService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFromRequest(w, r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		return
	}

	recordID, err := uuid.Parse(mux.Vars(r)["record-id"])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid record id")
		internal.HandleErrResponse(w, http.StatusBadRequest, err)
		return
	}

	record, err := svc.DB.GetRecord(r.Context(), recordID)
	if err != nil {
		logger.Error().Err(err).Str("record_id", recordID.String()).Msg("Database error retrieving record")
		internal.HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	// Records of other callers are reported as missing
	if record == nil || (record.RequestedBy != claims.Caller() && !claims.HasRole(AdminRole)) {
		WriteResponse(w, http.StatusNotFound, nil)
		return
	}

	WriteResponse(w, http.StatusOK, record)
}
