package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Jijnash2636/medaiton/internal/delivery/dto"
	"github.com/Jijnash2636/medaiton/internal/domain/gateway"
	"github.com/Jijnash2636/medaiton/internal/usecase"
	"github.com/Jijnash2636/medaiton/pkg/response"
	"github.com/Jijnash2636/medaiton/pkg/validator"
)

type TriageHandler struct {
	triageUsecase usecase.TriageUsecase
	validator     *validator.CustomValidator
}

func NewTriageHandler(triageUsecase usecase.TriageUsecase, validator *validator.CustomValidator) *TriageHandler {
	return &TriageHandler{
		triageUsecase: triageUsecase,
		validator:     validator,
	}
}

func (h *TriageHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := h.triageUsecase.GetQueue(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get triage queue")
		return
	}

	response.Success(w, http.StatusOK, "Triage queue retrieved successfully", queue)
}

func (h *TriageHandler) RecordVitals(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.RecordVitalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.triageUsecase.RecordVitals(r.Context(), id, &req)
	if err != nil {
		writeWorkflowError(w, err, "Failed to record vitals")
		return
	}

	response.Success(w, http.StatusOK, "Vitals recorded successfully", patient)
}

func (h *TriageHandler) SuggestTriage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	suggestion, err := h.triageUsecase.SuggestTriage(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, gateway.ErrMissingAPIKey):
			response.Error(w, http.StatusServiceUnavailable, "AI triage is not configured", nil)
		default:
			response.InternalServerError(w, "Failed to get triage suggestion")
		}
		return
	}

	response.Success(w, http.StatusOK, "Triage suggestion retrieved successfully", suggestion)
}

func (h *TriageHandler) AssignToDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.AssignDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appt, err := h.triageUsecase.AssignToDoctor(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownDepartment) {
			response.Error(w, http.StatusBadRequest, "Unknown department", nil)
			return
		}
		writeWorkflowError(w, err, "Failed to assign patient to doctor")
		return
	}

	response.Success(w, http.StatusOK, "Patient assigned successfully", appt)
}
