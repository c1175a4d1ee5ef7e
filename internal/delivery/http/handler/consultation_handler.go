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

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

func (h *ConsultationHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := h.consultationUsecase.GetQueue(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get consultation queue")
		return
	}

	response.Success(w, http.StatusOK, "Consultation queue retrieved successfully", queue)
}

func (h *ConsultationHandler) DraftNotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	draft, err := h.consultationUsecase.DraftNotes(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, usecase.ErrAppointmentNotScheduled):
			response.Conflict(w, "Appointment is not in the scheduled queue")
		case errors.Is(err, gateway.ErrMissingAPIKey):
			response.Error(w, http.StatusServiceUnavailable, "AI note drafting is not configured", nil)
		default:
			response.InternalServerError(w, "Failed to draft notes")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notes drafted successfully", draft)
}

func (h *ConsultationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CompleteConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appt, err := h.consultationUsecase.Complete(r.Context(), id, &req)
	if err != nil {
		writeWorkflowError(w, err, "Failed to complete consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation completed successfully", appt)
}
