package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Jijnash2636/medaiton/internal/delivery/dto"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/usecase"
	"github.com/Jijnash2636/medaiton/pkg/response"
	"github.com/Jijnash2636/medaiton/pkg/validator"

	"github.com/gorilla/mux"
)

type ReceptionHandler struct {
	receptionUsecase usecase.ReceptionUsecase
	validator        *validator.CustomValidator
}

func NewReceptionHandler(receptionUsecase usecase.ReceptionUsecase, validator *validator.CustomValidator) *ReceptionHandler {
	return &ReceptionHandler{
		receptionUsecase: receptionUsecase,
		validator:        validator,
	}
}

func (h *ReceptionHandler) RegisterWalkIn(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterWalkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.receptionUsecase.RegisterWalkIn(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Date of birth must be YYYY-MM-DD", nil)
		case usecase.ErrUnknownDepartment:
			response.Error(w, http.StatusBadRequest, "Unknown department", nil)
		default:
			response.InternalServerError(w, "Failed to register walk-in patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Walk-in patient registered successfully", patient)
}

func (h *ReceptionHandler) ListPendingAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.receptionUsecase.ListPendingAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list pending appointments")
		return
	}

	response.Success(w, http.StatusOK, "Pending appointments retrieved successfully", appts)
}

func (h *ReceptionHandler) AllocateSlot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appt, err := h.receptionUsecase.AllocateSlot(r.Context(), id)
	if err != nil {
		writeWorkflowError(w, err, "Failed to allocate slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot allocated successfully", appt)
}

func (h *ReceptionHandler) RejectAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.receptionUsecase.RejectAppointment(r.Context(), id); err != nil {
		writeWorkflowError(w, err, "Failed to reject appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment rejected successfully", nil)
}

func (h *ReceptionHandler) CheckInPatient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	patient, err := h.receptionUsecase.CheckInPatient(r.Context(), id)
	if err != nil {
		writeWorkflowError(w, err, "Failed to check in patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient checked in successfully", patient)
}

func (h *ReceptionHandler) SearchPatient(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter q is required", nil)
		return
	}

	result, err := h.receptionUsecase.SearchPatient(r.Context(), query)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to search patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", result)
}

// pathID parses the numeric {name} path variable.
func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

// writeWorkflowError maps the shared workflow failures: unknown records
// are 404s and illegal state transitions are 409s.
func writeWorkflowError(w http.ResponseWriter, err error, fallback string) {
	var transitionErr *entity.TransitionError
	switch {
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrNoAllocatedAppointment):
		response.Conflict(w, "Patient has no slot-allocated appointment")
	case errors.As(err, &transitionErr):
		response.Conflict(w, transitionErr.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
