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

type PortalHandler struct {
	portalUsecase usecase.PortalUsecase
	validator     *validator.CustomValidator
}

func NewPortalHandler(portalUsecase usecase.PortalUsecase, validator *validator.CustomValidator) *PortalHandler {
	return &PortalHandler{
		portalUsecase: portalUsecase,
		validator:     validator,
	}
}

// Register is the only unauthenticated portal endpoint: it creates the
// patient record together with its login credential.
func (h *PortalHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.portalUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrMobileAlreadyRegistered:
			response.Conflict(w, "Mobile number is already registered")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Date of birth must be YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to register patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", patient)
}

func (h *PortalHandler) RequestAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.RequestAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appt, err := h.portalUsecase.RequestAppointment(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrUnknownDepartment):
			response.Error(w, http.StatusBadRequest, "Unknown department", nil)
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.Error(w, http.StatusBadRequest, "Date must be RFC 3339", nil)
		case errors.Is(err, gateway.ErrMissingAPIKey):
			response.Error(w, http.StatusServiceUnavailable, "AI triage is not configured", nil)
		default:
			response.InternalServerError(w, "Failed to request appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment requested successfully", appt)
}

func (h *PortalHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.portalUsecase.GetMyAppointments(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appts)
}

func (h *PortalHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.portalUsecase.GetProfile(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *PortalHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.portalUsecase.ChangePassword(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Current password is incorrect")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to change password")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password changed successfully", nil)
}
