package dto

import "time"

// Request DTOs

// RequestAppointmentRequest books a visit from the patient portal. When
// Date is empty the server triages the symptoms through the AI gateway
// and picks the look-ahead from the classification.
type RequestAppointmentRequest struct {
	Department      string `json:"department" validate:"required"`
	Date            string `json:"date" validate:"omitempty"` // RFC 3339
	Symptoms        string `json:"symptoms" validate:"omitempty"`
	IsUrgentRequest bool   `json:"is_urgent_request"`
}

// CompleteConsultationRequest closes out a scheduled appointment.
type CompleteConsultationRequest struct {
	Notes string `json:"notes" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        int              `json:"id"`
	PatientID int              `json:"patient_id"`
	PID       string           `json:"pid"`
	Patient   *PatientResponse `json:"patient,omitempty"`
	Doctor    string           `json:"doctor"`
	Date      time.Time        `json:"date"`
	Reason    string           `json:"reason"`
	Status    string           `json:"status"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// SOAPDraftResponse is an AI note draft; nothing is stored until the
// doctor submits the final note.
type SOAPDraftResponse struct {
	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`
	Formatted  string `json:"formatted"`
}
