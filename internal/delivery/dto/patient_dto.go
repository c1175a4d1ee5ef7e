package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

// RegisterPatientRequest is the portal self-registration form. Guardian
// or spouse name is conditionally required on marital status.
type RegisterPatientRequest struct {
	Name          string `json:"name" validate:"required,min=2"`
	DateOfBirth   string `json:"date_of_birth" validate:"required"` // YYYY-MM-DD
	Gender        string `json:"gender" validate:"required,oneof=Male Female Other"`
	MobileNumber  string `json:"mobile_number" validate:"required,min=10,max=15"`
	Email         string `json:"email" validate:"omitempty,email"`
	Password      string `json:"password" validate:"required,min=6"`
	MaritalStatus string `json:"marital_status" validate:"required,oneof=Single Married"`
	GuardianName  string `json:"guardian_name" validate:"required_if=MaritalStatus Single"`
	SpouseName    string `json:"spouse_name" validate:"required_if=MaritalStatus Married"`
	IsPregnant    bool   `json:"is_pregnant"`
	Symptoms      string `json:"symptoms" validate:"required"`
}

// RegisterWalkInRequest is the receptionist walk-in desk form. The
// patient enters the triage queue directly, skipping check-in.
type RegisterWalkInRequest struct {
	Name            string `json:"name" validate:"required,min=2"`
	DateOfBirth     string `json:"date_of_birth" validate:"required"` // YYYY-MM-DD
	Gender          string `json:"gender" validate:"required,oneof=Male Female Other"`
	MobileNumber    string `json:"mobile_number" validate:"required,min=10,max=15"`
	Symptoms        string `json:"symptoms" validate:"required"`
	Department      string `json:"department" validate:"required"`
	IsUrgentRequest bool   `json:"is_urgent_request"`
}

// RecordVitalsRequest carries the structured triage measurements.
type RecordVitalsRequest struct {
	BloodPressure string          `json:"blood_pressure" validate:"required,bp"`
	HeartRate     int             `json:"heart_rate" validate:"required,gte=20,lte=260"`
	Temperature   decimal.Decimal `json:"temperature" validate:"required"`
	SpO2          int             `json:"spo2" validate:"required,gte=1,lte=100"`
}

// AssignDoctorRequest hands a triaged patient to a department queue.
type AssignDoctorRequest struct {
	ChiefComplaint string `json:"chief_complaint" validate:"required"`
	Department     string `json:"department" validate:"required"`
}

// Response DTOs

// VitalsResponse renders the temperature as a fixed one-decimal string
// ("37.0"); decimal's own marshalling trims trailing zeros.
type VitalsResponse struct {
	BloodPressure string `json:"blood_pressure"`
	HeartRate     int    `json:"heart_rate"`
	Temperature   string `json:"temperature"`
	SpO2          int    `json:"spo2"`
}

type TriageSuggestionResponse struct {
	Classification      string `json:"classification"`
	Summary             string `json:"summary"`
	PotentialSpecialist string `json:"potential_specialist"`
}

type PatientResponse struct {
	ID               int                       `json:"id"`
	PID              string                    `json:"pid"`
	Name             string                    `json:"name"`
	DateOfBirth      string                    `json:"date_of_birth"`
	Age              int                       `json:"age"`
	Gender           string                    `json:"gender"`
	MobileNumber     string                    `json:"mobile_number"`
	Email            string                    `json:"email,omitempty"`
	MaritalStatus    string                    `json:"marital_status"`
	GuardianName     string                    `json:"guardian_name,omitempty"`
	SpouseName       string                    `json:"spouse_name,omitempty"`
	IsPregnant       bool                      `json:"is_pregnant,omitempty"`
	Symptoms         string                    `json:"symptoms"`
	Department       string                    `json:"department,omitempty"`
	ChiefComplaint   string                    `json:"chief_complaint,omitempty"`
	Vitals           *VitalsResponse           `json:"vitals,omitempty"`
	TriageSuggestion *TriageSuggestionResponse `json:"triage_suggestion,omitempty"`
	Status           string                    `json:"status"`
	IsUrgentRequest  bool                      `json:"is_urgent_request"`
	RegisteredAt     time.Time                 `json:"registered_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

// PatientProfileResponse is the full timeline view of one patient.
type PatientProfileResponse struct {
	Patient      PatientResponse       `json:"patient"`
	AuditLog     []AuditEntryResponse  `json:"audit_log"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// PatientSearchResponse is the receptionist desk lookup result.
type PatientSearchResponse struct {
	Patient           PatientResponse      `json:"patient"`
	ActiveAppointment *AppointmentResponse `json:"active_appointment,omitempty"`
}
