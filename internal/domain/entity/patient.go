package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PatientStatus tracks where a patient is in the visit workflow.
type PatientStatus string

const (
	PatientStatusAwaitingCheckIn PatientStatus = "Awaiting Check-in"
	PatientStatusAwaitingTriage  PatientStatus = "Awaiting Triage"
	PatientStatusAwaitingDoctor  PatientStatus = "Awaiting Doctor"
	PatientStatusCompleted       PatientStatus = "Completed"
)

// Gender values accepted at registration
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Marital status values
const (
	MaritalStatusSingle  = "Single"
	MaritalStatusMarried = "Married"
)

// Departments a patient can be routed to
var Departments = []string{
	"General Medicine",
	"Cardiology",
	"Pediatrics",
	"Orthopedics",
	"Neurology",
	"Dermatology",
}

// Vitals holds the structured measurements recorded at triage.
// Temperature is a decimal so the value is exact; it is always rendered
// at one-decimal scale ("37.0") since decimal's own String trims
// trailing zeros.
type Vitals struct {
	BloodPressure string          `json:"blood_pressure"`
	HeartRate     int             `json:"heart_rate"`
	Temperature   decimal.Decimal `json:"temperature"`
	SpO2          int             `json:"spo2"`
}

// TriageClassification is assigned by the AI gateway, never computed locally.
type TriageClassification string

const (
	TriageStable   TriageClassification = "Stable"
	TriageModerate TriageClassification = "Moderate"
	TriageCritical TriageClassification = "Critical"
)

// TriageSuggestion is the structured result of an AI triage call.
type TriageSuggestion struct {
	Classification      TriageClassification `json:"classification"`
	Summary             string               `json:"summary"`
	PotentialSpecialist string               `json:"potential_specialist"`
}

// Patient represents a registered patient and their visit state.
// Credential fields hold bcrypt hashes; plaintext is never stored.
type Patient struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	DateOfBirth   time.Time `json:"date_of_birth"`
	Gender        string    `json:"gender"`
	MobileNumber  string    `json:"mobile_number"`
	Email         string    `json:"email,omitempty"`
	MaritalStatus string    `json:"marital_status"`
	GuardianName  string    `json:"guardian_name,omitempty"`
	SpouseName    string    `json:"spouse_name,omitempty"`
	IsPregnant    bool      `json:"is_pregnant,omitempty"`

	Symptoms         string            `json:"symptoms"`
	Department       string            `json:"department,omitempty"`
	ChiefComplaint   string            `json:"chief_complaint,omitempty"`
	Vitals           *Vitals           `json:"vitals,omitempty"`
	TriageSuggestion *TriageSuggestion `json:"triage_suggestion,omitempty"`

	Status          PatientStatus `json:"status"`
	IsUrgentRequest bool          `json:"is_urgent_request"`
	RegisteredAt    time.Time     `json:"registered_at"`

	PasswordHash         string     `json:"-"`
	PreviousPasswordHash string     `json:"-"`
	PasswordChangedAt    *time.Time `json:"password_changed_at,omitempty"`

	AuditLog []AuditEntry `json:"audit_log"`
}

// PID renders the patient id in its display form, e.g. PID100001.
func (p *Patient) PID() string {
	return fmt.Sprintf("PID%06d", p.ID)
}

// ParsePID extracts the numeric patient id from its display form
// (PID100001). The prefix is required so that bare digit strings, such
// as mobile numbers, are never mistaken for a patient id.
func ParsePID(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "PID") {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(s, "PID"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Age derives the patient's age in whole years at the given instant.
func (p *Patient) Age(now time.Time) int {
	return AgeAt(p.DateOfBirth, now)
}

// AgeAt derives whole years between a date of birth and an instant.
func AgeAt(dob, now time.Time) int {
	if dob.IsZero() {
		return 0
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() ||
		(now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// Clone returns a deep copy so store reads never alias live records.
func (p *Patient) Clone() *Patient {
	cp := *p
	if p.Vitals != nil {
		v := *p.Vitals
		cp.Vitals = &v
	}
	if p.TriageSuggestion != nil {
		t := *p.TriageSuggestion
		cp.TriageSuggestion = &t
	}
	if p.PasswordChangedAt != nil {
		ts := *p.PasswordChangedAt
		cp.PasswordChangedAt = &ts
	}
	cp.AuditLog = make([]AuditEntry, len(p.AuditLog))
	for i, e := range p.AuditLog {
		cp.AuditLog[i] = e.Clone()
	}
	return &cp
}

// IsValidDepartment reports whether dept is one of the known departments.
func IsValidDepartment(dept string) bool {
	for _, d := range Departments {
		if d == dept {
			return true
		}
	}
	return false
}
