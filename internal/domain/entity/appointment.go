package entity

import "time"

// AppointmentStatus tracks an appointment through its lifecycle.
type AppointmentStatus string

const (
	AppointmentStatusPendingConfirmation AppointmentStatus = "Pending Confirmation"
	AppointmentStatusSlotAllocated       AppointmentStatus = "Slot Allocated"
	AppointmentStatusScheduled           AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted           AppointmentStatus = "Completed"
	AppointmentStatusCancelled           AppointmentStatus = "Cancelled"
)

// DoctorUnassigned is the doctor label before a department hands the
// patient to a specific queue.
const DoctorUnassigned = "To be assigned"

// PatientSnapshot is an intentionally denormalized copy of the patient
// record frozen into the appointment at creation or update time. It is
// never refreshed by patient mutations, so a completed appointment shows
// the patient as they were at that point of the visit.
type PatientSnapshot struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	DateOfBirth      time.Time         `json:"date_of_birth"`
	Gender           string            `json:"gender"`
	MobileNumber     string            `json:"mobile_number"`
	Symptoms         string            `json:"symptoms"`
	Department       string            `json:"department,omitempty"`
	ChiefComplaint   string            `json:"chief_complaint,omitempty"`
	Vitals           *Vitals           `json:"vitals,omitempty"`
	TriageSuggestion *TriageSuggestion `json:"triage_suggestion,omitempty"`
	Status           PatientStatus     `json:"status"`
}

// SnapshotOf freezes the clinically relevant patient fields.
func SnapshotOf(p *Patient) PatientSnapshot {
	snap := PatientSnapshot{
		ID:             p.ID,
		Name:           p.Name,
		DateOfBirth:    p.DateOfBirth,
		Gender:         p.Gender,
		MobileNumber:   p.MobileNumber,
		Symptoms:       p.Symptoms,
		Department:     p.Department,
		ChiefComplaint: p.ChiefComplaint,
		Status:         p.Status,
	}
	if p.Vitals != nil {
		v := *p.Vitals
		snap.Vitals = &v
	}
	if p.TriageSuggestion != nil {
		t := *p.TriageSuggestion
		snap.TriageSuggestion = &t
	}
	return snap
}

// Appointment represents one scheduled (or requested) consultation.
type Appointment struct {
	ID        int             `json:"id"`
	PatientID int             `json:"patient_id"`
	Patient   PatientSnapshot `json:"patient"`

	// Doctor holds either a named specialist or a department label,
	// or DoctorUnassigned while the request is still pending.
	Doctor string            `json:"doctor"`
	Date   time.Time         `json:"date"`
	Reason string            `json:"reason"`
	Status AppointmentStatus `json:"status"`

	// Notes carries the SOAP note block, set exactly once at completion.
	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the appointment still occupies the patient's
// workflow, i.e. it has neither finished nor been cancelled.
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentStatusCompleted && a.Status != AppointmentStatusCancelled
}

// Clone returns a deep copy of the appointment.
func (a *Appointment) Clone() *Appointment {
	cp := *a
	if a.Patient.Vitals != nil {
		v := *a.Patient.Vitals
		cp.Patient.Vitals = &v
	}
	if a.Patient.TriageSuggestion != nil {
		t := *a.Patient.TriageSuggestion
		cp.Patient.TriageSuggestion = &t
	}
	return &cp
}
