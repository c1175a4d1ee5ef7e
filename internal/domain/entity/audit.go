package entity

import (
	"time"

	"github.com/google/uuid"
)

// Actor identifies who performed an audited action: a staff member, or
// the synthetic portal actor for patient self-service.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// PortalActor is recorded for self-service patient actions.
func PortalActor() Actor {
	return Actor{ID: "PORTAL", Name: "Patient Portal", Role: RoleSystem}
}

// AuditEntry is one immutable line in a patient's history. Entries are
// only ever appended, never edited or removed.
type AuditEntry struct {
	ID        uuid.UUID      `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action"`
	Actor     Actor          `json:"actor"`
	Details   map[string]any `json:"details,omitempty"`
}

// Clone copies the entry including its details map.
func (e AuditEntry) Clone() AuditEntry {
	cp := e
	if e.Details != nil {
		cp.Details = make(map[string]any, len(e.Details))
		for k, v := range e.Details {
			cp.Details[k] = v
		}
	}
	return cp
}

// Audit action labels. These are the exact strings rendered on the
// patient timeline, so changing one is a display-level break.
const (
	AuditActionPatientRegistered = "Patient Registered"
	AuditActionApptRequested     = "Appointment Requested"
	AuditActionSlotAllocated     = "Appointment Slot Allocated"
	AuditActionApptRejected      = "Appointment Rejected"
	AuditActionCheckedIn         = "Patient Checked In (Offline)"
	AuditActionVitalsRecorded    = "Vitals Recorded"
	AuditActionComplaintNoted    = "Chief Complaint Noted"
	AuditActionAssignedToDept    = "Assigned to Department"
	AuditActionDoctorNotesAdded  = "Doctor's Notes Added"
	AuditActionPasswordChanged   = "Password Changed"
)
