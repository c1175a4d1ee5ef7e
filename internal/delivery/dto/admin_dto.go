package dto

import "time"

// Response DTOs for the admin console.

type AuditActorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type AuditEntryResponse struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Action    string             `json:"action"`
	Actor     AuditActorResponse `json:"actor"`
	Details   map[string]any     `json:"details,omitempty"`
}

type AuditTrailResponse struct {
	PID     string               `json:"pid"`
	Entries []AuditEntryResponse `json:"entries"`
	Total   int                  `json:"total"`
}

// AdminPatientResponse adds credential metadata for the admin listing.
// Only hash lifecycle flags are exposed, never the credential itself.
type AdminPatientResponse struct {
	PatientResponse
	PasswordSet       bool       `json:"password_set"`
	PasswordChangedAt *time.Time `json:"password_changed_at,omitempty"`
	AuditEntries      int        `json:"audit_entries"`
}

type AdminPatientListResponse struct {
	Patients []AdminPatientResponse `json:"patients"`
	Total    int                    `json:"total"`
}
