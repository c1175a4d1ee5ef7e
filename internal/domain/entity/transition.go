package entity

import "fmt"

// TransitionError reports an attempted move that is not an edge of the
// status graph. Handlers map it to a 409.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal %s transition: %q -> %q", e.Entity, e.From, e.To)
}

// patientTransitions is the full edge set for patient statuses. The
// graph is linear; walk-ins simply enter at Awaiting Triage.
var patientTransitions = map[PatientStatus][]PatientStatus{
	PatientStatusAwaitingCheckIn: {PatientStatusAwaitingTriage},
	PatientStatusAwaitingTriage:  {PatientStatusAwaitingDoctor},
	PatientStatusAwaitingDoctor:  {PatientStatusCompleted},
	PatientStatusCompleted:       {},
}

// appointmentTransitions is the edge set for appointment statuses.
// Cancelled is absorbing and only reachable before check-in.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPendingConfirmation: {AppointmentStatusSlotAllocated, AppointmentStatusCancelled},
	AppointmentStatusSlotAllocated:       {AppointmentStatusScheduled, AppointmentStatusCancelled},
	AppointmentStatusScheduled:           {AppointmentStatusCompleted},
	AppointmentStatusCompleted:           {},
	AppointmentStatusCancelled:           {},
}

func contains[T comparable](xs []T, x T) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// CanAdvanceTo reports whether next is a legal successor status.
func (s PatientStatus) CanAdvanceTo(next PatientStatus) bool {
	return contains(patientTransitions[s], next)
}

// CanAdvanceTo reports whether next is a legal successor status.
func (s AppointmentStatus) CanAdvanceTo(next AppointmentStatus) bool {
	return contains(appointmentTransitions[s], next)
}

// AdvanceTo moves the patient to next, or returns a TransitionError and
// leaves the status untouched.
func (p *Patient) AdvanceTo(next PatientStatus) error {
	if !p.Status.CanAdvanceTo(next) {
		return &TransitionError{Entity: "patient", From: string(p.Status), To: string(next)}
	}
	p.Status = next
	return nil
}

// AdvanceTo moves the appointment to next, or returns a TransitionError
// and leaves the status untouched.
func (a *Appointment) AdvanceTo(next AppointmentStatus) error {
	if !a.Status.CanAdvanceTo(next) {
		return &TransitionError{Entity: "appointment", From: string(a.Status), To: string(next)}
	}
	a.Status = next
	return nil
}
