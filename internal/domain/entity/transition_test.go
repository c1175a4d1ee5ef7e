package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientStatusWalksTheFullLifecycle(t *testing.T) {
	p := &Patient{Status: PatientStatusAwaitingCheckIn}

	require.NoError(t, p.AdvanceTo(PatientStatusAwaitingTriage))
	require.NoError(t, p.AdvanceTo(PatientStatusAwaitingDoctor))
	require.NoError(t, p.AdvanceTo(PatientStatusCompleted))
	assert.Equal(t, PatientStatusCompleted, p.Status)
}

func TestPatientStatusRejectsSkipsAndBackwardMoves(t *testing.T) {
	cases := []struct {
		from PatientStatus
		to   PatientStatus
	}{
		{PatientStatusAwaitingCheckIn, PatientStatusAwaitingDoctor},
		{PatientStatusAwaitingCheckIn, PatientStatusCompleted},
		{PatientStatusAwaitingTriage, PatientStatusAwaitingCheckIn},
		{PatientStatusAwaitingDoctor, PatientStatusAwaitingTriage},
		{PatientStatusCompleted, PatientStatusAwaitingDoctor},
	}

	for _, tc := range cases {
		p := &Patient{Status: tc.from}
		err := p.AdvanceTo(tc.to)

		var transitionErr *TransitionError
		require.ErrorAs(t, err, &transitionErr, "%s -> %s should be illegal", tc.from, tc.to)
		assert.Equal(t, tc.from, p.Status, "status must be untouched after a rejected move")
	}
}

func TestAppointmentStatusHappyPath(t *testing.T) {
	a := &Appointment{Status: AppointmentStatusPendingConfirmation}

	require.NoError(t, a.AdvanceTo(AppointmentStatusSlotAllocated))
	require.NoError(t, a.AdvanceTo(AppointmentStatusScheduled))
	require.NoError(t, a.AdvanceTo(AppointmentStatusCompleted))
}

func TestAppointmentCancellationWindow(t *testing.T) {
	// Cancellation is open before check-in only.
	pending := &Appointment{Status: AppointmentStatusPendingConfirmation}
	require.NoError(t, pending.AdvanceTo(AppointmentStatusCancelled))

	allocated := &Appointment{Status: AppointmentStatusSlotAllocated}
	require.NoError(t, allocated.AdvanceTo(AppointmentStatusCancelled))

	scheduled := &Appointment{Status: AppointmentStatusScheduled}
	var transitionErr *TransitionError
	require.ErrorAs(t, scheduled.AdvanceTo(AppointmentStatusCancelled), &transitionErr)
	assert.Equal(t, AppointmentStatusScheduled, scheduled.Status)
}

func TestTerminalStatusesAreAbsorbing(t *testing.T) {
	for _, status := range []AppointmentStatus{AppointmentStatusCompleted, AppointmentStatusCancelled} {
		a := &Appointment{Status: status}
		for _, next := range []AppointmentStatus{
			AppointmentStatusPendingConfirmation,
			AppointmentStatusSlotAllocated,
			AppointmentStatusScheduled,
			AppointmentStatusCompleted,
			AppointmentStatusCancelled,
		} {
			assert.Error(t, a.AdvanceTo(next), "%s -> %s", status, next)
		}
	}
}

func TestParsePID(t *testing.T) {
	id, ok := ParsePID("PID100001")
	require.True(t, ok)
	assert.Equal(t, 100001, id)

	id, ok = ParsePID("pid100002")
	require.True(t, ok)
	assert.Equal(t, 100002, id)

	// Bare digits are not a PID; they could be a mobile number.
	_, ok = ParsePID("100001")
	assert.False(t, ok)

	_, ok = ParsePID("PIDxyz")
	assert.False(t, ok)
}

func TestPIDRendering(t *testing.T) {
	p := &Patient{ID: 100001}
	assert.Equal(t, "PID100001", p.PID())
}
