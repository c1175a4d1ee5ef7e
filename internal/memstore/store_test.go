package memstore

import (
	"testing"

	"github.com/Jijnash2636/medaiton/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPatientIDStartsAtBase(t *testing.T) {
	store := New()

	err := store.Atomic(func(tx *Tx) error {
		assert.Equal(t, PatientBaseID, tx.NextPatientID())
		return nil
	})
	require.NoError(t, err)
}

func TestNextPatientIDIsMonotonic(t *testing.T) {
	store := New()

	err := store.Atomic(func(tx *Tx) error {
		first := tx.NextPatientID()
		tx.Patients[first] = &entity.Patient{ID: first}

		second := tx.NextPatientID()
		assert.Equal(t, first+1, second)
		tx.Patients[second] = &entity.Patient{ID: second}

		// Ids are never reused, even after a record disappears.
		delete(tx.Patients, first)
		assert.Equal(t, second+1, tx.NextPatientID())
		return nil
	})
	require.NoError(t, err)
}

func TestNextPatientIDSpansBothCollections(t *testing.T) {
	store := New()

	err := store.Atomic(func(tx *Tx) error {
		// An appointment id above the patient ceiling pushes the next
		// patient id past it.
		tx.Appointments[PatientBaseID+5] = &entity.Appointment{ID: PatientBaseID + 5}
		assert.Equal(t, PatientBaseID+6, tx.NextPatientID())
		return nil
	})
	require.NoError(t, err)
}

func TestNextAppointmentIDIsScopedToAppointments(t *testing.T) {
	store := New()

	err := store.Atomic(func(tx *Tx) error {
		tx.Patients[PatientBaseID] = &entity.Patient{ID: PatientBaseID}

		assert.Equal(t, 1, tx.NextAppointmentID())
		tx.Appointments[1] = &entity.Appointment{ID: 1}
		assert.Equal(t, 2, tx.NextAppointmentID())
		return nil
	})
	require.NoError(t, err)
}
