package service

import (
	"io"
	"testing"
	"time"

	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/memstore"
	"github.com/Jijnash2636/medaiton/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestProposeDepartmentSlotEmptyQueue(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	store := memstore.New()
	apptRepo := repository.NewAppointmentRepository()
	scheduler := NewSchedulerServiceWithClock(testLogger(), apptRepo, func() time.Time { return now })

	err := store.View(func(tx *memstore.Tx) error {
		slot, err := scheduler.ProposeDepartmentSlot(tx, "Cardiology")
		require.NoError(t, err)
		assert.Equal(t, now.Add(5*time.Minute), slot)
		return nil
	})
	require.NoError(t, err)
}

func TestProposeDepartmentSlotAppendsAfterLatest(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	last := now.Add(30 * time.Minute)

	store := memstore.New()
	apptRepo := repository.NewAppointmentRepository()
	scheduler := NewSchedulerServiceWithClock(testLogger(), apptRepo, func() time.Time { return now })

	err := store.Atomic(func(tx *memstore.Tx) error {
		require.NoError(t, apptRepo.Create(tx, &entity.Appointment{
			PatientID: 100001,
			Doctor:    "Cardiology",
			Date:      last,
			Status:    entity.AppointmentStatusScheduled,
		}))
		// A different department must not influence the queue.
		require.NoError(t, apptRepo.Create(tx, &entity.Appointment{
			PatientID: 100002,
			Doctor:    "Neurology",
			Date:      last.Add(2 * time.Hour),
			Status:    entity.AppointmentStatusScheduled,
		}))

		slot, err := scheduler.ProposeDepartmentSlot(tx, "Cardiology")
		require.NoError(t, err)
		assert.Equal(t, last.Add(15*time.Minute), slot)
		return nil
	})
	require.NoError(t, err)
}

func TestProposeDepartmentSlotFallsBackWhenQueueIsPast(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	store := memstore.New()
	apptRepo := repository.NewAppointmentRepository()
	scheduler := NewSchedulerServiceWithClock(testLogger(), apptRepo, func() time.Time { return now })

	err := store.Atomic(func(tx *memstore.Tx) error {
		require.NoError(t, apptRepo.Create(tx, &entity.Appointment{
			PatientID: 100001,
			Doctor:    "Cardiology",
			Date:      now.Add(-2 * time.Hour),
			Status:    entity.AppointmentStatusScheduled,
		}))

		slot, err := scheduler.ProposeDepartmentSlot(tx, "Cardiology")
		require.NoError(t, err)
		assert.Equal(t, now.Add(5*time.Minute), slot)
		return nil
	})
	require.NoError(t, err)
}

func TestProposeDepartmentSlotIgnoresNonScheduled(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	store := memstore.New()
	apptRepo := repository.NewAppointmentRepository()
	scheduler := NewSchedulerServiceWithClock(testLogger(), apptRepo, func() time.Time { return now })

	err := store.Atomic(func(tx *memstore.Tx) error {
		require.NoError(t, apptRepo.Create(tx, &entity.Appointment{
			PatientID: 100001,
			Doctor:    "Cardiology",
			Date:      now.Add(4 * time.Hour),
			Status:    entity.AppointmentStatusPendingConfirmation,
		}))

		slot, err := scheduler.ProposeDepartmentSlot(tx, "Cardiology")
		require.NoError(t, err)
		assert.Equal(t, now.Add(5*time.Minute), slot)
		return nil
	})
	require.NoError(t, err)
}

func TestProposeTriageSlot(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	scheduler := NewSchedulerServiceWithClock(testLogger(), repository.NewAppointmentRepository(), func() time.Time { return now })

	assert.Equal(t, now.Add(5*time.Minute), scheduler.ProposeTriageSlot(entity.TriageCritical))
	assert.Equal(t, now.Add(2*time.Hour), scheduler.ProposeTriageSlot(entity.TriageModerate))
	assert.Equal(t, now.Add(2*time.Hour), scheduler.ProposeTriageSlot(entity.TriageStable))
}
