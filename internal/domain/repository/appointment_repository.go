package repository

import (
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/memstore"
)

// AppointmentRepository reads and writes appointments against a store
// transaction. FindBy* lookups return (nil, nil) when nothing matches.
type AppointmentRepository interface {
	Create(tx *memstore.Tx, appt *entity.Appointment) error
	Update(tx *memstore.Tx, appt *entity.Appointment) error
	FindByID(tx *memstore.Tx, id int) (*entity.Appointment, error)
	FindByPatientID(tx *memstore.Tx, patientID int) ([]entity.Appointment, error)
	FindByStatus(tx *memstore.Tx, status entity.AppointmentStatus) ([]entity.Appointment, error)
	// FindActiveByPatientID returns the patient's non-completed,
	// non-cancelled appointments, newest first.
	FindActiveByPatientID(tx *memstore.Tx, patientID int) ([]entity.Appointment, error)
	// FindLatestScheduledByDoctor returns the Scheduled appointment with
	// the latest slot time whose doctor/department label matches.
	FindLatestScheduledByDoctor(tx *memstore.Tx, doctor string) (*entity.Appointment, error)
	FindAll(tx *memstore.Tx) ([]entity.Appointment, error)
}
