package repository

import (
	"fmt"
	"sort"

	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	domainRepo "github.com/Jijnash2636/medaiton/internal/domain/repository"
	"github.com/Jijnash2636/medaiton/internal/memstore"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(tx *memstore.Tx, appt *entity.Appointment) error {
	if appt.ID == 0 {
		appt.ID = tx.NextAppointmentID()
	}
	if _, exists := tx.Appointments[appt.ID]; exists {
		return fmt.Errorf("appointment %d already exists", appt.ID)
	}
	tx.Appointments[appt.ID] = appt.Clone()
	return nil
}

func (r *appointmentRepository) Update(tx *memstore.Tx, appt *entity.Appointment) error {
	if _, exists := tx.Appointments[appt.ID]; !exists {
		return fmt.Errorf("appointment %d does not exist", appt.ID)
	}
	tx.Appointments[appt.ID] = appt.Clone()
	return nil
}

func (r *appointmentRepository) FindByID(tx *memstore.Tx, id int) (*entity.Appointment, error) {
	a, ok := tx.Appointments[id]
	if !ok {
		return nil, nil
	}
	return a.Clone(), nil
}

func (r *appointmentRepository) FindByPatientID(tx *memstore.Tx, patientID int) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range tx.Appointments {
		if a.PatientID == patientID {
			out = append(out, *a.Clone())
		}
	}
	sortAppointmentsByDate(out)
	return out, nil
}

func (r *appointmentRepository) FindByStatus(tx *memstore.Tx, status entity.AppointmentStatus) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range tx.Appointments {
		if a.Status == status {
			out = append(out, *a.Clone())
		}
	}
	sortAppointmentsByDate(out)
	return out, nil
}

func (r *appointmentRepository) FindActiveByPatientID(tx *memstore.Tx, patientID int) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range tx.Appointments {
		if a.PatientID == patientID && a.IsActive() {
			out = append(out, *a.Clone())
		}
	}
	sortAppointmentsByDate(out)
	// Newest first for "current appointment" lookups.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *appointmentRepository) FindLatestScheduledByDoctor(tx *memstore.Tx, doctor string) (*entity.Appointment, error) {
	var latest *entity.Appointment
	for _, a := range tx.Appointments {
		if a.Status != entity.AppointmentStatusScheduled || a.Doctor != doctor {
			continue
		}
		if latest == nil || a.Date.After(latest.Date) {
			latest = a
		}
	}
	if latest == nil {
		return nil, nil
	}
	return latest.Clone(), nil
}

func (r *appointmentRepository) FindAll(tx *memstore.Tx) ([]entity.Appointment, error) {
	out := make([]entity.Appointment, 0, len(tx.Appointments))
	for _, a := range tx.Appointments {
		out = append(out, *a.Clone())
	}
	sortAppointmentsByDate(out)
	return out, nil
}

func sortAppointmentsByDate(as []entity.Appointment) {
	sort.Slice(as, func(i, j int) bool {
		if as[i].Date.Equal(as[j].Date) {
			return as[i].ID < as[j].ID
		}
		return as[i].Date.Before(as[j].Date)
	})
}
