package repository

import (
	"fmt"
	"sort"

	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	domainRepo "github.com/Jijnash2636/medaiton/internal/domain/repository"
	"github.com/Jijnash2636/medaiton/internal/memstore"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(tx *memstore.Tx, patient *entity.Patient) error {
	if patient.ID == 0 {
		patient.ID = tx.NextPatientID()
	}
	if _, exists := tx.Patients[patient.ID]; exists {
		return fmt.Errorf("patient %d already exists", patient.ID)
	}
	tx.Patients[patient.ID] = patient.Clone()
	return nil
}

func (r *patientRepository) Update(tx *memstore.Tx, patient *entity.Patient) error {
	if _, exists := tx.Patients[patient.ID]; !exists {
		return fmt.Errorf("patient %d does not exist", patient.ID)
	}
	tx.Patients[patient.ID] = patient.Clone()
	return nil
}

func (r *patientRepository) FindByID(tx *memstore.Tx, id int) (*entity.Patient, error) {
	p, ok := tx.Patients[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (r *patientRepository) FindByMobile(tx *memstore.Tx, mobile string) (*entity.Patient, error) {
	for _, p := range tx.Patients {
		if p.MobileNumber == mobile {
			return p.Clone(), nil
		}
	}
	return nil, nil
}

func (r *patientRepository) FindByStatus(tx *memstore.Tx, status entity.PatientStatus) ([]entity.Patient, error) {
	var out []entity.Patient
	for _, p := range tx.Patients {
		if p.Status == status {
			out = append(out, *p.Clone())
		}
	}
	sortPatientsForQueue(out)
	return out, nil
}

func (r *patientRepository) FindAll(tx *memstore.Tx) ([]entity.Patient, error) {
	out := make([]entity.Patient, 0, len(tx.Patients))
	for _, p := range tx.Patients {
		out = append(out, *p.Clone())
	}
	sortPatientsByRegistration(out)
	return out, nil
}

// Oldest first, id as tiebreak so map iteration order never leaks out.
func sortPatientsByRegistration(ps []entity.Patient) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].RegisteredAt.Equal(ps[j].RegisteredAt) {
			return ps[i].ID < ps[j].ID
		}
		return ps[i].RegisteredAt.Before(ps[j].RegisteredAt)
	})
}

// Status queues float urgent requests to the top, then oldest first.
func sortPatientsForQueue(ps []entity.Patient) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].IsUrgentRequest != ps[j].IsUrgentRequest {
			return ps[i].IsUrgentRequest
		}
		if ps[i].RegisteredAt.Equal(ps[j].RegisteredAt) {
			return ps[i].ID < ps[j].ID
		}
		return ps[i].RegisteredAt.Before(ps[j].RegisteredAt)
	})
}
