package usecase

import (
	"context"

	"github.com/Jijnash2636/medaiton/internal/converter"
	"github.com/Jijnash2636/medaiton/internal/delivery/dto"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/domain/repository"
	"github.com/Jijnash2636/medaiton/internal/memstore"

	"github.com/sirupsen/logrus"
)

// AdminUsecase is the read-only oversight console: full patient and
// appointment listings plus per-patient audit trails. Credential fields
// are reduced to lifecycle flags before they leave the store.
type AdminUsecase interface {
	ListPatients(ctx context.Context) (*dto.AdminPatientListResponse, error)
	ListAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetPatientAudit(ctx context.Context, patientID int) (*dto.AuditTrailResponse, error)
}

type adminUsecase struct {
	store       *memstore.Store
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	apptRepo    repository.AppointmentRepository
}

func NewAdminUsecase(
	store *memstore.Store,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	apptRepo repository.AppointmentRepository,
) AdminUsecase {
	return &adminUsecase{
		store:       store,
		log:         log,
		patientRepo: patientRepo,
		apptRepo:    apptRepo,
	}
}

func (u *adminUsecase) ListPatients(ctx context.Context) (*dto.AdminPatientListResponse, error) {
	var patients []entity.Patient
	err := u.store.View(func(tx *memstore.Tx) error {
		var err error
		patients, err = u.patientRepo.FindAll(tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AdminPatientResponse, len(patients))
	for i := range patients {
		responses[i] = *converter.PatientToAdminResponse(&patients[i])
	}
	return &dto.AdminPatientListResponse{
		Patients: responses,
		Total:    len(responses),
	}, nil
}

func (u *adminUsecase) ListAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	var appts []entity.Appointment
	err := u.store.View(func(tx *memstore.Tx) error {
		var err error
		appts, err = u.apptRepo.FindAll(tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appts),
		Total:        len(appts),
	}, nil
}

func (u *adminUsecase) GetPatientAudit(ctx context.Context, patientID int) (*dto.AuditTrailResponse, error) {
	var patient *entity.Patient
	err := u.store.View(func(tx *memstore.Tx) error {
		var err error
		patient, err = u.patientRepo.FindByID(tx, patientID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return &dto.AuditTrailResponse{
		PID:     patient.PID(),
		Entries: converter.AuditEntriesToResponses(patient.AuditLog),
		Total:   len(patient.AuditLog),
	}, nil
}
