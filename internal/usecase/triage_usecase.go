package usecase

import (
	"context"
	"time"

	"github.com/Jijnash2636/medaiton/internal/converter"
	"github.com/Jijnash2636/medaiton/internal/delivery/dto"
	"github.com/Jijnash2636/medaiton/internal/delivery/http/middleware"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/domain/gateway"
	"github.com/Jijnash2636/medaiton/internal/domain/repository"
	"github.com/Jijnash2636/medaiton/internal/memstore"
	"github.com/Jijnash2636/medaiton/internal/service"

	"github.com/sirupsen/logrus"
)

// TriageUsecase is the intern/nurse station: the triage queue, vitals
// capture, AI triage suggestions and the hand-off to a department.
type TriageUsecase interface {
	GetQueue(ctx context.Context) (*dto.PatientListResponse, error)
	RecordVitals(ctx context.Context, patientID int, req *dto.RecordVitalsRequest) (*dto.PatientResponse, error)
	SuggestTriage(ctx context.Context, patientID int) (*dto.TriageSuggestionResponse, error)
	AssignToDoctor(ctx context.Context, patientID int, req *dto.AssignDoctorRequest) (*dto.AppointmentResponse, error)
}

type triageUsecase struct {
	store       *memstore.Store
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	apptRepo    repository.AppointmentRepository
	audit       service.AuditService
	scheduler   service.SchedulerService
	aiGateway   gateway.AIGateway
	now         func() time.Time
}

func NewTriageUsecase(
	store *memstore.Store,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	apptRepo repository.AppointmentRepository,
	audit service.AuditService,
	scheduler service.SchedulerService,
	aiGateway gateway.AIGateway,
) TriageUsecase {
	return &triageUsecase{
		store:       store,
		log:         log,
		patientRepo: patientRepo,
		apptRepo:    apptRepo,
		audit:       audit,
		scheduler:   scheduler,
		aiGateway:   aiGateway,
		now:         time.Now,
	}
}

func (u *triageUsecase) GetQueue(ctx context.Context) (*dto.PatientListResponse, error) {
	var patients []entity.Patient
	err := u.store.View(func(tx *memstore.Tx) error {
		var err error
		patients, err = u.patientRepo.FindByStatus(tx, entity.PatientStatusAwaitingTriage)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

// RecordVitals attaches measurements to the patient without moving
// their status; re-recording overwrites the previous set but each
// capture leaves its own audit line.
func (u *triageUsecase) RecordVitals(ctx context.Context, patientID int, req *dto.RecordVitalsRequest) (*dto.PatientResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	var patient *entity.Patient
	err := u.store.Atomic(func(tx *memstore.Tx) error {
		var err error
		patient, err = u.patientRepo.FindByID(tx, patientID)
		if err != nil {
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		patient.Vitals = &entity.Vitals{
			BloodPressure: req.BloodPressure,
			HeartRate:     req.HeartRate,
			Temperature:   req.Temperature,
			SpO2:          req.SpO2,
		}

		u.audit.Record(patient, entity.AuditActionVitalsRecorded, actor, map[string]any{
			"blood_pressure": req.BloodPressure,
			"heart_rate":     req.HeartRate,
			"temperature":    req.Temperature.StringFixed(1),
			"spo2":           req.SpO2,
		})
		return u.patientRepo.Update(tx, patient)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Recorded vitals for patient %s", patient.PID())
	return converter.PatientToResponse(patient), nil
}

// SuggestTriage asks the AI gateway to classify the patient and stores
// the suggestion as an annotation. It moves no status and writes no
// audit line; the suggestion is advisory until a human acts on it.
func (u *triageUsecase) SuggestTriage(ctx context.Context, patientID int) (*dto.TriageSuggestionResponse, error) {
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

	suggestion, err := u.aiGateway.SuggestTriage(ctx, &gateway.TriageRequest{
		Name:       patient.Name,
		Age:        patient.Age(u.now()),
		Gender:     patient.Gender,
		Department: patient.Department,
		Symptoms:   patient.Symptoms,
		Vitals:     patient.Vitals,
		Urgent:     patient.IsUrgentRequest,
	})
	if err != nil {
		u.log.Warnf("Failed to get triage suggestion for patient %d: %+v", patientID, err)
		return nil, err
	}

	err = u.store.Atomic(func(tx *memstore.Tx) error {
		current, err := u.patientRepo.FindByID(tx, patientID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrPatientNotFound
		}
		current.TriageSuggestion = suggestion
		return u.patientRepo.Update(tx, current)
	})
	if err != nil {
		return nil, err
	}

	return &dto.TriageSuggestionResponse{
		Classification:      string(suggestion.Classification),
		Summary:             suggestion.Summary,
		PotentialSpecialist: suggestion.PotentialSpecialist,
	}, nil
}

// AssignToDoctor notes the chief complaint, routes the patient to a
// department and finds or creates the Scheduled appointment backing the
// consultation.
func (u *triageUsecase) AssignToDoctor(ctx context.Context, patientID int, req *dto.AssignDoctorRequest) (*dto.AppointmentResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if !entity.IsValidDepartment(req.Department) {
		return nil, ErrUnknownDepartment
	}

	var appt *entity.Appointment
	err := u.store.Atomic(func(tx *memstore.Tx) error {
		patient, err := u.patientRepo.FindByID(tx, patientID)
		if err != nil {
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		if err := patient.AdvanceTo(entity.PatientStatusAwaitingDoctor); err != nil {
			return err
		}
		patient.ChiefComplaint = req.ChiefComplaint
		patient.Department = req.Department

		// Checked-in patients already carry a Scheduled appointment;
		// walk-ins get one created at the department's next slot.
		active, err := u.apptRepo.FindActiveByPatientID(tx, patientID)
		if err != nil {
			return err
		}
		for i := range active {
			if active[i].Status == entity.AppointmentStatusScheduled {
				appt = &active[i]
				break
			}
		}

		if appt != nil {
			if appt.Doctor == entity.DoctorUnassigned {
				appt.Doctor = req.Department
			}
			appt.Patient = entity.SnapshotOf(patient)
			appt.UpdatedAt = u.now()
			if err := u.apptRepo.Update(tx, appt); err != nil {
				return err
			}
		} else {
			slot, err := u.scheduler.ProposeDepartmentSlot(tx, req.Department)
			if err != nil {
				return err
			}
			appt = &entity.Appointment{
				ID:        tx.NextAppointmentID(),
				PatientID: patient.ID,
				Patient:   entity.SnapshotOf(patient),
				Doctor:    req.Department,
				Date:      slot,
				Reason:    patient.Symptoms,
				Status:    entity.AppointmentStatusScheduled,
				CreatedAt: u.now(),
				UpdatedAt: u.now(),
			}
			if err := u.apptRepo.Create(tx, appt); err != nil {
				return err
			}
		}

		u.audit.Record(patient, entity.AuditActionComplaintNoted, actor, map[string]any{
			"chief_complaint": req.ChiefComplaint,
		})
		u.audit.Record(patient, entity.AuditActionAssignedToDept, actor, map[string]any{
			"department":     req.Department,
			"appointment_id": appt.ID,
			"date":           appt.Date.Format(time.RFC3339),
		})
		return u.patientRepo.Update(tx, patient)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Assigned patient %d to %s via appointment %d", patientID, req.Department, appt.ID)
	return converter.AppointmentToResponse(appt), nil
}
