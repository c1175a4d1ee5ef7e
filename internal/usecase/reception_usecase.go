package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Jijnash2636/medaiton/internal/converter"
	"github.com/Jijnash2636/medaiton/internal/delivery/dto"
	"github.com/Jijnash2636/medaiton/internal/delivery/http/middleware"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/domain/repository"
	"github.com/Jijnash2636/medaiton/internal/memstore"
	"github.com/Jijnash2636/medaiton/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrNoAllocatedAppointment = errors.New("patient has no slot-allocated appointment")
	ErrUnauthenticated        = errors.New("no authenticated actor in request")
)

// ReceptionUsecase is the front-desk surface: walk-in registration, the
// pending request queue, slot allocation and arrival check-in.
type ReceptionUsecase interface {
	RegisterWalkIn(ctx context.Context, req *dto.RegisterWalkInRequest) (*dto.PatientResponse, error)
	ListPendingAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	AllocateSlot(ctx context.Context, appointmentID int) (*dto.AppointmentResponse, error)
	RejectAppointment(ctx context.Context, appointmentID int) error
	CheckInPatient(ctx context.Context, patientID int) (*dto.PatientResponse, error)
	SearchPatient(ctx context.Context, query string) (*dto.PatientSearchResponse, error)
}

type receptionUsecase struct {
	store       *memstore.Store
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	apptRepo    repository.AppointmentRepository
	audit       service.AuditService
	now         func() time.Time
}

func NewReceptionUsecase(
	store *memstore.Store,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	apptRepo repository.AppointmentRepository,
	audit service.AuditService,
) ReceptionUsecase {
	return &receptionUsecase{
		store:       store,
		log:         log,
		patientRepo: patientRepo,
		apptRepo:    apptRepo,
		audit:       audit,
		now:         time.Now,
	}
}

func (u *receptionUsecase) RegisterWalkIn(ctx context.Context, req *dto.RegisterWalkInRequest) (*dto.PatientResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if !entity.IsValidDepartment(req.Department) {
		return nil, ErrUnknownDepartment
	}

	var patient *entity.Patient
	err = u.store.Atomic(func(tx *memstore.Tx) error {
		// Walk-ins skip check-in and enter the triage queue directly.
		// They carry no portal credential, so they cannot log in.
		patient = &entity.Patient{
			ID:              tx.NextPatientID(),
			Name:            req.Name,
			DateOfBirth:     dob,
			Gender:          req.Gender,
			MobileNumber:    req.MobileNumber,
			Symptoms:        req.Symptoms,
			Department:      req.Department,
			Status:          entity.PatientStatusAwaitingTriage,
			IsUrgentRequest: req.IsUrgentRequest,
			RegisteredAt:    u.now(),
		}
		u.audit.Record(patient, entity.AuditActionPatientRegistered, actor, map[string]any{
			"via":        "walk-in",
			"department": req.Department,
		})
		return u.patientRepo.Create(tx, patient)
	})
	if err != nil {
		u.log.Warnf("Failed to register walk-in patient: %+v", err)
		return nil, err
	}

	u.log.Infof("Registered walk-in patient %s into %s", patient.PID(), req.Department)
	return converter.PatientToResponse(patient), nil
}

func (u *receptionUsecase) ListPendingAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	var appts []entity.Appointment
	err := u.store.View(func(tx *memstore.Tx) error {
		var err error
		appts, err = u.apptRepo.FindByStatus(tx, entity.AppointmentStatusPendingConfirmation)
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

func (u *receptionUsecase) AllocateSlot(ctx context.Context, appointmentID int) (*dto.AppointmentResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	var appt *entity.Appointment
	err := u.store.Atomic(func(tx *memstore.Tx) error {
		var err error
		appt, err = u.apptRepo.FindByID(tx, appointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return ErrAppointmentNotFound
		}

		patient, err := u.patientRepo.FindByID(tx, appt.PatientID)
		if err != nil {
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		if err := appt.AdvanceTo(entity.AppointmentStatusSlotAllocated); err != nil {
			return err
		}
		appt.Patient = entity.SnapshotOf(patient)
		appt.UpdatedAt = u.now()

		u.audit.Record(patient, entity.AuditActionSlotAllocated, actor, map[string]any{
			"appointment_id": appt.ID,
			"date":           appt.Date.Format(time.RFC3339),
		})

		if err := u.apptRepo.Update(tx, appt); err != nil {
			return err
		}
		return u.patientRepo.Update(tx, patient)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Allocated slot for appointment %d", appt.ID)
	return converter.AppointmentToResponse(appt), nil
}

func (u *receptionUsecase) RejectAppointment(ctx context.Context, appointmentID int) error {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	err := u.store.Atomic(func(tx *memstore.Tx) error {
		appt, err := u.apptRepo.FindByID(tx, appointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return ErrAppointmentNotFound
		}

		patient, err := u.patientRepo.FindByID(tx, appt.PatientID)
		if err != nil {
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		if err := appt.AdvanceTo(entity.AppointmentStatusCancelled); err != nil {
			return err
		}
		appt.UpdatedAt = u.now()

		u.audit.Record(patient, entity.AuditActionApptRejected, actor, map[string]any{
			"appointment_id": appt.ID,
		})

		if err := u.apptRepo.Update(tx, appt); err != nil {
			return err
		}
		return u.patientRepo.Update(tx, patient)
	})
	if err != nil {
		return err
	}

	u.log.Infof("Rejected appointment %d", appointmentID)
	return nil
}

// CheckInPatient marks an arrived patient and promotes their allocated
// appointment; both records move in the same transaction or neither does.
func (u *receptionUsecase) CheckInPatient(ctx context.Context, patientID int) (*dto.PatientResponse, error) {
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

		active, err := u.apptRepo.FindActiveByPatientID(tx, patientID)
		if err != nil {
			return err
		}
		var appt *entity.Appointment
		for i := range active {
			if active[i].Status == entity.AppointmentStatusSlotAllocated {
				appt = &active[i]
				break
			}
		}
		if appt == nil {
			return ErrNoAllocatedAppointment
		}

		if err := patient.AdvanceTo(entity.PatientStatusAwaitingTriage); err != nil {
			return err
		}
		if err := appt.AdvanceTo(entity.AppointmentStatusScheduled); err != nil {
			return err
		}
		appt.Patient = entity.SnapshotOf(patient)
		appt.UpdatedAt = u.now()

		u.audit.Record(patient, entity.AuditActionCheckedIn, actor, map[string]any{
			"appointment_id": appt.ID,
		})

		if err := u.apptRepo.Update(tx, appt); err != nil {
			return err
		}
		return u.patientRepo.Update(tx, patient)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Checked in patient %s", patient.PID())
	return converter.PatientToResponse(patient), nil
}

func (u *receptionUsecase) SearchPatient(ctx context.Context, query string) (*dto.PatientSearchResponse, error) {
	var patient *entity.Patient
	var active []entity.Appointment

	err := u.store.View(func(tx *memstore.Tx) error {
		var err error
		if id, ok := entity.ParsePID(query); ok {
			patient, err = u.patientRepo.FindByID(tx, id)
		} else if apptID, intErr := strconv.Atoi(query); intErr == nil && apptID < memstore.PatientBaseID {
			// Short numbers are appointment ids; anything longer is a
			// mobile number.
			var appt *entity.Appointment
			appt, err = u.apptRepo.FindByID(tx, apptID)
			if err == nil && appt != nil {
				patient, err = u.patientRepo.FindByID(tx, appt.PatientID)
			}
		} else {
			patient, err = u.patientRepo.FindByMobile(tx, query)
		}
		if err != nil || patient == nil {
			return err
		}
		active, err = u.apptRepo.FindActiveByPatientID(tx, patient.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	resp := &dto.PatientSearchResponse{Patient: *converter.PatientToResponse(patient)}
	if len(active) > 0 {
		resp.ActiveAppointment = converter.AppointmentToResponse(&active[0])
	}
	return resp, nil
}
