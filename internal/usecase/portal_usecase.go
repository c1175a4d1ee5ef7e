package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jijnash2636/medaiton/internal/converter"
	"github.com/Jijnash2636/medaiton/internal/delivery/dto"
	"github.com/Jijnash2636/medaiton/internal/delivery/http/middleware"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/domain/gateway"
	"github.com/Jijnash2636/medaiton/internal/domain/repository"
	"github.com/Jijnash2636/medaiton/internal/memstore"
	"github.com/Jijnash2636/medaiton/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPatientNotFound         = errors.New("patient not found")
	ErrMobileAlreadyRegistered = errors.New("mobile number is already registered")
	ErrUnknownDepartment       = errors.New("unknown department")
	ErrInvalidDateFormat       = errors.New("date must be RFC 3339")
)

// PortalUsecase is the patient self-service surface: registration,
// appointment requests, the profile timeline and credential changes.
type PortalUsecase interface {
	Register(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	RequestAppointment(ctx context.Context, req *dto.RequestAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetProfile(ctx context.Context) (*dto.PatientProfileResponse, error)
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
}

type portalUsecase struct {
	store       *memstore.Store
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	apptRepo    repository.AppointmentRepository
	audit       service.AuditService
	scheduler   service.SchedulerService
	aiGateway   gateway.AIGateway
	redisClient *redis.Client
	now         func() time.Time
}

func NewPortalUsecase(
	store *memstore.Store,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	apptRepo repository.AppointmentRepository,
	audit service.AuditService,
	scheduler service.SchedulerService,
	aiGateway gateway.AIGateway,
	redisClient *redis.Client,
) PortalUsecase {
	return &portalUsecase{
		store:       store,
		log:         log,
		patientRepo: patientRepo,
		apptRepo:    apptRepo,
		audit:       audit,
		scheduler:   scheduler,
		aiGateway:   aiGateway,
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (u *portalUsecase) Register(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	var patient *entity.Patient
	err = u.store.Atomic(func(tx *memstore.Tx) error {
		existing, err := u.patientRepo.FindByMobile(tx, req.MobileNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrMobileAlreadyRegistered
		}

		patient = &entity.Patient{
			ID:            tx.NextPatientID(),
			Name:          req.Name,
			DateOfBirth:   dob,
			Gender:        req.Gender,
			MobileNumber:  req.MobileNumber,
			Email:         req.Email,
			MaritalStatus: req.MaritalStatus,
			GuardianName:  req.GuardianName,
			SpouseName:    req.SpouseName,
			IsPregnant:    req.IsPregnant,
			Symptoms:      req.Symptoms,
			Status:        entity.PatientStatusAwaitingCheckIn,
			RegisteredAt:  u.now(),
			PasswordHash:  string(hash),
		}
		u.audit.Record(patient, entity.AuditActionPatientRegistered, entity.PortalActor(), map[string]any{
			"via": "portal",
		})
		return u.patientRepo.Create(tx, patient)
	})
	if err != nil {
		if !errors.Is(err, ErrMobileAlreadyRegistered) {
			u.log.Warnf("Failed to register patient: %+v", err)
		}
		return nil, err
	}

	u.log.Infof("Registered patient %s via portal", patient.PID())
	return converter.PatientToResponse(patient), nil
}

func (u *portalUsecase) RequestAppointment(ctx context.Context, req *dto.RequestAppointmentRequest) (*dto.AppointmentResponse, error) {
	patient, err := u.currentPatient(ctx)
	if err != nil {
		return nil, err
	}

	if !entity.IsValidDepartment(req.Department) {
		return nil, ErrUnknownDepartment
	}

	symptoms := req.Symptoms
	if symptoms == "" {
		symptoms = patient.Symptoms
	}

	// Resolve the slot before taking the write lock: the AI call is
	// slow and must never run inside the store mutex.
	var date time.Time
	var suggestion *entity.TriageSuggestion
	if req.Date != "" {
		date, err = time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
	} else {
		suggestion, err = u.aiGateway.SuggestTriage(ctx, &gateway.TriageRequest{
			Name:       patient.Name,
			Age:        patient.Age(u.now()),
			Gender:     patient.Gender,
			Department: req.Department,
			Symptoms:   symptoms,
			Vitals:     patient.Vitals,
			Urgent:     req.IsUrgentRequest,
		})
		if err != nil {
			u.log.Warnf("Failed to triage appointment request for %s: %+v", patient.PID(), err)
			return nil, err
		}
		date = u.scheduler.ProposeTriageSlot(suggestion.Classification)
	}

	var appt *entity.Appointment
	err = u.store.Atomic(func(tx *memstore.Tx) error {
		current, err := u.patientRepo.FindByID(tx, patient.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrPatientNotFound
		}

		current.Symptoms = symptoms
		current.Department = req.Department
		current.IsUrgentRequest = req.IsUrgentRequest
		if suggestion != nil {
			current.TriageSuggestion = suggestion
		}

		appt = &entity.Appointment{
			ID:        tx.NextAppointmentID(),
			PatientID: current.ID,
			Patient:   entity.SnapshotOf(current),
			Doctor:    entity.DoctorUnassigned,
			Date:      date,
			Reason:    symptoms,
			Status:    entity.AppointmentStatusPendingConfirmation,
			CreatedAt: u.now(),
			UpdatedAt: u.now(),
		}

		u.audit.Record(current, entity.AuditActionApptRequested, entity.PortalActor(), map[string]any{
			"appointment_id": appt.ID,
			"department":     req.Department,
			"date":           date.Format(time.RFC3339),
		})

		if err := u.apptRepo.Create(tx, appt); err != nil {
			return err
		}
		return u.patientRepo.Update(tx, current)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Patient %s requested appointment %d in %s", patient.PID(), appt.ID, req.Department)
	return converter.AppointmentToResponse(appt), nil
}

func (u *portalUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	patient, err := u.currentPatient(ctx)
	if err != nil {
		return nil, err
	}

	var appts []entity.Appointment
	err = u.store.View(func(tx *memstore.Tx) error {
		var err error
		appts, err = u.apptRepo.FindByPatientID(tx, patient.ID)
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

func (u *portalUsecase) GetProfile(ctx context.Context) (*dto.PatientProfileResponse, error) {
	patient, err := u.currentPatient(ctx)
	if err != nil {
		return nil, err
	}

	var appts []entity.Appointment
	err = u.store.View(func(tx *memstore.Tx) error {
		var err error
		appts, err = u.apptRepo.FindByPatientID(tx, patient.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.PatientProfileResponse{
		Patient:      *converter.PatientToResponse(patient),
		AuditLog:     converter.AuditEntriesToResponses(patient.AuditLog),
		Appointments: converter.AppointmentsToResponses(appts),
	}, nil
}

func (u *portalUsecase) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	patient, err := u.currentPatient(ctx)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash new password: %+v", err)
		return err
	}

	err = u.store.Atomic(func(tx *memstore.Tx) error {
		current, err := u.patientRepo.FindByID(tx, patient.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrPatientNotFound
		}

		changedAt := u.now()
		current.PreviousPasswordHash = current.PasswordHash
		current.PasswordHash = string(hash)
		current.PasswordChangedAt = &changedAt

		u.audit.Record(current, entity.AuditActionPasswordChanged, entity.PortalActor(), nil)
		return u.patientRepo.Update(tx, current)
	})
	if err != nil {
		return err
	}

	// Force re-login everywhere by revoking every outstanding token.
	for _, pattern := range []string{
		fmt.Sprintf("access_token:%s:*", patient.PID()),
		fmt.Sprintf("refresh_token:%s:*", patient.PID()),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to list tokens for revocation: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to revoke tokens: %+v", err)
				return err
			}
		}
	}

	u.log.Infof("Patient %s changed password", patient.PID())
	return nil
}

// currentPatient loads the patient identified by the session subject.
func (u *portalUsecase) currentPatient(ctx context.Context) (*entity.Patient, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrInvalidToken
	}
	id, ok := entity.ParsePID(subject)
	if !ok {
		return nil, ErrInvalidToken
	}

	var patient *entity.Patient
	err := u.store.View(func(tx *memstore.Tx) error {
		var err error
		patient, err = u.patientRepo.FindByID(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}
