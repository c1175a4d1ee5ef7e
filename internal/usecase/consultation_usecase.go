package usecase

import (
	"context"
	"errors"
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

var ErrAppointmentNotScheduled = errors.New("appointment is not in the scheduled queue")

// ConsultationUsecase is the doctor's station: the scheduled queue, AI
// note drafting and consultation close-out.
type ConsultationUsecase interface {
	GetQueue(ctx context.Context) (*dto.AppointmentListResponse, error)
	DraftNotes(ctx context.Context, appointmentID int) (*dto.SOAPDraftResponse, error)
	Complete(ctx context.Context, appointmentID int, req *dto.CompleteConsultationRequest) (*dto.AppointmentResponse, error)
}

type consultationUsecase struct {
	store       *memstore.Store
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	apptRepo    repository.AppointmentRepository
	audit       service.AuditService
	aiGateway   gateway.AIGateway
	now         func() time.Time
}

func NewConsultationUsecase(
	store *memstore.Store,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	apptRepo repository.AppointmentRepository,
	audit service.AuditService,
	aiGateway gateway.AIGateway,
) ConsultationUsecase {
	return &consultationUsecase{
		store:       store,
		log:         log,
		patientRepo: patientRepo,
		apptRepo:    apptRepo,
		audit:       audit,
		aiGateway:   aiGateway,
		now:         time.Now,
	}
}

func (u *consultationUsecase) GetQueue(ctx context.Context) (*dto.AppointmentListResponse, error) {
	var appts []entity.Appointment
	err := u.store.View(func(tx *memstore.Tx) error {
		var err error
		appts, err = u.apptRepo.FindByStatus(tx, entity.AppointmentStatusScheduled)
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

// DraftNotes asks the AI gateway for a SOAP draft built from the
// appointment's frozen patient snapshot. Nothing is stored; the doctor
// edits and submits the final note through Complete.
func (u *consultationUsecase) DraftNotes(ctx context.Context, appointmentID int) (*dto.SOAPDraftResponse, error) {
	var appt *entity.Appointment
	err := u.store.View(func(tx *memstore.Tx) error {
		var err error
		appt, err = u.apptRepo.FindByID(tx, appointmentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.Status != entity.AppointmentStatusScheduled {
		return nil, ErrAppointmentNotScheduled
	}

	snap := appt.Patient
	notes, err := u.aiGateway.DraftSOAPNotes(ctx, &gateway.NotesRequest{
		Name:   snap.Name,
		Age:    entity.AgeAt(snap.DateOfBirth, u.now()),
		Gender: snap.Gender,
		Reason: appt.Reason,
		Vitals: snap.Vitals,
	})
	if err != nil {
		u.log.Warnf("Failed to draft notes for appointment %d: %+v", appointmentID, err)
		return nil, err
	}

	return &dto.SOAPDraftResponse{
		Subjective: notes.Subjective,
		Objective:  notes.Objective,
		Assessment: notes.Assessment,
		Plan:       notes.Plan,
		Formatted:  notes.Format(),
	}, nil
}

// Complete closes out a consultation: the note is written exactly once,
// and appointment and patient finish together or not at all.
func (u *consultationUsecase) Complete(ctx context.Context, appointmentID int, req *dto.CompleteConsultationRequest) (*dto.AppointmentResponse, error) {
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

		if err := appt.AdvanceTo(entity.AppointmentStatusCompleted); err != nil {
			return err
		}
		if err := patient.AdvanceTo(entity.PatientStatusCompleted); err != nil {
			return err
		}

		appt.Notes = req.Notes
		appt.Patient = entity.SnapshotOf(patient)
		appt.UpdatedAt = u.now()

		u.audit.Record(patient, entity.AuditActionDoctorNotesAdded, actor, map[string]any{
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

	u.log.Infof("Completed appointment %d", appt.ID)
	return converter.AppointmentToResponse(appt), nil
}
