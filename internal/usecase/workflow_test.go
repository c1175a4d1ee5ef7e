package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/Jijnash2636/medaiton/internal/delivery/dto"
	"github.com/Jijnash2636/medaiton/internal/delivery/http/middleware"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/domain/gateway"
	"github.com/Jijnash2636/medaiton/internal/memstore"
	"github.com/Jijnash2636/medaiton/internal/repository"
	"github.com/Jijnash2636/medaiton/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway returns canned AI results so workflows stay deterministic.
type fakeGateway struct {
	suggestion *entity.TriageSuggestion
	notes      *gateway.SOAPNotes
	err        error
	calls      int
}

func (f *fakeGateway) SuggestTriage(ctx context.Context, req *gateway.TriageRequest) (*entity.TriageSuggestion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestion, nil
}

func (f *fakeGateway) DraftSOAPNotes(ctx context.Context, req *gateway.NotesRequest) (*gateway.SOAPNotes, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.notes, nil
}

// fixture wires the full workflow stack against one in-memory store.
type fixture struct {
	store        *memstore.Store
	gateway      *fakeGateway
	portal       PortalUsecase
	reception    ReceptionUsecase
	triage       TriageUsecase
	consultation ConsultationUsecase
	admin        AdminUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := memstore.New()
	patientRepo := repository.NewPatientRepository()
	apptRepo := repository.NewAppointmentRepository()

	audit := service.NewAuditService(log)
	scheduler := service.NewSchedulerService(log, apptRepo)
	gw := &fakeGateway{
		suggestion: &entity.TriageSuggestion{
			Classification:      entity.TriageModerate,
			Summary:             "Needs review within hours",
			PotentialSpecialist: "Cardiologist",
		},
		notes: &gateway.SOAPNotes{
			Subjective: "Patient reports chest pain.",
			Objective:  "BP 120/80, HR 70.",
			Assessment: "Possible angina.",
			Plan:       "ECG and follow-up.",
		},
	}

	return &fixture{
		store:        store,
		gateway:      gw,
		portal:       NewPortalUsecase(store, log, patientRepo, apptRepo, audit, scheduler, gw, nil),
		reception:    NewReceptionUsecase(store, log, patientRepo, apptRepo, audit),
		triage:       NewTriageUsecase(store, log, patientRepo, apptRepo, audit, scheduler, gw),
		consultation: NewConsultationUsecase(store, log, patientRepo, apptRepo, audit, gw),
		admin:        NewAdminUsecase(store, log, patientRepo, apptRepo),
	}
}

func staffCtx(id, name string, role entity.Role) context.Context {
	ctx := context.WithValue(context.Background(), middleware.SubjectKey, id)
	ctx = context.WithValue(ctx, middleware.NameKey, name)
	return context.WithValue(ctx, middleware.RoleKey, role)
}

func patientCtx(pid string) context.Context {
	ctx := context.WithValue(context.Background(), middleware.SubjectKey, pid)
	ctx = context.WithValue(ctx, middleware.NameKey, "")
	return context.WithValue(ctx, middleware.RoleKey, entity.RolePatient)
}

func receptionistCtx() context.Context {
	return staffCtx("RID000012", "Samuel Jones", entity.RoleReceptionist)
}

func internCtx() context.Context {
	return staffCtx("IID000045", "Alex Carter", entity.RoleIntern)
}

func doctorCtx() context.Context {
	return staffCtx("DID000067", "Dr. Evelyn Reed", entity.RoleDoctor)
}

func TestWalkInVisitEndToEnd(t *testing.T) {
	f := newFixture(t)

	// Walk-in registration enters the triage queue directly.
	patient, err := f.reception.RegisterWalkIn(receptionistCtx(), &dto.RegisterWalkInRequest{
		Name:         "Jane Doe",
		DateOfBirth:  "1985-06-15",
		Gender:       "Female",
		MobileNumber: "5550001111",
		Symptoms:     "chest pain",
		Department:   "Cardiology",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.PatientStatusAwaitingTriage), patient.Status)
	assert.Equal(t, "PID100001", patient.PID)

	queue, err := f.triage.GetQueue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, queue.Total)

	// Vitals round-trip exactly, including the decimal temperature.
	updated, err := f.triage.RecordVitals(internCtx(), patient.ID, &dto.RecordVitalsRequest{
		BloodPressure: "120/80",
		HeartRate:     70,
		Temperature:   decimal.RequireFromString("37.0"),
		SpO2:          98,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Vitals)
	assert.Equal(t, "120/80", updated.Vitals.BloodPressure)
	assert.Equal(t, 70, updated.Vitals.HeartRate)
	assert.Equal(t, "37.0", updated.Vitals.Temperature)
	assert.Equal(t, 98, updated.Vitals.SpO2)
	assert.Equal(t, string(entity.PatientStatusAwaitingTriage), updated.Status, "recording vitals must not move the status")

	// The AI suggestion is an annotation only.
	suggestion, err := f.triage.SuggestTriage(internCtx(), patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "Moderate", suggestion.Classification)

	appt, err := f.triage.AssignToDoctor(internCtx(), patient.ID, &dto.AssignDoctorRequest{
		ChiefComplaint: "chest pain",
		Department:     "Cardiology",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusScheduled), appt.Status)
	assert.Equal(t, "Cardiology", appt.Doctor)

	// The frozen snapshot keeps the vitals at fixed one-decimal scale.
	require.NotNil(t, appt.Patient.Vitals)
	assert.Equal(t, "37.0", appt.Patient.Vitals.Temperature)

	// Doctor closes out the consultation.
	completed, err := f.consultation.Complete(doctorCtx(), appt.ID, &dto.CompleteConsultationRequest{
		Notes: "### Subjective\nChest pain.\n\n### Plan\nECG.",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), completed.Status)
	assert.NotEmpty(t, completed.Notes)

	trail, err := f.admin.GetPatientAudit(context.Background(), patient.ID)
	require.NoError(t, err)
	actions := make([]string, 0, trail.Total)
	for _, e := range trail.Entries {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []string{
		entity.AuditActionPatientRegistered,
		entity.AuditActionVitalsRecorded,
		entity.AuditActionComplaintNoted,
		entity.AuditActionAssignedToDept,
		entity.AuditActionDoctorNotesAdded,
	}, actions)
}

func TestPortalBookingEndToEnd(t *testing.T) {
	f := newFixture(t)

	patient, err := f.portal.Register(context.Background(), &dto.RegisterPatientRequest{
		Name:          "John Smith",
		DateOfBirth:   "1990-01-20",
		Gender:        "Male",
		MobileNumber:  "5550002222",
		Password:      "password123",
		MaritalStatus: "Single",
		GuardianName:  "Mary Smith",
		Symptoms:      "persistent headache",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.PatientStatusAwaitingCheckIn), patient.Status)

	ctx := patientCtx(patient.PID)

	// Explicit date, so no AI call is made.
	date := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	appt, err := f.portal.RequestAppointment(ctx, &dto.RequestAppointmentRequest{
		Department: "Neurology",
		Date:       date.Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusPendingConfirmation), appt.Status)
	assert.Equal(t, entity.DoctorUnassigned, appt.Doctor)
	assert.Equal(t, 0, f.gateway.calls)

	pending, err := f.reception.ListPendingAppointments(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, pending.Total)

	allocated, err := f.reception.AllocateSlot(receptionistCtx(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusSlotAllocated), allocated.Status)

	checkedIn, err := f.reception.CheckInPatient(receptionistCtx(), patient.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PatientStatusAwaitingTriage), checkedIn.Status)

	mine, err := f.portal.GetMyAppointments(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, mine.Total)
	assert.Equal(t, string(entity.AppointmentStatusScheduled), mine.Appointments[0].Status)

	// Triage reuses the existing Scheduled appointment instead of
	// creating a second one.
	assigned, err := f.triage.AssignToDoctor(internCtx(), patient.ID, &dto.AssignDoctorRequest{
		ChiefComplaint: "headache, 3 days",
		Department:     "Neurology",
	})
	require.NoError(t, err)
	assert.Equal(t, appt.ID, assigned.ID)
	assert.Equal(t, "Neurology", assigned.Doctor)

	trail, err := f.admin.GetPatientAudit(context.Background(), patient.ID)
	require.NoError(t, err)
	actions := make([]string, 0, trail.Total)
	for _, e := range trail.Entries {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []string{
		entity.AuditActionPatientRegistered,
		entity.AuditActionApptRequested,
		entity.AuditActionSlotAllocated,
		entity.AuditActionCheckedIn,
		entity.AuditActionComplaintNoted,
		entity.AuditActionAssignedToDept,
	}, actions)

	// Self-service actions carry the synthetic portal actor.
	assert.Equal(t, "PORTAL", trail.Entries[0].Actor.ID)
	assert.Equal(t, "RID000012", trail.Entries[2].Actor.ID)
}

func TestPortalRequestWithoutDateUsesTriageClassification(t *testing.T) {
	f := newFixture(t)
	f.gateway.suggestion.Classification = entity.TriageCritical

	patient, err := f.portal.Register(context.Background(), &dto.RegisterPatientRequest{
		Name:          "Ada Li",
		DateOfBirth:   "2000-09-02",
		Gender:        "Female",
		MobileNumber:  "5550003333",
		Password:      "password123",
		MaritalStatus: "Single",
		GuardianName:  "Ken Li",
		Symptoms:      "severe shortness of breath",
	})
	require.NoError(t, err)

	before := time.Now()
	appt, err := f.portal.RequestAppointment(patientCtx(patient.PID), &dto.RequestAppointmentRequest{
		Department: "Cardiology",
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.gateway.calls)

	// Critical classification books the earliest slot.
	assert.WithinDuration(t, before.Add(5*time.Minute), appt.Date, 5*time.Second)
	require.NotNil(t, appt.Patient.TriageSuggestion)
	assert.Equal(t, "Critical", appt.Patient.TriageSuggestion.Classification)
}

func TestCheckInRequiresAllocatedAppointment(t *testing.T) {
	f := newFixture(t)

	patient, err := f.portal.Register(context.Background(), &dto.RegisterPatientRequest{
		Name:          "No Slot",
		DateOfBirth:   "1975-03-03",
		Gender:        "Other",
		MobileNumber:  "5550004444",
		Password:      "password123",
		MaritalStatus: "Married",
		SpouseName:    "Some One",
		Symptoms:      "cough",
	})
	require.NoError(t, err)

	_, err = f.reception.CheckInPatient(receptionistCtx(), patient.ID)
	require.ErrorIs(t, err, ErrNoAllocatedAppointment)

	// The failed check-in must leave the patient untouched.
	trail, err := f.admin.GetPatientAudit(context.Background(), patient.ID)
	require.NoError(t, err)
	require.Equal(t, 1, trail.Total)

	profile, err := f.portal.GetProfile(patientCtx(patient.PID))
	require.NoError(t, err)
	assert.Equal(t, string(entity.PatientStatusAwaitingCheckIn), profile.Patient.Status)
}

func TestCompleteRejectsNonScheduledAppointment(t *testing.T) {
	f := newFixture(t)

	patient, err := f.portal.Register(context.Background(), &dto.RegisterPatientRequest{
		Name:          "Early Bird",
		DateOfBirth:   "1982-11-11",
		Gender:        "Male",
		MobileNumber:  "5550005555",
		Password:      "password123",
		MaritalStatus: "Single",
		GuardianName:  "A Bird",
		Symptoms:      "rash",
	})
	require.NoError(t, err)

	appt, err := f.portal.RequestAppointment(patientCtx(patient.PID), &dto.RequestAppointmentRequest{
		Department: "Dermatology",
		Date:       time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	// Pending appointments cannot be completed and nothing may change.
	_, err = f.consultation.Complete(doctorCtx(), appt.ID, &dto.CompleteConsultationRequest{Notes: "n/a"})
	var transitionErr *entity.TransitionError
	require.ErrorAs(t, err, &transitionErr)

	mine, err := f.portal.GetMyAppointments(patientCtx(patient.PID))
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusPendingConfirmation), mine.Appointments[0].Status)
	assert.Empty(t, mine.Appointments[0].Notes)
}

func TestRejectAppointmentCancelsBeforeCheckIn(t *testing.T) {
	f := newFixture(t)

	patient, err := f.portal.Register(context.Background(), &dto.RegisterPatientRequest{
		Name:          "Change Of Plans",
		DateOfBirth:   "1995-05-05",
		Gender:        "Female",
		MobileNumber:  "5550006666",
		Password:      "password123",
		MaritalStatus: "Single",
		GuardianName:  "Guardian",
		Symptoms:      "back pain",
	})
	require.NoError(t, err)

	appt, err := f.portal.RequestAppointment(patientCtx(patient.PID), &dto.RequestAppointmentRequest{
		Department: "Orthopedics",
		Date:       time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	require.NoError(t, f.reception.RejectAppointment(receptionistCtx(), appt.ID))

	mine, err := f.portal.GetMyAppointments(patientCtx(patient.PID))
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCancelled), mine.Appointments[0].Status)

	trail, err := f.admin.GetPatientAudit(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditActionApptRejected, trail.Entries[trail.Total-1].Action)
}

func TestRegisterRejectsDuplicateMobile(t *testing.T) {
	f := newFixture(t)

	req := &dto.RegisterPatientRequest{
		Name:          "First User",
		DateOfBirth:   "1990-01-01",
		Gender:        "Male",
		MobileNumber:  "5550007777",
		Password:      "password123",
		MaritalStatus: "Single",
		GuardianName:  "Guardian",
		Symptoms:      "fever",
	}
	_, err := f.portal.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = f.portal.Register(context.Background(), req)
	require.ErrorIs(t, err, ErrMobileAlreadyRegistered)
}

func TestVitalsTemperatureRendersAtOneDecimalScale(t *testing.T) {
	f := newFixture(t)

	patient, err := f.reception.RegisterWalkIn(receptionistCtx(), &dto.RegisterWalkInRequest{
		Name:         "Whole Degrees",
		DateOfBirth:  "1991-04-04",
		Gender:       "Male",
		MobileNumber: "5550200300",
		Symptoms:     "chills",
		Department:   "General Medicine",
	})
	require.NoError(t, err)

	// An integral reading still renders with the decimal place.
	updated, err := f.triage.RecordVitals(internCtx(), patient.ID, &dto.RecordVitalsRequest{
		BloodPressure: "110/70",
		HeartRate:     82,
		Temperature:   decimal.NewFromInt(38),
		SpO2:          97,
	})
	require.NoError(t, err)
	assert.Equal(t, "38.0", updated.Vitals.Temperature)

	trail, err := f.admin.GetPatientAudit(context.Background(), patient.ID)
	require.NoError(t, err)
	last := trail.Entries[trail.Total-1]
	require.Equal(t, entity.AuditActionVitalsRecorded, last.Action)
	assert.Equal(t, "38.0", last.Details["temperature"])
}

func TestTriageQueueFloatsUrgentRequestsFirst(t *testing.T) {
	f := newFixture(t)

	routine, err := f.reception.RegisterWalkIn(receptionistCtx(), &dto.RegisterWalkInRequest{
		Name:         "Routine Visit",
		DateOfBirth:  "1960-01-01",
		Gender:       "Male",
		MobileNumber: "5550300400",
		Symptoms:     "mild cough",
		Department:   "General Medicine",
	})
	require.NoError(t, err)

	urgent, err := f.reception.RegisterWalkIn(receptionistCtx(), &dto.RegisterWalkInRequest{
		Name:            "Urgent Case",
		DateOfBirth:     "1972-12-12",
		Gender:          "Female",
		MobileNumber:    "5550300500",
		Symptoms:        "severe chest pain",
		Department:      "Cardiology",
		IsUrgentRequest: true,
	})
	require.NoError(t, err)

	// The urgent walk-in registered later but leads the queue.
	queue, err := f.triage.GetQueue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, queue.Total)
	assert.Equal(t, urgent.ID, queue.Patients[0].ID)
	assert.Equal(t, routine.ID, queue.Patients[1].ID)
}

func TestSearchPatientByPIDMobileAndAppointment(t *testing.T) {
	f := newFixture(t)

	patient, err := f.portal.Register(context.Background(), &dto.RegisterPatientRequest{
		Name:          "Find Me",
		DateOfBirth:   "1988-08-08",
		Gender:        "Female",
		MobileNumber:  "5550100200",
		Password:      "password123",
		MaritalStatus: "Single",
		GuardianName:  "Guardian",
		Symptoms:      "fever",
	})
	require.NoError(t, err)

	appt, err := f.portal.RequestAppointment(patientCtx(patient.PID), &dto.RequestAppointmentRequest{
		Department: "General Medicine",
		Date:       time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	for _, query := range []string{patient.PID, "5550100200", "1"} {
		result, err := f.reception.SearchPatient(receptionistCtx(), query)
		require.NoError(t, err, "query %q", query)
		assert.Equal(t, patient.ID, result.Patient.ID, "query %q", query)
		require.NotNil(t, result.ActiveAppointment, "query %q", query)
		assert.Equal(t, appt.ID, result.ActiveAppointment.ID)
	}

	_, err = f.reception.SearchPatient(receptionistCtx(), "5559999999")
	require.ErrorIs(t, err, ErrPatientNotFound)
}

func TestAdminListingsExposeCredentialFlagsOnly(t *testing.T) {
	f := newFixture(t)

	_, err := f.portal.Register(context.Background(), &dto.RegisterPatientRequest{
		Name:          "Portal User",
		DateOfBirth:   "1993-07-07",
		Gender:        "Female",
		MobileNumber:  "5550008888",
		Password:      "password123",
		MaritalStatus: "Single",
		GuardianName:  "Guardian",
		Symptoms:      "fatigue",
	})
	require.NoError(t, err)

	_, err = f.reception.RegisterWalkIn(receptionistCtx(), &dto.RegisterWalkInRequest{
		Name:         "Walk In",
		DateOfBirth:  "1970-02-02",
		Gender:       "Male",
		MobileNumber: "5550009999",
		Symptoms:     "dizziness",
		Department:   "General Medicine",
	})
	require.NoError(t, err)

	list, err := f.admin.ListPatients(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)

	assert.True(t, list.Patients[0].PasswordSet, "portal patients carry a credential")
	assert.False(t, list.Patients[1].PasswordSet, "walk-ins have none")
}
