package service

import (
	"time"

	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/domain/repository"
	"github.com/Jijnash2636/medaiton/internal/memstore"
	"github.com/sirupsen/logrus"
)

const (
	// Gap between consecutive slots in the same department queue.
	departmentSlotGap = 15 * time.Minute
	// Lead time when a patient must be seen as soon as possible.
	immediateLead = 5 * time.Minute
	// Look-ahead for non-critical self-booked appointments.
	selfBookingLead = 2 * time.Hour
)

// SchedulerService proposes appointment times. It is a heuristic, not a
// scheduler: it approximates an append-only per-department queue and
// does not check collisions across departments or working hours.
type SchedulerService interface {
	// ProposeDepartmentSlot returns the next slot in the department's
	// queue: latest Scheduled appointment plus the slot gap, or a short
	// lead from now when the queue is empty or has fallen into the past.
	ProposeDepartmentSlot(tx *memstore.Tx, department string) (time.Time, error)
	// ProposeTriageSlot returns the fixed look-ahead used by patient
	// self-booking, keyed only on the triage classification.
	ProposeTriageSlot(classification entity.TriageClassification) time.Time
}

type schedulerService struct {
	log      *logrus.Logger
	apptRepo repository.AppointmentRepository
	now      func() time.Time
}

func NewSchedulerService(log *logrus.Logger, apptRepo repository.AppointmentRepository) SchedulerService {
	return &schedulerService{log: log, apptRepo: apptRepo, now: time.Now}
}

// NewSchedulerServiceWithClock exists for tests that need a fixed clock.
func NewSchedulerServiceWithClock(log *logrus.Logger, apptRepo repository.AppointmentRepository, now func() time.Time) SchedulerService {
	return &schedulerService{log: log, apptRepo: apptRepo, now: now}
}

func (s *schedulerService) ProposeDepartmentSlot(tx *memstore.Tx, department string) (time.Time, error) {
	now := s.now()
	fallback := now.Add(immediateLead)

	last, err := s.apptRepo.FindLatestScheduledByDoctor(tx, department)
	if err != nil {
		return time.Time{}, err
	}
	if last == nil {
		return fallback, nil
	}

	proposed := last.Date.Add(departmentSlotGap)
	if proposed.Before(now) {
		s.log.Infof("Department %q queue is in the past, proposing immediate slot", department)
		return fallback, nil
	}
	return proposed, nil
}

func (s *schedulerService) ProposeTriageSlot(classification entity.TriageClassification) time.Time {
	if classification == entity.TriageCritical {
		return s.now().Add(immediateLead)
	}
	return s.now().Add(selfBookingLead)
}
