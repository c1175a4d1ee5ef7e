package service

import (
	"time"

	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService appends immutable entries to a patient's history. It is
// the only writer of the audit log; every state-changing action calls
// Record inside the same store transaction as the mutation.
type AuditService interface {
	Record(patient *entity.Patient, action string, actor entity.Actor, details map[string]any)
}

type auditService struct {
	log *logrus.Logger
	now func() time.Time
}

func NewAuditService(log *logrus.Logger) AuditService {
	return &auditService{log: log, now: time.Now}
}

// NewAuditServiceWithClock exists for tests that need a fixed clock.
func NewAuditServiceWithClock(log *logrus.Logger, now func() time.Time) AuditService {
	return &auditService{log: log, now: now}
}

// Record appends one entry. The caller persists the patient afterwards;
// entries are never edited or removed once appended.
func (s *auditService) Record(patient *entity.Patient, action string, actor entity.Actor, details map[string]any) {
	entry := entity.AuditEntry{
		ID:        uuid.New(),
		Timestamp: s.now(),
		Action:    action,
		Actor:     actor,
		Details:   details,
	}
	patient.AuditLog = append(patient.AuditLog, entry)
	s.log.Infof("Audit: patient=%s action=%q actor=%s", patient.PID(), action, actor.ID)
}
