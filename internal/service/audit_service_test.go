package service

import (
	"testing"
	"time"

	"github.com/Jijnash2636/medaiton/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAppendsInOrder(t *testing.T) {
	clock := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	audit := NewAuditServiceWithClock(testLogger(), func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	patient := &entity.Patient{ID: 100001, Name: "Jane Doe"}
	actor := entity.Actor{ID: "RID000012", Name: "Samuel Jones", Role: entity.RoleReceptionist}

	audit.Record(patient, entity.AuditActionPatientRegistered, actor, map[string]any{"via": "walk-in"})
	audit.Record(patient, entity.AuditActionVitalsRecorded, entity.PortalActor(), nil)

	require.Len(t, patient.AuditLog, 2)

	first, second := patient.AuditLog[0], patient.AuditLog[1]
	assert.Equal(t, entity.AuditActionPatientRegistered, first.Action)
	assert.Equal(t, actor, first.Actor)
	assert.Equal(t, "walk-in", first.Details["via"])
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, first.Timestamp.Before(second.Timestamp))
	assert.Equal(t, "PORTAL", second.Actor.ID)
}
