package converter

import (
	"github.com/Jijnash2636/medaiton/internal/delivery/dto"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
)

// AuditEntryToResponse converts one audit log line.
func AuditEntryToResponse(e *entity.AuditEntry) *dto.AuditEntryResponse {
	if e == nil {
		return nil
	}
	return &dto.AuditEntryResponse{
		ID:        e.ID.String(),
		Timestamp: e.Timestamp,
		Action:    e.Action,
		Actor: dto.AuditActorResponse{
			ID:   e.Actor.ID,
			Name: e.Actor.Name,
			Role: string(e.Actor.Role),
		},
		Details: e.Details,
	}
}

// AuditEntriesToResponses converts a patient's full timeline in order.
func AuditEntriesToResponses(entries []entity.AuditEntry) []dto.AuditEntryResponse {
	responses := make([]dto.AuditEntryResponse, len(entries))
	for i := range entries {
		responses[i] = *AuditEntryToResponse(&entries[i])
	}
	return responses
}
