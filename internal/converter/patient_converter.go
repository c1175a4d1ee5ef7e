package converter

import (
	"time"

	"github.com/Jijnash2636/medaiton/internal/delivery/dto"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its response DTO.
func PatientToResponse(p *entity.Patient) *dto.PatientResponse {
	if p == nil {
		return nil
	}

	resp := &dto.PatientResponse{
		ID:              p.ID,
		PID:             p.PID(),
		Name:            p.Name,
		DateOfBirth:     p.DateOfBirth.Format("2006-01-02"),
		Age:             p.Age(time.Now()),
		Gender:          p.Gender,
		MobileNumber:    p.MobileNumber,
		Email:           p.Email,
		MaritalStatus:   p.MaritalStatus,
		GuardianName:    p.GuardianName,
		SpouseName:      p.SpouseName,
		IsPregnant:      p.IsPregnant,
		Symptoms:        p.Symptoms,
		Department:      p.Department,
		ChiefComplaint:  p.ChiefComplaint,
		Status:          string(p.Status),
		IsUrgentRequest: p.IsUrgentRequest,
		RegisteredAt:    p.RegisteredAt,
	}

	if p.Vitals != nil {
		resp.Vitals = &dto.VitalsResponse{
			BloodPressure: p.Vitals.BloodPressure,
			HeartRate:     p.Vitals.HeartRate,
			Temperature:   p.Vitals.Temperature.StringFixed(1),
			SpO2:          p.Vitals.SpO2,
		}
	}
	if p.TriageSuggestion != nil {
		resp.TriageSuggestion = &dto.TriageSuggestionResponse{
			Classification:      string(p.TriageSuggestion.Classification),
			Summary:             p.TriageSuggestion.Summary,
			PotentialSpecialist: p.TriageSuggestion.PotentialSpecialist,
		}
	}

	return resp
}

// PatientsToResponses converts a slice of Patient entities.
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}

// PatientToAdminResponse adds credential lifecycle metadata.
func PatientToAdminResponse(p *entity.Patient) *dto.AdminPatientResponse {
	if p == nil {
		return nil
	}
	return &dto.AdminPatientResponse{
		PatientResponse:   *PatientToResponse(p),
		PasswordSet:       p.PasswordHash != "",
		PasswordChangedAt: p.PasswordChangedAt,
		AuditEntries:      len(p.AuditLog),
	}
}
