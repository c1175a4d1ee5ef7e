package converter

import (
	"fmt"

	"github.com/Jijnash2636/medaiton/internal/delivery/dto"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its DTO. The
// embedded patient comes from the appointment's frozen snapshot, not
// the live record.
func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:        a.ID,
		PatientID: a.PatientID,
		PID:       fmt.Sprintf("PID%06d", a.PatientID),
		Patient:   snapshotToResponse(&a.Patient),
		Doctor:    a.Doctor,
		Date:      a.Date,
		Reason:    a.Reason,
		Status:    string(a.Status),
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities.
func AppointmentsToResponses(appts []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appts))
	for i := range appts {
		responses[i] = *AppointmentToResponse(&appts[i])
	}
	return responses
}

func snapshotToResponse(snap *entity.PatientSnapshot) *dto.PatientResponse {
	resp := &dto.PatientResponse{
		ID:             snap.ID,
		PID:            fmt.Sprintf("PID%06d", snap.ID),
		Name:           snap.Name,
		DateOfBirth:    snap.DateOfBirth.Format("2006-01-02"),
		Gender:         snap.Gender,
		MobileNumber:   snap.MobileNumber,
		Symptoms:       snap.Symptoms,
		Department:     snap.Department,
		ChiefComplaint: snap.ChiefComplaint,
		Status:         string(snap.Status),
	}
	if snap.Vitals != nil {
		resp.Vitals = &dto.VitalsResponse{
			BloodPressure: snap.Vitals.BloodPressure,
			HeartRate:     snap.Vitals.HeartRate,
			Temperature:   snap.Vitals.Temperature.StringFixed(1),
			SpO2:          snap.Vitals.SpO2,
		}
	}
	if snap.TriageSuggestion != nil {
		resp.TriageSuggestion = &dto.TriageSuggestionResponse{
			Classification:      string(snap.TriageSuggestion.Classification),
			Summary:             snap.TriageSuggestion.Summary,
			PotentialSpecialist: snap.TriageSuggestion.PotentialSpecialist,
		}
	}
	return resp
}
