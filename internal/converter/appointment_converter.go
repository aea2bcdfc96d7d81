package converter

import (
	"healthapp-backend/internal/delivery/dto"
	"healthapp-backend/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:                 appointment.ID,
		DoctorID:           appointment.DoctorID,
		PatientID:          appointment.PatientID,
		PatientEmail:       appointment.PatientEmail,
		ScheduledAt:        appointment.ScheduledAt,
		Type:               string(appointment.Type),
		Reason:             appointment.Reason,
		Notes:              appointment.Notes,
		Status:             string(appointment.Status),
		CancelledBy:        appointment.CancelledBy,
		CancellationReason: appointment.CancellationReason,
		CancelledAt:        appointment.CancelledAt,
		CompletedAt:        appointment.CompletedAt,
		CreatedAt:          appointment.CreatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
