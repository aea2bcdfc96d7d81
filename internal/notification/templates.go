package notification

import (
	"fmt"
	"time"

	"healthapp-backend/internal/domain/entity"
)

// ActivationApproved builds the confirmation sent when an admin approves a
// doctor's registration.
func ActivationApproved(to, doctorName, loginEmail string) Message {
	return Message{
		To:           to,
		ToName:       doctorName,
		Subject:      "Account Activated - Health App",
		TemplateType: entity.TemplateDoctorActivationConfirmation,
		Body: fmt.Sprintf(
			"Dear Dr. %s,\n\nYour account has been activated. You can now sign in with %s and start receiving appointments.\n\nHealth App Team",
			doctorName, loginEmail),
	}
}

// ActivationRejected builds the notice sent when an admin rejects a
// doctor's registration.
func ActivationRejected(to, doctorName, reason string) Message {
	return Message{
		To:           to,
		ToName:       doctorName,
		Subject:      "Account Registration Review - Health App",
		TemplateType: entity.TemplateDoctorActivationRejection,
		Body: fmt.Sprintf(
			"Dear Dr. %s,\n\nWe were unable to approve your registration.\nReason: %s\n\nHealth App Team",
			doctorName, reason),
	}
}

// AppointmentBooked builds the notice sent to a doctor when a patient books.
func AppointmentBooked(to, doctorName, patientEmail string, scheduledAt time.Time) Message {
	return Message{
		To:           to,
		ToName:       doctorName,
		Subject:      "New Appointment Booked - Health App",
		TemplateType: entity.TemplateAppointmentBooked,
		Body: fmt.Sprintf(
			"Dear Dr. %s,\n\nA new appointment has been booked by %s for %s.\n\nHealth App Team",
			doctorName, patientEmail, scheduledAt.Format("Monday, January 2 2006 at 15:04")),
	}
}

// AppointmentCancelled builds the notice sent to a doctor when a patient
// cancels.
func AppointmentCancelled(to, doctorName string, scheduledAt time.Time, reason string) Message {
	return Message{
		To:           to,
		ToName:       doctorName,
		Subject:      "Appointment Cancelled - Health App",
		TemplateType: entity.TemplateAppointmentCancelled,
		Body: fmt.Sprintf(
			"Dear Dr. %s,\n\nThe appointment scheduled for %s has been cancelled.\nReason: %s\n\nHealth App Team",
			doctorName, scheduledAt.Format("Monday, January 2 2006 at 15:04"), reason),
	}
}
