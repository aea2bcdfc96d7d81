package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID    uuid.UUID `json:"doctor_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=CONSULTATION FOLLOW_UP EMERGENCY"`
	Reason      string    `json:"reason" validate:"required"`
	Notes       string    `json:"notes" validate:"omitempty"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	DoctorID           uuid.UUID  `json:"doctor_id"`
	PatientID          uuid.UUID  `json:"patient_id"`
	PatientEmail       string     `json:"patient_email"`
	ScheduledAt        time.Time  `json:"scheduled_at"`
	Type               string     `json:"type"`
	Reason             string     `json:"reason"`
	Notes              string     `json:"notes,omitempty"`
	Status             string     `json:"status"`
	CancelledBy        *uuid.UUID `json:"cancelled_by,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
