package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment type constants
const (
	AppointmentTypeConsultation = "CONSULTATION"
	AppointmentTypeFollowUp     = "FOLLOW_UP"
	AppointmentTypeEmergency    = "EMERGENCY"
)

// Appointment ties a patient to a doctor at a point in time. Patient identity
// (id and email) is denormalized at creation; a profile email change rewrites
// the stored copy so deletion sweeps by email stay accurate. Cancelled
// appointments are retained for history.
type Appointment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	PatientEmail string    `gorm:"type:varchar(255);not null;index" json:"patient_email"`
	ScheduledAt  time.Time `gorm:"not null;index" json:"scheduled_at"`
	Type         string    `gorm:"type:varchar(30);not null" json:"type"`
	Reason       string    `gorm:"type:text;not null" json:"reason"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`

	Status             AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CancelledBy        *uuid.UUID        `gorm:"type:uuid" json:"cancelled_by,omitempty"`
	CancellationReason string            `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	CompletedAt        *time.Time        `json:"completed_at,omitempty"`
	CreatedAt          time.Time         `gorm:"not null" json:"created_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if the appointment is still upcoming
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Cancel marks the appointment cancelled, recording actor, reason and time
func (a *Appointment) Cancel(by uuid.UUID, reason string, now time.Time) {
	a.Status = AppointmentStatusCancelled
	a.CancelledBy = &by
	a.CancellationReason = reason
	a.CancelledAt = &now
}

// Complete marks the appointment completed
func (a *Appointment) Complete(now time.Time) {
	a.Status = AppointmentStatusCompleted
	a.CompletedAt = &now
}
