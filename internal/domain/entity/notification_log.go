package entity

import "time"

// NotificationStatus represents the delivery outcome of a notification
type NotificationStatus string

const (
	NotificationStatusSent   NotificationStatus = "SENT"
	NotificationStatusFailed NotificationStatus = "FAILED"
)

// Notification template types
const (
	TemplateDoctorActivationConfirmation = "DOCTOR_ACTIVATION_CONFIRMATION"
	TemplateDoctorActivationRejection    = "DOCTOR_ACTIVATION_REJECTION"
	TemplateAppointmentBooked            = "APPOINTMENT_BOOKED"
	TemplateAppointmentCancelled         = "APPOINTMENT_CANCELLED"
)

// NotificationLog records each delivery attempt made by the dispatcher.
// Written best-effort by the worker pool, never by the request path.
type NotificationLog struct {
	ID           int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	Recipient    string             `gorm:"type:varchar(255);not null;index" json:"recipient"`
	Subject      string             `gorm:"type:varchar(255);not null" json:"subject"`
	TemplateType string             `gorm:"type:varchar(60);not null" json:"template_type"`
	Status       NotificationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Error        string             `gorm:"type:text" json:"error,omitempty"`
	CreatedAt    time.Time          `gorm:"not null" json:"created_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}
