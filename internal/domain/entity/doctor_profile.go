package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActivationStatus represents the activation lifecycle of a doctor profile
type ActivationStatus string

const (
	ActivationStatusPending  ActivationStatus = "PENDING"
	ActivationStatusApproved ActivationStatus = "APPROVED"
	ActivationStatusRejected ActivationStatus = "REJECTED"
)

// DefaultRejectionReason is stored when an admin rejects without a reason.
const DefaultRejectionReason = "Credentials could not be verified"

// DoctorProfile represents doctor-specific profile data and its activation
// state. A profile is created PENDING at registration and transitions to
// APPROVED or REJECTED exactly once, by an admin.
type DoctorProfile struct {
	UserID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	ContactEmail         string          `gorm:"type:varchar(255);index" json:"contact_email,omitempty"`
	MedicalLicenseNumber string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"medical_license_number"`
	Specialization       string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	HospitalAffiliation  string          `gorm:"type:varchar(255)" json:"hospital_affiliation,omitempty"`
	YearsOfExperience    int             `gorm:"not null;default:0" json:"years_of_experience"`
	ConsultationFee      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`

	ActivationStatus      ActivationStatus `gorm:"type:varchar(20);not null;index" json:"activation_status"`
	ActivationRequestDate time.Time        `gorm:"not null" json:"activation_request_date"`
	ActivatedAt           *time.Time       `json:"activated_at,omitempty"`
	ActivatedBy           *uuid.UUID       `gorm:"type:uuid" json:"activated_by,omitempty"`
	RejectedAt            *time.Time       `json:"rejected_at,omitempty"`
	RejectedBy            *uuid.UUID       `gorm:"type:uuid" json:"rejected_by,omitempty"`
	RejectionReason       string           `gorm:"type:text" json:"rejection_reason,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// IsPending checks if the profile awaits an admin decision
func (p *DoctorProfile) IsPending() bool {
	return p.ActivationStatus == ActivationStatusPending
}

// IsApproved checks if the profile has been approved
func (p *DoctorProfile) IsApproved() bool {
	return p.ActivationStatus == ActivationStatusApproved
}

// Approve transitions the profile to APPROVED
func (p *DoctorProfile) Approve(adminID uuid.UUID, now time.Time) {
	p.ActivationStatus = ActivationStatusApproved
	p.ActivatedAt = &now
	p.ActivatedBy = &adminID
}

// Reject transitions the profile to REJECTED, defaulting the reason
func (p *DoctorProfile) Reject(adminID uuid.UUID, reason string, now time.Time) {
	if reason == "" {
		reason = DefaultRejectionReason
	}
	p.ActivationStatus = ActivationStatusRejected
	p.RejectedAt = &now
	p.RejectedBy = &adminID
	p.RejectionReason = reason
}

// NotificationEmail returns the address used for notifications.
// Priority: contact email, then the account email.
func (p *DoctorProfile) NotificationEmail() string {
	if p.ContactEmail != "" {
		return p.ContactEmail
	}
	return p.User.Email
}
