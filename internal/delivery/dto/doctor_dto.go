package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RejectDoctorRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

// Response DTOs

type DoctorResponse struct {
	ID                    uuid.UUID  `json:"id"`
	Email                 string     `json:"email"`
	FullName              string     `json:"full_name"`
	ContactEmail          string     `json:"contact_email,omitempty"`
	MedicalLicenseNumber  string     `json:"medical_license_number"`
	Specialization        string     `json:"specialization"`
	HospitalAffiliation   string     `json:"hospital_affiliation,omitempty"`
	YearsOfExperience     int        `json:"years_of_experience"`
	ConsultationFee       string     `json:"consultation_fee"`
	ActivationStatus      string     `json:"activation_status"`
	IsActivated           bool       `json:"is_activated"`
	ActivationRequestDate time.Time  `json:"activation_request_date"`
	ActivatedAt           *time.Time `json:"activated_at,omitempty"`
	RejectedAt            *time.Time `json:"rejected_at,omitempty"`
	RejectionReason       string     `json:"rejection_reason,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// AvailableDoctorResponse is the patient-facing directory entry; activation
// bookkeeping fields are not exposed.
type AvailableDoctorResponse struct {
	ID                  uuid.UUID `json:"id"`
	FullName            string    `json:"full_name"`
	Specialization      string    `json:"specialization"`
	HospitalAffiliation string    `json:"hospital_affiliation,omitempty"`
	YearsOfExperience   int       `json:"years_of_experience"`
	ConsultationFee     string    `json:"consultation_fee"`
}
