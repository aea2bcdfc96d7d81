package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterPatientRequest registers a patient account
type RegisterPatientRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
}

// RegisterDoctorRequest registers a doctor account; the profile starts in
// PENDING activation status.
type RegisterDoctorRequest struct {
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	FullName             string `json:"full_name" validate:"required,min=2"`
	ContactEmail         string `json:"contact_email" validate:"omitempty,email"`
	MedicalLicenseNumber string `json:"medical_license_number" validate:"required"`
	Specialization       string `json:"specialization" validate:"required"`
	HospitalAffiliation  string `json:"hospital_affiliation" validate:"omitempty"`
	YearsOfExperience    int    `json:"years_of_experience" validate:"gte=0,lte=80"`
	ConsultationFee      string `json:"consultation_fee" validate:"omitempty"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	Roles         []string  `json:"roles"`
	AccountStatus string    `json:"account_status"`
	IsActivated   bool      `json:"is_activated"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
