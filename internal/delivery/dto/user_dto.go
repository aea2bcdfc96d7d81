package dto

// UpdateProfileRequest updates the account owner's mutable fields. A new
// email is propagated to the denormalized copies on appointments.
type UpdateProfileRequest struct {
	FullName    string `json:"full_name" validate:"omitempty,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
}
