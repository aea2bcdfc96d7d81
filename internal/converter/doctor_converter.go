package converter

import (
	"healthapp-backend/internal/delivery/dto"
	"healthapp-backend/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                    profile.UserID,
		Email:                 profile.User.Email,
		FullName:              profile.User.FullName,
		ContactEmail:          profile.ContactEmail,
		MedicalLicenseNumber:  profile.MedicalLicenseNumber,
		Specialization:        profile.Specialization,
		HospitalAffiliation:   profile.HospitalAffiliation,
		YearsOfExperience:     profile.YearsOfExperience,
		ConsultationFee:       profile.ConsultationFee.StringFixed(2),
		ActivationStatus:      string(profile.ActivationStatus),
		IsActivated:           profile.User.IsActivated,
		ActivationRequestDate: profile.ActivationRequestDate,
		ActivatedAt:           profile.ActivatedAt,
		RejectedAt:            profile.RejectedAt,
		RejectionReason:       profile.RejectionReason,
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}

// DoctorProfilesToAvailableResponses converts APPROVED profiles to the
// patient-facing directory entries.
func DoctorProfilesToAvailableResponses(profiles []entity.DoctorProfile) []dto.AvailableDoctorResponse {
	responses := make([]dto.AvailableDoctorResponse, len(profiles))
	for i, profile := range profiles {
		responses[i] = dto.AvailableDoctorResponse{
			ID:                  profile.UserID,
			FullName:            profile.User.FullName,
			Specialization:      profile.Specialization,
			HospitalAffiliation: profile.HospitalAffiliation,
			YearsOfExperience:   profile.YearsOfExperience,
			ConsultationFee:     profile.ConsultationFee.StringFixed(2),
		}
	}
	return responses
}
