package repository

import (
	"healthapp-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindByStatus(db *gorm.DB, status entity.ActivationStatus) ([]entity.DoctorProfile, error)
	CountByStatus(db *gorm.DB, status entity.ActivationStatus) (int64, error)
	Update(db *gorm.DB, profile *entity.DoctorProfile) error
	Delete(db *gorm.DB, userID uuid.UUID) error
}
