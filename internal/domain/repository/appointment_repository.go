package repository

import (
	"time"

	"healthapp-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindUpcomingByDoctorID(db *gorm.DB, doctorID uuid.UUID, now time.Time) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error)
	DeleteByPatientIDOrEmail(db *gorm.DB, patientID uuid.UUID, patientEmail string) (int64, error)
	UpdatePatientEmail(db *gorm.DB, oldEmail, newEmail string) (int64, error)
}
