package repository

import (
	"healthapp-backend/internal/domain/entity"
	domainRepo "healthapp-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type notificationLogRepository struct{}

func NewNotificationLogRepository() domainRepo.NotificationLogRepository {
	return &notificationLogRepository{}
}

func (r *notificationLogRepository) Create(db *gorm.DB, log *entity.NotificationLog) error {
	return db.Create(log).Error
}
