package repository

import (
	"healthapp-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type NotificationLogRepository interface {
	Create(db *gorm.DB, log *entity.NotificationLog) error
}
