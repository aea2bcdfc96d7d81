package usecase

import (
	"context"

	"healthapp-backend/internal/converter"
	"healthapp-backend/internal/delivery/dto"
	"healthapp-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type AuditUsecase interface {
	ListRecent(ctx context.Context, actorRoles []string, limit int) (*dto.AuditLogListResponse, error)
}

type auditUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditUsecase(db *gorm.DB, log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditUsecase {
	return &auditUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

// ListRecent returns the newest audit entries, admin only.
func (u *auditUsecase) ListRecent(ctx context.Context, actorRoles []string, limit int) (*dto.AuditLogListResponse, error) {
	if err := requireAdmin(actorRoles); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	logs, err := u.auditLogRepo.FindRecent(u.db.WithContext(ctx), limit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Entries: converter.AuditLogsToResponses(logs),
		Total:   len(logs),
	}, nil
}
