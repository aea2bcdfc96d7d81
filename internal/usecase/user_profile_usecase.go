package usecase

import (
	"context"
	"strings"
	"time"

	"healthapp-backend/internal/converter"
	"healthapp-backend/internal/delivery/dto"
	"healthapp-backend/internal/domain/entity"
	"healthapp-backend/internal/domain/repository"
	"healthapp-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListAvailableDoctors(ctx context.Context) ([]dto.AvailableDoctorResponse, error)
	DeleteUser(ctx context.Context, actorID uuid.UUID, actorRoles []string, targetID uuid.UUID) error
}

type userProfileUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	appointmentRepo   repository.AppointmentRepository
	auditService      service.AuditService
}

func NewUserProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) UserProfileUsecase {
	return &userProfileUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		appointmentRepo:   appointmentRepo,
		auditService:      auditService,
	}
}

func (u *userProfileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// UpdateProfile changes the owner's mutable fields. A changed email is
// written through to the denormalized patient_email on every appointment in
// the same transaction so the ledger keeps matching the account.
func (u *userProfileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	oldEmail := user.Email

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Email != "" {
		user.Email = strings.ToLower(req.Email)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := u.userRepo.Update(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if user.Email != oldEmail {
		updated, err := u.appointmentRepo.UpdatePatientEmail(tx, oldEmail, user.Email)
		if err != nil {
			u.log.Warnf("Failed to propagate email change to appointments: %+v", err)
			return nil, err
		}
		u.log.Infof("Propagated email change for user %s to %d appointments", userID, updated)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userProfileUsecase) ListAvailableDoctors(ctx context.Context) ([]dto.AvailableDoctorResponse, error) {
	profiles, err := u.doctorProfileRepo.FindByStatus(u.db.WithContext(ctx), entity.ActivationStatusApproved)
	if err != nil {
		u.log.Warnf("Failed to list available doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorProfilesToAvailableResponses(profiles), nil
}

// DeleteUser removes an account. Only the owner or an admin may do so. The
// patient's appointments are removed first, matched by id or by the
// denormalized email; if that sweep fails the account deletion still
// proceeds and the leftover rows are reported for manual cleanup.
func (u *userProfileUsecase) DeleteUser(ctx context.Context, actorID uuid.UUID, actorRoles []string, targetID uuid.UUID) error {
	if actorID != targetID {
		if err := requireAdmin(actorRoles); err != nil {
			return err
		}
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), targetID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	removed, err := u.appointmentRepo.DeleteByPatientIDOrEmail(u.db.WithContext(ctx), targetID, user.Email)
	if err != nil {
		u.log.Warnf("Failed to cascade appointment deletion for user %s, continuing: %+v", targetID, err)
	} else if removed > 0 {
		u.log.Infof("Removed %d appointments for user %s", removed, targetID)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.userRepo.Delete(tx, targetID)
	if err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionUserDelete, "user", targetID.String(), map[string]interface{}{
		"email": user.Email,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
