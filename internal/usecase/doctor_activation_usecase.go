package usecase

import (
	"context"
	"errors"
	"time"

	"healthapp-backend/internal/converter"
	"healthapp-backend/internal/delivery/dto"
	"healthapp-backend/internal/domain/entity"
	"healthapp-backend/internal/domain/repository"
	"healthapp-backend/internal/notification"
	"healthapp-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrForbidden          = errors.New("operation not permitted for this account")
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrActivationConflict = errors.New("activation request has already been decided")
	ErrDeleteNotApproved  = errors.New("only approved doctors can be removed")
)

// DoctorActivationUsecase drives the activation workflow. Every mutating
// operation verifies the actor holds the ADMIN role itself; route middleware
// is an additional gate, not the authority.
type DoctorActivationUsecase interface {
	ListPending(ctx context.Context, actorRoles []string) (*dto.DoctorListResponse, error)
	ListApproved(ctx context.Context, actorRoles []string) (*dto.DoctorListResponse, error)
	CountPending(ctx context.Context, actorRoles []string) (*dto.CountResponse, error)
	CountApproved(ctx context.Context, actorRoles []string) (*dto.CountResponse, error)
	Approve(ctx context.Context, adminID uuid.UUID, actorRoles []string, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	Reject(ctx context.Context, adminID uuid.UUID, actorRoles []string, doctorID uuid.UUID, req *dto.RejectDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, adminID uuid.UUID, actorRoles []string, doctorID uuid.UUID) error
}

type doctorActivationUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	appointmentRepo   repository.AppointmentRepository
	auditService      service.AuditService
	dispatcher        *notification.Dispatcher
}

func NewDoctorActivationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	dispatcher *notification.Dispatcher,
) DoctorActivationUsecase {
	return &doctorActivationUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		appointmentRepo:   appointmentRepo,
		auditService:      auditService,
		dispatcher:        dispatcher,
	}
}

func requireAdmin(actorRoles []string) error {
	for _, r := range actorRoles {
		if r == entity.RoleAdmin {
			return nil
		}
	}
	return ErrForbidden
}

func (u *doctorActivationUsecase) ListPending(ctx context.Context, actorRoles []string) (*dto.DoctorListResponse, error) {
	return u.listByStatus(ctx, actorRoles, entity.ActivationStatusPending)
}

func (u *doctorActivationUsecase) ListApproved(ctx context.Context, actorRoles []string) (*dto.DoctorListResponse, error) {
	return u.listByStatus(ctx, actorRoles, entity.ActivationStatusApproved)
}

func (u *doctorActivationUsecase) listByStatus(ctx context.Context, actorRoles []string, status entity.ActivationStatus) (*dto.DoctorListResponse, error) {
	if err := requireAdmin(actorRoles); err != nil {
		return nil, err
	}

	profiles, err := u.doctorProfileRepo.FindByStatus(u.db.WithContext(ctx), status)
	if err != nil {
		u.log.Warnf("Failed to list doctors by status: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorActivationUsecase) CountPending(ctx context.Context, actorRoles []string) (*dto.CountResponse, error) {
	return u.countByStatus(ctx, actorRoles, entity.ActivationStatusPending)
}

func (u *doctorActivationUsecase) CountApproved(ctx context.Context, actorRoles []string) (*dto.CountResponse, error) {
	return u.countByStatus(ctx, actorRoles, entity.ActivationStatusApproved)
}

func (u *doctorActivationUsecase) countByStatus(ctx context.Context, actorRoles []string, status entity.ActivationStatus) (*dto.CountResponse, error) {
	if err := requireAdmin(actorRoles); err != nil {
		return nil, err
	}

	count, err := u.doctorProfileRepo.CountByStatus(u.db.WithContext(ctx), status)
	if err != nil {
		u.log.Warnf("Failed to count doctors by status: %+v", err)
		return nil, err
	}

	return &dto.CountResponse{Count: count}, nil
}

func (u *doctorActivationUsecase) Approve(ctx context.Context, adminID uuid.UUID, actorRoles []string, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	if err := requireAdmin(actorRoles); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	if !profile.IsPending() {
		return nil, ErrActivationConflict
	}

	now := time.Now().UTC()
	profile.Approve(adminID, now)

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	profile.User.IsActivated = true
	profile.User.AccountStatus = entity.AccountStatusActive
	profile.User.UpdatedAt = now

	if err := u.userRepo.Update(tx, &profile.User); err != nil {
		u.log.Warnf("Failed to update user activation flag: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionDoctorApprove, "doctor_profile", doctorID.String(),
		map[string]interface{}{"activation_status": string(entity.ActivationStatusPending)},
		map[string]interface{}{"activation_status": string(entity.ActivationStatusApproved)},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Notify after commit so a mail failure never rolls back the decision
	u.dispatcher.Enqueue(notification.ActivationApproved(
		profile.NotificationEmail(), profile.User.FullName, profile.User.Email))

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorActivationUsecase) Reject(ctx context.Context, adminID uuid.UUID, actorRoles []string, doctorID uuid.UUID, req *dto.RejectDoctorRequest) (*dto.DoctorResponse, error) {
	if err := requireAdmin(actorRoles); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	if !profile.IsPending() {
		return nil, ErrActivationConflict
	}

	now := time.Now().UTC()
	profile.Reject(adminID, req.Reason, now)

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	profile.User.IsActivated = false
	profile.User.AccountStatus = entity.AccountStatusInactive
	profile.User.UpdatedAt = now

	if err := u.userRepo.Update(tx, &profile.User); err != nil {
		u.log.Warnf("Failed to update user activation flag: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionDoctorReject, "doctor_profile", doctorID.String(),
		map[string]interface{}{"activation_status": string(entity.ActivationStatusPending)},
		map[string]interface{}{
			"activation_status": string(entity.ActivationStatusRejected),
			"rejection_reason":  profile.RejectionReason,
		},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.dispatcher.Enqueue(notification.ActivationRejected(
		profile.NotificationEmail(), profile.User.FullName, profile.RejectionReason))

	return converter.DoctorProfileToResponse(profile), nil
}

// DeleteDoctor removes an approved doctor and every appointment bound to it.
// Pending and rejected profiles are not deletable through this path.
func (u *doctorActivationUsecase) DeleteDoctor(ctx context.Context, adminID uuid.UUID, actorRoles []string, doctorID uuid.UUID) error {
	if err := requireAdmin(actorRoles); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return err
	}
	if profile == nil {
		return ErrDoctorNotFound
	}
	if !profile.IsApproved() {
		return ErrDeleteNotApproved
	}

	removed, err := u.appointmentRepo.DeleteByDoctorID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to delete doctor appointments: %+v", err)
		return err
	}

	if err := u.doctorProfileRepo.Delete(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete doctor profile: %+v", err)
		return err
	}

	if _, err := u.userRepo.Delete(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionDoctorDelete, "doctor_profile", doctorID.String(), map[string]interface{}{
		"email":                profile.User.Email,
		"appointments_removed": removed,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Deleted doctor %s with %d appointments", doctorID, removed)
	return nil
}
