package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"healthapp-backend/internal/delivery/dto"
	"healthapp-backend/internal/domain/entity"
	"healthapp-backend/internal/notification"
	"healthapp-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingSender records messages the dispatcher delivers.
type capturingSender struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (c *capturingSender) Send(ctx context.Context, msg notification.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	return nil
}

func (c *capturingSender) all() []notification.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]notification.Message(nil), c.messages...)
}

func pendingProfile(doctorID uuid.UUID) *entity.DoctorProfile {
	return &entity.DoctorProfile{
		UserID:                doctorID,
		ContactEmail:          "dr.house@clinic.example",
		MedicalLicenseNumber:  "LIC-1001",
		Specialization:        "Cardiology",
		ActivationStatus:      entity.ActivationStatusPending,
		ActivationRequestDate: time.Now().UTC().Add(-24 * time.Hour),
		User: entity.User{
			ID:            doctorID,
			Email:         "house@example.com",
			FullName:      "Gregory House",
			AccountStatus: entity.AccountStatusPendingVerification,
			IsActivated:   false,
		},
	}
}

func TestDoctorActivation_Approve(t *testing.T) {
	db, mock := newTestDB(t)
	log := testLogger()

	doctorID := uuid.New()
	adminID := uuid.New()

	userRepo := &fakeUserRepo{}
	profileRepo := &fakeDoctorProfileRepo{
		FindByUserIDFunc: func(id uuid.UUID) (*entity.DoctorProfile, error) {
			return pendingProfile(doctorID), nil
		},
	}
	auditRepo := &fakeAuditLogRepo{}
	sender := &capturingSender{}
	dispatcher := notification.NewDispatcher(sender, nil, nil, log, 1, 10)

	uc := NewDoctorActivationUsecase(db, log, userRepo, profileRepo, &fakeAppointmentRepo{},
		service.NewAuditService(db, log, auditRepo), dispatcher)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.Approve(context.Background(), adminID, []string{entity.RoleAdmin}, doctorID)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, string(entity.ActivationStatusApproved), resp.ActivationStatus)
	assert.True(t, resp.IsActivated)
	assert.NotNil(t, resp.ActivatedAt)

	// Profile and account must flip together
	require.Len(t, profileRepo.UpdatedProfiles, 1)
	updated := profileRepo.UpdatedProfiles[0]
	assert.Equal(t, entity.ActivationStatusApproved, updated.ActivationStatus)
	require.NotNil(t, updated.ActivatedBy)
	assert.Equal(t, adminID, *updated.ActivatedBy)

	require.Len(t, userRepo.UpdatedUsers, 1)
	assert.True(t, userRepo.UpdatedUsers[0].IsActivated)
	assert.Equal(t, entity.AccountStatusActive, userRepo.UpdatedUsers[0].AccountStatus)

	require.Len(t, auditRepo.Entries, 1)
	assert.Equal(t, entity.AuditActionDoctorApprove, auditRepo.Entries[0].Action)

	// Notification goes to the contact email, not the login email
	dispatcher.Stop()
	messages := sender.all()
	require.Len(t, messages, 1)
	assert.Equal(t, "dr.house@clinic.example", messages[0].To)
	assert.Equal(t, entity.TemplateDoctorActivationConfirmation, messages[0].TemplateType)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorActivation_ApproveRequiresAdmin(t *testing.T) {
	db, _ := newTestDB(t)
	log := testLogger()

	uc := NewDoctorActivationUsecase(db, log, &fakeUserRepo{}, &fakeDoctorProfileRepo{}, &fakeAppointmentRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), notification.NewDispatcher(notification.NewLogSender(log), nil, nil, log, 1, 10))

	_, err := uc.Approve(context.Background(), uuid.New(), []string{entity.RoleDoctor}, uuid.New())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.Approve(context.Background(), uuid.New(), nil, uuid.New())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDoctorActivation_ApproveAlreadyDecided(t *testing.T) {
	db, mock := newTestDB(t)
	log := testLogger()

	doctorID := uuid.New()
	for _, status := range []entity.ActivationStatus{entity.ActivationStatusApproved, entity.ActivationStatusRejected} {
		profile := pendingProfile(doctorID)
		profile.ActivationStatus = status

		profileRepo := &fakeDoctorProfileRepo{
			FindByUserIDFunc: func(id uuid.UUID) (*entity.DoctorProfile, error) {
				return profile, nil
			},
		}

		uc := NewDoctorActivationUsecase(db, log, &fakeUserRepo{}, profileRepo, &fakeAppointmentRepo{},
			service.NewAuditService(db, log, &fakeAuditLogRepo{}), notification.NewDispatcher(notification.NewLogSender(log), nil, nil, log, 1, 10))

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := uc.Approve(context.Background(), uuid.New(), []string{entity.RoleAdmin}, doctorID)
		assert.ErrorIs(t, err, ErrActivationConflict)
		assert.Empty(t, profileRepo.UpdatedProfiles)
	}
}

func TestDoctorActivation_ApproveUnknownDoctor(t *testing.T) {
	db, mock := newTestDB(t)
	log := testLogger()

	uc := NewDoctorActivationUsecase(db, log, &fakeUserRepo{}, &fakeDoctorProfileRepo{}, &fakeAppointmentRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), notification.NewDispatcher(notification.NewLogSender(log), nil, nil, log, 1, 10))

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := uc.Approve(context.Background(), uuid.New(), []string{entity.RoleAdmin}, uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestDoctorActivation_RejectDefaultReason(t *testing.T) {
	db, mock := newTestDB(t)
	log := testLogger()

	doctorID := uuid.New()
	userRepo := &fakeUserRepo{}
	profileRepo := &fakeDoctorProfileRepo{
		FindByUserIDFunc: func(id uuid.UUID) (*entity.DoctorProfile, error) {
			return pendingProfile(doctorID), nil
		},
	}
	sender := &capturingSender{}
	dispatcher := notification.NewDispatcher(sender, nil, nil, log, 1, 10)

	uc := NewDoctorActivationUsecase(db, log, userRepo, profileRepo, &fakeAppointmentRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), dispatcher)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.Reject(context.Background(), uuid.New(), []string{entity.RoleAdmin}, doctorID, &dto.RejectDoctorRequest{})
	require.NoError(t, err)

	assert.Equal(t, string(entity.ActivationStatusRejected), resp.ActivationStatus)
	assert.Equal(t, entity.DefaultRejectionReason, resp.RejectionReason)
	assert.False(t, resp.IsActivated)

	require.Len(t, userRepo.UpdatedUsers, 1)
	assert.False(t, userRepo.UpdatedUsers[0].IsActivated)
	assert.Equal(t, entity.AccountStatusInactive, userRepo.UpdatedUsers[0].AccountStatus)

	dispatcher.Stop()
	messages := sender.all()
	require.Len(t, messages, 1)
	assert.Equal(t, entity.TemplateDoctorActivationRejection, messages[0].TemplateType)
	assert.Contains(t, messages[0].Body, entity.DefaultRejectionReason)
}

func TestDoctorActivation_RejectKeepsGivenReason(t *testing.T) {
	db, mock := newTestDB(t)
	log := testLogger()

	doctorID := uuid.New()
	profileRepo := &fakeDoctorProfileRepo{
		FindByUserIDFunc: func(id uuid.UUID) (*entity.DoctorProfile, error) {
			return pendingProfile(doctorID), nil
		},
	}

	uc := NewDoctorActivationUsecase(db, log, &fakeUserRepo{}, profileRepo, &fakeAppointmentRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), notification.NewDispatcher(notification.NewLogSender(log), nil, nil, log, 1, 10))

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.Reject(context.Background(), uuid.New(), []string{entity.RoleAdmin}, doctorID,
		&dto.RejectDoctorRequest{Reason: "License expired in 2024"})
	require.NoError(t, err)
	assert.Equal(t, "License expired in 2024", resp.RejectionReason)
}

func TestDoctorActivation_DeleteRequiresApproved(t *testing.T) {
	db, mock := newTestDB(t)
	log := testLogger()

	doctorID := uuid.New()
	profileRepo := &fakeDoctorProfileRepo{
		FindByUserIDFunc: func(id uuid.UUID) (*entity.DoctorProfile, error) {
			return pendingProfile(doctorID), nil
		},
	}

	uc := NewDoctorActivationUsecase(db, log, &fakeUserRepo{}, profileRepo, &fakeAppointmentRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), notification.NewDispatcher(notification.NewLogSender(log), nil, nil, log, 1, 10))

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uc.DeleteDoctor(context.Background(), uuid.New(), []string{entity.RoleAdmin}, doctorID)
	assert.ErrorIs(t, err, ErrDeleteNotApproved)
	assert.Empty(t, profileRepo.DeletedIDs)
}

func TestDoctorActivation_DeleteCascadesAppointments(t *testing.T) {
	db, mock := newTestDB(t)
	log := testLogger()

	doctorID := uuid.New()
	profile := pendingProfile(doctorID)
	profile.ActivationStatus = entity.ActivationStatusApproved

	var cascadedDoctor uuid.UUID
	appointmentRepo := &fakeAppointmentRepo{
		DeleteByDoctorIDFunc: func(id uuid.UUID) (int64, error) {
			cascadedDoctor = id
			return 3, nil
		},
	}
	profileRepo := &fakeDoctorProfileRepo{
		FindByUserIDFunc: func(id uuid.UUID) (*entity.DoctorProfile, error) {
			return profile, nil
		},
	}
	auditRepo := &fakeAuditLogRepo{}

	uc := NewDoctorActivationUsecase(db, log, &fakeUserRepo{}, profileRepo, appointmentRepo,
		service.NewAuditService(db, log, auditRepo), notification.NewDispatcher(notification.NewLogSender(log), nil, nil, log, 1, 10))

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uc.DeleteDoctor(context.Background(), uuid.New(), []string{entity.RoleAdmin}, doctorID)
	require.NoError(t, err)

	assert.Equal(t, doctorID, cascadedDoctor)
	assert.Equal(t, []uuid.UUID{doctorID}, profileRepo.DeletedIDs)
	require.Len(t, auditRepo.Entries, 1)
	assert.Equal(t, entity.AuditActionDoctorDelete, auditRepo.Entries[0].Action)
}

func TestDoctorActivation_ListAndCountRequireAdmin(t *testing.T) {
	db, _ := newTestDB(t)
	log := testLogger()

	uc := NewDoctorActivationUsecase(db, log, &fakeUserRepo{}, &fakeDoctorProfileRepo{}, &fakeAppointmentRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), notification.NewDispatcher(notification.NewLogSender(log), nil, nil, log, 1, 10))

	_, err := uc.ListPending(context.Background(), []string{entity.RoleUser})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.CountApproved(context.Background(), []string{entity.RoleDoctor})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDoctorActivation_CountPassesThrough(t *testing.T) {
	db, _ := newTestDB(t)
	log := testLogger()

	profileRepo := &fakeDoctorProfileRepo{
		CountByStatusFunc: func(status entity.ActivationStatus) (int64, error) {
			if status == entity.ActivationStatusPending {
				return 7, nil
			}
			return 2, nil
		},
	}

	uc := NewDoctorActivationUsecase(db, log, &fakeUserRepo{}, profileRepo, &fakeAppointmentRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), notification.NewDispatcher(notification.NewLogSender(log), nil, nil, log, 1, 10))

	pending, err := uc.CountPending(context.Background(), []string{entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(7), pending.Count)

	approved, err := uc.CountApproved(context.Background(), []string{entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(2), approved.Count)
}
