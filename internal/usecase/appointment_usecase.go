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
	ErrPastAppointment             = errors.New("appointment must be scheduled in the future")
	ErrDoctorNotActivated          = errors.New("doctor is not activated")
	ErrDoctorCheckUnavailable      = errors.New("doctor availability check is temporarily unavailable")
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrNotAppointmentOwner         = errors.New("appointment does not belong to this account")
	ErrAppointmentAlreadyCancelled = errors.New("appointment has already been cancelled")
	ErrAppointmentNotScheduled     = errors.New("appointment is not in a scheduled state")
)

type AppointmentUsecase interface {
	Create(ctx context.Context, patientID uuid.UUID, patientEmail string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, actorID uuid.UUID, appointmentID uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	ListMine(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListUpcomingForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
	dispatcher        *notification.Dispatcher
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	dispatcher *notification.Dispatcher,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                db,
		log:               log,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
		dispatcher:        dispatcher,
	}
}

// Create books an appointment. The doctor is verified to exist and be
// activated before anything is written; if that verification cannot be
// performed at all the booking is refused rather than accepted blindly.
func (u *appointmentUsecase) Create(ctx context.Context, patientID uuid.UUID, patientEmail string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	now := time.Now().UTC()
	if !req.ScheduledAt.After(now) {
		return nil, ErrPastAppointment
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to verify doctor before booking: %+v", err)
		return nil, ErrDoctorCheckUnavailable
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	if !profile.IsApproved() {
		return nil, ErrDoctorNotActivated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment := &entity.Appointment{
		ID:           uuid.New(),
		DoctorID:     req.DoctorID,
		PatientID:    patientID,
		PatientEmail: patientEmail,
		ScheduledAt:  req.ScheduledAt.UTC(),
		Type:         req.Type,
		Reason:       req.Reason,
		Notes:        req.Notes,
		Status:       entity.AppointmentStatusScheduled,
		CreatedAt:    now,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), map[string]interface{}{
		"doctor_id":    appointment.DoctorID.String(),
		"scheduled_at": appointment.ScheduledAt,
		"type":         appointment.Type,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.dispatcher.Enqueue(notification.AppointmentBooked(
		profile.NotificationEmail(), profile.User.FullName, patientEmail, appointment.ScheduledAt))

	return converter.AppointmentToResponse(appointment), nil
}

// Cancel marks the appointment cancelled. Only a party to the appointment,
// the owning patient or the doctor, may cancel it, and a reason is required.
func (u *appointmentUsecase) Cancel(ctx context.Context, actorID uuid.UUID, appointmentID uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.PatientID != actorID && appointment.DoctorID != actorID {
		return nil, ErrNotAppointmentOwner
	}
	if appointment.IsCancelled() {
		return nil, ErrAppointmentAlreadyCancelled
	}
	if !appointment.IsScheduled() {
		return nil, ErrAppointmentNotScheduled
	}

	now := time.Now().UTC()
	appointment.Cancel(actorID, req.Reason, now)

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(),
		map[string]interface{}{"status": string(entity.AppointmentStatusScheduled)},
		map[string]interface{}{
			"status":              string(entity.AppointmentStatusCancelled),
			"cancellation_reason": req.Reason,
		},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifyCancellation(ctx, appointment)

	return converter.AppointmentToResponse(appointment), nil
}

// Complete marks the appointment completed. Only the appointment's doctor
// may do so.
func (u *appointmentUsecase) Complete(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrNotAppointmentOwner
	}
	if !appointment.IsScheduled() {
		return nil, ErrAppointmentNotScheduled
	}

	now := time.Now().UTC()
	appointment.Complete(now)

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionAppointmentComplete, "appointment", appointment.ID.String(),
		map[string]interface{}{"status": string(entity.AppointmentStatusScheduled)},
		map[string]interface{}{"status": string(entity.AppointmentStatusCompleted)},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListMine(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list patient appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list doctor appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListUpcomingForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindUpcomingByDoctorID(u.db.WithContext(ctx), doctorID, time.Now().UTC())
	if err != nil {
		u.log.Warnf("Failed to list upcoming appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// notifyCancellation tells the doctor about a cancelled slot. The lookup is
// best effort; the cancellation itself has already been committed.
func (u *appointmentUsecase) notifyCancellation(ctx context.Context, appointment *entity.Appointment) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), appointment.DoctorID)
	if err != nil || profile == nil {
		u.log.Warnf("Failed to resolve doctor for cancellation notice: %+v", err)
		return
	}

	u.dispatcher.Enqueue(notification.AppointmentCancelled(
		profile.NotificationEmail(), profile.User.FullName, appointment.ScheduledAt, appointment.CancellationReason))
}
