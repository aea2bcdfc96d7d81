package usecase

import (
	"errors"
	"testing"
	"time"

	"healthapp-backend/internal/domain/entity"
	"healthapp-backend/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB wires gorm over sqlmock. The repository fakes below ignore the
// db argument, so tests only set transaction expectations (Begin/Commit).
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	return db, mock
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// --- fake UserRepository ---

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type fakeUserRepo struct {
	CreateFunc      func(user *entity.User) error
	FindByIDFunc    func(id uuid.UUID) (*entity.User, error)
	FindByEmailFunc func(email string) (*entity.User, error)
	AppendRoleFunc  func(user *entity.User, role *entity.Role) error
	UpdateFunc      func(user *entity.User) error
	DeleteFunc      func(id uuid.UUID) (int64, error)

	UpdatedUsers []*entity.User
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(user)
	}
	return nil
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(id)
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	if f.FindByEmailFunc != nil {
		return f.FindByEmailFunc(email)
	}
	return nil, nil
}

func (f *fakeUserRepo) AppendRole(db *gorm.DB, user *entity.User, role *entity.Role) error {
	if f.AppendRoleFunc != nil {
		return f.AppendRoleFunc(user, role)
	}
	return nil
}

func (f *fakeUserRepo) Update(db *gorm.DB, user *entity.User) error {
	f.UpdatedUsers = append(f.UpdatedUsers, user)
	if f.UpdateFunc != nil {
		return f.UpdateFunc(user)
	}
	return nil
}

func (f *fakeUserRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(id)
	}
	return 1, nil
}

// --- fake RoleRepository ---

var _ repository.RoleRepository = (*fakeRoleRepo)(nil)

type fakeRoleRepo struct {
	FindByNameFunc func(name string) (*entity.Role, error)
}

func (f *fakeRoleRepo) FindByName(db *gorm.DB, name string) (*entity.Role, error) {
	if f.FindByNameFunc != nil {
		return f.FindByNameFunc(name)
	}
	switch name {
	case entity.RoleUser:
		return &entity.Role{ID: entity.RoleIDUser, RoleName: entity.RoleUser}, nil
	case entity.RoleDoctor:
		return &entity.Role{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor}, nil
	case entity.RoleAdmin:
		return &entity.Role{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin}, nil
	}
	return nil, nil
}

// --- fake DoctorProfileRepository ---

var _ repository.DoctorProfileRepository = (*fakeDoctorProfileRepo)(nil)

type fakeDoctorProfileRepo struct {
	CreateFunc        func(profile *entity.DoctorProfile) error
	FindByUserIDFunc  func(userID uuid.UUID) (*entity.DoctorProfile, error)
	FindByStatusFunc  func(status entity.ActivationStatus) ([]entity.DoctorProfile, error)
	CountByStatusFunc func(status entity.ActivationStatus) (int64, error)
	UpdateFunc        func(profile *entity.DoctorProfile) error
	DeleteFunc        func(userID uuid.UUID) error

	UpdatedProfiles []*entity.DoctorProfile
	DeletedIDs      []uuid.UUID
}

func (f *fakeDoctorProfileRepo) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(profile)
	}
	return nil
}

func (f *fakeDoctorProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	if f.FindByUserIDFunc != nil {
		return f.FindByUserIDFunc(userID)
	}
	return nil, nil
}

func (f *fakeDoctorProfileRepo) FindByStatus(db *gorm.DB, status entity.ActivationStatus) ([]entity.DoctorProfile, error) {
	if f.FindByStatusFunc != nil {
		return f.FindByStatusFunc(status)
	}
	return nil, nil
}

func (f *fakeDoctorProfileRepo) CountByStatus(db *gorm.DB, status entity.ActivationStatus) (int64, error) {
	if f.CountByStatusFunc != nil {
		return f.CountByStatusFunc(status)
	}
	return 0, nil
}

func (f *fakeDoctorProfileRepo) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	f.UpdatedProfiles = append(f.UpdatedProfiles, profile)
	if f.UpdateFunc != nil {
		return f.UpdateFunc(profile)
	}
	return nil
}

func (f *fakeDoctorProfileRepo) Delete(db *gorm.DB, userID uuid.UUID) error {
	f.DeletedIDs = append(f.DeletedIDs, userID)
	if f.DeleteFunc != nil {
		return f.DeleteFunc(userID)
	}
	return nil
}

// --- fake AppointmentRepository ---

var _ repository.AppointmentRepository = (*fakeAppointmentRepo)(nil)

type fakeAppointmentRepo struct {
	CreateFunc                   func(appointment *entity.Appointment) error
	FindByIDFunc                 func(id uuid.UUID) (*entity.Appointment, error)
	FindByDoctorIDFunc           func(doctorID uuid.UUID) ([]entity.Appointment, error)
	FindByPatientIDFunc          func(patientID uuid.UUID) ([]entity.Appointment, error)
	FindUpcomingByDoctorIDFunc   func(doctorID uuid.UUID, now time.Time) ([]entity.Appointment, error)
	UpdateFunc                   func(appointment *entity.Appointment) error
	DeleteByDoctorIDFunc         func(doctorID uuid.UUID) (int64, error)
	DeleteByPatientIDOrEmailFunc func(patientID uuid.UUID, patientEmail string) (int64, error)
	UpdatePatientEmailFunc       func(oldEmail, newEmail string) (int64, error)

	Created []*entity.Appointment
	Updated []*entity.Appointment
}

func (f *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	f.Created = append(f.Created, appointment)
	if f.CreateFunc != nil {
		return f.CreateFunc(appointment)
	}
	return nil
}

func (f *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(id)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	if f.FindByDoctorIDFunc != nil {
		return f.FindByDoctorIDFunc(doctorID)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	if f.FindByPatientIDFunc != nil {
		return f.FindByPatientIDFunc(patientID)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindUpcomingByDoctorID(db *gorm.DB, doctorID uuid.UUID, now time.Time) ([]entity.Appointment, error) {
	if f.FindUpcomingByDoctorIDFunc != nil {
		return f.FindUpcomingByDoctorIDFunc(doctorID, now)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	f.Updated = append(f.Updated, appointment)
	if f.UpdateFunc != nil {
		return f.UpdateFunc(appointment)
	}
	return nil
}

func (f *fakeAppointmentRepo) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	if f.DeleteByDoctorIDFunc != nil {
		return f.DeleteByDoctorIDFunc(doctorID)
	}
	return 0, nil
}

func (f *fakeAppointmentRepo) DeleteByPatientIDOrEmail(db *gorm.DB, patientID uuid.UUID, patientEmail string) (int64, error) {
	if f.DeleteByPatientIDOrEmailFunc != nil {
		return f.DeleteByPatientIDOrEmailFunc(patientID, patientEmail)
	}
	return 0, nil
}

func (f *fakeAppointmentRepo) UpdatePatientEmail(db *gorm.DB, oldEmail, newEmail string) (int64, error) {
	if f.UpdatePatientEmailFunc != nil {
		return f.UpdatePatientEmailFunc(oldEmail, newEmail)
	}
	return 0, nil
}

// --- fake AuditLogRepository ---

var _ repository.AuditLogRepository = (*fakeAuditLogRepo)(nil)

type fakeAuditLogRepo struct {
	Entries []*entity.AuditLog
	Err     error
}

func (f *fakeAuditLogRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	if f.Err != nil {
		return f.Err
	}
	f.Entries = append(f.Entries, log)
	return nil
}

func (f *fakeAuditLogRepo) FindRecent(db *gorm.DB, limit int) ([]entity.AuditLog, error) {
	out := make([]entity.AuditLog, 0, len(f.Entries))
	for _, e := range f.Entries {
		out = append(out, *e)
	}
	return out, nil
}

var errRepoDown = errors.New("connection refused")
