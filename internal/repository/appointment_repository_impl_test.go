package repository

import (
	"regexp"
	"testing"
	"time"

	"healthapp-backend/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

func TestAppointmentRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "appointments" WHERE id = $1 ORDER BY "appointments"."id" LIMIT $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	appointment, err := repo.FindByID(db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, appointment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_DeleteByPatientIDOrEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	patientID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "appointments" WHERE patient_id = $1 OR patient_email = $2`)).
		WithArgs(patientID, "patient@example.com").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	removed, err := repo.DeleteByPatientIDOrEmail(db, patientID, "patient@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_UpdatePatientEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "appointments" SET "patient_email"=$1 WHERE patient_email = $2`)).
		WithArgs("new@example.com", "old@example.com").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	updated, err := repo.UpdatePatientEmail(db, "old@example.com", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_FindUpcomingFiltersScheduled(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	doctorID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "appointments" WHERE doctor_id = $1 AND scheduled_at >= $2 AND status = $3 ORDER BY scheduled_at ASC`)).
		WithArgs(doctorID, now, string(entity.AppointmentStatusScheduled)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "status"}).
			AddRow(uuid.New(), doctorID, string(entity.AppointmentStatusScheduled)))

	appointments, err := repo.FindUpcomingByDoctorID(db, doctorID, now)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
