package usecase

import (
	"context"
	"testing"
	"time"

	"healthapp-backend/config"
	"healthapp-backend/internal/delivery/dto"
	"healthapp-backend/internal/domain/entity"
	"healthapp-backend/internal/service"
	"healthapp-backend/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestAuth_RegisterPatientBecomesActiveUser(t *testing.T) {
	db, mock := newTestDB(t)
	log := testLogger()

	var created *entity.User
	userRepo := &fakeUserRepo{
		CreateFunc: func(user *entity.User) error {
			created = user
			return nil
		},
	}
	auditRepo := &fakeAuditLogRepo{}

	uc := NewAuthUsecase(db, log, userRepo, &fakeRoleRepo{}, &fakeDoctorProfileRepo{},
		service.NewAuditService(db, log, auditRepo), testJWTService(), testRedis(t))

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:    "Pat@Example.com",
		Password: "supersecret",
		FullName: "Pat Smith",
	})
	require.NoError(t, err)

	assert.Equal(t, "pat@example.com", resp.Email)
	assert.Contains(t, resp.Roles, entity.RoleUser)
	assert.Equal(t, string(entity.AccountStatusActive), resp.AccountStatus)
	assert.True(t, resp.IsActivated)

	require.NotNil(t, created)
	assert.NotEqual(t, "supersecret", created.Password, "password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("supersecret")))

	require.Len(t, auditRepo.Entries, 1)
	assert.Equal(t, entity.AuditActionUserRegister, auditRepo.Entries[0].Action)
}

func TestAuth_RegisterDoctorStartsPending(t *testing.T) {
	db, mock := newTestDB(t)
	log := testLogger()

	var createdProfile *entity.DoctorProfile
	profileRepo := &fakeDoctorProfileRepo{
		CreateFunc: func(profile *entity.DoctorProfile) error {
			createdProfile = profile
			return nil
		},
	}

	uc := NewAuthUsecase(db, log, &fakeUserRepo{}, &fakeRoleRepo{}, profileRepo,
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), testJWTService(), testRedis(t))

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.RegisterDoctor(context.Background(), &dto.RegisterDoctorRequest{
		Email:                "doc@example.com",
		Password:             "supersecret",
		FullName:             "Doc Brown",
		ContactEmail:         "clinic@example.com",
		MedicalLicenseNumber: "LIC-3003",
		Specialization:       "Neurology",
		YearsOfExperience:    12,
		ConsultationFee:      "150.00",
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Roles, entity.RoleDoctor)
	assert.Equal(t, string(entity.AccountStatusPendingVerification), resp.AccountStatus)
	assert.False(t, resp.IsActivated)

	require.NotNil(t, createdProfile)
	assert.Equal(t, entity.ActivationStatusPending, createdProfile.ActivationStatus)
	assert.False(t, createdProfile.ActivationRequestDate.IsZero())
	assert.Equal(t, "150", createdProfile.ConsultationFee.String())
}

func TestAuth_RegisterDoctorRejectsBadFee(t *testing.T) {
	db, _ := newTestDB(t)
	log := testLogger()

	uc := NewAuthUsecase(db, log, &fakeUserRepo{}, &fakeRoleRepo{}, &fakeDoctorProfileRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), testJWTService(), testRedis(t))

	for _, fee := range []string{"abc", "-10"} {
		_, err := uc.RegisterDoctor(context.Background(), &dto.RegisterDoctorRequest{
			Email:                "doc@example.com",
			Password:             "supersecret",
			FullName:             "Doc Brown",
			MedicalLicenseNumber: "LIC-3003",
			Specialization:       "Neurology",
			ConsultationFee:      fee,
		})
		assert.ErrorIs(t, err, ErrInvalidFee)
	}
}

func TestAuth_LoginUnknownEmail(t *testing.T) {
	db, _ := newTestDB(t)
	log := testLogger()

	uc := NewAuthUsecase(db, log, &fakeUserRepo{}, &fakeRoleRepo{}, &fakeDoctorProfileRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), testJWTService(), testRedis(t))

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_LoginEmbedsRolesInToken(t *testing.T) {
	db, _ := newTestDB(t)
	log := testLogger()

	hashed, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userID := uuid.New()
	userRepo := &fakeUserRepo{
		FindByEmailFunc: func(email string) (*entity.User, error) {
			return &entity.User{
				ID:       userID,
				Email:    email,
				Password: string(hashed),
				Roles:    []entity.Role{{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor}},
			}, nil
		},
	}

	jwtService := testJWTService()
	uc := NewAuthUsecase(db, log, userRepo, &fakeRoleRepo{}, &fakeDoctorProfileRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), jwtService, testRedis(t))

	tokens, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "doc@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{entity.RoleDoctor}, claims.Roles)
	assert.Equal(t, jwt.AccessToken, claims.TokenType)
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	db, _ := newTestDB(t)
	log := testLogger()

	hashed, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		FindByEmailFunc: func(email string) (*entity.User, error) {
			return &entity.User{ID: uuid.New(), Email: email, Password: string(hashed)}, nil
		},
	}

	uc := NewAuthUsecase(db, log, userRepo, &fakeRoleRepo{}, &fakeDoctorProfileRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), testJWTService(), testRedis(t))

	_, err = uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "pat@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_RefreshTokenRotates(t *testing.T) {
	db, _ := newTestDB(t)
	log := testLogger()

	hashed, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		FindByEmailFunc: func(email string) (*entity.User, error) {
			return &entity.User{ID: uuid.New(), Email: email, Password: string(hashed)}, nil
		},
	}

	jwtService := testJWTService()
	uc := NewAuthUsecase(db, log, userRepo, &fakeRoleRepo{}, &fakeDoctorProfileRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), jwtService, testRedis(t))

	tokens, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "pat@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	refreshed, err := uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The consumed refresh token must not work twice
	_, err = uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuth_RefreshRejectsAccessToken(t *testing.T) {
	db, _ := newTestDB(t)
	log := testLogger()

	jwtService := testJWTService()
	uc := NewAuthUsecase(db, log, &fakeUserRepo{}, &fakeRoleRepo{}, &fakeDoctorProfileRepo{},
		service.NewAuditService(db, log, &fakeAuditLogRepo{}), jwtService, testRedis(t))

	accessToken, _, err := jwtService.GenerateAccessToken(uuid.New(), "pat@example.com", nil)
	require.NoError(t, err)

	_, err = uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: accessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
