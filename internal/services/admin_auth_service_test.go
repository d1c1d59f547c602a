package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/korelium/catalog-service/internal/auth/service"
	"github.com/korelium/catalog-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// mockAdminRepository is a mock implementation of AdminRepository
type mockAdminRepository struct {
	admin     *models.Admin
	exists    bool
	createErr error
	existsErr error

	created *models.Admin
}

func (m *mockAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if m.createErr != nil {
		return m.createErr
	}
	admin.ID = 1
	m.created = admin
	return nil
}

func (m *mockAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if m.admin == nil || m.admin.Email != email {
		return nil, models.ErrAdminNotFound
	}
	return m.admin, nil
}

func (m *mockAdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.exists, m.existsErr
}

func newTestAdminAuthService(repo *mockAdminRepository) *adminAuthService {
	logger, _ := zap.NewDevelopment()
	tokenGenerator := service.NewTokenGenerator("test-secret", 2*time.Hour)
	return NewAdminAuthService(repo, tokenGenerator, logger)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAdminAuthService_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockAdminRepository{
			admin: &models.Admin{
				ID:           1,
				Name:         "Admin",
				Email:        "admin@korelium.org",
				PasswordHash: hashPassword(t, "correct-password"),
				Role:         "course_creator",
			},
		}
		svc := newTestAdminAuthService(repo)

		result, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "admin@korelium.org",
			Password: "correct-password",
		})

		assert.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "Admin", result.Username)
		assert.Equal(t, "course_creator", result.Role)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := &mockAdminRepository{}
		svc := newTestAdminAuthService(repo)

		result, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "missing@korelium.org",
			Password: "whatever",
		})

		assert.ErrorIs(t, err, models.ErrAdminNotFound)
		assert.Nil(t, result)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &mockAdminRepository{
			admin: &models.Admin{
				ID:           1,
				Email:        "admin@korelium.org",
				PasswordHash: hashPassword(t, "correct-password"),
				Role:         "course_creator",
			},
		}
		svc := newTestAdminAuthService(repo)

		result, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "admin@korelium.org",
			Password: "wrong-password",
		})

		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
		assert.Nil(t, result)
	})

	t.Run("missing credentials", func(t *testing.T) {
		repo := &mockAdminRepository{}
		svc := newTestAdminAuthService(repo)

		result, err := svc.Login(context.Background(), &models.LoginRequest{})

		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Nil(t, result)
	})
}

func TestAdminAuthService_CreateAdmin(t *testing.T) {
	validRequest := func() *models.CreateAdminRequest {
		return &models.CreateAdminRequest{
			Name:     "New Admin",
			Email:    "new@korelium.org",
			Password: "password123",
			Role:     "course_manager",
		}
	}

	t.Run("success hashes the password", func(t *testing.T) {
		repo := &mockAdminRepository{}
		svc := newTestAdminAuthService(repo)

		info, err := svc.CreateAdmin(context.Background(), validRequest())

		assert.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, 1, info.ID)
		assert.Equal(t, "new@korelium.org", info.Email)
		assert.Equal(t, "course_manager", info.Role)

		require.NotNil(t, repo.created)
		assert.NotEqual(t, "password123", repo.created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("password123")))
	})

	t.Run("missing fields", func(t *testing.T) {
		repo := &mockAdminRepository{}
		svc := newTestAdminAuthService(repo)

		req := validRequest()
		req.Password = ""
		info, err := svc.CreateAdmin(context.Background(), req)

		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Nil(t, info)
	})

	t.Run("unknown role", func(t *testing.T) {
		repo := &mockAdminRepository{}
		svc := newTestAdminAuthService(repo)

		req := validRequest()
		req.Role = "superuser"
		info, err := svc.CreateAdmin(context.Background(), req)

		assert.ErrorIs(t, err, models.ErrInvalidRole)
		assert.Nil(t, info)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &mockAdminRepository{exists: true}
		svc := newTestAdminAuthService(repo)

		info, err := svc.CreateAdmin(context.Background(), validRequest())

		assert.ErrorIs(t, err, models.ErrEmailTaken)
		assert.Nil(t, info)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mockAdminRepository{createErr: errors.New("database error")}
		svc := newTestAdminAuthService(repo)

		info, err := svc.CreateAdmin(context.Background(), validRequest())

		assert.Error(t, err)
		assert.Nil(t, info)
	})
}
