package services

import (
	"context"
	"fmt"

	authMiddleware "github.com/korelium/catalog-service/internal/auth/middleware"
	"github.com/korelium/catalog-service/internal/auth/service"
	"github.com/korelium/catalog-service/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminRepository is the interface that wraps methods for admin table data access
type AdminRepository interface {
	// Create inserts a new admin and sets its generated ID.
	Create(ctx context.Context, admin *models.Admin) error
	// GetByEmail retrieves an admin by email.
	// Returns models.ErrAdminNotFound when no admin matches.
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	// ExistsByEmail checks if an admin with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// adminAuthService implements admin login and account creation
type adminAuthService struct {
	adminRepo      AdminRepository
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewAdminAuthService creates a new admin auth service
func NewAdminAuthService(adminRepo AdminRepository, tokenGenerator *service.TokenGenerator, logger *zap.Logger) *adminAuthService {
	return &adminAuthService{
		adminRepo:      adminRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Login checks the password against the stored bcrypt hash and issues a JWT
func (s *adminAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", models.ErrValidation)
	}

	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		s.logger.Error("failed to generate admin token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResult{
		Username: admin.Name,
		Role:     admin.Role,
		Token:    token,
	}, nil
}

// CreateAdmin creates a new admin account with a bcrypt-hashed password
func (s *adminAuthService) CreateAdmin(ctx context.Context, req *models.CreateAdminRequest) (*models.AdminInfo, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, fmt.Errorf("%w: name, email, password and role are required", models.ErrValidation)
	}

	if !authMiddleware.ValidRole(req.Role) {
		return nil, models.ErrInvalidRole
	}

	exists, err := s.adminRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("failed to check admin email", zap.Error(err))
		return nil, fmt.Errorf("failed to check admin email: %w", err)
	}
	if exists {
		return nil, models.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		s.logger.Error("failed to create admin", zap.Error(err))
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return &models.AdminInfo{
		ID:    admin.ID,
		Email: admin.Email,
		Role:  admin.Role,
	}, nil
}
