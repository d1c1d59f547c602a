package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/korelium/catalog-service/internal/models"
	"go.uber.org/zap"
)

// AdminAuthService is the interface that wraps admin login and account creation
type AdminAuthService interface {
	// Login verifies the credentials and issues a signed token.
	// Returns models.ErrAdminNotFound for an unknown email and
	// models.ErrInvalidCredentials for a wrong password.
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	// CreateAdmin creates a new admin account.
	// Returns models.ErrEmailTaken for a duplicate email and
	// models.ErrInvalidRole for an unknown role.
	CreateAdmin(ctx context.Context, req *models.CreateAdminRequest) (*models.AdminInfo, error)
}

// AdminAuthHandler handles admin authentication HTTP requests
type AdminAuthHandler struct {
	BaseHandler
	service AdminAuthService
}

// NewAdminAuthHandler creates a new admin auth handler
func NewAdminAuthHandler(service AdminAuthService, logger *zap.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers the admin auth routes. Login is public; creating
// an admin requires an authenticated admin.
// Note: This assumes the router is already scoped to /api
func (h *AdminAuthHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Post("/admin/login", h.Login)
	r.With(auth).Post("/admin", h.CreateAdmin)
}

// Login handles POST /api/admin/login
// @Summary Admin login
// @Description Authenticate an admin with email and password, returning a signed token
// @Tags admin-auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} map[string]any "Login result with token"
// @Failure 400 {object} map[string]any "Invalid request"
// @Failure 401 {object} map[string]any "Invalid password"
// @Failure 404 {object} map[string]any "Admin not found"
// @Failure 500 {object} map[string]any "Internal server error"
// @Router /api/admin/login [post]
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAdminNotFound):
			h.RespondError(w, http.StatusNotFound, "Admin not found")
		case errors.Is(err, models.ErrInvalidCredentials):
			h.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, models.ErrValidation):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.Logger.Error("admin login failed", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	// Flat body: the admin frontend reads token, username and role off the
	// top level, not out of a data envelope
	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message":  "Login successful",
		"username": result.Username,
		"role":     result.Role,
		"token":    result.Token,
	})
}

// CreateAdmin handles POST /api/admin
// @Summary Create an admin account
// @Description Create a new admin account with one of the known roles. Requires authentication.
// @Tags admin-auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateAdminRequest true "New admin account"
// @Success 201 {object} map[string]any "Admin created"
// @Failure 400 {object} map[string]any "Invalid request or unknown role"
// @Failure 401 {object} map[string]any "Authentication required"
// @Failure 409 {object} map[string]any "Email already registered"
// @Failure 500 {object} map[string]any "Internal server error"
// @Router /api/admin [post]
func (h *AdminAuthHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := h.service.CreateAdmin(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmailTaken):
			h.RespondError(w, http.StatusConflict, "An admin with this email already exists")
		case errors.Is(err, models.ErrInvalidRole):
			h.RespondError(w, http.StatusBadRequest, "Unknown admin role")
		case errors.Is(err, models.ErrValidation):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.Logger.Error("failed to create admin", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "Admin created successfully",
		"admin":   admin,
	})
}
