package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/korelium/catalog-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAdminAuthService is a mock implementation of AdminAuthService
type mockAdminAuthService struct {
	loginResult *models.LoginResult
	loginErr    error
	adminInfo   *models.AdminInfo
	createErr   error
}

func (m *mockAdminAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginResult, nil
}

func (m *mockAdminAuthService) CreateAdmin(ctx context.Context, req *models.CreateAdminRequest) (*models.AdminInfo, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.adminInfo, nil
}

func newTestAdminAuthHandler(svc AdminAuthService) *AdminAuthHandler {
	logger, _ := zap.NewDevelopment()
	return NewAdminAuthHandler(svc, logger)
}

func TestAdminAuthHandler_Login_FlatBody(t *testing.T) {
	handler := newTestAdminAuthHandler(&mockAdminAuthService{
		loginResult: &models.LoginResult{
			Username: "Admin",
			Role:     "course_manager",
			Token:    "signed-token",
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/login",
		strings.NewReader(`{"email":"admin@korelium.org","password":"secret"}`))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// The admin frontend reads these fields off the top level
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, "Admin", body["username"])
	assert.Equal(t, "course_manager", body["role"])
	assert.Equal(t, "signed-token", body["token"])
	assert.NotContains(t, body, "data")
}

func TestAdminAuthHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name         string
		loginErr     error
		expectedCode int
	}{
		{name: "unknown email", loginErr: models.ErrAdminNotFound, expectedCode: http.StatusNotFound},
		{name: "wrong password", loginErr: models.ErrInvalidCredentials, expectedCode: http.StatusUnauthorized},
		{name: "missing fields", loginErr: models.ErrValidation, expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestAdminAuthHandler(&mockAdminAuthService{loginErr: tt.loginErr})

			req := httptest.NewRequest(http.MethodPost, "/admin/login",
				strings.NewReader(`{"email":"admin@korelium.org","password":"secret"}`))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestAdminAuthHandler_Login_InvalidBody(t *testing.T) {
	handler := newTestAdminAuthHandler(&mockAdminAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminAuthHandler_CreateAdmin(t *testing.T) {
	tests := []struct {
		name         string
		svc          *mockAdminAuthService
		expectedCode int
	}{
		{
			name: "success",
			svc: &mockAdminAuthService{
				adminInfo: &models.AdminInfo{ID: 1, Email: "new@korelium.org", Role: "course_creator"},
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "duplicate email",
			svc:          &mockAdminAuthService{createErr: models.ErrEmailTaken},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "unknown role",
			svc:          &mockAdminAuthService{createErr: models.ErrInvalidRole},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestAdminAuthHandler(tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/admin",
				strings.NewReader(`{"name":"New","email":"new@korelium.org","password":"secret","role":"course_creator"}`))
			rec := httptest.NewRecorder()

			handler.CreateAdmin(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			if tt.expectedCode == http.StatusCreated {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "Admin created successfully", body["message"])
				admin := body["admin"].(map[string]any)
				assert.Equal(t, "new@korelium.org", admin["email"])
			}
		})
	}
}
