package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/korelium/catalog-service/internal/auth/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestToken(t *testing.T, tg *service.TokenGenerator, role string) string {
	t.Helper()
	token, err := tg.GenerateToken(1, "admin@korelium.org", role)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	tg := service.NewTokenGenerator("test-secret", 2*time.Hour)

	handler := AuthMiddleware(tg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetAdminClaims(r.Context())
		require.True(t, ok)
		assert.Equal(t, "admin@korelium.org", claims.Email)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/courses", nil)
		req.Header.Set("Authorization", "Bearer "+newTestToken(t, tg, "course_creator"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid cookie token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/courses", nil)
		req.AddCookie(&http.Cookie{Name: "admin_token", Value: newTestToken(t, tg, "course_creator")})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/courses", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Authentication required")
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/courses", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid or expired token")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := service.NewTokenGenerator("other-secret", 2*time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/courses", nil)
		req.Header.Set("Authorization", "Bearer "+newTestToken(t, other, "course_creator"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequirePermission(t *testing.T) {
	tg := service.NewTokenGenerator("test-secret", 2*time.Hour)

	newHandler := func(perms ...Permission) http.Handler {
		return AuthMiddleware(tg)(RequirePermission(perms...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))
	}

	tests := []struct {
		name         string
		role         string
		permission   Permission
		expectedCode int
	}{
		{name: "creator can create", role: "course_creator", permission: PermCreateCourse, expectedCode: http.StatusOK},
		{name: "creator can read", role: "course_creator", permission: PermReadCourse, expectedCode: http.StatusOK},
		{name: "creator cannot delete", role: "course_creator", permission: PermDeleteCourse, expectedCode: http.StatusForbidden},
		{name: "manager can update", role: "course_manager", permission: PermUpdateCourse, expectedCode: http.StatusOK},
		{name: "manager can delete", role: "course_manager", permission: PermDeleteCourse, expectedCode: http.StatusOK},
		{name: "manager cannot create", role: "course_manager", permission: PermCreateCourse, expectedCode: http.StatusForbidden},
		{name: "comment manager cannot read courses", role: "comment_manager", permission: PermReadCourse, expectedCode: http.StatusForbidden},
		{name: "unknown role has no permissions", role: "superuser", permission: PermReadCourse, expectedCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/courses", nil)
			req.Header.Set("Authorization", "Bearer "+newTestToken(t, tg, tt.role))
			rec := httptest.NewRecorder()

			newHandler(tt.permission).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestRequirePermission_WithoutAuth(t *testing.T) {
	handler := RequirePermission(PermReadCourse)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("course_creator"))
	assert.True(t, ValidRole("course_manager"))
	assert.True(t, ValidRole("comment_manager"))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}
