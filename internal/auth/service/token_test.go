package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_GenerateToken(t *testing.T) {
	tg := NewTokenGenerator("test-secret", 2*time.Hour)

	token, err := tg.GenerateToken(1, "admin@korelium.org", "course_creator")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestTokenGenerator_ValidateToken(t *testing.T) {
	tg := NewTokenGenerator("test-secret", 2*time.Hour)

	token, err := tg.GenerateToken(42, "admin@korelium.org", "course_manager")
	require.NoError(t, err)

	claims, err := tg.ValidateToken(token)

	assert.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, 42, claims.AdminID)
	assert.Equal(t, "admin@korelium.org", claims.Email)
	assert.Equal(t, "course_manager", claims.Role)
}

func TestTokenGenerator_ValidateToken_WrongSecret(t *testing.T) {
	tg := NewTokenGenerator("test-secret", 2*time.Hour)
	other := NewTokenGenerator("other-secret", 2*time.Hour)

	token, err := tg.GenerateToken(1, "admin@korelium.org", "course_creator")
	require.NoError(t, err)

	claims, err := other.ValidateToken(token)

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenGenerator_ValidateToken_Expired(t *testing.T) {
	tg := NewTokenGenerator("test-secret", -time.Minute)

	token, err := tg.GenerateToken(1, "admin@korelium.org", "course_creator")
	require.NoError(t, err)

	claims, err := tg.ValidateToken(token)

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenGenerator_ValidateToken_Garbage(t *testing.T) {
	tg := NewTokenGenerator("test-secret", 2*time.Hour)

	claims, err := tg.ValidateToken("not-a-token")

	assert.Error(t, err)
	assert.Nil(t, claims)
}
