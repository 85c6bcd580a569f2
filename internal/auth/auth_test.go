package auth

import (
	"testing"
	"time"

	"recruit_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := m.GenerateToken("user-1", models.UserRoleEmployer)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserRoleEmployer, claims.Role)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	issuer, _ := NewTokenManager("one", time.Hour)
	verifier, _ := NewTokenManager("two", time.Hour)

	token, _, err := issuer.GenerateToken("user-1", models.UserRoleApplicant)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := m.GenerateToken("user-1", models.UserRoleApplicant)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("passw0rd!")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("passw0rd!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))

	assert.NoError(t, ValidatePassword("abcdefg1"))
	assert.ErrorIs(t, ValidatePassword("short1"), ErrWeakPassword)
	assert.ErrorIs(t, ValidatePassword("onlyletters"), ErrWeakPassword)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(models.UserRoleApplicant, PermApply))
	assert.False(t, HasPermission(models.UserRoleEmployer, PermApply))
	assert.True(t, HasPermission(models.UserRoleAdmin, PermAdminister))
	assert.True(t, HasPermission(models.UserRoleEmployer, PermManagePipeline))
	// ADMIN читает все, но воронку и вакансии не меняет
	assert.False(t, HasPermission(models.UserRoleAdmin, PermManagePipeline))
	assert.False(t, HasPermission(models.UserRoleAdmin, PermManageJobOrders))
	assert.False(t, HasPermission(models.UserRole("GUEST"), PermApply))
}
