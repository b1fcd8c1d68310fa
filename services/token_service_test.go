package services_test

import (
	"testing"

	"federation-backend/services"

	"github.com/stretchr/testify/assert"
)

func TestTokenService_ManagerRoundTrip(t *testing.T) {
	tokens := services.NewTokenService("test-secret")

	tokenString, err := tokens.GenerateManagerToken("m1", "manager@example.org", "c1")
	assert.NoError(t, err)

	claims, err := tokens.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "m1", claims.Subject)
	assert.Equal(t, "manager@example.org", claims.Email)
	assert.Equal(t, "c1", claims.ClubID)
	assert.Equal(t, services.RoleManager, claims.Role)
}

func TestTokenService_AdminToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")

	tokenString, err := tokens.GenerateAdminToken()
	assert.NoError(t, err)

	claims, err := tokens.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, services.RoleAdmin, claims.Role)
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	other := services.NewTokenService("other-secret")

	tokenString, err := tokens.GenerateManagerToken("m1", "manager@example.org", "c1")
	assert.NoError(t, err)

	_, err = other.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestTokenService_GarbageRejected(t *testing.T) {
	tokens := services.NewTokenService("test-secret")

	_, err := tokens.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordValidator(t *testing.T) {
	pv := services.NewPasswordValidator()

	assert.ErrorIs(t, pv.ValidatePassword("short1A"), services.ErrPasswordTooShort)
	assert.ErrorIs(t, pv.ValidatePassword("alllowercase1"), services.ErrPasswordNoUpper)
	assert.ErrorIs(t, pv.ValidatePassword("ALLUPPERCASE1"), services.ErrPasswordNoLower)
	assert.ErrorIs(t, pv.ValidatePassword("NoNumbersHere"), services.ErrPasswordNoNumber)
	assert.NoError(t, pv.ValidatePassword("Acceptable9"))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := services.HashPassword("Acceptable9")
	assert.NoError(t, err)
	assert.NotEqual(t, "Acceptable9", hash)

	assert.NoError(t, services.ComparePassword(hash, "Acceptable9"))
	assert.Error(t, services.ComparePassword(hash, "WrongPassword1"))
}
