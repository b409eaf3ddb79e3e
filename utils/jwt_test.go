package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-parlement-backend/utils"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	t.Setenv("JWT_EXPIRES_IN", "")

	token, err := utils.GenerateToken("admin-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-123", claims.AdminID)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "premier-secret")
	token, err := utils.GenerateToken("admin-123")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "autre-secret")
	_, err = utils.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	t.Setenv("JWT_EXPIRES_IN", "-1h")

	token, err := utils.GenerateToken("admin-123")
	require.NoError(t, err)

	_, err = utils.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	_, err := utils.VerifyToken("pas-un-token")
	assert.Error(t, err)
}
