package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "bi-mat-test")

	userID := uuid.New().String()
	token, err := GenerateToken(userID, "teacher")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "teacher", claims.Role)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "bi-mat-mot")
	token, err := GenerateToken(uuid.New().String(), "student")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "bi-mat-hai")
	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "bi-mat-test")
	_, err := VerifyToken("khong.phai.jwt")
	assert.Error(t, err)
}

func TestGenerateTokenMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := GenerateToken(uuid.New().String(), "student")
	assert.Error(t, err)
}
