package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/tournament-pairing/utils"
)

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(string(hash), "secret", nil).(*authService)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	res, err := svc.Login(context.Background(), LoginInput{Password: "letmein"})
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(24*time.Hour), res.ExpiresAt)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(context.Background(), LoginInput{Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginInput{})
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestLoginTokenIsAccepted(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	res, err := NewAuthService(string(hash), "secret", nil).Login(context.Background(), LoginInput{Password: "letmein"})
	require.NoError(t, err)

	claims, err := utils.ParseJWT([]byte("secret"), res.Token)
	require.NoError(t, err)
	assert.Equal(t, utils.RoleOrganizer, claims[utils.ClaimRole])
}
