package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCheckPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret", string(hash)))
	assert.False(t, CheckPasswordHash("guess", string(hash)))
	assert.False(t, CheckPasswordHash("s3cret", "not-a-hash"))
}

func TestJWTRoundTrip(t *testing.T) {
	now := time.Now()
	token, err := GenerateJWT([]byte("k"), RoleOrganizer, time.Hour, now)
	require.NoError(t, err)

	claims, err := ParseJWT([]byte("k"), token)
	require.NoError(t, err)
	assert.Equal(t, RoleOrganizer, claims[ClaimRole])
	assert.EqualValues(t, now.Add(time.Hour).Unix(), claims[ClaimExp])

	_, err = ParseJWT([]byte("other"), token)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = ParseJWT([]byte("k"), "garbage")
	require.ErrorIs(t, err, ErrInvalidToken)
}
