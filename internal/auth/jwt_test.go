package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"projectmate-service/internal/auth"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m, err := auth.NewTokenManager("test-secret", time.Hour)
	assert.NoError(t, err)

	userID := uuid.New()
	token, err := m.GenerateToken(userID, "alice@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedID, err := m.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	m, err := auth.NewTokenManager("test-secret", -time.Minute)
	assert.NoError(t, err)

	token, err := m.GenerateToken(uuid.New(), "alice@example.com")
	assert.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	issuer, _ := auth.NewTokenManager("secret-one", time.Hour)
	verifier, _ := auth.NewTokenManager("secret-two", time.Hour)

	token, err := issuer.GenerateToken(uuid.New(), "alice@example.com")
	assert.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestTokenManager_EmptySecret(t *testing.T) {
	m, err := auth.NewTokenManager("", time.Hour)
	assert.Error(t, err)
	assert.Nil(t, m)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret-pass"))
	assert.False(t, auth.CheckPassword(hash, "wrong-pass"))
}
