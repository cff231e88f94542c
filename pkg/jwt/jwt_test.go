package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager("", time.Minute, "auth-service")
	assert.Error(t, err)
}

func TestGenerateAndValidate(t *testing.T) {
	m, err := NewManager("test-secret", 15*time.Minute, "auth-service")
	assert.NoError(t, err)

	token, err := m.Generate("user-1", "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "auth-service", claims.Issuer)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m1, err := NewManager("secret-one", time.Minute, "auth-service")
	assert.NoError(t, err)
	m2, err := NewManager("secret-two", time.Minute, "auth-service")
	assert.NoError(t, err)

	token, err := m1.Generate("user-1", "alice")
	assert.NoError(t, err)

	_, err = m2.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m, err := NewManager("test-secret", -time.Minute, "auth-service")
	assert.NoError(t, err)

	token, err := m.Generate("user-1", "alice")
	assert.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	ours, err := NewManager("test-secret", time.Minute, "auth-service")
	assert.NoError(t, err)
	theirs, err := NewManager("test-secret", time.Minute, "other-service")
	assert.NoError(t, err)

	token, err := theirs.Generate("user-1", "alice")
	assert.NoError(t, err)

	_, err = ours.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m, err := NewManager("test-secret", time.Minute, "auth-service")
	assert.NoError(t, err)

	_, err = m.Validate("not-a-token")
	assert.Error(t, err)
}
