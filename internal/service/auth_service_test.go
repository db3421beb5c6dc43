package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusq/campusq-backend/internal/config"
	"github.com/campusq/campusq-backend/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		BcryptCost:     4,
		MaxUploadBytes: 5 * 1024 * 1024,
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	auth := NewAuthService(testConfig())

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, auth.CheckPassword(hash, "s3cret-pass"))
	assert.ErrorIs(t, auth.CheckPassword(hash, "wrong-pass"), ErrInvalidCredentials)
}

func TestGenerateAndValidateToken(t *testing.T) {
	auth := NewAuthService(testConfig())
	user := &model.User{ID: uuid.New(), Role: model.RoleFaculty}

	token, err := auth.GenerateToken(user)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleFaculty, claims.Role)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.JWTExpiry = -time.Minute
	auth := NewAuthService(cfg)

	token, err := auth.GenerateToken(&model.User{ID: uuid.New(), Role: model.RoleStudent})
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTokenTampered(t *testing.T) {
	auth := NewAuthService(testConfig())

	token, err := auth.GenerateToken(&model.User{ID: uuid.New(), Role: model.RoleStudent})
	require.NoError(t, err)

	_, err = auth.ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	auth := NewAuthService(testConfig())
	token, err := auth.GenerateToken(&model.User{ID: uuid.New(), Role: model.RoleAdmin})
	require.NoError(t, err)

	other := NewAuthService(&config.Config{JWTSecret: "different-secret", JWTExpiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionTTLSeconds(t *testing.T) {
	cfg := testConfig()
	cfg.JWTExpiry = 168 * time.Hour
	auth := NewAuthService(cfg)

	assert.Equal(t, 7*24*3600, auth.SessionTTLSeconds())
}
