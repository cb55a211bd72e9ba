package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("fan@arena.io"))
	assert.False(t, IsValidEmail("fan@arena"))
	assert.False(t, IsValidEmail("not an email"))
	assert.Equal(t, "fan@arena.io", NormalizeEmail("  Fan@Arena.IO "))
}

func TestGenerateJWT(t *testing.T) {
	secret := []byte("test-secret")
	now := time.Now()

	signed, err := GenerateJWT(secret, 42, "admin", now)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, float64(now.Add(TokenTTL).Unix()), claims["exp"])
}
