package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/hostreg/internal/config"
)

func testService(secret, issuer string) *JWTService {
	return NewJWTService(&config.Config{
		Security: config.SecurityConfig{JWTSecret: secret, JWTIssuer: issuer},
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testService("secret", "")

	token, err := svc.GenerateToken("42", []string{"user", "admin"}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	id := claims.Identity()
	assert.Equal(t, "42", id.Sub)
	assert.Equal(t, []string{"user", "admin"}, id.Scopes)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testService("secret", "")

	token, err := svc.GenerateToken("42", nil, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := testService("one", "").GenerateToken("42", nil, time.Hour)
	require.NoError(t, err)

	_, err = testService("two", "").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Issuer(t *testing.T) {
	token, err := testService("secret", "other").GenerateToken("42", nil, time.Hour)
	require.NoError(t, err)

	_, err = testService("secret", "auth.example.org").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_NumericSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":    7,
		"scopes": map[string]interface{}{"pwa": []string{"user"}},
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	parsed, err := testService("secret", "").ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7", parsed.Identity().Sub)
	assert.Equal(t, []string{"user"}, parsed.Identity().Scopes)
}

func TestValidateToken_MissingSubject(t *testing.T) {
	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = testService("secret", "").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
