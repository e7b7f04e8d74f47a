package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateSessionToken(t *testing.T) {
	service := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := service.GenerateSessionToken(userID, "jane@example.com", "staff")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "staff", claims.Role)

	// 10 day validity window
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, SessionTokenExpiry-time.Minute)
	assert.LessOrEqual(t, remaining, SessionTokenExpiry)
}

func TestValidateTokenFailures(t *testing.T) {
	service := NewJWTService("test-secret")
	userID := uuid.New()

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret")
		token, err := other.GenerateSessionToken(userID, "jane@example.com", "staff")
		assert.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := &Claims{
			UserID: userID,
			Email:  "jane@example.com",
			Role:   "staff",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret"))
		assert.NoError(t, err)

		_, err = service.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing method", func(t *testing.T) {
		// alg=none token must be rejected
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: userID})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		assert.NoError(t, err)

		_, err = service.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
