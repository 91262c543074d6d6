package userservice_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	userservice "github.com/goliatone/user-service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-signing-key")

const hourMs = 3_600_000

func TestTokenService_Issue(t *testing.T) {
	service := userservice.NewTokenService(testSigningKey, hourMs, "", noopLogger{})

	token, err := service.Issue("peperone@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("carries subject, issuer and expiry", func(t *testing.T) {
		claims := &userservice.JWTClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			return testSigningKey, nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid)

		assert.Equal(t, "peperone@example.com", claims.Subject())
		assert.Equal(t, userservice.TokenIssuer, claims.Issuer())
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires(), 10*time.Second)
		assert.WithinDuration(t, time.Now(), claims.IssuedAt(), 10*time.Second)
	})
}

func TestTokenService_Validate(t *testing.T) {
	service := userservice.NewTokenService(testSigningKey, hourMs, "", noopLogger{})

	t.Run("accepts a freshly issued token", func(t *testing.T) {
		token, err := service.Issue("peperone@example.com")
		require.NoError(t, err)

		assert.True(t, service.Validate(token))
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		shortLived := userservice.NewTokenService(testSigningKey, 1, "", noopLogger{})

		token, err := shortLived.Issue("peperone@example.com")
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		assert.False(t, shortLived.Validate(token))
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		other := userservice.NewTokenService([]byte("some-other-key"), hourMs, "", noopLogger{})

		token, err := other.Issue("peperone@example.com")
		require.NoError(t, err)

		assert.False(t, service.Validate(token))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		assert.False(t, service.Validate("not.a.jwt"))
		assert.False(t, service.Validate(""))
	})

	t.Run("rejects a token from a different issuer", func(t *testing.T) {
		other := userservice.NewTokenService(testSigningKey, hourMs, "SomeOtherService", noopLogger{})

		token, err := other.Issue("peperone@example.com")
		require.NoError(t, err)

		assert.False(t, service.Validate(token))
	})
}

func TestTokenService_Subject(t *testing.T) {
	service := userservice.NewTokenService(testSigningKey, hourMs, "", noopLogger{})

	t.Run("returns the email for a valid token", func(t *testing.T) {
		token, err := service.Issue("peperone@example.com")
		require.NoError(t, err)

		subject, err := service.Subject(token)
		require.NoError(t, err)
		assert.Equal(t, "peperone@example.com", subject)
	})

	t.Run("fails for an invalid token", func(t *testing.T) {
		subject, err := service.Subject("not.a.jwt")
		assert.Error(t, err)
		assert.Empty(t, subject)
	})
}
