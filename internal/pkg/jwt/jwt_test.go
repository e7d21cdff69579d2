package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "desk@hotel.local", "Front Desk", "STAFF", "secret", 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ManagerID)
	assert.Equal(t, "desk@hotel.local", claims.Email)
	assert.Equal(t, "STAFF", claims.Role)
	assert.Equal(t, "7", claims.Subject)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredToken(t *testing.T) {
	token, err := GenerateAccessToken(7, "desk@hotel.local", "Front Desk", "STAFF", "secret", -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestForeignIssuer(t *testing.T) {
	claims := Claims{
		ManagerID: 1,
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshToken(t *testing.T) {
	a, err := GenerateRefreshToken(3, "id-a", "refresh", 7)
	require.NoError(t, err)
	b, err := GenerateRefreshToken(3, "id-b", "refresh", 7)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	claims, err := ValidateRefreshToken(a, "refresh")
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.ManagerID)
	assert.Equal(t, "id-a", claims.TokenID)

	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), GetExpiryTime(7), time.Minute)
}
