package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashWithCost("password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, Verify("password123", hash))
	assert.False(t, Verify("password124", hash))
	assert.False(t, Verify("password123", "not-a-hash"))
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashToken("token-a"))
	assert.NotEqual(t, a, HashToken("token-b"))
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword("short"))
	assert.True(t, ValidatePassword("12345678"))
}
