package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		AppMode: "dev",
		Port:    "3000",
		JWT: JWTConfig{
			Secret:           "default_secret",
			RefreshSecret:    "default_refresh_secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	cfg.AppMode = " dev "
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "dev", cfg.AppMode)

	cfg = validConfig()
	cfg.AppMode = "staging"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.JWT.RefreshTokenDays = 0
	assert.Error(t, cfg.Validate())

	// prod refuses the shipped secrets
	cfg = validConfig()
	cfg.AppMode = "prod"
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "s3cret"
	cfg.JWT.RefreshSecret = "r3fresh"
	assert.NoError(t, cfg.Validate())
}

func TestGetAllowedOrigins(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "*", cfg.GetAllowedOrigins())

	cfg.AppMode = "prod"
	assert.Equal(t, "http://localhost:5173", cfg.GetAllowedOrigins())

	cfg.AllowedOrigins = "https://desk.hotel.example"
	assert.Equal(t, "https://desk.hotel.example", cfg.GetAllowedOrigins())
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = "super-secret-value"
	out := cfg.String()
	assert.NotContains(t, out, "super-secret-value")
}
