package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every environment variable read by Load, e.g. HOTEL_DB_HOST.
const EnvPrefix = "HOTEL"

// ErrHelpWanted is returned by Load when --help was passed; the usage text is in the message.
var ErrHelpWanted = errors.New("help wanted")

// Config holds all configuration for the application
type Config struct {
	conf.Version
	AppMode        string `conf:"default:dev,help:dev or prod"`
	Port           string `conf:"default:3000"`
	AllowedOrigins string
	Database       DatabaseConfig
	JWT            JWTConfig
	Cookie         CookieConfig
	Cron           CronConfig
	Seed           SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `conf:"default:localhost"`
	Port            string        `conf:"default:3306"`
	User            string        `conf:"default:root"`
	Password        string        `conf:"mask"`
	DBName          string        `conf:"default:hotel_management"`
	MaxIdleConns    int           `conf:"default:10"`
	MaxOpenConns    int           `conf:"default:100"`
	ConnMaxLifetime time.Duration `conf:"default:1h"`
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret           string `conf:"default:default_secret,mask"`
	RefreshSecret    string `conf:"default:default_refresh_secret,mask"`
	AccessTokenMins  int    `conf:"default:15"`
	RefreshTokenDays int    `conf:"default:7"`
	BcryptCost       int    `conf:"default:12"`
}

// CookieConfig holds refresh cookie configuration
type CookieConfig struct {
	Secure   bool   `conf:"default:false"`
	SameSite string `conf:"default:Lax"`
	Domain   string
}

// CronConfig holds schedules of the background jobs
type CronConfig struct {
	Enabled      bool   `conf:"default:true"`
	SnapshotSpec string `conf:"default:55 23 * * *"`
	PurgeSpec    string `conf:"default:0 3 * * *"`
}

// SeedConfig holds the first manager account created on an empty database
type SeedConfig struct {
	Email    string `conf:"default:admin@hotel.local"`
	Password string `conf:"default:admin123456,mask"`
	FullName string `conf:"default:System Manager"`
}

// Load reads configuration from .env file and HOTEL_* environment variables
func Load() (*Config, error) {
	// Missing .env is fine in production
	_ = godotenv.Load()

	cfg := Config{
		Version: conf.Version{
			Build: "hotel-desk",
			Desc:  "hotel front desk API",
		},
	}

	help, err := conf.Parse(EnvPrefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return nil, fmt.Errorf("%w\n%s", ErrHelpWanted, help)
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values conf cannot express as tags
func (c *Config) Validate() error {
	// trim spaces for Windows compatibility
	c.AppMode = strings.TrimSpace(c.AppMode)
	if c.AppMode != "dev" && c.AppMode != "prod" {
		return fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", c.AppMode)
	}
	if c.JWT.AccessTokenMins <= 0 || c.JWT.RefreshTokenDays <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	if c.IsProd() && (c.JWT.Secret == "default_secret" || c.JWT.RefreshSecret == "default_refresh_secret") {
		return fmt.Errorf("JWT secrets must be set in prod mode")
	}
	return nil
}

// String renders the configuration with secrets masked
func (c *Config) String() string {
	out, err := conf.String(c)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return out
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5173"
	}
	return c.AllowedOrigins
}
