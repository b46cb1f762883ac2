package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Auth0     Auth0Config
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Auth0Config describes the Auth0 tenant this service trusts.
// AdminEmails is the raw delimited allow-list string; parsing lives in
// the auth package.
type Auth0Config struct {
	Domain      string
	ClientID    string
	AdminEmails string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// UseUserStore selects Redis (instead of MongoDB) as the backing
	// store for user records.
	UseUserStore bool
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// Issuer returns the expected token issuer for the configured Auth0 tenant.
// Auth0 issues tokens with a trailing slash.
func (a Auth0Config) Issuer() string {
	return "https://" + a.Domain + "/"
}

// JWKSURL returns the tenant's public signing-key set endpoint.
func (a Auth0Config) JWKSURL() string {
	return "https://" + a.Domain + "/.well-known/jwks.json"
}

// Validate checks the settings the verifier cannot run without.
func (a Auth0Config) Validate() error {
	if a.Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is not set")
	}
	if a.ClientID == "" {
		return fmt.Errorf("AUTH0_CLIENT_ID is not set")
	}
	return nil
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "onpointflies")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Auth0: Auth0Config{
			Domain:      viper.GetString("AUTH0_DOMAIN"),
			ClientID:    viper.GetString("AUTH0_CLIENT_ID"),
			AdminEmails: viper.GetString("ADMIN_EMAILS"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:         viper.GetString("REDIS_HOST"),
			Port:         viper.GetString("REDIS_PORT"),
			Password:     viper.GetString("REDIS_PASSWORD"),
			DB:           0,
			UseUserStore: viper.GetBool("REDIS_USER_STORE"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	return cfg, nil
}
