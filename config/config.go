package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"travel-portal/logger"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Services   ServiceURLs
	Auth       AuthConfig
	RateLimit  RateLimitConfig
	Refresher  RefresherConfig
	Assistant  AssistantConfig
	Assistance AssistanceConfig
	// EncryptionKey encrypts booking drafts at rest. Empty disables encryption.
	EncryptionKey string
}

type ServerConfig struct {
	Host        string
	Port        string
	Environment string
	FrontendURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// ServiceURLs are the base URLs of the backend services behind the gateway.
type ServiceURLs struct {
	Users      string
	Packages   string
	Bookings   string
	Insurance  string
	Payments   string
	Assistance string
	Reviews    string
	Timeout    time.Duration
}

type AuthConfig struct {
	JWTSecret    string
	PublicKeyURL string
	ServiceToken string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type RefresherConfig struct {
	Interval time.Duration
}

type AssistantConfig struct {
	GeminiAPIKey string
	Model        string
}

type AssistanceConfig struct {
	// ResolveBody is "json" or "text"
	ResolveBody string
}

// IsProduction reports whether cookies should be marked secure.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from the environment, after loading .env if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Warning("No .env file loaded: " + err.Error())
	}

	gateway := strings.TrimRight(getEnv("GATEWAY_URL", "http://localhost:8080"), "/")

	return &Config{
		Server: ServerConfig{
			Host:        getEnv("APP_HOST", "0.0.0.0"),
			Port:        getEnv("APP_PORT", "3000"),
			Environment: getEnv("APP_ENV", "development"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_DATABASE", "travel_portal"),
			User:     getEnv("DB_USERNAME", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Services: ServiceURLs{
			Users:      serviceURL("USER_SERVICE_URL", gateway),
			Packages:   serviceURL("PACKAGE_SERVICE_URL", gateway),
			Bookings:   serviceURL("BOOKING_SERVICE_URL", gateway),
			Insurance:  serviceURL("INSURANCE_SERVICE_URL", gateway),
			Payments:   serviceURL("PAYMENT_SERVICE_URL", gateway),
			Assistance: serviceURL("ASSISTANCE_SERVICE_URL", gateway),
			Reviews:    serviceURL("REVIEW_SERVICE_URL", gateway),
			Timeout:    getEnvDuration("GATEWAY_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			PublicKeyURL: getEnv("PUBLIC_KEY_URL", ""),
			ServiceToken: getEnv("GATEWAY_SERVICE_TOKEN", ""),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvInt("RATE_LIMIT_REQUESTS", 20),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Refresher: RefresherConfig{
			Interval: getEnvDuration("ADMIN_REFRESH_INTERVAL", 10*time.Second),
		},
		Assistant: AssistantConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		},
		Assistance: AssistanceConfig{
			ResolveBody: strings.ToLower(getEnv("ASSISTANCE_RESOLVE_BODY", "json")),
		},
		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
	}
}

func serviceURL(key, fallback string) string {
	return strings.TrimRight(getEnv(key, fallback), "/")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logger.Warning("Invalid integer for " + key + ", using default")
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logger.Warning("Invalid duration for " + key + ", using default")
	}
	return defaultValue
}
