package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	Auth     AuthProviderConfig
	CRM      CRMConfig
	Stripe   StripeConfig
	Postcode PostcodeConfig
	Kafka    KafkaConfig
	Domain   DomainConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
	// PublicURL is the browser-facing origin used to build redirects.
	PublicURL      string
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SecurityConfig holds encryption keys (32-byte hex strings)
type SecurityConfig struct {
	SessionEncryptionKey string
	TokenEncryptionKey   string
	IdempotencyTTL       time.Duration
}

// AuthProviderConfig points at the hosted identity provider
type AuthProviderConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// CRMConfig holds GoHighLevel OAuth settings
type CRMConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
	APIVersion   string
	Scopes       []string
	StateTTL     time.Duration
	Timeout      time.Duration
}

// StripeConfig holds Stripe API settings
type StripeConfig struct {
	APIBaseURL      string
	DefaultCurrency string
	Timeout         time.Duration
}

// PostcodeConfig holds postcode lookup settings
type PostcodeConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

// KafkaConfig holds analytics event settings. No brokers means events are only logged.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// DomainConfig holds tenant hostname settings
type DomainConfig struct {
	PlatformApex      string
	VerificationLabel string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			PublicURL:      strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:3000"), "/"),
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "homequote"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			SessionEncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"),
			TokenEncryptionKey:   getEnv("TOKEN_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"),
			IdempotencyTTL:       getEnvAsDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		},
		Auth: AuthProviderConfig{
			URL:     strings.TrimRight(getEnv("AUTH_PROVIDER_URL", "http://localhost:54321"), "/"),
			APIKey:  getEnv("AUTH_PROVIDER_API_KEY", ""),
			Timeout: getEnvAsDuration("AUTH_PROVIDER_TIMEOUT", 10*time.Second),
		},
		CRM: CRMConfig{
			ClientID:     getEnv("GHL_CLIENT_ID", ""),
			ClientSecret: getEnv("GHL_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GHL_REDIRECT_URI", "http://localhost:8080/auth/crm/callback"),
			AuthURL:      getEnv("GHL_AUTH_URL", "https://marketplace.gohighlevel.com/oauth/chooselocation"),
			TokenURL:     getEnv("GHL_TOKEN_URL", "https://services.leadconnectorhq.com/oauth/token"),
			APIBaseURL:   getEnv("GHL_API_URL", "https://services.leadconnectorhq.com"),
			APIVersion:   getEnv("GHL_API_VERSION", "2021-07-28"),
			Scopes: getEnvAsSlice("GHL_SCOPES", []string{
				"contacts.readonly", "contacts.write", "locations/customFields.readonly", "opportunities.readonly", "opportunities.write",
			}),
			StateTTL: getEnvAsDuration("GHL_STATE_TTL", 10*time.Minute),
			Timeout:  getEnvAsDuration("GHL_TIMEOUT", 15*time.Second),
		},
		Stripe: StripeConfig{
			APIBaseURL:      getEnv("STRIPE_API_URL", "https://api.stripe.com"),
			DefaultCurrency: getEnv("STRIPE_DEFAULT_CURRENCY", "gbp"),
			Timeout:         getEnvAsDuration("STRIPE_TIMEOUT", 15*time.Second),
		},
		Postcode: PostcodeConfig{
			APIBaseURL: getEnv("POSTCODE_API_URL", "https://api.postcodes.io"),
			Timeout:    getEnvAsDuration("POSTCODE_TIMEOUT", 5*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvAsSlice("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "homequote.events"),
		},
		Domain: DomainConfig{
			PlatformApex:      strings.ToLower(getEnv("PLATFORM_APEX_DOMAIN", "homequote.io")),
			VerificationLabel: getEnv("DOMAIN_VERIFICATION_LABEL", "_homequote-verify"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
