package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Auth         AuthConfig
	Redis        RedisConfig
	Logging      LoggingConfig
	Model        ModelConfig
	Notification NotificationConfig
	Reports      ReportsConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
	RateLimitRPS    float64
	RateLimitBurst  int
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
}

// RedisConfig contains Redis configuration used for alert events
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	Channel  string
}

// Addr returns host:port for the redis client
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or console
	OutputPath string
}

// ModelConfig selects and tunes the classification model
type ModelConfig struct {
	Backend     string // linear or http
	WeightsPath string
	URL         string
	Timeout     time.Duration

	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
	RetryMaxAttempts   int
	RetryInitial       time.Duration
	RetryMaxInterval   time.Duration
}

// NotificationConfig contains outbound mail, SMS and dispatcher settings
type NotificationConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	From         string
	DialTimeout  time.Duration

	// SMSMode is "email" (mock SMS through the mail account) or "gateway"
	// (email-to-SMS gateway, recipient is phone@SMSGatewayDomain).
	SMSMode          string
	SMSGatewayDomain string

	Workers   int
	QueueSize int
}

// ReportsConfig contains weekly report scheduling and archive settings
type ReportsConfig struct {
	Enabled  bool
	Schedule string
	S3Bucket string
	S3Region string
	S3Prefix string

	// Static credentials are optional; the default AWS chain is used otherwise
	S3AccessKeyID     string
	S3SecretAccessKey string
	// S3Endpoint points at an S3-compatible store such as MinIO
	S3Endpoint string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", 100),
			RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 200),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "threatwatch"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./threatwatch.db"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			BCryptCost:         getEnvAsInt("BCRYPT_COST", 12),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Channel:  getEnv("REDIS_ALERT_CHANNEL", "alert_events"),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Model: ModelConfig{
			Backend:            getEnv("MODEL_BACKEND", "linear"),
			WeightsPath:        getEnv("MODEL_WEIGHTS_PATH", "./models/weights.yaml"),
			URL:                getEnv("MODEL_URL", ""),
			Timeout:            getEnvAsDuration("MODEL_TIMEOUT", 5*time.Second),
			BreakerMaxFailures: uint32(getEnvAsInt("MODEL_BREAKER_MAX_FAILURES", 5)),
			BreakerTimeout:     getEnvAsDuration("MODEL_BREAKER_TIMEOUT", 30*time.Second),
			RetryMaxAttempts:   getEnvAsInt("MODEL_RETRY_MAX_ATTEMPTS", 2),
			RetryInitial:       getEnvAsDuration("MODEL_RETRY_INITIAL_INTERVAL", 200*time.Millisecond),
			RetryMaxInterval:   getEnvAsDuration("MODEL_RETRY_MAX_INTERVAL", 2*time.Second),
		},
		Notification: NotificationConfig{
			SMTPHost:         getEnv("MAIL_SERVER", "smtp.gmail.com"),
			SMTPPort:         getEnvAsInt("MAIL_PORT", 587),
			SMTPUsername:     getEnv("MAIL_USERNAME", ""),
			SMTPPassword:     getEnv("MAIL_PASSWORD", ""),
			From:             getEnv("MAIL_FROM", ""),
			DialTimeout:      getEnvAsDuration("MAIL_DIAL_TIMEOUT", 10*time.Second),
			SMSMode:          getEnv("SMS_MODE", "email"),
			SMSGatewayDomain: getEnv("SMS_GATEWAY_DOMAIN", ""),
			Workers:          getEnvAsInt("NOTIFY_WORKERS", 4),
			QueueSize:        getEnvAsInt("NOTIFY_QUEUE_SIZE", 256),
		},
		Reports: ReportsConfig{
			Enabled:  getEnvAsBool("REPORTS_ENABLED", true),
			Schedule: getEnv("REPORTS_SCHEDULE", "0 8 * * 1"),
			S3Bucket: getEnv("REPORTS_S3_BUCKET", ""),
			S3Region: getEnv("REPORTS_S3_REGION", "us-east-1"),
			S3Prefix: getEnv("REPORTS_S3_PREFIX", "weekly-reports"),

			S3AccessKeyID:     getEnv("REPORTS_S3_ACCESS_KEY_ID", ""),
			S3SecretAccessKey: getEnv("REPORTS_S3_SECRET_ACCESS_KEY", ""),
			S3Endpoint:        getEnv("REPORTS_S3_ENDPOINT", ""),
		},
	}

	if cfg.Notification.From == "" {
		cfg.Notification.From = cfg.Notification.SMTPUsername
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	switch c.Model.Backend {
	case "linear":
		if c.Model.WeightsPath == "" {
			return fmt.Errorf("MODEL_WEIGHTS_PATH must be set for the linear model")
		}
	case "http":
		if c.Model.URL == "" {
			return fmt.Errorf("MODEL_URL must be set for the http model")
		}
	default:
		return fmt.Errorf("unsupported model backend: %s", c.Model.Backend)
	}

	if c.Notification.SMSMode != "email" && c.Notification.SMSMode != "gateway" {
		return fmt.Errorf("unsupported SMS mode: %s", c.Notification.SMSMode)
	}
	if c.Notification.SMSMode == "gateway" && c.Notification.SMSGatewayDomain == "" {
		return fmt.Errorf("SMS_GATEWAY_DOMAIN must be set when SMS_MODE=gateway")
	}

	if c.Notification.Workers < 1 {
		return fmt.Errorf("NOTIFY_WORKERS must be at least 1")
	}
	if c.Notification.QueueSize < 1 {
		return fmt.Errorf("NOTIFY_QUEUE_SIZE must be at least 1")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
