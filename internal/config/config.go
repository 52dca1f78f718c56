package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Driver             string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint        string
	AccessKey       string
	SecretKey       string
	Bucket          string
	UseSSL          bool
	Region          string
	AvatarExpirySec int
}

// UsersConfig holds paging defaults for user listings.
type UsersConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	SortField       string
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Log      LogConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	Users    UsersConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			Driver:             getEnv("DB_DRIVER", "pgx"),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", ""),
			AccessKey:       getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:       getEnv("MINIO_SECRET_KEY", ""),
			Bucket:          getEnv("MINIO_BUCKET", ""),
			UseSSL:          getEnvBool("MINIO_USE_SSL", false),
			Region:          getEnv("MINIO_REGION", "us-east-1"),
			AvatarExpirySec: getEnvInt("AVATAR_URL_EXPIRY_SEC", 900),
		},
		Users: UsersConfig{
			DefaultPageSize: getEnvInt("USERS_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:     getEnvInt("USERS_MAX_PAGE_SIZE", 100),
			SortField:       getEnv("USERS_SORT_FIELD", "created_at"),
		},
	}
}

// Validate reports every setting that cannot work, joined into one error.
// Connection settings are checked by the components that use them.
func (c *AppConfig) Validate() error {
	var errs []error
	if !slices.Contains([]string{"json", "text"}, c.Log.Format) {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format))
	}
	if c.Users.DefaultPageSize <= 0 {
		errs = append(errs, fmt.Errorf("USERS_DEFAULT_PAGE_SIZE must be positive, got %d", c.Users.DefaultPageSize))
	}
	if c.Users.MaxPageSize < c.Users.DefaultPageSize {
		errs = append(errs, fmt.Errorf("USERS_MAX_PAGE_SIZE (%d) is below USERS_DEFAULT_PAGE_SIZE (%d)", c.Users.MaxPageSize, c.Users.DefaultPageSize))
	}
	if c.Users.SortField == "" {
		errs = append(errs, errors.New("USERS_SORT_FIELD must not be empty"))
	}
	if c.MinIO.AvatarExpirySec <= 0 {
		errs = append(errs, fmt.Errorf("AVATAR_URL_EXPIRY_SEC must be positive, got %d", c.MinIO.AvatarExpirySec))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
