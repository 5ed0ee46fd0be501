package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
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

// ArchiveConfig holds object storage settings for the generated-document
// archive (S3-compatible, MinIO-supported). Archiving is optional: when
// Endpoint is empty the archive store is not initialized.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ConverterConfig holds the external document converter settings.
// Paths default to the bare command names and rely on PATH lookup.
type ConverterConfig struct {
	WkhtmltopdfPath string
	SofficePath     string
	PandocPath      string
	TimeoutSec      int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port          string
	AllowedOrigin string
	LogoPath      string
	Database      DatabaseConfig
	Archive       ArchiveConfig
	Converter     ConverterConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:          getEnv("PORT", "8000"),
		AllowedOrigin: getEnv("FRONTEND_URL", "http://localhost:3001"),
		LogoPath:      getEnv("LOGO_PATH", ""),
		Database: DatabaseConfig{
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
		Archive: ArchiveConfig{
			Endpoint:  getEnv("ARCHIVE_ENDPOINT", ""),
			AccessKey: getEnv("ARCHIVE_ACCESS_KEY", ""),
			SecretKey: getEnv("ARCHIVE_SECRET_KEY", ""),
			Bucket:    getEnv("ARCHIVE_BUCKET", "declaracoes"),
			UseSSL:    getEnvBool("ARCHIVE_USE_SSL", false),
		},
		Converter: ConverterConfig{
			WkhtmltopdfPath: getEnv("WKHTMLTOPDF_PATH", "wkhtmltopdf"),
			SofficePath:     getEnv("SOFFICE_PATH", "soffice"),
			PandocPath:      getEnv("PANDOC_PATH", "pandoc"),
			TimeoutSec:      getEnvInt("CONVERT_TIMEOUT_SEC", 30),
		},
	}
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
