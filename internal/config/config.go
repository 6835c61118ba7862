package config

import (
	"os"
	"strconv"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Data     DataConfig
	Upload   UploadConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Host    string
	Port    string
	GinMode string
}

// DatabaseConfig holds the optional snapshot store connection
type DatabaseConfig struct {
	URL string
}

// DataConfig holds the optional initial spreadsheet to load at startup
type DataConfig struct {
	File  string
	Sheet string
}

// UploadConfig holds file upload limits
type UploadConfig struct {
	MaxFileSize int64
}

const defaultMaxUpload = 50 << 20 // 50 MB

// Load reads configuration from environment variables. Nothing is required:
// the server runs without a database (memory history) and without an
// initial file (upload-first flow).
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    getEnvOrDefault("HOST", "127.0.0.1"),
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Data: DataConfig{
			File:  getEnvOrDefault("RACI_FILE", ""),
			Sheet: getEnvOrDefault("RACI_SHEET", ""),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", defaultMaxUpload),
		},
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
