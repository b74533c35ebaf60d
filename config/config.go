package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	StorageMode string // memory, csv or sqlite
	DataDir     string // directory for CSV files and session state
	DBName      string // sqlite database file

	RemoteAPIURL  string // optional upstream backend, empty means local-only
	RemoteTimeout int    // seconds

	AdminEmail string
	AdminPin   string

	EmailSender string
	Password    string // SMTP Password

	SnapshotCron string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port: getEnv("PORT", "3000"),

		StorageMode: getEnv("STORAGE_MODE", "csv"),
		DataDir:     getEnv("DATA_DIR", "data"),
		DBName:      getEnv("DB_NAME", "academy.db"),

		RemoteAPIURL:  getEnv("REMOTE_API_URL", ""),
		RemoteTimeout: getEnvInt("REMOTE_TIMEOUT_SECONDS", 6),

		AdminEmail: getEnv("ADMIN_EMAIL", "admin@shamanth.com"),
		AdminPin:   getEnv("ADMIN_PIN", "1234"),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),

		SnapshotCron: getEnv("SNAPSHOT_CRON", "@every 5m"),
	}

	// Validate critical configuration
	if AppConfig.AdminPin == "1234" {
		log.Println("Warning: Using default ADMIN_PIN. Update it in your environment.")
	}
	if AppConfig.RemoteAPIURL == "" {
		log.Println("Remote backend not configured. Running in local-only mode.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
