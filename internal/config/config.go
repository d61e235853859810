package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	SMTP      SMTPConfig
	Documents DocumentsConfig
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Port int
	// AppURL is the public URL of the frontend, used in reset links.
	AppURL string
}

// DatabaseConfig holds the database configuration
type DatabaseConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	DBName     string
	SSLMode    string
	TestDBName string // Separate database for testing
}

// AuthConfig holds the authentication configuration
type AuthConfig struct {
	JWTSecret string
}

// SMTPConfig holds the mail relay configuration. An empty Host disables
// real delivery; reset mails are then only recorded in the log.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// DocumentsConfig locates document templates and generated artifacts.
type DocumentsConfig struct {
	TemplatesDir string
	OutputDir    string
	DirectorDir  string
	BaseURL      string
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.DBName, c.SSLMode,
	)
}

// LoadConfig loads the configuration from environment variables, reading a
// local .env file first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:   getEnvAsInt("SERVER_PORT", 8080),
			AppURL: getEnv("APP_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvAsInt("DB_PORT", 5432),
			Username:   getEnv("DB_USERNAME", "postgres"),
			Password:   getEnv("DB_PASSWORD", "password"),
			DBName:     getEnv("DB_NAME", "intranet"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			TestDBName: getEnv("TEST_DB_NAME", "intranet_test"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "your-secret-key-here"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "intranet@brasilexcellence.com.br"),
		},
		Documents: DocumentsConfig{
			TemplatesDir: getEnv("TEMPLATES_DIR", "templates"),
			OutputDir:    getEnv("PDF_OUTPUT_DIR", "generated"),
			DirectorDir:  getEnv("DIRECTOR_REPORTS_DIR", "generated/diretoria"),
			BaseURL:      getEnv("PDF_BASE_URL", ""),
		},
	}
}

// Helper functions to read environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
