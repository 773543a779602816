package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration, loaded from the environment.
type Config struct {
	ServerAddr  string
	AllowOrigin string
	LogLevel    string

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
	SQLitePath string
}

// Load reads configuration from environment variables, honoring a local .env
// file when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServerAddr:  getenv("SERVER_ADDR", ":8080"),
		AllowOrigin: getenv("CORS_ALLOW_ORIGIN", "http://localhost:3000"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		DBType:      strings.ToLower(getenv("DATABASE_TYPE", "postgres")),
		DBHost:      getenv("DATABASE_HOST", "localhost"),
		DBPort:      getenv("DATABASE_PORT", "5432"),
		DBName:      getenv("DATABASE_NAME", "invoicing"),
		DBUser:      getenv("DATABASE_USER", "postgres"),
		DBPassword:  getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:   getenv("DATABASE_SSLMODE", "disable"),
		SQLitePath:  getenv("SQLITE_PATH", "invoicing.db"),
	}
}

// PostgresDSN builds the connection string for the postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
