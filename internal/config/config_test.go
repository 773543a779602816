package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("DATABASE_TYPE", "SQLite")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.ServerAddr)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "invoicing",
		DBSSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5433 user=app password=secret dbname=invoicing sslmode=disable",
		cfg.PostgresDSN(),
	)
}
