package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			User:     "app",
			Password: "secret",
			DBName:   "storage",
		},
	}

	dsn := cfg.DSN()

	assert.Equal(t,
		"app:secret@tcp(localhost:3306)/storage?parseTime=true&charset=utf8mb4&clientFoundRows=true",
		dsn)
	// Without clientFoundRows the driver reports changed rows, and a no-op
	// update of an existing record would look like a missing one.
	assert.Contains(t, dsn, "clientFoundRows=true")
}
