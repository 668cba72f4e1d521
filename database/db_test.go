package database

import (
	"testing"

	"travel-portal/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		Name:     "travel_portal",
		User:     "postgres",
		Password: "secret",
		SSLMode:  "disable",
	})

	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=travel_portal sslmode=disable", dsn)
}

func TestModels_CoverLocalTables(t *testing.T) {
	assert.Len(t, Models(), 5)
}
