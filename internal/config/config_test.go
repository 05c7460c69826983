package config

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	os.Clearenv()
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "./data/parking.db", cfg.DBPath)
	assert.Equal(t, 50, cfg.Capacity)
	assert.True(t, cfg.HourlyRate.Equal(decimal.RequireFromString("5")))
	assert.True(t, cfg.BaseFee.IsZero())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PARKING_HTTP_ADDR", ":9090")
	t.Setenv("PARKING_ENV", "prod")
	t.Setenv("PARKING_DB_PATH", "/tmp/test.db")
	t.Setenv("PARKING_CAPACITY", "12")
	t.Setenv("PARKING_HOURLY_RATE", "7.25")
	t.Setenv("PARKING_BASE_FEE", "2.50")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, 12, cfg.Capacity)
	assert.True(t, cfg.HourlyRate.Equal(decimal.RequireFromString("7.25")))
	assert.True(t, cfg.BaseFee.Equal(decimal.RequireFromString("2.50")))
}

func TestFromEnvInvalidValuesFallBack(t *testing.T) {
	t.Setenv("PARKING_ENV", "staging")
	t.Setenv("PARKING_CAPACITY", "-3")
	t.Setenv("PARKING_HOURLY_RATE", "not-a-number")
	t.Setenv("PARKING_BASE_FEE", "-1.00")

	cfg := FromEnv()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 50, cfg.Capacity)
	assert.True(t, cfg.HourlyRate.Equal(decimal.RequireFromString("5")))
	assert.True(t, cfg.BaseFee.IsZero())
}
