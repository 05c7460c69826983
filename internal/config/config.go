package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPAddr string

	Env    string // "dev" | "prod"
	DBPath string // e.g. "./data/parking.db"

	// Ledger
	Capacity   int
	HourlyRate decimal.Decimal
	BaseFee    decimal.Decimal // optional flat fee added per billed stay
}

func FromEnv() Config {
	addr := getenvDefault("PARKING_HTTP_ADDR", ":8080")

	env := strings.ToLower(getenvDefault("PARKING_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	dbPath := getenvDefault("PARKING_DB_PATH", "./data/parking.db")

	capacity := getenvInt("PARKING_CAPACITY", 50)
	if capacity <= 0 {
		capacity = 50
	}

	rate := getenvDecimal("PARKING_HOURLY_RATE", decimal.NewFromFloat(5.00))
	baseFee := getenvDecimal("PARKING_BASE_FEE", decimal.Zero)

	return Config{
		HTTPAddr: addr,
		Env:      env,
		DBPath:   dbPath,

		Capacity:   capacity,
		HourlyRate: rate,
		BaseFee:    baseFee,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDecimal(key string, def decimal.Decimal) decimal.Decimal {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return def
	}
	return d
}
