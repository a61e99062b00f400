// Package config loads process settings from the environment and an
// optional .env file.
package config

import (
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/pspoerri/photogridref/internal/locate"
)

// Config holds the settings shared by the command line tools and the
// HTTP service.
//
// Fields:
// - Env: logging environment (local, development, production).
// - Port: listen port of the HTTP service.
// - IrishLevel: accuracy of the Irish Grid conversion.
// - MaxImageBytes: largest image accepted from disk or over HTTP.
// - Format: default report format (text, json, gridref, en).
type Config struct {
	Env           string
	Port          int
	IrishLevel    locate.IrishLevel
	MaxImageBytes int64
	Format        string
}

// MaxImageMB is the largest image size limit, in MB, whose byte count fits
// in an int64.
const MaxImageMB int64 = math.MaxInt64 >> 20

// MustLoad reads the configuration and panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("PHOTOGRIDREF_PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		panic("failed to parse port from configuration")
	}

	level, err := locate.ParseIrishLevel(setDefaultEnv("PHOTOGRIDREF_IRISH_LEVEL", "1"))
	if err != nil {
		panic("failed to parse Irish grid level from configuration, must be 1 or 2")
	}

	maxMB, err := strconv.ParseInt(setDefaultEnv("PHOTOGRIDREF_MAX_IMAGE_MB", "64"), 10, 64)
	if err != nil || maxMB <= 0 || maxMB > MaxImageMB {
		panic("failed to parse maximum image size from configuration, must be a positive integer")
	}

	return &Config{
		Env:           setDefaultEnv("PHOTOGRIDREF_ENV", "production"),
		Port:          port,
		IrishLevel:    level,
		MaxImageBytes: maxMB << 20,
		Format:        setDefaultEnv("PHOTOGRIDREF_FORMAT", "text"),
	}
}

func setDefaultEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = fallback
	}

	return value
}
