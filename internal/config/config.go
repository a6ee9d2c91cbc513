// Package config handles application configuration via environment variables.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configurable values for the app.
type Config struct {
	Env            string
	Addr           string
	APIURL         string
	RequestTimeout time.Duration
}

// Load reads an optional .env file and the environment into a Config.
// Variables already present in the environment win over the .env file.
func Load() *Config {
	// a missing .env is fine; values then come from the environment or defaults
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		log.Panicf("Invalid REQUEST_TIMEOUT: %v", err)
	}
	if timeout < 0 {
		log.Panicf("Invalid REQUEST_TIMEOUT: %s is negative", timeout)
	}

	return &Config{
		Env:            getEnv("ENV", "development"),
		Addr:           getEnv("ADDR", ":8080"),
		APIURL:         getEnv("API_URL", "http://localhost:4000/clientes"),
		RequestTimeout: timeout,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
