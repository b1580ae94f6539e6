// Package config loads application configuration from environment
// variables. Values are read once at startup and the resulting Config
// is treated as immutable for the life of the process.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// DefaultJWTSecret is the fallback signing secret used when JWT_SECRET
// is unset. It exists so the service can run in development without a
// secrets file; never rely on it in production.
const DefaultJWTSecret = "eventengine-dev-secret"

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign tokens
	AccessTTLMin int    // token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
}

// Load reads configuration from the environment. Database settings
// default to a local MySQL instance; the JWT secret falls back to
// DefaultJWTSecret with a warning so unconfigured deployments are
// visible in the logs.
func Load() Config {
	cfg := Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("APP_PORT", "8000"),
		DBUser:       envStr("DB_USER", "root"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       envStr("DB_HOST", "localhost"),
		DBPort:       envStr("DB_PORT", "3306"),
		DBName:       envStr("DB_NAME", "EventEngine"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:   envInt("BCRYPT_COST", 12),
	}
	if cfg.JWTSecret == "" {
		log.Printf("JWT_SECRET not set; using built-in development secret")
		cfg.JWTSecret = DefaultJWTSecret
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if p, err := time.ParseDuration(v); err == nil {
		return p
	}
	return d
}
