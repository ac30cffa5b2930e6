// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database settings. DatabaseURL wins over the individual parts.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBName      string
	DBUser      string
	DBPassword  string
	DBSSLMode   string
	DBMaxConns  int

	// Server settings
	ListenAddr string
	Port       string

	RateLimitRPS   float64
	RateLimitBurst int
	MaxQueryDepth  int
	MigrateOnStart bool

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file, then the environment. Unparseable
// numbers and booleans fall back to their defaults.
func Load(envFiles ...string) *Config {
	_ = godotenv.Load(envFiles...)

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "my_appointments_db"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		DBMaxConns:  getEnvInt("DB_MAX_CONNS", 10),

		ListenAddr: getEnv("LISTEN_ADDR", ""),
		Port:       getEnv("PORT", "4000"),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),
		MaxQueryDepth:  getEnvInt("GRAPHQL_MAX_DEPTH", 10),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// DSN returns the connection string handed to pgxpool. DB_MAX_CONNS is
// added to DATABASE_URL unless the URL already sets pool_max_conns.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return withMaxConns(c.DatabaseURL, c.DBMaxConns)
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	q.Set("pool_max_conns", strconv.Itoa(c.DBMaxConns))
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ListenAddr, c.Port)
}

// Redacted is safe to log. It shows the DSN actually used, minus the
// password.
func (c *Config) Redacted() string {
	return fmt.Sprintf("db=%s listen=%s depth=%d rate=%.1f/%d",
		redactDSN(c.DSN()), c.Addr(), c.MaxQueryDepth, c.RateLimitRPS, c.RateLimitBurst)
}

// parseURL accepts only the URL form of a DSN; keyword/value strings
// such as "host=db user=app" report false.
func parseURL(dsn string) (*url.URL, bool) {
	u, err := url.Parse(dsn)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return nil, false
	}
	return u, true
}

func withMaxConns(dsn string, n int) string {
	if u, ok := parseURL(dsn); ok {
		q := u.Query()
		if q.Has("pool_max_conns") {
			return dsn
		}
		q.Set("pool_max_conns", strconv.Itoa(n))
		u.RawQuery = q.Encode()
		return u.String()
	}
	if strings.Contains(dsn, "pool_max_conns=") {
		return dsn
	}
	return dsn + " pool_max_conns=" + strconv.Itoa(n)
}

func redactDSN(dsn string) string {
	if u, ok := parseURL(dsn); ok {
		return u.Redacted()
	}
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=xxxxx"
		}
	}
	return strings.Join(fields, " ")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
