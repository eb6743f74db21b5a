package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a local .env file.
//
// It is composed of smaller structs that represent different concerns of the
// system: the HTTP server, the PostgreSQL connection, and the B3 COTAHIST
// feed endpoint. The loaded value is passed explicitly into component
// constructors; there is no package-level configuration instance.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=admin
//	POSTGRES_DB=b3
//	POSTGRES_SSLMODE=disable
//	FEED_URL_TEMPLATE=https://bvmf.bmfbovespa.com.br/InstDados/SerHist/COTAHIST_A%d.ZIP
//	FEED_TIMEOUT_SECONDS=30
type Config struct {
	Server   ServerConfig   // HTTP server configuration (api mode)
	Postgres PostgresConfig // PostgreSQL connection settings
	Feed     FeedConfig     // COTAHIST feed endpoint settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// FeedConfig defines how the COTAHIST archive is fetched.
//
// Fields:
//   - URLTemplate: year-versioned URL template; %d is replaced by the
//     calendar year of the requested business day.
//   - UserAgent: browser-like User-Agent header. The B3 endpoint rejects
//     unidentified clients, so this must not be empty.
//   - Timeout: total request timeout for the download.
type FeedConfig struct {
	URLTemplate string
	UserAgent   string
	Timeout     time.Duration
}

// URLForYear resolves the feed URL for a given calendar year.
func (f FeedConfig) URLForYear(year int) string {
	if strings.Contains(f.URLTemplate, "%d") {
		return fmt.Sprintf(f.URLTemplate, year)
	}
	return f.URLTemplate
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load reads configuration from a .env file (if present) and environment
// variables, applies defaults, and validates required fields.
//
// Precedence (lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Returns:
//   - Config: the populated configuration value.
//   - error: when required fields resolve to empty values.
func Load() (Config, error) {
	v := viper.New()

	// Default values
	v.SetDefault("SERVER_PORT", "8080")

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "admin")
	v.SetDefault("POSTGRES_PASSWORD", "admin")
	v.SetDefault("POSTGRES_DB", "b3")
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	v.SetDefault("FEED_URL_TEMPLATE", "https://bvmf.bmfbovespa.com.br/InstDados/SerHist/COTAHIST_A%d.ZIP")
	v.SetDefault("FEED_USER_AGENT", defaultUserAgent)
	v.SetDefault("FEED_TIMEOUT_SECONDS", 30)

	// Optionally read from .env if present (common in local dev)
	v.SetConfigFile(".env")
	_ = v.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	v.AutomaticEnv()

	cfg := Config{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetInt("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DBName:   v.GetString("POSTGRES_DB"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
		Feed: FeedConfig{
			URLTemplate: v.GetString("FEED_URL_TEMPLATE"),
			UserAgent:   v.GetString("FEED_USER_AGENT"),
			Timeout:     time.Duration(v.GetInt("FEED_TIMEOUT_SECONDS")) * time.Second,
		},
	}

	// Construct Postgres DSN (used by database/sql)
	cfg.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate ensures required variables are present.
func validate(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if cfg.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if cfg.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if cfg.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if cfg.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if cfg.Feed.URLTemplate == "" {
		missing = append(missing, "FEED_URL_TEMPLATE")
	}
	if cfg.Feed.UserAgent == "" {
		missing = append(missing, "FEED_USER_AGENT")
	}
	if cfg.Feed.Timeout <= 0 {
		missing = append(missing, "FEED_TIMEOUT_SECONDS")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
