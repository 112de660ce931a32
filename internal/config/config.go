package config

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds application level configuration loaded from environment and flags.
// Unset values fall back to the default* constants in normalize.
type Config struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	DatabaseURI     string        `env:"DATABASE_URI"`
	JWTSecret       string        `env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
	LogLevel        string        `env:"LOG_LEVEL"`
	DefaultPageSize int           `env:"DEFAULT_PAGE_SIZE"`
	MaxPageSize     int           `env:"MAX_PAGE_SIZE"`
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultPageSize        = 20
	defaultMaxPageSize     = 100
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

// Lookup lets envLookup act as an envconfig.Lookuper.
func (l envLookup) Lookup(key string) (string, bool) {
	return l(key)
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: lookup,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	fs := flag.NewFlagSet("designstudio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		accessTTLStr       = cfg.AccessTokenTTL.String()
		refreshTTLStr      = cfg.RefreshTokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&accessTTLStr, "access-ttl", accessTTLStr, "Access token lifetime")
	fs.StringVar(&refreshTTLStr, "refresh-ttl", refreshTTLStr, "Refresh token lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.IntVar(&cfg.DefaultPageSize, "page-size", cfg.DefaultPageSize, "Default list page size")
	fs.IntVar(&cfg.MaxPageSize, "max-page-size", cfg.MaxPageSize, "Upper bound for requested page size")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.AccessTokenTTL, err = time.ParseDuration(accessTTLStr); err != nil {
		return nil, fmt.Errorf("invalid access token ttl: %w", err)
	}

	if cfg.RefreshTokenTTL, err = time.ParseDuration(refreshTTLStr); err != nil {
		return nil, fmt.Errorf("invalid refresh token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.normalize()

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func (c *Config) normalize() {
	if c.RunAddress == "" {
		c.RunAddress = defaultRunAddress
	}

	if c.JWTSecret == "" {
		c.JWTSecret = defaultJWTSecret
	}

	if c.AccessTokenTTL <= 0 {
		c.AccessTokenTTL = defaultAccessTokenTTL
	}

	if c.RefreshTokenTTL <= 0 {
		c.RefreshTokenTTL = defaultRefreshTokenTTL
	}

	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}

	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}

	if c.MaxPageSize <= 0 {
		c.MaxPageSize = defaultMaxPageSize
	}

	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = defaultPageSize
	}

	if c.DefaultPageSize > c.MaxPageSize {
		c.DefaultPageSize = c.MaxPageSize
	}
}
