package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application level configuration loaded from an optional YAML
// file, environment variables and flags, in increasing precedence.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	DBMaxConns      int
	AuthSecret      string
	TokenTTL        time.Duration
	CourierPIN      string
	CourierPINHash  string
	AMQPURL         string
	EventsExchange  string
	LogLevel        string
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultAuthSecret      = "change-me-in-production"
	defaultDBMaxConns      = 10
	defaultTokenTTL        = 24 * time.Hour
	defaultEventsExchange  = "storefront.orders"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10 * time.Second
)

// fileConfig mirrors Config in the YAML file. Durations use time.ParseDuration syntax.
type fileConfig struct {
	RunAddress      string `yaml:"run_address"`
	DatabaseURI     string `yaml:"database_uri"`
	DBMaxConns      int    `yaml:"db_max_conns"`
	AuthSecret      string `yaml:"auth_secret"`
	TokenTTL        string `yaml:"token_ttl"`
	CourierPINHash  string `yaml:"courier_pin_hash"`
	AMQPURL         string `yaml:"amqp_url"`
	EventsExchange  string `yaml:"events_exchange"`
	LogLevel        string `yaml:"log_level"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func defaults() *Config {
	return &Config{
		RunAddress:      defaultRunAddress,
		DBMaxConns:      defaultDBMaxConns,
		AuthSecret:      defaultAuthSecret,
		TokenTTL:        defaultTokenTTL,
		EventsExchange:  defaultEventsExchange,
		LogLevel:        defaultLogLevel,
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := defaults()

	if path, ok := lookup("CONFIG_FILE"); ok && path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.RunAddress = getString(lookup, "RUN_ADDRESS", cfg.RunAddress)
	cfg.DatabaseURI = getString(lookup, "DATABASE_URI", cfg.DatabaseURI)
	cfg.DBMaxConns = getInt(lookup, "DB_MAX_CONNS", cfg.DBMaxConns)
	cfg.AuthSecret = getString(lookup, "AUTH_SECRET", cfg.AuthSecret)
	cfg.TokenTTL = getDuration(lookup, "TOKEN_TTL", cfg.TokenTTL)
	cfg.CourierPIN = getString(lookup, "COURIER_PIN", cfg.CourierPIN)
	cfg.CourierPINHash = getString(lookup, "COURIER_PIN_HASH", cfg.CourierPINHash)
	cfg.AMQPURL = getString(lookup, "AMQP_URL", cfg.AMQPURL)
	cfg.EventsExchange = getString(lookup, "EVENTS_EXCHANGE", cfg.EventsExchange)
	cfg.LogLevel = getString(lookup, "LOG_LEVEL", cfg.LogLevel)
	cfg.ShutdownTimeout = getDuration(lookup, "SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.IntVar(&cfg.DBMaxConns, "db-max-conns", cfg.DBMaxConns, "Maximum open database connections")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued tokens")
	fs.StringVar(&cfg.AMQPURL, "amqp", cfg.AMQPURL, "RabbitMQ URL for order events")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = strings.TrimSpace(string(content))
	}

	if cfg.DBMaxConns <= 0 {
		cfg.DBMaxConns = defaultDBMaxConns
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("auth secret must not be empty")
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}

	setString(&c.RunAddress, fc.RunAddress)
	setString(&c.DatabaseURI, fc.DatabaseURI)
	setString(&c.AuthSecret, fc.AuthSecret)
	if fc.DBMaxConns > 0 {
		c.DBMaxConns = fc.DBMaxConns
	}
	setString(&c.CourierPINHash, fc.CourierPINHash)
	setString(&c.AMQPURL, fc.AMQPURL)
	setString(&c.EventsExchange, fc.EventsExchange)
	setString(&c.LogLevel, fc.LogLevel)

	if fc.TokenTTL != "" {
		if c.TokenTTL, err = time.ParseDuration(fc.TokenTTL); err != nil {
			return fmt.Errorf("invalid token ttl in config file: %w", err)
		}
	}
	if fc.ShutdownTimeout != "" {
		if c.ShutdownTimeout, err = time.ParseDuration(fc.ShutdownTimeout); err != nil {
			return fmt.Errorf("invalid shutdown timeout in config file: %w", err)
		}
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
