// Package config reads process configuration from the environment. cmd/server
// layers command-line flags on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"bountyboard/internal/platform/database"
	"bountyboard/internal/registry/models"
	"bountyboard/pkg/platform/middleware/metadata"
	pstrings "bountyboard/pkg/platform/strings"
)

// Config is the full server configuration.
type Config struct {
	Server   Server
	Database database.Config
	Redis    RedisConfig
	Kafka    KafkaConfig
	Ledger   LedgerConfig
	Log      LogConfig
	// BoardsFile seeds boards and bounties from YAML when set.
	BoardsFile string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	// AdminToken is hashed at startup; AdminTokenHash (bcrypt) wins when both
	// are set. Neither set disables /admin routes.
	AdminToken     string
	AdminTokenHash string
	// WriteRateLimit caps signed writes per client IP per WriteRateWindow.
	// Zero disables limiting.
	WriteRateLimit  int
	WriteRateWindow time.Duration
	// TrustedProxies are CIDRs or IPs whose X-Forwarded-For and X-Real-IP
	// headers are believed. Empty keys clients on the connection address.
	TrustedProxies []string
}

// RedisConfig configures the board snapshot cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// KafkaConfig configures the audit outbox relay. No brokers disables it.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	RelayInterval time.Duration
	BatchSize     int
}

// LedgerConfig holds the registry's ledger parameters.
type LedgerConfig struct {
	ProgramID               string
	RentLamportsPerByteYear uint64
	RentExemptionYears      uint64
	EnforceGovernance       bool
}

type LogConfig struct {
	Format string
	Level  string
}

// BoardCacheTTL bounds how stale a cached board catalog may be.
var BoardCacheTTL = 5 * time.Minute

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	var p parser
	cfg := Config{
		Server: Server{
			Addr:            p.str("REGISTRY_ADDR", ":8080"),
			ShutdownTimeout: p.duration("REGISTRY_SHUTDOWN_TIMEOUT", 10*time.Second),
			AdminToken:      os.Getenv("REGISTRY_ADMIN_TOKEN"),
			AdminTokenHash:  os.Getenv("REGISTRY_ADMIN_TOKEN_HASH"),
			WriteRateLimit:  p.integer("REGISTRY_WRITE_RATE_LIMIT", 60),
			WriteRateWindow: p.duration("REGISTRY_WRITE_RATE_WINDOW", time.Minute),
			TrustedProxies:  p.list("REGISTRY_TRUSTED_PROXIES"),
		},
		Database: database.Config{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    p.integer("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    p.integer("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: p.duration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     p.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     p.duration("REDIS_BOARD_CACHE_TTL", BoardCacheTTL),
		},
		Kafka: KafkaConfig{
			Brokers:       p.list("KAFKA_BROKERS"),
			Topic:         p.str("KAFKA_AUDIT_TOPIC", "bountyboard.audit"),
			RelayInterval: p.duration("KAFKA_RELAY_INTERVAL", time.Second),
			BatchSize:     p.integer("KAFKA_RELAY_BATCH_SIZE", 100),
		},
		Ledger: LedgerConfig{
			ProgramID:               os.Getenv("REGISTRY_PROGRAM_ID"),
			RentLamportsPerByteYear: p.unsigned("REGISTRY_RENT_LAMPORTS_PER_BYTE_YEAR", 0),
			RentExemptionYears:      p.unsigned("REGISTRY_RENT_EXEMPTION_YEARS", 2),
			EnforceGovernance:       p.boolean("REGISTRY_ENFORCE_GOVERNANCE", true),
		},
		Log: LogConfig{
			Format: p.str("LOG_FORMAT", "json"),
			Level:  p.str("LOG_LEVEL", "info"),
		},
		BoardsFile: os.Getenv("REGISTRY_BOARDS_FILE"),
	}
	if p.err != nil {
		return Config{}, p.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that parse but cannot run. main calls it again
// after flags are applied.
func (c Config) Validate() error {
	rent := models.RentSchedule{
		LamportsPerByteYear: c.Ledger.RentLamportsPerByteYear,
		ExemptionYears:      c.Ledger.RentExemptionYears,
	}
	if err := rent.Validate(); err != nil {
		return fmt.Errorf("invalid ledger rent: %w", err)
	}
	if _, err := metadata.ParseTrustedProxies(c.Server.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}
	return nil
}

// parser keeps the first conversion error so FromEnv reads linearly.
type parser struct {
	err error
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}

func (p *parser) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) unsigned(key string, def uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}

func (p *parser) boolean(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}

func (p *parser) list(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	return pstrings.SplitList(v, ",")
}
