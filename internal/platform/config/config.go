package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates per-concern settings so main stays lean and every
// component receives an explicit configuration object instead of reading
// globals.
type Config struct {
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Ledger    LedgerConfig
	OpenAI    OpenAIConfig
	Casts     CastSourceConfig
	Schedules ScheduleConfig
	Tracing   TracingConfig
}

// HTTPConfig covers the read-only HTTP surface (health, metrics, mood).
type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds broadcast channel settings. An empty URL disables the
// Redis sink.
type RedisConfig struct {
	URL          string
	Channel      string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds the optional Kafka broadcast sink settings. Empty brokers
// disable the sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// LedgerConfig describes the identity registry contract and how to reach the
// chain it lives on.
type LedgerConfig struct {
	RPCURL          string
	RegistryAddress string
	DeploymentBlock uint64
	BatchSize       uint64
	PollInterval    time.Duration
	CallTimeout     time.Duration
}

// OpenAIConfig holds the text-generation collaborator settings.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	CallTimeout time.Duration
}

// CastSourceConfig describes the external content and verification sources.
type CastSourceConfig struct {
	URL             string
	VerificationURL string
	IndexCap        int
	CallTimeout     time.Duration
}

// ScheduleConfig holds the independent trigger cadences. The original
// deployment ran cast indexing every minute, verifications every hour, and the
// mood recomputation every three hours. ReconcileInterval bounds how long a
// registration missed by the live watch can stay missing.
type ScheduleConfig struct {
	CastInterval         time.Duration
	VerificationInterval time.Duration
	MoodInterval         time.Duration
	ReconcileInterval    time.Duration
	RunTimeout           time.Duration
}

// TracingConfig toggles span export. Disabled leaves the global tracer as a
// no-op.
type TracingConfig struct {
	Enabled bool
}

// FromEnv builds the full configuration from environment variables, applying
// development defaults where a variable is unset.
func FromEnv() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:              envString("INDEXER_ADDR", ":8080"),
			ReadHeaderTimeout: envDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			URL: envString("DATABASE_URL", "postgres://localhost:5432/zencaster?sslmode=disable"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			Channel:      envString("BROADCAST_CHANNEL", "schema-db-changes"),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   envString("KAFKA_BROADCAST_TOPIC", "zencaster.broadcasts"),
		},
		Ledger: LedgerConfig{
			RPCURL:          envString("LEDGER_RPC_URL", "http://localhost:8545"),
			RegistryAddress: envString("ID_REGISTRY_ADDRESS", "0xda107a1caf36d198b12c16c7b6a1d1c795978c42"),
			DeploymentBlock: envUint("ID_REGISTRY_DEPLOYMENT_BLOCK", 7_648_795),
			BatchSize:       envUint("LEDGER_SCAN_BATCH_SIZE", 2000),
			PollInterval:    envDuration("LEDGER_POLL_INTERVAL", 12*time.Second),
			CallTimeout:     envDuration("LEDGER_CALL_TIMEOUT", 30*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			BaseURL:     envString("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       envString("OPENAI_MODEL", "text-davinci-003"),
			CallTimeout: envDuration("OPENAI_CALL_TIMEOUT", 30*time.Second),
		},
		Casts: CastSourceConfig{
			URL:             envString("CAST_SOURCE_URL", "http://localhost:3001/casts"),
			VerificationURL: envString("VERIFICATION_SOURCE_URL", "http://localhost:3001/verifications"),
			IndexCap:        envInt("CAST_INDEX_CAP", 10_000),
			CallTimeout:     envDuration("CAST_SOURCE_TIMEOUT", 30*time.Second),
		},
		Schedules: ScheduleConfig{
			CastInterval:         envDuration("CAST_INDEX_INTERVAL", time.Minute),
			VerificationInterval: envDuration("VERIFICATION_INDEX_INTERVAL", time.Hour),
			MoodInterval:         envDuration("MOOD_INTERVAL", 3*time.Hour),
			ReconcileInterval:    envDuration("LEDGER_RECONCILE_INTERVAL", 5*time.Minute),
			RunTimeout:           envDuration("JOB_RUN_TIMEOUT", 2*time.Minute),
		},
		Tracing: TracingConfig{
			Enabled: envBool("TRACING_ENABLED", false),
		},
	}
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
