package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/adapters/out/postgres"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const defaultEnvFile = ".env"

type Config struct {
	HTTPPort             int
	HTTPValidateRequests bool

	StorageDriver    string
	DatabaseURL      string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	DBConnectRetries int
	DBConnectDelay   time.Duration

	LogLevel  slog.Level
	LogFormat string

	KafkaBrokers       []string
	KafkaConsumerGroup string
	KafkaEventsTopic   string

	SettlementEnabled  bool
	SettlementSchedule string
	SettlementBatch    int

	PricingDefaults pricing.Parameters
}

// DSN returns the Postgres connection string, preferring DATABASE_URL over the DB_* parts.
func (c Config) DSN() (string, error) {
	if c.DatabaseURL != "" {
		return postgres.DSNFromURL(c.DatabaseURL)
	}
	return postgres.BuildDSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode), nil
}

// LoadConfig reads configuration in order: .env (if present) → environment → flags.
// args are the command-line arguments without the program name.
func LoadConfig(args []string) (Config, error) {
	fs := pflag.NewFlagSet("backoffice", pflag.ContinueOnError)
	envFile := fs.String("env-file", defaultEnvFile, "dotenv file to load before reading the environment")
	port := fs.IntP("port", "p", 0, "HTTP port to listen on")
	storage := fs.String("storage", "", "storage driver: postgres or memory")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(*envFile); err != nil && (fs.Changed("env-file") || !errors.Is(err, os.ErrNotExist)) {
		return Config{}, fmt.Errorf("load %s: %w", *envFile, err)
	}

	var e envReader
	cfg := Config{
		HTTPPort:             e.getInt("HTTP_PORT", 8080),
		HTTPValidateRequests: e.getBool("HTTP_VALIDATE_REQUESTS", false),
		StorageDriver:        strings.ToLower(e.getString("STORAGE_DRIVER", StoragePostgres)),
		DatabaseURL:          e.getString("DATABASE_URL", ""),
		DBHost:               e.getString("DB_HOST", "localhost"),
		DBPort:               e.getString("DB_PORT", "5432"),
		DBUser:               e.getString("DB_USER", "postgres"),
		DBPassword:           e.getString("DB_PASSWORD", ""),
		DBName:               e.getString("DB_NAME", "backoffice"),
		DBSslMode:            e.getString("DB_SSLMODE", "disable"),
		DBConnectRetries:     e.getInt("DB_CONNECT_RETRIES", 10),
		DBConnectDelay:       e.getDuration("DB_CONNECT_DELAY", time.Second),
		LogLevel:             e.getLevel("LOG_LEVEL", slog.LevelInfo),
		LogFormat:            strings.ToLower(e.getString("LOG_FORMAT", "json")),
		KafkaBrokers:         e.getList("KAFKA_BROKERS"),
		KafkaConsumerGroup:   e.getString("KAFKA_CONSUMER_GROUP", ""),
		KafkaEventsTopic:     e.getString("KAFKA_EVENTS_TOPIC", ""),
		SettlementEnabled:    e.getBool("COMMISSION_SETTLEMENT_ENABLED", false),
		SettlementSchedule:   e.getString("COMMISSION_SETTLEMENT_SCHEDULE", jobs.DefaultSettlementSchedule),
		SettlementBatch:      e.getInt("COMMISSION_SETTLEMENT_BATCH", commands.DefaultSettlementBatch),
	}

	defaults := pricing.DefaultParameters()
	base := e.getDecimal("PRICING_BASE_FARE", defaults.BaseFare().Decimal())
	perDistance := e.getDecimal("PRICING_PER_DISTANCE_FARE", defaults.PerDistanceFare().Decimal())
	rate := e.getDecimal("PRICING_COMMISSION_RATE", defaults.CommissionRate())

	if fs.Changed("port") {
		cfg.HTTPPort = *port
	}
	if fs.Changed("storage") {
		cfg.StorageDriver = strings.ToLower(*storage)
	}

	if err := errors.Join(e.errs...); err != nil {
		return Config{}, err
	}

	params, err := pricing.ParseParameters(base, perDistance, rate)
	if err != nil {
		return Config{}, fmt.Errorf("pricing defaults: %w", err)
	}
	cfg.PricingDefaults = params

	if err = cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []error
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		problems = append(problems, fmt.Errorf("invalid port: %d", c.HTTPPort))
	}
	switch c.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		problems = append(problems, fmt.Errorf("unknown storage driver %q", c.StorageDriver))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		problems = append(problems, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if c.DBConnectRetries < 1 {
		problems = append(problems, fmt.Errorf("DB_CONNECT_RETRIES must be at least 1, got %d", c.DBConnectRetries))
	}
	if c.SettlementEnabled {
		if _, err := commands.NewSettleCommissionsCommand(c.SettlementBatch); err != nil {
			problems = append(problems, fmt.Errorf("COMMISSION_SETTLEMENT_BATCH: %w", err))
		}
	}
	return errors.Join(problems...)
}

// envReader reads typed environment variables and collects parse failures.
type envReader struct {
	errs []error
}

func (r *envReader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *envReader) fail(key, value string, err error) {
	r.errs = append(r.errs, fmt.Errorf("%s=%q: %w", key, value, err))
}

func (r *envReader) getString(key, def string) string {
	if v, ok := r.lookup(key); ok {
		return v
	}
	return def
}

func (r *envReader) getInt(key string, def int) int {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *envReader) getBool(key string, def bool) bool {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return b
}

func (r *envReader) getDuration(key string, def time.Duration) time.Duration {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return d
}

func (r *envReader) getDecimal(key string, def decimal.Decimal) decimal.Decimal {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return d
}

func (r *envReader) getLevel(key string, def slog.Level) slog.Level {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		r.fail(key, v, err)
		return def
	}
	return l
}

func (r *envReader) getList(key string) []string {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
