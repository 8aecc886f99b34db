package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/octabyte/hostel-gommon/client"
	"github.com/octabyte/hostel-gommon/db/redis"
	"github.com/octabyte/hostel-gommon/otel"
	"github.com/octabyte/hostel-gommon/utils/logger"
)

const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"

	defaultTimeout     = 30 * time.Second
	defaultRedisPrefix = "hostel:session"
	defaultExchange    = "hostel.sessions"
	defaultRoutingKey  = "session"
	sessionFileName    = "session.json"
)

// Config is everything a process embedding the client reads from its
// environment.
type Config struct {
	Client client.Config `validate:"-"`
	Logger logger.Config
	Otel   otel.Config

	SessionStore string `validate:"oneof=file memory redis"`
	SessionFile  string `validate:"required_if=SessionStore file"`

	Redis       redis.Config `validate:"-"`
	RedisPrefix string
	RedisTTL    time.Duration `validate:"gte=0"`

	AMQP AMQPConfig
}

type AMQPConfig struct {
	URI        string `validate:"omitempty,startswith=amqp"`
	Exchange   string `validate:"required_with=URI"`
	RoutingKey string
}

// Enabled reports whether session events should be published.
func (c AMQPConfig) Enabled() bool {
	return c.URI != ""
}

// Load reads the configuration from the environment, after merging in the
// given .env files (".env" when none are named). Missing .env files are not
// an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var errs []error
	timeout, err := getDuration("HOSTEL_REQUEST_TIMEOUT", defaultTimeout)
	errs = append(errs, err)
	redisDB, err := getInt("HOSTEL_REDIS_DB", 0)
	errs = append(errs, err)
	redisTTL, err := getDuration("HOSTEL_REDIS_TTL", 0)
	errs = append(errs, err)
	otelEnabled, err := getBool("OTEL_ENABLED", false)
	errs = append(errs, err)
	sampleRate, err := getFloat("OTEL_SAMPLE_RATE", 1.0)
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	env := getString("APP_ENV", "development")
	cfg := Config{
		Client: client.Config{
			BaseURL:     getString("HOSTEL_API_BASE_URL", client.DefaultBaseURL),
			LoginPath:   getString("HOSTEL_LOGIN_PATH", client.DefaultLoginPath),
			Timeout:     timeout,
			ServiceName: client.DefaultServiceName,
		},
		Logger: logger.Config{
			Level:       getString("LOG_LEVEL", "info"),
			Env:         env,
			ServiceName: client.DefaultServiceName,
		},
		Otel: otel.Config{
			Enabled:     otelEnabled,
			Endpoint:    getString("OTEL_ENDPOINT", "localhost:4318"),
			ServiceName: client.DefaultServiceName,
			Environment: env,
			SampleRate:  sampleRate,
		},
		SessionStore: strings.ToLower(getString("HOSTEL_SESSION_STORE", StoreFile)),
		SessionFile:  getString("HOSTEL_SESSION_FILE", defaultSessionFile()),
		Redis: redis.Config{
			Addr:     getString("HOSTEL_REDIS_ADDR", "localhost:6379"),
			Password: getString("HOSTEL_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		RedisPrefix: getString("HOSTEL_REDIS_PREFIX", defaultRedisPrefix),
		RedisTTL:    redisTTL,
		AMQP: AMQPConfig{
			URI:        getString("HOSTEL_AMQP_URI", ""),
			Exchange:   getString("HOSTEL_AMQP_EXCHANGE", defaultExchange),
			RoutingKey: getString("HOSTEL_AMQP_ROUTING_KEY", defaultRoutingKey),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := c.Client.Validate(); err != nil {
		return fmt.Errorf("invalid client configuration: %w", err)
	}
	if c.SessionStore == StoreRedis {
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("invalid redis configuration: %w", err)
		}
	}
	return nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".hostel", sessionFileName)
	}
	return filepath.Join(dir, "hostel", sessionFileName)
}

func getString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value := getString(key, "")
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

func getBool(key string, fallback bool) (bool, error) {
	value := getString(key, "")
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	value := getString(key, "")
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

// getDuration accepts Go durations ("45s") and bare seconds ("45").
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getString(key, "")
	if value == "" {
		return fallback, nil
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}
