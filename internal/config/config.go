// Package config loads fleetctl settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Session backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

const (
	DefaultAPIURL          = "http://localhost:3000/api"
	DefaultProfile         = "default"
	DefaultMongoDB         = "fleet_maintenance"
	DefaultRedisAddr       = "localhost:6379"
	DefaultMeasurementUnit = "m"
)

// Config holds every runtime setting.
type Config struct {
	APIURL         string
	HTTPTimeout    time.Duration
	SessionBackend string
	SessionFile    string
	SessionProfile string
	SessionTTL     time.Duration
	MongoURI       string
	MongoDB        string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	LogLevel       string
	LogFormat      string
	// MeasurementUnit is appended to measurement values and differences.
	MeasurementUnit string
}

// Load reads the given .env files (".env" when none are named) and then
// builds the configuration from the environment. Missing files are not an
// error and variables already set win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.WithField("file", f).Debug("No env file found, using environment")
				continue
			}
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables alone.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIURL:          strings.TrimRight(getEnv("API_URL", DefaultAPIURL), "/"),
		SessionBackend:  strings.ToLower(getEnv("SESSION_BACKEND", BackendFile)),
		SessionFile:     getEnv("SESSION_FILE", ""),
		SessionProfile:  getEnv("SESSION_PROFILE", DefaultProfile),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDB:         getEnv("MONGO_DB", DefaultMongoDB),
		RedisAddr:       getEnv("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		LogLevel:        getEnv("LOG_LEVEL", "warn"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		MeasurementUnit: getEnv("MEASUREMENT_UNIT", DefaultMeasurementUnit),
	}

	var err error
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL"); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case BackendFile, BackendMemory, BackendMongo, BackendRedis:
	default:
		return fmt.Errorf("SESSION_BACKEND must be one of file, memory, mongo, redis; got %q", c.SessionBackend)
	}
	if c.APIURL == "" {
		return errors.New("API_URL must not be empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json; got %q", c.LogFormat)
	}
	return nil
}

// ConfigureLogger applies level and format to l.
func (c *Config) ConfigureLogger(l *log.Logger) {
	if level, err := log.ParseLevel(c.LogLevel); err == nil {
		l.SetLevel(level)
	}
	if c.LogFormat == "json" {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

// getDuration accepts Go durations ("30s") or a plain number of seconds.
// Unset means zero, i.e. no limit.
func getDuration(key string) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid %s %q: must not be negative", key, v)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return d, nil
}
