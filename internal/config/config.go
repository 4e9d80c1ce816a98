package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	Matching MatchingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiresIn time.Duration
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type MatchingConfig struct {
	DefaultMinScore int
	MaxJobs         int
}

const (
	defaultRedisTTL        = 600 * time.Second
	defaultAccessExpiresIn = 15 * time.Minute
	defaultMinScore        = 30
	defaultMaxJobs         = 500
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// LoadDotEnv reads .env files into the process environment when present.
// Variables already set win over file values.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string) bool {
		raw := opt(key)
		if raw == "" {
			return false
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return false
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
		// bare integers are seconds
		if secs, err := strconv.Atoi(raw); err == nil {
			return time.Duration(secs) * time.Second
		}
		invalid = append(invalid, key)
		return def
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 0),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
		TTL:      optDuration("REDIS_TTL", defaultRedisTTL),
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == "" {
		cfg.Redis.Port = "6379"
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    req("JWT_ACCESS_SECRET"),
		AccessExpiresIn: optDuration("JWT_ACCESS_EXPIRES_IN", defaultAccessExpiresIn),
	}

	cfg.Log = LogConfig{
		JSON:  optBool("LOG_JSON"),
		Debug: optBool("LOG_DEBUG"),
	}

	cfg.Matching = MatchingConfig{
		DefaultMinScore: optInt("MATCH_MIN_SCORE", defaultMinScore),
		MaxJobs:         optInt("MATCH_MAX_JOBS", defaultMaxJobs),
	}
	if cfg.Matching.DefaultMinScore < 0 || cfg.Matching.DefaultMinScore > 100 {
		invalid = append(invalid, "MATCH_MIN_SCORE")
	}
	if cfg.Matching.MaxJobs <= 0 {
		invalid = append(invalid, "MATCH_MAX_JOBS")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func (c DatabaseConfig) Configured() bool {
	return c.DBHost != "" && c.DBPort != "" && c.DBName != "" && c.DBUser != ""
}
