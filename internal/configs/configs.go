package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const DefaultFile = "taskboard.toml"

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNeo4j    = "neo4j"
)

type Config struct {
	AppURL                 string
	StoreDriver            string
	DatabaseDSN            string
	PostgresURL            string
	Neo4jURI               string
	Neo4jUser              string
	Neo4jPassword          string
	Neo4jDatabase          string
	RedisEnabled           bool
	RedisAddr              string
	RedisCacheKey          string
	RedisCacheTTLSeconds   int
	RedisNotifyChannel     string
	RateLimit              int
	ShutdownTimeoutSeconds int
	JWTSecret              string
	JWTIssuer              string
}

// fileConfig mirrors taskboard.toml. Its zero value is overwritten by the
// built-in defaults before decoding, so absent keys keep those defaults.
type fileConfig struct {
	App   appSection   `toml:"app"`
	Store storeSection `toml:"store"`
	Neo4j neo4jSection `toml:"neo4j"`
	Redis redisSection `toml:"redis"`
	HTTP  httpSection  `toml:"http"`
	Auth  authSection  `toml:"auth"`
}

type appSection struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

type storeSection struct {
	Driver      string `toml:"driver"`
	DSN         string `toml:"dsn"`
	PostgresURL string `toml:"postgres_url"`
}

type neo4jSection struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

type redisSection struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            string `toml:"port"`
	CacheKey        string `toml:"cache_key"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
	NotifyChannel   string `toml:"notify_channel"`
}

type httpSection struct {
	RateLimitPerMinute     int `toml:"rate_limit_per_minute"`
	ShutdownTimeoutSeconds int `toml:"shutdown_timeout_seconds"`
}

type authSection struct {
	JWTSecret string `toml:"jwt_secret"`
	JWTIssuer string `toml:"jwt_issuer"`
}

func defaults() fileConfig {
	return fileConfig{
		App:   appSection{Host: "127.0.0.1", Port: "8080"},
		Store: storeSection{Driver: DriverMemory, DSN: "tasks.db"},
		Neo4j: neo4jSection{URI: "neo4j://127.0.0.1:7687", User: "neo4j"},
		Redis: redisSection{
			Host:            "127.0.0.1",
			Port:            "6379",
			CacheKey:        "taskboard:tasks",
			CacheTTLSeconds: 30,
			NotifyChannel:   "taskboard:notifications",
		},
		HTTP: httpSection{RateLimitPerMinute: 60, ShutdownTimeoutSeconds: 20},
		Auth: authSection{JWTIssuer: "taskboard"},
	}
}

// Load reads .env, the optional TOML file at path and the environment, in
// increasing order of precedence. Invalid configuration is fatal.
func Load(path string) Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to read .env: %v", err)
	}

	cfg, err := load(path)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func load(path string) (Config, error) {
	file, err := readFile(path)
	if err != nil {
		return Config{}, err
	}

	appHost := getEnv("APP_HOST", file.App.Host)
	appPort := getEnv("APP_PORT", file.App.Port)
	redisHost := getEnv("REDIS_HOST", file.Redis.Host)
	redisPort := getEnv("REDIS_PORT", file.Redis.Port)

	cfg := Config{
		AppURL:             fmt.Sprintf("%s:%s", appHost, appPort),
		StoreDriver:        strings.ToLower(getEnv("TASK_STORE", file.Store.Driver)),
		DatabaseDSN:        getEnv("DATABASE_DSN", file.Store.DSN),
		PostgresURL:        getEnv("POSTGRES_URL", file.Store.PostgresURL),
		Neo4jURI:           getEnv("NEO4J_URI", file.Neo4j.URI),
		Neo4jUser:          getEnv("NEO4J_USER", file.Neo4j.User),
		Neo4jPassword:      getEnv("NEO4J_PASSWORD", file.Neo4j.Password),
		Neo4jDatabase:      getEnv("NEO4J_DATABASE", file.Neo4j.Database),
		RedisAddr:          fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisCacheKey:      getEnv("REDIS_CACHE_KEY", file.Redis.CacheKey),
		RedisNotifyChannel: getEnv("REDIS_NOTIFY_CHANNEL", file.Redis.NotifyChannel),
		JWTSecret:          getEnv("JWT_SECRET", file.Auth.JWTSecret),
		JWTIssuer:          getEnv("JWT_ISSUER", file.Auth.JWTIssuer),
	}

	if cfg.RedisEnabled, err = getEnvAsBool("REDIS_ENABLED", file.Redis.Enabled); err != nil {
		return Config{}, err
	}
	if cfg.RedisCacheTTLSeconds, err = getEnvAsInt("REDIS_CACHE_TTL_SECONDS", file.Redis.CacheTTLSeconds); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit, err = getEnvAsInt("RATE_LIMIT_PER_MINUTE", file.HTTP.RateLimitPerMinute); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeoutSeconds, err = getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", file.HTTP.ShutdownTimeoutSeconds); err != nil {
		return Config{}, err
	}

	return cfg, validate(cfg)
}

// readFile decodes the TOML file over the defaults. An empty path means
// DefaultFile when it exists.
func readFile(path string) (fileConfig, error) {
	cfg := defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		log.Printf("config file %s: unknown key %s", path, key)
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if strings.HasSuffix(cfg.AppURL, ":") {
		return errors.New("APP_PORT must not be empty")
	}

	switch cfg.StoreDriver {
	case DriverMemory:
	case DriverSQLite:
		if cfg.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN must not be empty when TASK_STORE=sqlite")
		}
	case DriverPostgres:
		if cfg.PostgresURL == "" {
			return errors.New("POSTGRES_URL must not be empty when TASK_STORE=postgres")
		}
	case DriverNeo4j:
		if cfg.Neo4jURI == "" {
			return errors.New("NEO4J_URI must not be empty when TASK_STORE=neo4j")
		}
	default:
		return fmt.Errorf("TASK_STORE must be one of memory, sqlite, postgres, neo4j (got %q)", cfg.StoreDriver)
	}

	if cfg.RateLimit < 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.RedisEnabled && cfg.RedisCacheTTLSeconds <= 0 {
		return errors.New("REDIS_CACHE_TTL_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsBool(key string, defaultVal bool) (bool, error) {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid boolean value for %s", key)
		}
		return b, nil
	}
	return defaultVal, nil
}
