package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/storeguard/internal/domain"
)

// DotEnvFile is loaded, when present, before the YAML file is expanded.
const DotEnvFile = ".env"

// Search drivers.
const (
	DriverElasticsearch = "elasticsearch"
	DriverOpenSearch    = "opensearch"
)

// Config holds the storeguard API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Search     SearchConfig     `yaml:"search"`
	Cache      CacheConfig      `yaml:"cache"`
	Auth       AuthConfig       `yaml:"auth"`
	Pagination PaginationConfig `yaml:"pagination"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds the HTTP Basic credential pair every API route requires.
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Realm    string `yaml:"realm"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes"`
}

// MongoConfig holds document store connection settings.
type MongoConfig struct {
	URI               string `yaml:"uri"`
	Username          string `yaml:"username"`
	Password          string `yaml:"password"`
	AuthSource        string `yaml:"auth_source"`
	Database          string `yaml:"database"`
	ConnectTimeoutSec int    `yaml:"connect_timeout_sec"`
	MaxPoolSize       uint64 `yaml:"max_pool_size"`
	RetryAttempts     int    `yaml:"retry_attempts"`
	RetryIntervalSec  int    `yaml:"retry_interval_sec"`
}

// SearchConfig holds full-text backend settings.
type SearchConfig struct {
	Driver     string   `yaml:"driver"` // elasticsearch, opensearch (default: elasticsearch)
	Addresses  []string `yaml:"addresses"`
	Username   string   `yaml:"username"`
	Password   string   `yaml:"password"`
	Index      string   `yaml:"index"`
	TimeoutSec int      `yaml:"timeout_sec"`
}

// CacheConfig holds the optional search result cache settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	TTLSec           int      `yaml:"ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// PaginationConfig bounds page sizes per listing.
type PaginationConfig struct {
	OrdersDefaultSize   int `yaml:"orders_default_size"`
	OrdersMaxSize       int `yaml:"orders_max_size"`
	ArticlesDefaultSize int `yaml:"articles_default_size"`
	ArticlesMaxSize     int `yaml:"articles_max_size"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory is loaded first; it never overrides variables
// already set in the process environment.
func Load(env string) (Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return Config{}, err
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 1 << 20
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "tienda"
	}
	if c.Mongo.AuthSource == "" {
		c.Mongo.AuthSource = "admin"
	}
	if c.Mongo.ConnectTimeoutSec <= 0 {
		c.Mongo.ConnectTimeoutSec = 10
	}
	if c.Mongo.MaxPoolSize == 0 {
		c.Mongo.MaxPoolSize = 100
	}
	if c.Mongo.RetryAttempts <= 0 {
		c.Mongo.RetryAttempts = 3
	}
	if c.Mongo.RetryIntervalSec <= 0 {
		c.Mongo.RetryIntervalSec = 5
	}
	if c.Search.Driver == "" {
		c.Search.Driver = DriverElasticsearch
	}
	if c.Search.Index == "" {
		c.Search.Index = "articulos"
	}
	if c.Search.TimeoutSec <= 0 {
		c.Search.TimeoutSec = 3
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 60
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Pagination.OrdersDefaultSize <= 0 {
		c.Pagination.OrdersDefaultSize = 50
	}
	if c.Pagination.OrdersMaxSize <= 0 {
		c.Pagination.OrdersMaxSize = 200
	}
	if c.Pagination.ArticlesDefaultSize <= 0 {
		c.Pagination.ArticlesDefaultSize = 10
	}
	if c.Pagination.ArticlesMaxSize <= 0 {
		c.Pagination.ArticlesMaxSize = 50
	}
}

// Validate checks the configuration for correctness.
// Missing secrets fail with domain.ErrMisconfigured.
func (c *Config) Validate() error {
	if c.Auth.Username == "" || c.Auth.Password == "" {
		return fmt.Errorf("auth.username and auth.password are required: %w", domain.ErrMisconfigured)
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required: %w", domain.ErrMisconfigured)
	}
	if c.Mongo.Username == "" || c.Mongo.Password == "" {
		return fmt.Errorf("mongo.username and mongo.password are required: %w", domain.ErrMisconfigured)
	}
	if !hasAddress(c.Search.Addresses) {
		return fmt.Errorf("search.addresses is required: %w", domain.ErrMisconfigured)
	}
	if c.Search.Username == "" || c.Search.Password == "" {
		return fmt.Errorf("search.username and search.password are required: %w", domain.ErrMisconfigured)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Search.Driver {
	case DriverElasticsearch, DriverOpenSearch:
		// ok
	default:
		return fmt.Errorf(
			"search.driver must be %q or %q, got %q", DriverElasticsearch, DriverOpenSearch, c.Search.Driver,
		)
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache.enabled is true")
	}
	if c.Pagination.OrdersDefaultSize > c.Pagination.OrdersMaxSize {
		return fmt.Errorf("pagination.orders_default_size must not exceed pagination.orders_max_size")
	}
	if c.Pagination.ArticlesDefaultSize > c.Pagination.ArticlesMaxSize {
		return fmt.Errorf("pagination.articles_default_size must not exceed pagination.articles_max_size")
	}
	return nil
}

// hasAddress reports whether addrs holds a non-blank entry. An unset ${VAR}
// in a YAML list expands to "".
func hasAddress(addrs []string) bool {
	for _, a := range addrs {
		if strings.TrimSpace(a) != "" {
			return true
		}
	}
	return false
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
