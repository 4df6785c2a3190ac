// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// MinJWTSecretLength is the minimum HS256 key size in bytes.
const MinJWTSecretLength = 32

const (
	StoreSQLite  = "sqlite"
	StoreSpanner = "spanner"

	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"

	EventsNone   = "none"
	EventsLog    = "log"
	EventsRedis  = "redis"
	EventsOutbox = "outbox"
)

// Config is read once at startup and passed to constructors. Nothing reads
// the environment after Load returns.
type Config struct {
	// Env selects development behaviour (raw error messages, text logs)
	// only when set to "development" explicitly.
	Env            string `env:"ENV" envDefault:"production"`
	HTTPAddr       string `env:"HTTP_ADDR" envDefault:":8080"`
	GRPCHealthAddr string `env:"GRPC_HEALTH_ADDR" envDefault:":9090"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT"`

	// Store
	StoreDriver     string `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath      string `env:"SQLITE_PATH" envDefault:"./data/catalog.db"`
	SpannerDatabase string `env:"SPANNER_DATABASE"`

	// Cache
	CacheDriver      string        `env:"CACHE_DRIVER" envDefault:"memory"`
	RedisURL         string        `env:"REDIS_URL"`
	CachePrefix      string        `env:"CACHE_PREFIX" envDefault:"catalog:"`
	CacheTTL         time.Duration `env:"CACHE_TTL" envDefault:"20m"`
	CacheOpTimeout   time.Duration `env:"CACHE_OP_TIMEOUT" envDefault:"150ms"`
	CacheLoadTimeout time.Duration `env:"CACHE_LOAD_TIMEOUT" envDefault:"10s"`
	CacheCapacity    int           `env:"CACHE_CAPACITY" envDefault:"10000"`

	// Events
	EventsDriver        string        `env:"EVENTS_DRIVER" envDefault:"log"`
	EventsChannel       string        `env:"EVENTS_CHANNEL" envDefault:"catalog.events"`
	EventPublishTimeout time.Duration `env:"EVENT_PUBLISH_TIMEOUT" envDefault:"5s"`

	// Auth
	JWTSecret  string   `env:"JWT_SECRET,required"`
	AdminRoles []string `env:"ADMIN_ROLES" envDefault:"admin" envSeparator:","`

	// Localization
	Languages       []string `env:"LANGUAGES" envDefault:"en" envSeparator:","`
	DefaultLanguage string   `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	// HTTP
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	WriteRateLimit float64       `env:"WRITE_RATE_LIMIT" envDefault:"10"`
	WriteRateBurst int           `env:"WRITE_RATE_BURST" envDefault:"20"`
}

// IsDevelopment returns true if the service runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Format returns the log format, defaulting to text in development and
// JSON elsewhere.
func (c Config) Format() string {
	if c.LogFormat != "" {
		return c.LogFormat
	}
	if c.IsDevelopment() {
		return "text"
	}
	return "json"
}

const prefix = "CATALOG_"

// Load parses CATALOG_* variables from the process environment.
func Load() (*Config, error) {
	return parse(env.Options{Prefix: prefix})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: prefix, Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	c.CacheDriver = strings.ToLower(strings.TrimSpace(c.CacheDriver))
	c.EventsDriver = strings.ToLower(strings.TrimSpace(c.EventsDriver))
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.Languages = trimAll(c.Languages)
	c.AdminRoles = trimAll(c.AdminRoles)
	c.DefaultLanguage = strings.TrimSpace(c.DefaultLanguage)
}

// Validate checks the cross-field rules env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if len(c.JWTSecret) < MinJWTSecretLength {
		errs = append(errs, fmt.Errorf("%sJWT_SECRET must be at least %d bytes long, got %d",
			prefix, MinJWTSecretLength, len(c.JWTSecret)))
	}

	switch c.StoreDriver {
	case StoreSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, fmt.Errorf("%sSQLITE_PATH is required for the sqlite store", prefix))
		}
	case StoreSpanner:
		if c.SpannerDatabase == "" {
			errs = append(errs, fmt.Errorf("%sSPANNER_DATABASE is required for the spanner store", prefix))
		}
	default:
		errs = append(errs, fmt.Errorf("%sSTORE_DRIVER %q is not one of sqlite, spanner", prefix, c.StoreDriver))
	}

	switch c.CacheDriver {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.RedisURL == "" {
			errs = append(errs, fmt.Errorf("%sREDIS_URL is required for the redis cache", prefix))
		}
	default:
		errs = append(errs, fmt.Errorf("%sCACHE_DRIVER %q is not one of memory, redis, none", prefix, c.CacheDriver))
	}

	switch c.EventsDriver {
	case EventsNone, EventsLog, EventsOutbox:
	case EventsRedis:
		if c.RedisURL == "" {
			errs = append(errs, fmt.Errorf("%sREDIS_URL is required for redis events", prefix))
		}
	default:
		errs = append(errs, fmt.Errorf("%sEVENTS_DRIVER %q is not one of none, log, redis, outbox", prefix, c.EventsDriver))
	}

	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("%sCACHE_TTL must be positive", prefix))
	}
	if c.CacheOpTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%sCACHE_OP_TIMEOUT must be positive", prefix))
	}
	if c.CacheLoadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%sCACHE_LOAD_TIMEOUT must be positive", prefix))
	}
	if c.WriteRateLimit <= 0 || c.WriteRateBurst <= 0 {
		errs = append(errs, fmt.Errorf("%sWRITE_RATE_LIMIT and %sWRITE_RATE_BURST must be positive", prefix, prefix))
	}
	if len(c.AdminRoles) == 0 {
		errs = append(errs, fmt.Errorf("%sADMIN_ROLES must name at least one role", prefix))
	}
	if len(c.Languages) == 0 {
		errs = append(errs, fmt.Errorf("%sLANGUAGES must name at least one language", prefix))
	} else if !slices.Contains(c.Languages, c.DefaultLanguage) {
		errs = append(errs, fmt.Errorf("%sDEFAULT_LANGUAGE %q is not in %sLANGUAGES", prefix, c.DefaultLanguage, prefix))
	}

	return errors.Join(errs...)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
