package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Report store backends
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
	StoreRedis  = "redis"
)

// Config holds everything the server reads from the environment
type Config struct {
	Port        string
	Environment string
	Domain      string

	MongoURI      string
	MongoDatabase string

	RedisAddress  string
	RedisPassword string

	ReportStore string

	JWTSecret          string
	SessionTTL         time.Duration
	SessionEnforceRole bool

	SubmitRateLimit  int
	SubmitRateWindow time.Duration
	RateLimitPrefix  string

	CallTimeout     time.Duration
	SeedDemoReports bool
	CORSOrigins     []string

	LogLevel  string
	LogFormat string
}

// IsProduction reports whether GO_ENV is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads .env (if present) and then the process environment.
// loadedEnv reports whether a .env file was found.
func Load() (cfg *Config, loadedEnv bool, err error) {
	loadedEnv = godotenv.Load() == nil

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg = &Config{
		Port:            v.GetString("PORT"),
		Environment:     v.GetString("GO_ENV"),
		Domain:          v.GetString("DOMAIN"),
		MongoURI:        v.GetString("MONGODB_URI"),
		MongoDatabase:   v.GetString("MONGODB_DATABASE"),
		RedisAddress:    v.GetString("REDIS_ADDRESS"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		ReportStore:     strings.ToLower(v.GetString("REPORT_STORE")),
		JWTSecret:       v.GetString("JWT_SECRET"),
		RateLimitPrefix: v.GetString("REDIS_QUEUE_FOR_ISSUE_LIMIT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
	}

	if cfg.SessionTTL, err = getDuration(v, "SESSION_TTL"); err != nil {
		return nil, loadedEnv, err
	}
	if cfg.SubmitRateWindow, err = getDuration(v, "SUBMIT_RATE_WINDOW"); err != nil {
		return nil, loadedEnv, err
	}
	if cfg.CallTimeout, err = getDuration(v, "CALL_TIMEOUT"); err != nil {
		return nil, loadedEnv, err
	}
	if cfg.SubmitRateLimit, err = getInt(v, "SUBMIT_RATE_LIMIT"); err != nil {
		return nil, loadedEnv, err
	}
	if cfg.SessionEnforceRole, err = getBool(v, "SESSION_ENFORCE_ROLE"); err != nil {
		return nil, loadedEnv, err
	}
	if cfg.SeedDemoReports, err = getBool(v, "SEED_DEMO_REPORTS"); err != nil {
		return nil, loadedEnv, err
	}
	for _, o := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, loadedEnv, err
	}
	return cfg, loadedEnv, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GO_ENV", "development")
	v.SetDefault("MONGODB_DATABASE", "transport")
	v.SetDefault("REPORT_STORE", StoreMemory)
	v.SetDefault("REDIS_QUEUE_FOR_ISSUE_LIMIT", "report_limit")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("SESSION_TTL", 72*time.Hour)
	v.SetDefault("SUBMIT_RATE_WINDOW", 24*time.Hour)
	v.SetDefault("CALL_TIMEOUT", 10*time.Second)
	v.SetDefault("SUBMIT_RATE_LIMIT", 20)
	v.SetDefault("SESSION_ENFORCE_ROLE", false)
	v.SetDefault("SEED_DEMO_REPORTS", false)
}

// Validate checks that the settings required by the chosen backends are present
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	switch c.ReportStore {
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("please define the MONGODB_URI environment variable")
		}
	case StoreRedis:
		if c.RedisAddress == "" {
			return fmt.Errorf("please define the REDIS_ADDRESS environment variable")
		}
	default:
		return fmt.Errorf("unknown REPORT_STORE %q", c.ReportStore)
	}
	if c.SubmitRateLimit < 1 {
		return fmt.Errorf("SUBMIT_RATE_LIMIT must be positive, got %d", c.SubmitRateLimit)
	}
	for _, d := range []struct {
		key string
		val time.Duration
	}{
		{"SESSION_TTL", c.SessionTTL},
		{"SUBMIT_RATE_WINDOW", c.SubmitRateWindow},
		{"CALL_TIMEOUT", c.CallTimeout},
	} {
		if d.val <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.key, d.val)
		}
	}
	return nil
}

func getDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := cast.ToDurationE(v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(v *viper.Viper, key string) (int, error) {
	n, err := cast.ToIntE(v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(v *viper.Viper, key string) (bool, error) {
	b, err := cast.ToBoolE(v.Get(key))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
