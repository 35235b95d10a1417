package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Server struct {
		Port string
	}
	Backend struct {
		BaseURL string
		Timeout time.Duration
	}
	Session struct {
		Store        string
		TTL          time.Duration
		SecureCookie bool
	}
	Redis struct {
		URL string
	}
	Database struct {
		URL string
	}
	RateLimit struct {
		PerMinute int
	}
	Views struct {
		SettleWindow time.Duration
	}
}

// Load reads config.yaml from the working directory if present, then
// applies environment overrides (backend.base_url <- BACKEND_BASE_URL).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	config.Server.Port = v.GetString("server.port")
	config.Backend.BaseURL = strings.TrimRight(v.GetString("backend.base_url"), "/")
	config.Backend.Timeout = v.GetDuration("backend.timeout")
	config.Session.Store = strings.ToLower(v.GetString("session.store"))
	config.Session.TTL = v.GetDuration("session.ttl")
	config.Session.SecureCookie = v.GetBool("session.secure_cookie")
	config.Redis.URL = v.GetString("redis.url")
	config.Database.URL = v.GetString("database.url")
	config.RateLimit.PerMinute = v.GetInt("ratelimit.per_minute")
	config.Views.SettleWindow = v.GetDuration("views.settle_window")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout", "0s")
	v.SetDefault("session.store", SessionStoreMemory)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.secure_cookie", false)
	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("database.url", "")
	v.SetDefault("ratelimit.per_minute", 60)
	v.SetDefault("views.settle_window", "1500ms")
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_BASE_URL must be an absolute URL, got %q", c.Backend.BaseURL)
	}
	switch c.Session.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("RATELIMIT_PER_MINUTE must be positive")
	}
	return nil
}

// ActivityLogEnabled reports whether backend calls are recorded in Postgres.
func (c *Config) ActivityLogEnabled() bool {
	return c.Database.URL != ""
}
