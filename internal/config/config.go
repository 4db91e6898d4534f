package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	ZWSID                 string        `mapstructure:"zws_id"`
	BaseURL               string        `mapstructure:"zillow_base_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	ValidateParams        bool          `mapstructure:"validate_params"`
	UserAgent             string        `mapstructure:"user_agent"`

	JobsFile           string        `mapstructure:"jobs_file"`
	PublishersFile     string        `mapstructure:"publishers_file"`
	RunIntervalSeconds int64         `mapstructure:"run_interval"`
	RunInterval        time.Duration `mapstructure:"-"`
	MaxConcurrency     int           `mapstructure:"max_concurrency"`
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"api-key":   "zws_id",
	"base-url":  "zillow_base_url",
	"timeout":   "request_timeout_seconds",
	"validate":  "validate_params",
	"log-level": "log_level",
}

// Load reads configuration from environment variables, configs/.env and, when
// flags is non-nil, the command-line flags listed in flagKeys.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "zillow-connector")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("zws_id", "")
	v.SetDefault("zillow_base_url", "http://www.zillow.com/webservice")
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("validate_params", false)
	v.SetDefault("user_agent", "")
	v.SetDefault("jobs_file", "./configs/jobs.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("run_interval", 3600) // seconds
	v.SetDefault("max_concurrency", 4)

	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.ZWSID = strings.TrimSpace(cfg.ZWSID)
	if cfg.ZWSID == "" {
		return nil, fmt.Errorf("zws_id is required (set ZWS_ID)")
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.RunIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid run_interval (must be positive seconds)")
	}
	cfg.RunInterval = time.Duration(cfg.RunIntervalSeconds) * time.Second

	if cfg.MaxConcurrency <= 0 {
		return nil, fmt.Errorf("invalid max_concurrency (must be positive)")
	}

	return &cfg, nil
}

// Redacted returns a copy safe for logging.
func (c Config) Redacted() Config {
	if c.ZWSID != "" {
		c.ZWSID = "REDACTED"
	}
	return c
}
