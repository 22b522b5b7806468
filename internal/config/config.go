package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Port             string        `mapstructure:"PORT"`
	GinMode          string        `mapstructure:"GIN_MODE"`
	APIURL           string        `mapstructure:"API_URL"`
	PredictorTimeout time.Duration `mapstructure:"PREDICTOR_TIMEOUT"`
	SessionTTL       time.Duration `mapstructure:"SESSION_TTL"`
	MaxSessions      int           `mapstructure:"MAX_SESSIONS"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	LogFormat        string        `mapstructure:"LOG_FORMAT"`
	CORSOrigins      []string      `mapstructure:"CORS_ORIGINS"`
	MaxBodyBytes     int64         `mapstructure:"MAX_BODY_BYTES"`
}

var keys = []string{
	"PORT",
	"GIN_MODE",
	"API_URL",
	"PREDICTOR_TIMEOUT",
	"SESSION_TTL",
	"MAX_SESSIONS",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"CORS_ORIGINS",
	"MAX_BODY_BYTES",
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"port":      "PORT",
	"api-url":   "API_URL",
	"log-level": "LOG_LEVEL",
}

// Load reads configuration from the environment, a .env file when present,
// and any of flags that were set on the command line.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("API_URL", "http://localhost:8000")
	v.SetDefault("PREDICTOR_TIMEOUT", "30s")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("MAX_SESSIONS", 10000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)

	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", k, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// The env value "a, b" decodes to ["a", " b"]; normalize either way.
	cfg.CORSOrigins = splitList(strings.Join(cfg.CORSOrigins, ","))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_URL must be an absolute URL, got %q", c.APIURL)
	}
	if c.PredictorTimeout < 0 {
		return fmt.Errorf("PREDICTOR_TIMEOUT must not be negative")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("MAX_SESSIONS must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"json\" or \"console\", got %q", c.LogFormat)
	}
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
