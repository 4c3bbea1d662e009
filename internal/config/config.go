// Package config loads application configuration from a yaml file with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	envPrefix       = "DEMOPRO_"
	defaultFileName = "config.yaml"
)

var Module = fx.Module("config",
	fx.Provide(New),
)

type Config struct {
	Env struct {
		Environment string `koanf:"environment"`
		ServiceName string `koanf:"serviceName"`
		Debug       bool   `koanf:"debug"`
		Log         Log    `koanf:"log"`
	} `koanf:"env"`

	HTTP struct {
		Addr            string        `koanf:"addr"`
		ReadTimeout     time.Duration `koanf:"readTimeout"`
		WriteTimeout    time.Duration `koanf:"writeTimeout"`
		IdleTimeout     time.Duration `koanf:"idleTimeout"`
		ShutdownTimeout time.Duration `koanf:"shutdownTimeout"`
	} `koanf:"http"`

	Database struct {
		DSN          string `koanf:"dsn"`
		MaxOpenConns int    `koanf:"maxOpenConns"`
	} `koanf:"database"`

	RateLimit struct {
		Enabled bool          `koanf:"enabled"`
		Limit   int           `koanf:"limit"`
		Window  time.Duration `koanf:"window"`
	} `koanf:"rateLimit"`

	Tracing struct {
		Enabled          bool    `koanf:"enabled"`
		ExporterEndpoint string  `koanf:"exporterEndpoint"`
		ExporterProtocol string  `koanf:"exporterProtocol"`
		SamplingRatio    float64 `koanf:"samplingRatio"`
	} `koanf:"tracing"`

	Reminder struct {
		Enabled      bool          `koanf:"enabled"`
		PollInterval time.Duration `koanf:"pollInterval"`
		LeadWindow   time.Duration `koanf:"leadWindow"`
	} `koanf:"reminder"`

	Bootstrap struct {
		SeedSampleData bool `koanf:"seedSampleData"`
	} `koanf:"bootstrap"`
}

type Log struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// IsProduction reports whether the app runs with production hardening.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env.Environment), "production")
}

// New loads config.yaml (path overridable via DEMOPRO_CONFIG) and applies
// DEMOPRO_* environment overrides on top.
func New() (Config, error) {
	k := koanf.New(".")

	path := strings.TrimSpace(os.Getenv(envPrefix + "CONFIG"))
	if path == "" {
		path = filepath.Join(".", defaultFileName)
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, errors.Wrapf(err, "load config file %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return Config{}, errors.Wrap(err, "load env overrides")
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
			// Env override keys arrive lowercased; match section names
			// case-insensitively.
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Env.ServiceName == "" {
		c.Env.ServiceName = "demopro"
	}
	if c.Env.Environment == "" {
		c.Env.Environment = "development"
	}
	if c.Env.Log.Level == "" {
		c.Env.Log.Level = "info"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 15 * time.Second
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.HTTP.IdleTimeout <= 0 {
		c.HTTP.IdleTimeout = time.Minute
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 1
	}
	if c.RateLimit.Limit <= 0 {
		c.RateLimit.Limit = 60
	}
	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.Tracing.SamplingRatio <= 0 {
		c.Tracing.SamplingRatio = 0.1
	}
	if c.Reminder.PollInterval <= 0 {
		c.Reminder.PollInterval = time.Minute
	}
	if c.Reminder.LeadWindow <= 0 {
		c.Reminder.LeadWindow = 24 * time.Hour
	}
}
