// Package config defines the runtime configuration, its defaults and
// validation.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the decoded form of ~/.linkpath.yaml, LINKPATH_* variables
// and command-line flags.
type Config struct {
	// Nodes and Edges locate the input files, locally or as s3://bucket/key.
	Nodes string `mapstructure:"nodes" validate:"required"`
	Edges string `mapstructure:"edges" validate:"required"`

	// Strict aborts loading on the first bad record.
	Strict bool `mapstructure:"strict"`
	// MaxReported caps per-record warnings in lenient mode.
	MaxReported int `mapstructure:"max_reported" validate:"gte=0"`

	// Query constraints.
	MaxDepth     int           `mapstructure:"max_depth" validate:"gte=0"`
	Filter       string        `mapstructure:"filter"`
	QueryTimeout time.Duration `mapstructure:"query_timeout" validate:"gte=0"`

	// Concurrency bounds parallel batch queries.
	Concurrency int `mapstructure:"concurrency" validate:"gte=1,lte=1024"`
	// Seed makes random endpoints reproducible; zero picks a fresh seed.
	Seed uint64 `mapstructure:"seed"`

	// Storage.
	Region     string `mapstructure:"region"`
	S3Endpoint string `mapstructure:"s3_endpoint" validate:"omitempty,url"`

	// Output.
	JSONLogs bool   `mapstructure:"json_logs"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	NoColor  bool   `mapstructure:"no_color"`

	// Telemetry.
	OtelEndpoint  string `mapstructure:"otel_endpoint" validate:"omitempty,url"`
	SkipTelemetry bool   `mapstructure:"skip_telemetry"`
	Metrics       string `mapstructure:"metrics" validate:"oneof=none prometheus stdout"`

	// ListenAddr is where serve accepts HTTP queries.
	ListenAddr string `mapstructure:"listen_addr" validate:"hostname_port"`
}

// Defaults.
const (
	DefaultConcurrency  = 8
	DefaultMaxReported  = 10
	DefaultLogLevel     = "info"
	DefaultQueryTimeout = 2 * time.Minute
	DefaultMetrics      = "none"
	DefaultListenAddr   = "localhost:8080"
)

// Default returns a configuration with sensible default values.
func Default() Config {
	return Config{
		MaxReported:  DefaultMaxReported,
		QueryTimeout: DefaultQueryTimeout,
		Concurrency:  DefaultConcurrency,
		LogLevel:     DefaultLogLevel,
		Metrics:      DefaultMetrics,
		ListenAddr:   DefaultListenAddr,
	}
}

// SetDefaults registers Default() with v so unset keys decode to it.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("max_reported", d.MaxReported)
	v.SetDefault("query_timeout", d.QueryTimeout)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("metrics", d.Metrics)
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("max_depth", 0)
	v.SetDefault("strict", false)
	v.SetDefault("seed", uint64(0))
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Metrics = strings.ToLower(cfg.Metrics)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every constraint cfg violates.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
