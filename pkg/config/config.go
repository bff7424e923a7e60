// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. TIER_DATASET.
const Prefix = "TIER"

// Config validation errors
var (
	ErrInvalidSeed      = errors.New("seed must be non-negative")
	ErrInvalidNInit     = errors.New("n_init must be positive")
	ErrInvalidMaxIter   = errors.New("max_iter must be positive")
	ErrInvalidTolerance = errors.New("tolerance must be non-negative")
	ErrInvalidPolicy    = errors.New("policy must be 'strict' or 'lenient'")
	ErrInvalidLogFormat = errors.New("log_format must be 'json' or 'console' ('text')")
	ErrInvalidLogLevel  = errors.New("log_level must be debug, info, warn (warning) or error")
)

// Config is the process configuration.
type Config struct {
	Dataset    string  `envconfig:"DATASET" default:"coba-data.csv"`
	Schema     string  `envconfig:"SCHEMA"` // optional YAML feature list
	Seed       int64   `envconfig:"SEED" default:"42"`
	NInit      int     `envconfig:"N_INIT" default:"10"`
	MaxIter    int     `envconfig:"MAX_ITER" default:"300"`
	Tolerance  float64 `envconfig:"TOLERANCE" default:"1e-4"`
	Policy     string  `envconfig:"POLICY" default:"strict"`
	LogLevel   string  `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string  `envconfig:"LOG_FORMAT" default:"console"`
	ListenAddr string  `envconfig:"LISTEN_ADDR" default:":8080"`
}

// Load reads the optional dotenv files (default ".env"), then the TIER_* environment.
// Variables already set in the environment win over dotenv values.
func Load(dotenv ...string) (*Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.Seed < 0 {
		return ErrInvalidSeed
	}
	if c.NInit <= 0 {
		return ErrInvalidNInit
	}
	if c.MaxIter <= 0 {
		return ErrInvalidMaxIter
	}
	if c.Tolerance < 0 {
		return ErrInvalidTolerance
	}
	switch strings.ToLower(c.Policy) {
	case "strict", "lenient":
	default:
		return ErrInvalidPolicy
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console", "text":
	default:
		return ErrInvalidLogFormat
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}
