// Package config loads CLI settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/satmihir/smchash/internal/hasher"
)

// Prefix is prepended to every variable name, e.g. SMCHASH_WORKERS.
const Prefix = "smchash"

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Environment    Environment   `envconfig:"ENV" default:"prod"`
	Algorithm      string        `envconfig:"ALGORITHM" default:"smchash"`
	Seed           *uint64       `envconfig:"SEED"`
	SecretSeed     *uint64       `envconfig:"SECRET_SEED"`
	Workers        int           `envconfig:"WORKERS" default:"4"`
	SecretTimeout  time.Duration `envconfig:"SECRET_TIMEOUT" default:"30s"`
	SecretAttempts int           `envconfig:"SECRET_ATTEMPTS" default:"3"`
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		Environment:    EnvProd,
		Algorithm:      string(hasher.AlgorithmSmcHash),
		Workers:        4,
		SecretTimeout:  30 * time.Second,
		SecretAttempts: 3,
	}
}

// Load reads the optional dotenv files, then the environment. Variables already set in
// the environment win over dotenv values. With no files given, ".env" is tried.
func Load(dotenv ...string) (*Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch c.Environment {
	case EnvDev, EnvProd:
	default:
		return fmt.Errorf("%w: environment %q", ErrInvalidConfig, c.Environment)
	}
	if _, err := hasher.ParseAlgorithm(c.Algorithm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.SecretTimeout < 0 {
		return fmt.Errorf("%w: negative secret timeout %v", ErrInvalidConfig, c.SecretTimeout)
	}
	if c.SecretAttempts < 0 {
		return fmt.Errorf("%w: negative secret attempts %d", ErrInvalidConfig, c.SecretAttempts)
	}
	return nil
}
