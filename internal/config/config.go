// Package config reads defaults from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/sts10/phraze/internal/wordlist"
)

// Config holds defaults for the CLI flags. Flags set on the command line
// always win.
type Config struct {
	List        wordlist.Choice `env:"PHRAZE_LIST"        envDefault:"m"`
	Separator   string          `env:"PHRAZE_SEPARATOR"   envDefault:"-"`
	Passphrases int             `env:"PHRAZE_PASSPHRASES" envDefault:"1"`

	Serve Serve
	S3    S3
}

// Serve configures the passphrase service.
type Serve struct {
	Addr     string `env:"PHRAZE_SERVE_ADDR" envDefault:":6379"`
	MaxCount int    `env:"PHRAZE_MAX_COUNT"  envDefault:"1024"`
	MaxWords int    `env:"PHRAZE_MAX_WORDS"  envDefault:"256"`
}

// S3 configures access to custom lists stored in object storage.
type S3 struct {
	Endpoint string        `env:"PHRAZE_S3_ENDPOINT"`
	Region   string        `env:"PHRAZE_S3_REGION"   envDefault:"us-east-1"`
	User     string        `env:"PHRAZE_S3_USER"`
	Password string        `env:"PHRAZE_S3_PASSWORD"`
	Timeout  time.Duration `env:"PHRAZE_S3_TIMEOUT"  envDefault:"30s"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Passphrases < 1 {
		return Config{}, fmt.Errorf("PHRAZE_PASSPHRASES must be positive, got %d", cfg.Passphrases)
	}
	if cfg.Serve.MaxCount < 1 || cfg.Serve.MaxWords < 1 {
		return Config{}, fmt.Errorf("PHRAZE_MAX_COUNT and PHRAZE_MAX_WORDS must be positive")
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
