package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPConfig struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET_KEY" env-default:"taskflow-super-secret-2024"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TOKEN_TTL" env-default:"168h"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file" env:"LOG_FILE"`
}

// SeedConfig describes the account created on first start. An empty username disables it.
type SeedConfig struct {
	Username string `yaml:"username" env:"SEED_USERNAME" env-default:"admin"`
	Password string `yaml:"password" env:"SEED_PASSWORD" env-default:"admin123"`
}

// Config keeps runtime settings for the server.
type Config struct {
	Environment string     `yaml:"environment" env:"ENVIRONMENT" env-default:"development"`
	DatabaseURL string     `yaml:"database_url" env:"DATABASE_URL" env-default:"taskflow.db"`
	BcryptCost  int        `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
	HTTP        HTTPConfig `yaml:"http"`
	JWT         JWTConfig  `yaml:"jwt"`
	Log         LogConfig  `yaml:"log"`
	Seed        SeedConfig `yaml:"seed"`
}

// Load reads configuration from the YAML file at path, falling back to
// environment variables when path is empty or the file does not exist.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		err := cleanenv.ReadConfig(path, &cfg)
		var pe *os.PathError
		switch {
		case err == nil:
			err = cfg.validate()
			return cfg, err
		case !errors.As(err, &pe):
			return cfg, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("read env: %w", err)
	}
	err := cfg.validate()
	return cfg, err
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) validate() error {
	c.JWT.Secret = strings.TrimSpace(c.JWT.Secret)
	c.Seed.Username = strings.TrimSpace(c.Seed.Username)

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TOKEN_TTL must be positive")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = "taskflow.db"
	}
	return nil
}
