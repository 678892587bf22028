package config

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

type Configuration struct {
	Server    Server         `mapstructure:"server"`
	Solver    Solver         `mapstructure:"solver"`
	Auth      Authentication `mapstructure:"auth"`
	LogLevel  string         `mapstructure:"log_level" default:"info"`
	LogFormat string         `mapstructure:"log_format" default:"console"`
}

type Server struct {
	Mode     string `mapstructure:"mode" default:"dev"`
	HTTPPort int    `mapstructure:"http_port" default:"8000"`
}

type Solver struct {
	ParallelSolves int    `mapstructure:"parallel_solves" default:"3"`
	DataFolder     string `mapstructure:"data_folder"`
	WebhookURL     string `mapstructure:"webhook_url"`
	WebhookRetries uint   `mapstructure:"webhook_retries" default:"5"`
}

type Authentication struct {
	Enabled   bool   `mapstructure:"enabled" default:"false"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// Load reads configuration from the given file (optional) and from
// SOLVER_-prefixed environment variables, on top of the defaults.
func Load(path string) (*Configuration, error) {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("applying configuration defaults: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SOLVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading configuration file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Configuration) validate() error {
	if c.Server.Mode != "dev" && c.Server.Mode != "prod" {
		return fmt.Errorf("invalid server mode %q", c.Server.Mode)
	}
	if c.Solver.ParallelSolves < 1 {
		return fmt.Errorf("parallel_solves must be at least 1, got %d", c.Solver.ParallelSolves)
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth is enabled but no jwt_secret is configured")
	}
	return nil
}
