// Package config loads the application configuration from an optional YAML
// file and the environment. Environment variables always win.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the assistant. The two API keys are secrets
// and only ever come from the environment.
type Config struct {
	Env                string        `yaml:"env" envconfig:"ENV"`
	Port               string        `yaml:"port" envconfig:"PORT"`
	LogLevel           zapcore.Level `yaml:"log_level" envconfig:"LOG_LEVEL"`
	CohereAPIKey       string        `yaml:"-" envconfig:"COHERE_API_KEY"`
	GoogleBooksAPIKey  string        `yaml:"-" envconfig:"GOOGLE_BOOKS_API_KEY"`
	CohereModel        string        `yaml:"cohere_model" envconfig:"COHERE_MODEL"`
	HTTPTimeout        time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT"`
	SearchRPS          int           `yaml:"search_rps" envconfig:"SEARCH_RPS"`
	AllowedOrigins     []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	DailyAnalysisQuota int64         `yaml:"daily_analysis_quota" envconfig:"DAILY_ANALYSIS_QUOTA"`
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load builds the configuration: YAML file first (skipped when absent), then
// environment overrides, then defaults and validation.
func Load(configFile string) (*Config, error) {
	cfg := &Config{}

	if configFile != "" {
		if err := loadFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load configurations from file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load configurations from environment: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(configFile string, cfg *Config) error {
	file, err := os.Open(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	return yaml.NewDecoder(file).Decode(cfg)
}

func (c *Config) setDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.CohereModel == "" {
		c.CohereModel = "command"
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 30 * time.Second
	}
	if c.SearchRPS <= 0 {
		c.SearchRPS = 5
	}
	if c.DailyAnalysisQuota <= 0 {
		c.DailyAnalysisQuota = 200
	}
}

// Validate fails fast when a required secret is missing; the process never
// proceeds with an invalid key.
func (c *Config) Validate() error {
	if c.CohereAPIKey == "" {
		return errors.New("COHERE_API_KEY is not set")
	}
	if c.GoogleBooksAPIKey == "" {
		return errors.New("GOOGLE_BOOKS_API_KEY is not set")
	}
	return nil
}
