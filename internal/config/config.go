// Package config loads the API's environment configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config is every setting the API reads from the environment.
type Config struct {
	AppEnv             string   `env:"APP_ENV" envDefault:"development"`
	HTTPAddr           string   `env:"HTTP_ADDR" envDefault:"localhost:3000"`
	DBURL              string   `env:"DB_URL,required"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	EnrichProvider string        `env:"ENRICH_PROVIDER" envDefault:"none"`
	EnrichTimeout  time.Duration `env:"ENRICH_TIMEOUT" envDefault:"4s"`
	OpenAIAPIKey   string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL  string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	OpenAIModel    string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GeminiAPIKey   string        `env:"GEMINI_API_KEY"`
	GeminiModel    string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	TipsCacheTTL  time.Duration `env:"TIPS_CACHE_TTL" envDefault:"6h"`

	WeeklyGoalMinutes float64 `env:"WEEKLY_GOAL_MINUTES" envDefault:"150"`
}

// Load reads an optional .env file from the working directory, then parses
// and validates the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse(nil)
}

// Parse builds a Config from environ, or from the process environment when
// environ is nil.
func Parse(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the API cannot start with.
func (c *Config) Validate() error {
	var problems []string
	switch c.AppEnv {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		problems = append(problems, fmt.Sprintf("APP_ENV %q is not one of development, production, test", c.AppEnv))
	}

	switch c.EnrichProvider {
	case ProviderNone:
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			problems = append(problems, "ENRICH_PROVIDER=openai requires OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			problems = append(problems, "ENRICH_PROVIDER=gemini requires GEMINI_API_KEY")
		}
	default:
		problems = append(problems, fmt.Sprintf("ENRICH_PROVIDER %q is not one of none, openai, gemini", c.EnrichProvider))
	}

	if c.EnrichTimeout <= 0 {
		problems = append(problems, "ENRICH_TIMEOUT must be positive")
	}
	if c.WeeklyGoalMinutes <= 0 {
		problems = append(problems, "WEEKLY_GOAL_MINUTES must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Production reports whether the API runs with production logging and gin
// release mode.
func (c *Config) Production() bool { return c.AppEnv == EnvProduction }

// CacheEnabled reports whether a Redis tips cache is configured.
func (c *Config) CacheEnabled() bool { return c.RedisAddr != "" }
