package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"3000"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	// Supabase project settings
	SupabaseURL        string `env:"SUPABASE_URL"`
	SupabaseServiceKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`
	SupabaseJWTSecret  string `env:"SUPABASE_JWT_SECRET"`
	SupabaseAudience   string `env:"SUPABASE_JWT_AUDIENCE" envDefault:"authenticated"`
	RedirectURL        string `env:"SUPABASE_REDIRECT_URL"`
	FrontendURL        string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	// Discord ids allowed to manage the catalog and read global stats
	AdminDiscordIDs []string `env:"ADMIN_DISCORD_IDS" envSeparator:","`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	Seed           bool          `env:"SEED_DATA"`
}

// ParseFlags reads the environment and lets CLI flags override it
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("chillville-awards", flag.ContinueOnError)

	// Defaults come from the environment so an unset flag keeps the env value
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")
	fs.BoolVar(&cfg.Seed, "seed", cfg.Seed, "Insert the demo categories and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("invalid port")
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	c.DatabaseType = strings.ToLower(strings.TrimSpace(c.DatabaseType))
	if c.DatabaseType != "sqlite" && c.DatabaseType != "postgres" {
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}

	// Sessions are verified locally with the JWT secret or remotely through GoTrue
	if c.SupabaseJWTSecret == "" && (c.SupabaseURL == "" || c.SupabaseServiceKey == "") {
		return errors.New("SUPABASE_JWT_SECRET or SUPABASE_URL with SUPABASE_SERVICE_ROLE_KEY required")
	}

	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}

	c.SupabaseURL = strings.TrimRight(c.SupabaseURL, "/")
	c.FrontendURL = strings.TrimRight(c.FrontendURL, "/")
	return nil
}

// AuthRedirectURL is where the provider sends users after Discord login
func (c Config) AuthRedirectURL() string {
	if c.RedirectURL != "" {
		return c.RedirectURL
	}
	return c.FrontendURL + "/auth/callback"
}

// SlogLevel converts LogLevel, defaulting to info
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
