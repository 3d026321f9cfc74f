package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vizalsl/portfolio/internal/contact"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"release"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// ContentPath points at a YAML content document. Empty uses the one
	// compiled into the binary.
	ContentPath string `env:"PORTFOLIO_CONTENT_PATH"`
	StaticDir   string `env:"STATIC_DIR" envDefault:"static"`
	ImagesDir   string `env:"IMAGES_DIR" envDefault:"images"`
	ResumePath  string `env:"RESUME_PATH" envDefault:"static/resume.pdf"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080"`

	Visits  VisitsConfig
	Contact ContactConfig
}

// VisitsConfig controls page-view tracking.
type VisitsConfig struct {
	Enabled   bool          `env:"VISITS_ENABLED" envDefault:"true"`
	DBPath    string        `env:"VISITS_DB_PATH" envDefault:"data/visits.db"`
	Retention time.Duration `env:"VISIT_RETENTION" envDefault:"8760h"`
	HashSalt  string        `env:"VISIT_HASH_SALT"`
}

type ContactConfig struct {
	SimulatedLatency time.Duration `env:"CONTACT_SIMULATED_LATENCY" envDefault:"2s"`
	DisplayWindow    time.Duration `env:"CONTACT_DISPLAY_WINDOW" envDefault:"3s"`

	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	ToEmail  string `env:"TO_EMAIL"`
}

// SMTP returns the mail relay settings.
func (c ContactConfig) SMTP() contact.SMTPConfig {
	to := c.ToEmail
	if to == "" {
		to = c.SMTPUser
	}
	return contact.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		User:     c.SMTPUser,
		Password: c.SMTPPass,
		To:       to,
	}
}

// Sender picks SMTP delivery when credentials are set and the simulated
// sender otherwise.
func (c ContactConfig) Sender() contact.Sender {
	if smtpCfg := c.SMTP(); smtpCfg.Configured() {
		return contact.NewSMTPSender(smtpCfg)
	}
	return contact.SimulatedSender{Latency: c.SimulatedLatency}
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Contact.DisplayWindow < 0 || cfg.Contact.SimulatedLatency < 0 {
		return Config{}, fmt.Errorf("contact durations must not be negative")
	}
	if cfg.Visits.Retention <= 0 {
		return Config{}, fmt.Errorf("VISIT_RETENTION must be positive, got %s", cfg.Visits.Retention)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
