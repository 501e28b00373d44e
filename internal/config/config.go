// Package config loads the settings shared by the survey commands from an
// optional YAML file, a .env file and SURVEY_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/goliatone/go-survey/pkg/events"
)

// EnvPrefix prefixes every environment override, e.g. SURVEY_SERVER_ADDR.
const EnvPrefix = "SURVEY"

// Config holds application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Survey SurveyConfig `mapstructure:"survey"`
	Events EventsConfig `mapstructure:"events"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds the web host settings.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	BasePath     string        `mapstructure:"base_path"`
	Cookie       string        `mapstructure:"cookie"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	MaxSessions  int           `mapstructure:"max_sessions"`
}

// SurveyConfig selects the definition and the export naming.
type SurveyConfig struct {
	Definition     string `mapstructure:"definition"`
	ExportFilename string `mapstructure:"export_filename"`
}

// EventsConfig selects the event publisher.
type EventsConfig struct {
	Publisher string   `mapstructure:"publisher"`
	Brokers   []string `mapstructure:"brokers"`
	Topic     string   `mapstructure:"topic"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration. A .env file in the working directory is applied
// first when present; SURVEY_CONFIG names an optional YAML file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadFile(os.Getenv(EnvPrefix + "_CONFIG"))
}

// LoadFile reads configuration from path (skipped when empty) and the
// environment.
func LoadFile(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_path", "/survey")
	v.SetDefault("server.cookie", "survey_session")
	v.SetDefault("server.secure_cookie", false)
	v.SetDefault("server.session_ttl", "2h")
	v.SetDefault("server.max_sessions", 10000)
	v.SetDefault("survey.definition", "survey.yaml")
	v.SetDefault("survey.export_filename", "{label}.json")
	v.SetDefault("events.publisher", "none")
	v.SetDefault("events.brokers", []string{})
	v.SetDefault("events.topic", events.DefaultTopic)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return c, nil
}

// Publisher returns the events configuration for events.New.
func (c Config) Publisher(logger *slog.Logger) events.Config {
	return events.Config{
		Driver:  c.Events.Publisher,
		Brokers: c.Events.Brokers,
		Topic:   c.Events.Topic,
		Logger:  logger,
	}
}

// Logger builds the slog logger described by the log section.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return nil, fmt.Errorf("config: log level %q: %w", c.Log.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
}
