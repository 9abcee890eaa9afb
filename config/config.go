// Package config loads and validates classview settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/javaide/classview/model"
)

const (
	// DefaultVisibility models public members only.
	DefaultVisibility = "public"
	// DefaultLogLevel is the level used when none is configured.
	DefaultLogLevel = "warn"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

var validate = validator.New()

// Config holds classview settings. Zero PreloadLimit selects the registry
// default.
type Config struct {
	Classpath    []string `yaml:"classpath" validate:"required,min=1,dive,required"`
	Visibility   string   `yaml:"visibility" validate:"oneof=public protected package"`
	Exclude      []string `yaml:"exclude" validate:"dive,required"`
	LogLevel     string   `yaml:"log_level" validate:"oneof=debug info warn error"`
	PreloadLimit int      `yaml:"preload_limit" validate:"gte=0"`
}

// DefaultConfig returns the configuration used when nothing is set.
// Its Classpath is empty, so it does not validate on its own.
func DefaultConfig() Config {
	return Config{
		Visibility: DefaultVisibility,
		LogLevel:   DefaultLogLevel,
	}
}

// Option mutates a Config during construction.
type Option func(*Config)

// WithClasspath replaces the classpath. Empty input keeps the current value.
func WithClasspath(entries ...string) Option {
	return func(c *Config) {
		if len(entries) > 0 {
			c.Classpath = entries
		}
	}
}

// WithVisibility sets the member visibility. Empty input keeps the current value.
func WithVisibility(v string) Option {
	return func(c *Config) {
		if v != "" {
			c.Visibility = v
		}
	}
}

// WithExclude appends exclusion patterns.
func WithExclude(patterns ...string) Option {
	return func(c *Config) {
		c.Exclude = append(c.Exclude, patterns...)
	}
}

// WithLogLevel sets the log level. Empty input keeps the current value.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		if level != "" {
			c.LogLevel = level
		}
	}
}

// WithPreloadLimit sets the preload concurrency. Negative values are ignored.
func WithPreloadLimit(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.PreloadLimit = n
		}
	}
}

// New builds a Config from defaults and options without validating it.
func New(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Load reads a YAML file over the defaults, applies opts on top, and
// validates the result. An empty path skips the file.
func Load(path string, opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the configuration, reporting every invalid field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Namespace()+": "+formatValidationError(ve))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(messages, "; "))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", ve.Param(), ve.Value())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	default:
		return fmt.Sprintf("failed %q validation", ve.Tag())
	}
}

// ModelVisibility converts Visibility for model.WithVisibility.
func (c Config) ModelVisibility() (model.Visibility, error) {
	return model.ParseVisibility(c.Visibility)
}

// SlogLevel converts LogLevel to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}
