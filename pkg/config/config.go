// Package config provides configuration loading and validation for treehugger.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/qckfx/tree-hugger-js/pkg/lang"
)

// Sentinel validation errors.
var (
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrInvalidMaxFileSize = errors.New("invalid max file size")
	ErrInvalidSampleRatio = errors.New("sample ratio must be between 0 and 1")
	ErrUnknownLanguage    = errors.New("unknown language")
)

// Config holds all configuration for the treehugger CLI and MCP server.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging"`
	Parse       ParseConfig       `mapstructure:"parse"`
	Pattern     PatternConfig     `mapstructure:"pattern"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ParseConfig holds parser-specific configuration.
type ParseConfig struct {
	// Language forces a grammar instead of detecting one from the
	// file extension. Empty means detect.
	Language    string `mapstructure:"language"`
	MaxFileSize string `mapstructure:"max_file_size"`
}

// PatternConfig holds pattern-matching configuration.
type PatternConfig struct {
	// AliasFile points at a YAML file of alias overrides merged over
	// the built-in alias table.
	AliasFile string `mapstructure:"alias_file"`
}

// TelemetryConfig holds OpenTelemetry export configuration.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	DebugTrace   bool    `mapstructure:"debug_trace"`
}

// DiagnosticsConfig holds the diagnostics HTTP server configuration.
type DiagnosticsConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoadConfig loads configuration from file and environment variables.
// An explicit configPath must exist; with an empty path the default
// .treehugger.yaml is searched for and silently skipped when absent.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(".treehugger")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix("TREEHUGGER")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// Logging defaults.
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	// Parse defaults.
	viperCfg.SetDefault("parse.language", DefaultLanguage)
	viperCfg.SetDefault("parse.max_file_size", DefaultMaxFileSize)

	// Telemetry defaults.
	viperCfg.SetDefault("telemetry.sample_ratio", DefaultSampleRatio)
	viperCfg.SetDefault("telemetry.otlp_insecure", false)

	// Diagnostics defaults.
	viperCfg.SetDefault("diagnostics.addr", DefaultDiagnosticsAddr)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, strings.ToLower(config.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	formats := []string{"text", "json"}
	if !slices.Contains(formats, strings.ToLower(config.Logging.Format)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	size, sizeErr := humanize.ParseBytes(config.Parse.MaxFileSize)
	if sizeErr != nil || size == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, config.Parse.MaxFileSize)
	}

	if config.Telemetry.SampleRatio < 0 || config.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRatio, config.Telemetry.SampleRatio)
	}

	if config.Parse.Language != "" && !slices.Contains(lang.Names(), config.Parse.Language) {
		return fmt.Errorf("%w: %q (known: %s)",
			ErrUnknownLanguage, config.Parse.Language, strings.Join(lang.Names(), ", "))
	}

	return nil
}

// MaxFileSizeBytes parses the configured max file size into bytes.
// Validation guarantees the value parses, so errors only surface for
// configs built by hand.
func (c *Config) MaxFileSizeBytes() (uint64, error) {
	size, err := humanize.ParseBytes(c.Parse.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, c.Parse.MaxFileSize)
	}

	return size, nil
}

// SlogLevel maps the configured level string onto a slog.Level.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
