// Package commands implements the treehugger CLI subcommands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/qckfx/tree-hugger-js/internal/observability"
	"github.com/qckfx/tree-hugger-js/pkg/config"
	"github.com/qckfx/tree-hugger-js/pkg/lang"
	"github.com/qckfx/tree-hugger-js/pkg/pattern"
)

// stdinPath selects stdin instead of a file argument.
const stdinPath = "-"

// Sentinel errors shared by the commands.
var (
	ErrMissingLanguage   = errors.New("language required when reading from stdin")
	ErrFileTooLarge      = errors.New("file exceeds the configured size limit")
	ErrWriteStdin        = errors.New("cannot write back when reading from stdin")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// setup bundles the loaded configuration with the pattern cache and
// logger every query or transform command needs.
type setup struct {
	cfg    *config.Config
	cache  *pattern.Cache
	logger *slog.Logger
}

// loadSetup resolves configuration and builds the shared command state.
// An alias override file from the config is merged over the built-in
// alias table.
func loadSetup(configPath string) (*setup, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	var table *pattern.Table

	if cfg.Pattern.AliasFile != "" {
		table, err = pattern.LoadAliasFile(cfg.Pattern.AliasFile)
		if err != nil {
			return nil, fmt.Errorf("load alias file: %w", err)
		}
	}

	return &setup{
		cfg:    cfg,
		cache:  pattern.NewCache(table),
		logger: newLogger(cfg.Logging),
	}, nil
}

// newLogger builds the CLI logger writing to stderr so stdout stays
// reserved for command output.
func newLogger(lc config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lc.SlogLevel()}

	var handler slog.Handler
	if strings.EqualFold(lc.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(observability.NewTracingHandler(handler, "treehugger", "", observability.ModeCLI))
}

// configPathFrom resolves the persistent --config flag. Commands run
// outside the root command (tests) fall back to the default search.
func configPathFrom(cobraCmd *cobra.Command) string {
	path, err := cobraCmd.Flags().GetString("config")
	if err != nil {
		return ""
	}

	return path
}

// readSource loads the source bytes for path, honoring the size limit
// and resolving the language from the override flag, the config, or
// the file extension, in that order. Path "-" reads stdin.
func readSource(path, languageOverride string, cfg *config.Config) ([]byte, string, error) {
	maxSize, err := cfg.MaxFileSizeBytes()
	if err != nil {
		return nil, "", err
	}

	var content []byte

	if path == stdinPath {
		content, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
	} else {
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read file: %w", err)
		}
	}

	if uint64(len(content)) > maxSize {
		return nil, "", fmt.Errorf("%w: %s is %s (limit %s)",
			ErrFileTooLarge, path, humanize.Bytes(uint64(len(content))), humanize.Bytes(maxSize))
	}

	language, err := resolveLanguage(path, languageOverride, cfg)
	if err != nil {
		return nil, "", err
	}

	return content, language, nil
}

// resolveLanguage picks the grammar for path. Stdin has no extension,
// so it needs the flag or the config to name one.
func resolveLanguage(path, languageOverride string, cfg *config.Config) (string, error) {
	if languageOverride != "" {
		return languageOverride, nil
	}

	if cfg.Parse.Language != "" {
		return cfg.Parse.Language, nil
	}

	if path == stdinPath {
		return "", ErrMissingLanguage
	}

	language, err := lang.FromPath(path)
	if err != nil {
		return "", err
	}

	return language, nil
}
