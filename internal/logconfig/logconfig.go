// Package logconfig wires structured logging flags into a cobra/pflag CLI
// and builds the resulting slog.Handler.
package logconfig

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// ErrUnknownLevel indicates an unrecognized log level string.
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrUnknownFormat indicates an unrecognized log format string.
	ErrUnknownFormat = errors.New("unknown log format")
)

// Format is the log output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Flags holds the CLI flag names for log configuration, letting callers
// rename flags while keeping sensible defaults via NewConfig.
type Flags struct {
	Level  string
	Format string
}

// Config holds CLI flag values for log configuration. Create instances
// with NewConfig, register flags with RegisterFlags, and build a handler
// with NewHandler.
type Config struct {
	Level  string
	Format string
	Flags  Flags
}

// NewConfig returns a Config with default flag names and an "info"/"text"
// starting point.
func NewConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "text",
		Flags: Flags{
			Level:  "log-level",
			Format: "log-format",
		},
	}
}

// RegisterFlags adds logging flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, c.Level,
		fmt.Sprintf("log level, one of: %s", strings.Join(allLevels(), ", ")))
	flags.StringVar(&c.Format, c.Flags.Format, c.Format,
		fmt.Sprintf("log format, one of: %s", strings.Join(allFormats(), ", ")))
}

// RegisterCompletions registers shell completions for the log flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	if err := cmd.RegisterFlagCompletionFunc(c.Flags.Level,
		cobra.FixedCompletions(allLevels(), cobra.ShellCompDirectiveNoFileComp)); err != nil {
		return fmt.Errorf("registering log-level completion: %w", err)
	}
	if err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(allFormats(), cobra.ShellCompDirectiveNoFileComp)); err != nil {
		return fmt.Errorf("registering log-format completion: %w", err)
	}
	return nil
}

// NewHandler builds a slog.Handler writing to w using the level/format
// currently held by c.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	format, err := ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}
	return NewHandler(w, level, format), nil
}

// NewHandler builds a slog.Handler for the given level and format.
func NewHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel parses a level string into a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// ParseFormat parses a format string into a Format.
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if f == FormatText || f == FormatJSON {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func allLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

func allFormats() []string {
	return []string{string(FormatText), string(FormatJSON)}
}
