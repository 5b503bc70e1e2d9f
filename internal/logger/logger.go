// SPDX-License-Identifier: MIT

// Package logger builds the process-wide slog.Logger: level and format from
// configuration, the console (stderr unless stdout is asked for) and/or a
// rotated file through lumberjack.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is the [logger] section of the configuration file.
type Config struct {
	// debug, info, warn, error
	Level string `mapstructure:"level"`
	// json or text
	Format string `mapstructure:"format"`
	// stderr, stdout, file, both (console plus file)
	Output string `mapstructure:"output"`
	// used when Output is file or both
	FilePath string `mapstructure:"file_path"`
	// megabytes before rotation
	MaxSize int `mapstructure:"max_size"`
	// rotated files kept
	MaxBackups int `mapstructure:"max_backups"`
	// days rotated files are kept
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
	WithCaller bool `mapstructure:"with_caller"`
}

// ParseLevel maps a level name to slog.Level; unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Console picks the console stream for cfg: stdout when asked for by name,
// stderr otherwise, so logs stay apart from program output.
func Console(cfg Config, stdout, stderr io.Writer) io.Writer {
	if strings.EqualFold(cfg.Output, "stdout") {
		return stdout
	}
	return stderr
}

// New builds a logger writing to console, a rotated file, or both.
// The returned Closer releases the file; it is a no-op for console output.
func New(cfg Config, console io.Writer) (*slog.Logger, io.Closer, error) {
	if console == nil {
		console = Console(cfg, os.Stdout, os.Stderr)
	}

	var (
		output io.Writer
		closer io.Closer = nopCloser{}
	)

	switch strings.ToLower(cfg.Output) {
	case "file", "both":
		if cfg.FilePath == "" {
			return nil, nil, fmt.Errorf("logger: output %q needs file_path", cfg.Output)
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logger: create log dir: %w", err)
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		closer = fileWriter
		output = fileWriter
		if strings.EqualFold(cfg.Output, "both") {
			output = io.MultiWriter(console, fileWriter)
		}
	case "", "stderr", "stdout":
		output = console
	default:
		return nil, nil, fmt.Errorf("logger: unknown output %q", cfg.Output)
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.WithCaller,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}
	return slog.New(handler), closer, nil
}
