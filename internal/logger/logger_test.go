// SPDX-License-Identifier: MIT
package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/lvroot/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseLevel maps names, defaulting to info.
func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("chatty"))
}

// TestNew_JSONToConsole writes structured records with RFC3339 time.
func TestNew_JSONToConsole(t *testing.T) {
	var buf bytes.Buffer
	l, c, err := logger.New(logger.Config{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)
	defer c.Close()

	l.Debug("hidden")
	l.Info("solved", slog.String("method", "brent"), slog.Float64("root", 1.5))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "solved", rec["msg"])
	assert.Equal(t, "brent", rec["method"])
	assert.Equal(t, 1.5, rec["root"])
	assert.NotContains(t, rec["time"], ".", "seconds precision")
}

// TestNew_TextFormat selects the text handler.
func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := logger.New(logger.Config{Level: "debug", Format: "text"}, &buf)
	require.NoError(t, err)

	l.Debug("bracketed", slog.Int("evaluations", 4))
	assert.Contains(t, buf.String(), "msg=bracketed")
	assert.Contains(t, buf.String(), "evaluations=4")
}

// TestNew_BothWritesFileAndConsole checks the rotated file sink.
func TestNew_BothWritesFileAndConsole(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "rootsolve.log")

	var buf bytes.Buffer
	l, c, err := logger.New(logger.Config{Output: "both", FilePath: path, MaxSize: 1}, &buf)
	require.NoError(t, err)

	l.Info("hello")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

// TestNew_Errors rejects unusable outputs.
func TestNew_Errors(t *testing.T) {
	_, _, err := logger.New(logger.Config{Output: "file"}, nil)
	assert.Error(t, err)

	_, _, err = logger.New(logger.Config{Output: "syslog"}, nil)
	assert.ErrorContains(t, err, "unknown output")
}

// TestConsole keeps logs on stderr unless stdout is named.
func TestConsole(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cases := map[string]*bytes.Buffer{
		"":       &stderr,
		"stderr": &stderr,
		"both":   &stderr,
		"stdout": &stdout,
		"STDOUT": &stdout,
	}
	for output, want := range cases {
		got := logger.Console(logger.Config{Output: output}, &stdout, &stderr)
		assert.Same(t, want, got, output)
	}
}
