package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/phuslu/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var linePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - [A-Z]+: `)

func TestNew_ConsoleFormat(t *testing.T) {
	var console bytes.Buffer
	logger, err := New(Options{Console: &console})
	require.NoError(t, err)
	defer logger.Close()

	logger.Warn().Str("file", "a.pdf").Msg("No valid table data found in PDF")

	line := console.String()
	assert.Regexp(t, linePattern, line)
	assert.True(t, strings.HasSuffix(line, " - WARNING: No valid table data found in PDF file=a.pdf\n"), line)
}

func TestNew_LevelFilter(t *testing.T) {
	var console bytes.Buffer
	logger, err := New(Options{Level: "warn", Console: &console})
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Error().Msg("shown")

	out := console.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, " - ERROR: shown")
}

func TestNew_FileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("earlier run\n"), 0o644))

	var console bytes.Buffer
	logger, err := New(Options{File: path, Console: &console})
	require.NoError(t, err)
	logger.Info().Msgf("Successfully converted to: %s", "out/a.xlsx")
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close(), "Close is idempotent")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "earlier run", lines[0])
	assert.Regexp(t, linePattern, lines[1])
	assert.True(t, strings.HasSuffix(lines[1], " - INFO: Successfully converted to: out/a.xlsx"))
	assert.Contains(t, console.String(), "Successfully converted to: out/a.xlsx")
}

func TestNew_UnwritableFile(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"", log.InfoLevel},
		{"info", log.InfoLevel},
		{"DEBUG", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormat(t *testing.T) {
	var buf bytes.Buffer
	args := &log.FormatterArgs{
		Time:    "2024-01-01 00:00:00,000",
		Level:   "error",
		Message: "Conversion failed: boom",
	}
	_, err := Format(&buf, args)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 00:00:00,000 - ERROR: Conversion failed: boom\n", buf.String())
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.NotPanics(t, func() {
		logger.Error().Str("file", "x").Msg("dropped")
	})
}
