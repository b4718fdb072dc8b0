package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pdf2xlsx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	v, err := NewViper("")
	require.NoError(t, err)
	c, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "pdf_conversion.log", c.LogFile)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "auto", c.Strategy)
	assert.Equal(t, 2, c.MinRows)
	assert.Equal(t, 2, c.MinCols)
	assert.Equal(t, 3.0, c.SnapTolerance)
	assert.True(t, c.Progress)
	assert.Empty(t, c.Input)
}

func TestLoad_FileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pdf2xlsx.yaml"), []byte("strategy: lines\ninput: /data/in\n"), 0o644))
	t.Chdir(dir)

	v, err := NewViper("")
	require.NoError(t, err)
	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "lines", c.Strategy)
	assert.Equal(t, "/data/in", c.Input)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nmin_rows: 3\nprogress: false\nreport: run.yaml\n")

	v, err := NewViper(path)
	require.NoError(t, err)
	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 3, c.MinRows)
	assert.False(t, c.Progress)
	assert.Equal(t, "run.yaml", c.Report)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "strategy: lines\n")
	t.Setenv("PDF2XLSX_STRATEGY", "text")
	t.Setenv("PDF2XLSX_MIN_COLS", "4")

	v, err := NewViper(path)
	require.NoError(t, err)
	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "text", c.Strategy)
	assert.Equal(t, 4, c.MinCols)
}

func TestNewViper_MissingExplicitFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNewViper_MalformedFile(t *testing.T) {
	path := writeConfig(t, "strategy: [unclosed\n")
	_, err := NewViper(path)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"strategy", "strategy: stream\n"},
		{"log level", "log_level: loud\n"},
		{"rows", "min_rows: 0\n"},
		{"snap", "snap_tolerance: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewViper(writeConfig(t, tt.body))
			require.NoError(t, err)
			_, err = Load(v)
			assert.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestConfig_Options(t *testing.T) {
	c := &Config{Strategy: "text", MinRows: 5, MinCols: 3, SnapTolerance: 1.5}
	opts := c.Options()
	assert.Equal(t, "text", opts.Strategy)
	assert.Equal(t, 5, opts.Tables.MinRows)
	assert.Equal(t, 3, opts.Tables.MinCols)
	assert.Equal(t, 1.5, opts.Tables.SnapTolerance)
	assert.Equal(t, 0.5, opts.Tables.MinConfidence, "unset fields keep their defaults")
	assert.Equal(t, "Sheet1", opts.Sheet)
}
