package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PositionalSchemaPath(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	cfg, exit, err := Parse([]string{"settings.ini"}, &buf)

	require.NoError(t, err)
	assert.False(t, exit)
	require.NotNil(t, cfg)
	assert.Equal(t, "settings.ini", cfg.SchemaPath)
	assert.Equal(t, ".", cfg.OutDir)
	assert.False(t, cfg.WriteManifest)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_FlagsOverrideDefaults(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	cfg, exit, err := Parse([]string{
		"-schema", "conf/settings.ini",
		"-out", "gen",
		"-manifest",
		"-log-format", "json",
		"-log-level", "debug",
	}, &buf)

	require.NoError(t, err)
	assert.False(t, exit)
	require.NotNil(t, cfg)
	assert.Equal(t, "conf/settings.ini", cfg.SchemaPath)
	assert.Equal(t, "gen", cfg.OutDir)
	assert.True(t, cfg.WriteManifest)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_ShorthandSchemaFlag(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	cfg, _, err := Parse([]string{"-s", "settings.ini"}, &buf)

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "settings.ini", cfg.SchemaPath)
}

func TestParse_NoArgsPrintsUsage(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	cfg, exit, err := Parse(nil, &buf)

	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, buf.String(), "Usage:")
}

func TestParse_HelpFlag(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	cfg, exit, err := Parse([]string{"-h"}, &buf)

	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, buf.String(), "settingsgen")
}

func TestParse_InvalidLogFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	_, _, err := Parse([]string{"-log-format", "yaml", "settings.ini"}, &buf)

	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "log-format")
}

func TestParse_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	_, _, err := Parse([]string{"-log-level", "trace", "settings.ini"}, &buf)

	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "log-level")
}

func TestParse_UnknownFlag(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	_, _, err := Parse([]string{"-bogus"}, &buf)

	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
