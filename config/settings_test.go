// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/tcli/tcli/translate"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()

	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

var settingsEnv = []string{
	"GEMINI_API_KEY", "TCLI_MODEL", "TCLI_GEMINI_ENDPOINT", "TCLI_REQUESTS_PER_MINUTE",
	"TCLI_TRANSLATOR_TIMEOUT", "TCLI_LOG_LEVEL", "TCLI_LOG_OUTPUTS", "TCLI_LOG_FORMAT",
	"TCLI_SAVE_RESPONSES", "TCLI_RESPONSE_SAVE_LOCATION",
}

func TestSettingsDefaults(t *testing.T) {
	unsetEnv(t, settingsEnv...)

	var cfg Settings
	require.NoError(t, cfg.load("", ""))

	assert.Empty(t, cfg.Translator.APIKey)
	assert.Equal(t, translate.DefaultModel, cfg.Translator.Model)
	assert.Equal(t, translate.DefaultEndpoint, cfg.Translator.Endpoint)
	assert.Zero(t, cfg.Translator.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []string{"/dev/stderr"}, cfg.Log.Outputs)
}

func TestSettingsLayering(t *testing.T) {
	unsetEnv(t, settingsEnv...)

	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "tcli.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
translator:
  model: yaml-model
  requestsPerMinute: 10
  timeout: 30s
log:
  logLevel: info
`), 0o600))

	dotEnvPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotEnvPath, []byte("GEMINI_API_KEY=from-dotenv\nTCLI_LOG_LEVEL=error\n"), 0o600))

	t.Setenv("TCLI_MODEL", "env-model")
	t.Setenv("TCLI_LOG_LEVEL", "debug")

	var cfg Settings
	require.NoError(t, cfg.load(yamlPath, dotEnvPath))

	assert.Equal(t, "env-model", cfg.Translator.Model, "environment overrides YAML")
	assert.Equal(t, 10, cfg.Translator.RequestsPerMinute, "YAML overrides defaults")
	assert.Equal(t, 30*time.Second, cfg.Translator.Timeout)
	assert.Equal(t, "from-dotenv", cfg.Translator.APIKey, ".env fills unset variables")
	assert.Equal(t, "debug", cfg.Log.Level, ".env never overrides the real environment")
}

func TestSettingsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "log level", env: map[string]string{"TCLI_LOG_LEVEL": "loud"}},
		{name: "log format", env: map[string]string{"TCLI_LOG_FORMAT": "xml"}},
		{name: "endpoint", env: map[string]string{"TCLI_GEMINI_ENDPOINT": "not a url"}},
		{name: "requests per minute", env: map[string]string{"TCLI_REQUESTS_PER_MINUTE": "-1"}},
		{name: "unparsable int", env: map[string]string{"TCLI_REQUESTS_PER_MINUTE": "many"}},
		{name: "unparsable duration", env: map[string]string{"TCLI_TRANSLATOR_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, settingsEnv...)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var cfg Settings
			assert.Error(t, cfg.load("", ""))
		})
	}
}

func TestReadEnvLists(t *testing.T) {
	unsetEnv(t, settingsEnv...)
	t.Setenv("TCLI_LOG_OUTPUTS", " /dev/stdout, ,/tmp/tcli.log ")
	t.Setenv("TCLI_SAVE_RESPONSES", "true")

	var cfg Settings
	require.NoError(t, readEnv(&cfg))

	assert.Equal(t, []string{"/dev/stdout", "/tmp/tcli.log"}, cfg.Log.Outputs)
	assert.True(t, cfg.Development.SaveResponses)
}

func TestReadEnvRejectsNonPointer(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, readEnv(Settings{}), errExpectedPointerToStruct)
}

func TestSettingsPath(t *testing.T) {
	unsetEnv(t, settingsFileEnv)

	assert.Equal(t, "custom.yaml", SettingsPath("custom.yaml"))

	t.Chdir(t.TempDir())
	assert.Equal(t, DefaultSettingsFile, SettingsPath(""))

	require.NoError(t, os.WriteFile("tcli.yml", nil, 0o600))
	assert.Equal(t, fallbackSettingsFile, SettingsPath(""))

	t.Setenv(settingsFileEnv, "/etc/tcli.yaml")
	assert.Equal(t, "/etc/tcli.yaml", SettingsPath(""))
}

func TestRedacted(t *testing.T) {
	t.Parallel()

	var cfg Settings

	cfg.SetDefaults()
	cfg.Translator.APIKey = "secret"

	out, err := cfg.MarshalRedactedYAML()
	require.NoError(t, err)

	assert.NotContains(t, string(out), "secret")
	assert.Contains(t, string(out), redactedValue)
	assert.Equal(t, "secret", cfg.Translator.APIKey, "the receiver is untouched")
}

func TestNewTranslatorRequiresKey(t *testing.T) {
	t.Parallel()

	var cfg Settings

	cfg.SetDefaults()

	_, err := cfg.NewTranslator()
	require.ErrorIs(t, err, translate.ErrMissingAPIKey)

	cfg.Translator.APIKey = "secret"

	g, err := cfg.NewTranslator()
	require.NoError(t, err)
	assert.NotNil(t, g)
}

func TestRevision(t *testing.T) {
	t.Parallel()

	b := buildInfo{VcsRevision: "0123456789abcdef", VcsTime: "2025-03-01T10:00:00Z", VcsModified: true}
	assert.Equal(t, "2025-03-01-01234567+dirty", b.Revision())
	assert.Equal(t, "unknown", (&buildInfo{}).Revision())
}
