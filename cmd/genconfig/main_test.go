// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/tcli/tcli/config"
)

func defaults() *config.Settings {
	cfg := &config.Settings{}
	cfg.SetDefaults()

	return cfg
}

func TestEnvFile(t *testing.T) {
	t.Parallel()

	out := envFile(defaults())

	assert.True(t, strings.HasPrefix(out, envFileHeader))
	assert.Contains(t, out, "## Translator\nGEMINI_API_KEY=\n# TCLI_MODEL=gemini-2.0-flash\n")
	assert.Contains(t, out, "# TCLI_LOG_OUTPUTS=/dev/stderr\n")
	assert.Contains(t, out, "## Development\n")
	assert.NotContains(t, out, "## Build")

	for line := range strings.SplitSeq(out, "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		assert.Equal(t, "GEMINI_API_KEY=", line, "only the API key is left uncommented")
	}
}

func TestEnvFileNeverLeaksKey(t *testing.T) {
	t.Parallel()

	cfg := defaults()
	cfg.Translator.APIKey = "secret"

	assert.NotContains(t, envFile(cfg), "secret")
}

func TestYAMLFile(t *testing.T) {
	t.Parallel()

	cfg := defaults()
	cfg.Translator.APIKey = "secret"

	out, err := yamlFile(cfg)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, yamlFileHeader))
	assert.Contains(t, out, "\ntranslator:\n")
	assert.Contains(t, out, "  # model: gemini-2.0-flash\n")
	assert.NotContains(t, out, "secret")

	// Every value is commented out, so the template decodes to empty sections.
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))

	for section, v := range decoded {
		assert.Nil(t, v, section)
	}
}
