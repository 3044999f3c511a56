// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// genconfig writes example settings files from the settings defaults.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/tcli/tcli/config"
	"codeberg.org/tcli/tcli/core/audit"
)

const (
	envOutputFile  = "deploy/.env.example"
	yamlOutputFile = "deploy/tcli.yaml.example"
	dirPerm        = 0o755
	filePerm       = 0o644

	envFileHeader = `# tcli settings (via environment variables)
#
# Copy this file to .env next to tcli.config.json and set GEMINI_API_KEY.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# tcli settings (via settings file)
#
# Copy this file to tcli.yaml and uncomment what you want to change.
# Keep the API key in .env or the environment rather than in this file.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
)

func main() {
	audit.SetDefaultLogger()

	cfg := &config.Settings{}
	cfg.SetDefaults()

	if err := os.MkdirAll(filepath.Dir(envOutputFile), dirPerm); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}

	write(envOutputFile, envFile(cfg))

	yamlFile, err := yamlFile(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal settings to YAML")
	}

	write(yamlOutputFile, yamlFile)
}

func write(path, content string) {
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write file")
	}

	log.Info().Str("path", path).Msg("Generated")
}

// envFile lists every env-tagged setting, grouped by section. Only the API
// key is left uncommented.
func envFile(cfg *config.Settings) string {
	var sb strings.Builder

	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	for i := range typ.NumField() {
		section := val.Field(i)
		if section.Kind() != reflect.Struct || typ.Field(i).Name == "Build" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", typ.Field(i).Name)

		for j := range section.NumField() {
			tag, ok := section.Type().Field(j).Tag.Lookup("env")
			if !ok {
				continue
			}

			name, _, _ := strings.Cut(tag, ",")
			value := section.Field(j)

			switch {
			case name == "GEMINI_API_KEY":
				fmt.Fprintf(&sb, "%s=\n", name)
			case value.Kind() == reflect.Slice:
				fmt.Fprintf(&sb, "# %s=%s\n", name, strings.Join(value.Interface().([]string), ","))
			case value.IsZero():
				fmt.Fprintf(&sb, "# %s=\n", name)
			default:
				fmt.Fprintf(&sb, "# %s=%v\n", name, value.Interface())
			}
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// yamlFile renders the defaults as a fully commented YAML template.
func yamlFile(cfg *config.Settings) (string, error) {
	var yamlContent strings.Builder

	encoderOpts := []yaml.EncodeOption{
		config.GetDurationEncoderOption(),
		yaml.Indent(2),
	}
	if err := yaml.NewEncoder(&yamlContent, encoderOpts...).Encode(cfg.Redacted()); err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString(yamlFileHeader)

	for line := range strings.SplitSeq(yamlContent.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys are section headers.
		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n%s\n", line)

			continue
		}

		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	return sb.String(), nil
}
