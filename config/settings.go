// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package config loads the project configuration record and the runtime
// settings of the tool.
package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/tcli/tcli/translate"
)

// Default settings file locations, tried in order.
const (
	DefaultSettingsFile  = "./tcli.yaml"
	fallbackSettingsFile = "./tcli.yml"
	settingsFileEnv      = "TCLI_SETTINGS"
	defaultDotEnvFile    = ".env"
)

// Settings holds the runtime settings of the tool.
type Settings struct {
	Build buildInfo `yaml:"-"`

	Translator struct {
		APIKey            string        `env:"GEMINI_API_KEY,overwrite" yaml:"apiKey"`
		Model             string        `env:"TCLI_MODEL,overwrite" yaml:"model"`
		Endpoint          string        `env:"TCLI_GEMINI_ENDPOINT,overwrite" yaml:"endpoint"`
		RequestsPerMinute int           `env:"TCLI_REQUESTS_PER_MINUTE,overwrite" yaml:"requestsPerMinute"`
		Timeout           time.Duration `env:"TCLI_TRANSLATOR_TIMEOUT,overwrite" yaml:"timeout"`
	} `yaml:"translator"`

	Log struct {
		Level   string   `env:"TCLI_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"TCLI_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"TCLI_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Development struct {
		SaveResponses        bool   `env:"TCLI_SAVE_RESPONSES,overwrite" yaml:"saveResponses"`
		ResponseSaveLocation string `env:"TCLI_RESPONSE_SAVE_LOCATION,overwrite" yaml:"responseSaveLocation"`
	} `yaml:"development"`
}

// SettingsPath picks the settings file with the following precedence:
//  1. the --settings flag
//  2. the TCLI_SETTINGS environment variable
//  3. ./tcli.yaml, falling back to ./tcli.yml when only that exists
func SettingsPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envVar := os.Getenv(settingsFileEnv); envVar != "" {
		return envVar
	}

	if _, err := os.Stat(DefaultSettingsFile); os.IsNotExist(err) {
		if _, statErr := os.Stat(fallbackSettingsFile); statErr == nil {
			return fallbackSettingsFile
		}
	}

	return DefaultSettingsFile
}

// Load populates the settings from defaults, the YAML file at path, a .env
// file in the working directory and the environment, then configures logging.
func (cfg *Settings) Load(path string) error {
	if err := cfg.load(path, defaultDotEnvFile); err != nil {
		return err
	}

	cfg.setupAudit()
	cfg.print()

	return nil
}

func (cfg *Settings) load(path, dotEnvPath string) error {
	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(path); err != nil {
		return fmt.Errorf("error loading YAML settings: %w", err)
	}

	if err := useDotEnv(dotEnvPath); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("settings invalid: %w", err)
	}

	return nil
}

// NewTranslator builds the Gemini translator from the translator settings.
//
// It fails with translate.ErrMissingAPIKey when no API key is configured.
func (cfg *Settings) NewTranslator() (*translate.Gemini, error) {
	opts := translate.Options{
		APIKey:            cfg.Translator.APIKey,
		Model:             cfg.Translator.Model,
		Endpoint:          cfg.Translator.Endpoint,
		RequestsPerMinute: cfg.Translator.RequestsPerMinute,
	}

	if cfg.Translator.Timeout > 0 {
		opts.HTTPClient = &http.Client{Timeout: cfg.Translator.Timeout}
	}

	g, err := translate.NewGemini(opts)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("model", cfg.Translator.Model).
		Int("requests_per_minute", cfg.Translator.RequestsPerMinute).
		Msg("Created translator")

	return g, nil
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30s", "1m0s").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
