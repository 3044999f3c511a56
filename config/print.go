// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const redactedValue = "[redacted]"

// Redacted returns a copy of the settings that is safe to print.
func (cfg *Settings) Redacted() Settings {
	printable := *cfg

	if printable.Translator.APIKey != "" {
		printable.Translator.APIKey = redactedValue
	}

	return printable
}

// MarshalRedactedYAML renders the redacted settings as YAML.
func (cfg *Settings) MarshalRedactedYAML() ([]byte, error) {
	return yaml.MarshalWithOptions(cfg.Redacted(), GetDurationEncoderOption())
}

func (cfg *Settings) print() {
	log.Debug().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Msg("Starting tcli")

	out, err := cfg.MarshalRedactedYAML()
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal settings to YAML for printing")

		return
	}

	log.Debug().
		Str("settings", string(out)).
		Msg("Runtime settings")
}
