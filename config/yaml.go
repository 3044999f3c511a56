// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

func (cfg *Settings) readYAML(path string) error {
	if path == "" {
		return nil
	}

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		log.Debug().
			Str("path", path).
			Msg("No YAML settings file found, skipping")

		return nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- Only loading a settings file
	if err != nil {
		return fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}

	log.Debug().
		Str("path", path).
		Msg("Loaded settings file")

	return nil
}
