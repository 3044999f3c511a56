// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// useDotEnv loads variables from the .env file at path into the process
// environment. Variables that are already set are left alone, and a missing
// file is not an error.
func useDotEnv(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Debug().
			Str("path", path).
			Msg("No .env file found, skipping")

		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	log.Debug().
		Str("path", path).
		Msg("Loaded environment from .env file")

	return nil
}
