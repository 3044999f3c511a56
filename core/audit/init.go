// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetDefaultLogger provides a quiet console log on stderr until settings are loaded.
//
// Only warnings and errors are shown so that command output stays readable.
func SetDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
