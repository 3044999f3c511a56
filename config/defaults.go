// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"

	"codeberg.org/tcli/tcli/translate"
)

// SetDefaults populates the settings with default values.
func (cfg *Settings) SetDefaults() {
	cfg.Translator.APIKey = ""
	cfg.Translator.Model = translate.DefaultModel
	cfg.Translator.Endpoint = translate.DefaultEndpoint
	cfg.Translator.RequestsPerMinute = 0
	cfg.Translator.Timeout = 0

	cfg.Log.Level = "warn"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Development.SaveResponses = false
	cfg.Development.ResponseSaveLocation = filepath.Join(os.TempDir(), "tcli", "responses")
}
