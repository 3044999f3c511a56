// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// validation errors.
var (
	errInvalidLogLevel           = errors.New("invalid Log.Level value")
	errInvalidLogFormat          = errors.New("invalid Log.Format value")
	errInvalidEndpoint           = errors.New("invalid Translator.Endpoint value")
	errNegativeRequestsPerMin    = errors.New("Translator.RequestsPerMinute cannot be negative")
	errNegativeTimeout           = errors.New("Translator.Timeout cannot be negative")
	errEmptyResponseSaveLocation = errors.New("Development.ResponseSaveLocation cannot be empty when saveResponses is enabled")
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
)

// validate checks the loaded settings.
func (cfg *Settings) validate() error {
	if !slices.Contains(validLogLevels, cfg.Log.Level) {
		return fmt.Errorf("%w: %q (valid: %v)", errInvalidLogLevel, cfg.Log.Level, validLogLevels)
	}

	if !slices.Contains(validLogFormats, cfg.Log.Format) {
		return fmt.Errorf("%w: %q (valid: %v)", errInvalidLogFormat, cfg.Log.Format, validLogFormats)
	}

	endpoint, err := url.Parse(cfg.Translator.Endpoint)
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return fmt.Errorf("%w: %q", errInvalidEndpoint, cfg.Translator.Endpoint)
	}

	if cfg.Translator.RequestsPerMinute < 0 {
		return errNegativeRequestsPerMin
	}

	if cfg.Translator.Timeout < 0 {
		return errNegativeTimeout
	}

	if cfg.Development.SaveResponses && cfg.Development.ResponseSaveLocation == "" {
		return errEmptyResponseSaveLocation
	}

	return nil
}
