// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/tcli/tcli/core/audit"
)

const (
	responseDirPermissions = 0o700
	logFilePermissions     = 0o666
)

// setupAudit applies the log and response-dump settings.
func (cfg *Settings) setupAudit() {
	switch cfg.Log.Level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
	}

	writers := []io.Writer{}

	for _, output := range cfg.Log.Outputs {
		var w io.Writer

		switch output {
		case "/dev/stdout":
			w = cfg.logWriter(os.Stdout)
		case "/dev/stderr":
			w = cfg.logWriter(os.Stderr)
		default:
			file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec:G302,G304
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", output, err)

				continue
			}

			w = cfg.logWriter(file)
		}

		writers = append(writers, w)
	}

	if len(writers) == 0 {
		writers = append(writers, ConsoleWriter(os.Stderr))
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))

	audit.SaveResponses = cfg.Development.SaveResponses
	audit.ResponseDirectory = cfg.Development.ResponseSaveLocation

	if audit.SaveResponses {
		if err := os.MkdirAll(audit.ResponseDirectory, responseDirPermissions); err != nil {
			log.Error().
				Err(err).
				Str("path", audit.ResponseDirectory).
				Msg("Failed to create response directory, not saving responses")

			audit.SaveResponses = false
		}
	}
}

func (cfg *Settings) logWriter(f *os.File) io.Writer {
	if cfg.Log.Format == "json" {
		return f
	}

	return ConsoleWriter(f)
}

// ConsoleWriter returns a writer for zerolog that has NoColor:!isatty(f).
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isatty.IsTerminal(f.Fd())

	w := zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.TimeOnly}

	if !noColor {
		w.FormatPrepare = func(m map[string]any) error {
			// one-line summary of translation API calls
			if sys, ok := m["sys"]; ok && sys == "api" {
				m["message"] = fmt.Sprintf("[%s] %v %-4s %s", m["destination"], m["status_code"], m["method"], m["url"])
				delete(m, "sys")
				delete(m, "method")
				delete(m, "status_code")
				delete(m, "url")
				delete(m, "destination")
			}

			return nil
		}
	}

	return w
}
