// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package commands implements the tcli operations on top of the project
// configuration, the file store and the translator.
//
// Every operation returns its failure instead of exiting. Failures inside a
// project are wrapped in *Error so the caller can print them under the
// project's default namespace.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/tcli/tcli/config"
	"codeberg.org/tcli/tcli/prompt"
	"codeberg.org/tcli/tcli/store"
	"codeberg.org/tcli/tcli/translate"
	"codeberg.org/tcli/tcli/tree"
)

// Reportable command failures.
var (
	ErrNamespaceNotFound      = errors.New("namespace not found")
	ErrNamespaceExists        = errors.New("namespace already exists")
	ErrLanguageNotSupported   = errors.New("language not supported")
	ErrLanguageNotFound       = errors.New("language not found")
	ErrLanguageExists         = errors.New("language already exists")
	ErrKeyNotFound            = errors.New("key not found")
	ErrSourceKeyNotFound      = errors.New("source key not found")
	ErrValueRequired          = errors.New("value is required for source language")
	ErrRemoveDefaultNamespace = errors.New("cannot remove default namespace")
	ErrRemoveSourceLanguage   = errors.New("cannot remove source language")
	ErrInvalidBatchFile       = errors.New("failed to read or parse file")
	ErrInvalidName            = errors.New("invalid name")
)

// Error is a command failure reported under Prefix, the project's default namespace.
type Error struct {
	Prefix string
	Err    error
}

func (e *Error) Error() string {
	return "[" + e.Prefix + "] " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCancelled reports whether err is the operator aborting the command.
func IsCancelled(err error) bool {
	return errors.Is(err, prompt.ErrCancelled) || errors.Is(err, context.Canceled)
}

// App runs commands against the project configured at ConfigPath.
type App struct {
	// ConfigPath is the project configuration file.
	ConfigPath string

	// SettingsPath is the runtime settings file. Empty selects the default lookup.
	SettingsPath string

	// Settings is loaded on first use when nil.
	Settings *config.Settings

	Prompter prompt.Prompter

	// NewTranslator is called once per command that needs translations.
	NewTranslator func() (translate.Translator, error)

	// Out receives the operator-facing report of each command.
	Out io.Writer

	logger zerolog.Logger
}

// setup fills in whatever the caller left unset.
func (a *App) setup(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	if a.Settings == nil {
		a.Settings = &config.Settings{}

		if err := a.Settings.Load(config.SettingsPath(a.SettingsPath)); err != nil {
			return err
		}
	}

	if a.ConfigPath == "" {
		a.ConfigPath = config.ProjectFile
	}

	if a.Out == nil {
		a.Out = out
	}

	if a.Prompter == nil {
		a.Prompter = prompt.NewTerminal(ctx, in, errOut)
	}

	if a.NewTranslator == nil {
		settings := a.Settings
		a.NewTranslator = func() (translate.Translator, error) {
			return settings.NewTranslator()
		}
	}

	a.logger = log.With().Str("sys", "commands").Logger()

	return nil
}

// open loads the project configuration and its file store.
func (a *App) open() (*config.Project, *store.Store, error) {
	p, err := config.LoadProject(a.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	return p, store.New(p.LangRoot()), nil
}

// inProject runs fn on the loaded project and attaches the project prefix
// to its failure. Cancellation passes through unchanged.
func (a *App) inProject(fn func(p *config.Project, st *store.Store) error) error {
	p, st, err := a.open()
	if err != nil {
		return err
	}

	err = fn(p, st)
	if err == nil || IsCancelled(err) {
		return err
	}

	var cmdErr *Error
	if errors.As(err, &cmdErr) {
		return err
	}

	return &Error{Prefix: p.DefaultNamespace, Err: err}
}

func (a *App) printf(prefix, format string, args ...any) {
	fmt.Fprintf(a.Out, "[%s] %s\n", prefix, fmt.Sprintf(format, args...))
}

func namespaceOf(p *config.Project, ns string) (string, error) {
	if ns == "" {
		return p.DefaultNamespace, nil
	}

	if !p.HasNamespace(ns) {
		return "", fmt.Errorf("%w: %s", ErrNamespaceNotFound, ns)
	}

	return ns, nil
}

func languageOf(p *config.Project, lang string) (string, error) {
	if lang == "" {
		return p.SourceLang, nil
	}

	if !p.HasLanguage(lang) {
		return "", fmt.Errorf("%w: %s", ErrLanguageNotSupported, lang)
	}

	return lang, nil
}

// validateKey is the prompt validator for translation keys.
func validateKey(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("Key is required")
	}

	_, err := tree.ParsePath(s)

	return err
}

// askKey returns key, prompting for it when empty.
func (a *App) askKey(key, message string) (tree.Path, error) {
	if key == "" {
		var err error

		key, err = a.Prompter.Text(prompt.TextOptions{Message: message, Validate: validateKey})
		if err != nil {
			return nil, err
		}
	}

	return tree.ParsePath(key)
}

// validateName checks a namespace name, which doubles as a file name.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string

	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
