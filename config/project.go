// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"codeberg.org/tcli/tcli/store"
)

// ProjectFile is the default name of the project configuration file.
const ProjectFile = "tcli.config.json"

// Project errors.
var (
	ErrProjectNotFound = errors.New("no config found, run `tcli init` first")

	errEmptyLangDir         = errors.New("langDir is empty")
	errNoLanguages          = errors.New("langs is empty")
	errNoNamespaces         = errors.New("namespaces is empty")
	errSourceNotConfigured  = errors.New("sourceLang is not one of langs")
	errDefaultNotConfigured = errors.New("defaultNamespace is not one of namespaces")
)

// Project is the persisted project configuration record.
//
// Fields are declared in alphabetical order so the saved file has sorted keys.
type Project struct {
	DefaultNamespace string   `json:"defaultNamespace"`
	LangDir          string   `json:"langDir"`
	Langs            []string `json:"langs"`
	Namespaces       []string `json:"namespaces"`
	SourceLang       string   `json:"sourceLang"`

	// path is where the record was loaded from. LangDir is relative to its directory.
	path string
}

// LoadProject reads the project configuration at path.
//
// It returns ErrProjectNotFound when the file does not exist.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrProjectNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read or parse file %s: %w", path, err)
	}

	var p Project

	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to read or parse file %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project configuration %s: %w", path, err)
	}

	p.path = path

	return &p, nil
}

// Save writes the record to path, or to the path it was loaded from when
// path is empty.
func (p *Project) Save(path string) error {
	if path == "" {
		path = p.path
	}

	if path == "" {
		path = ProjectFile
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project configuration: %w", err)
	}

	if err := store.WriteFile(path, append(data, '\n')); err != nil {
		return err
	}

	p.path = path

	return nil
}

// Validate checks that the record is usable.
func (p *Project) Validate() error {
	switch {
	case p.LangDir == "":
		return errEmptyLangDir
	case len(p.Langs) == 0:
		return errNoLanguages
	case len(p.Namespaces) == 0:
		return errNoNamespaces
	case !p.HasLanguage(p.SourceLang):
		return fmt.Errorf("%w: %q", errSourceNotConfigured, p.SourceLang)
	case !p.HasNamespace(p.DefaultNamespace):
		return fmt.Errorf("%w: %q", errDefaultNotConfigured, p.DefaultNamespace)
	}

	return nil
}

// LangRoot returns the translation root directory. A relative LangDir is
// resolved against the directory holding the configuration file.
func (p *Project) LangRoot() string {
	if filepath.IsAbs(p.LangDir) || p.path == "" {
		return filepath.Clean(p.LangDir)
	}

	return filepath.Join(filepath.Dir(p.path), p.LangDir)
}

func (p *Project) HasLanguage(lang string) bool {
	return slices.Contains(p.Langs, lang)
}

func (p *Project) HasNamespace(ns string) bool {
	return slices.Contains(p.Namespaces, ns)
}

// Targets returns every configured language except the source language.
func (p *Project) Targets() []string {
	out := make([]string, 0, len(p.Langs))

	for _, lang := range p.Langs {
		if lang != p.SourceLang {
			out = append(out, lang)
		}
	}

	return out
}
