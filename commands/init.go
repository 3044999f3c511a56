// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"codeberg.org/tcli/tcli/config"
	"codeberg.org/tcli/tcli/i18n"
	"codeberg.org/tcli/tcli/prompt"
	"codeberg.org/tcli/tcli/store"
)

const (
	defaultLangDir = "./lang"
	otherValue     = "other"
)

// DefaultNamespaces is offered by Init next to any namespace found on disk.
var DefaultNamespaces = []string{"common", "home", "auth", "errors"}

var otherOption = prompt.Option{Value: otherValue, Label: "Other (manual input)"}

// Init asks for the project layout and writes the project configuration.
// Existing language directories and namespace files are offered as choices.
func (a *App) Init() error {
	fmt.Fprintln(a.Out, "[tcli] Initializing translation configuration...")

	if _, err := a.NewTranslator(); err != nil {
		return err
	}

	existing, err := config.LoadProject(a.ConfigPath)
	if err != nil && !errors.Is(err, config.ErrProjectNotFound) {
		return err
	}

	initialDir := defaultLangDir
	if existing != nil {
		initialDir = existing.LangDir
	}

	langDir, err := a.Prompter.Text(prompt.TextOptions{
		Message:     "Enter the language folder path:",
		Placeholder: defaultLangDir,
		Initial:     initialDir,
		Validate:    prompt.Required("Language folder is required"),
	})
	if err != nil {
		return err
	}

	root := langDir
	if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(a.ConfigPath), langDir)
	}

	layout, err := store.New(root).Scan()
	if err != nil {
		return err
	}

	langs, err := a.chooseLanguages(layout.Languages)
	if err != nil {
		return err
	}

	sourceOptions := make([]prompt.Option, 0, len(langs))
	for _, lang := range langs {
		sourceOptions = append(sourceOptions, prompt.Option{Value: lang, Label: i18n.DisplayName(lang)})
	}

	source, err := a.Prompter.Select("Select source language:", sourceOptions)
	if err != nil {
		return err
	}

	namespaces, err := a.chooseNamespaces(layout.Namespaces)
	if err != nil {
		return err
	}

	defaultNS, err := a.Prompter.Select("Select default namespace:", plainOptions(namespaces))
	if err != nil {
		return err
	}

	p := &config.Project{
		DefaultNamespace: defaultNS,
		LangDir:          langDir,
		Langs:            langs,
		Namespaces:       namespaces,
		SourceLang:       source,
	}

	if err := p.Validate(); err != nil {
		return err
	}

	if err := p.Save(a.ConfigPath); err != nil {
		return err
	}

	fmt.Fprintln(a.Out, "Configuration saved successfully")

	return nil
}

func (a *App) chooseLanguages(found []string) ([]string, error) {
	options := make([]prompt.Option, 0, len(i18n.CommonLanguages)+len(found)+1)
	for _, l := range i18n.CommonLanguages {
		options = append(options, prompt.Option{Value: l.Code, Label: l.Label})
	}

	for _, lang := range found {
		if !slices.ContainsFunc(options, func(o prompt.Option) bool { return o.Value == lang }) {
			options = append(options, prompt.Option{Value: lang, Label: i18n.DisplayName(lang)})
		}
	}

	options = append(options, otherOption)

	initial := found
	if len(initial) == 0 {
		initial = []string{"en-us"}
	}

	selected, err := a.Prompter.MultiSelect("Select languages to support:", options, initial)
	if err != nil {
		return nil, err
	}

	return a.withOther(selected,
		"Enter additional languages (comma-separated, e.g., 'sv-se,da-dk'):",
		"At least one language is required",
		i18n.Validate,
	)
}

func (a *App) chooseNamespaces(found []string) ([]string, error) {
	all := slices.Clone(found)

	for _, ns := range DefaultNamespaces {
		if !slices.Contains(all, ns) {
			all = append(all, ns)
		}
	}

	initial := found
	if len(initial) == 0 {
		initial = []string{"common"}
	}

	selected, err := a.Prompter.MultiSelect("Select namespaces:", append(plainOptions(all), otherOption), initial)
	if err != nil {
		return nil, err
	}

	return a.withOther(selected,
		"Enter additional namespaces (comma-separated, e.g., 'dashboard,settings'):",
		"At least one namespace is required",
		validateName,
	)
}

// withOther replaces the "other" choice with a comma-separated list asked
// for separately, and drops duplicates.
func (a *App) withOther(selected []string, message, required string, validate func(string) error) ([]string, error) {
	if !slices.Contains(selected, otherValue) {
		return selected, nil
	}

	input, err := a.Prompter.Text(prompt.TextOptions{
		Message: message,
		Validate: func(s string) error {
			items := splitList(s)
			if len(items) == 0 {
				return errors.New(required)
			}

			for _, item := range items {
				if err := validate(item); err != nil {
					return err
				}
			}

			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	out := slices.DeleteFunc(slices.Clone(selected), func(s string) bool { return s == otherValue })

	for _, item := range splitList(input) {
		if !slices.Contains(out, item) {
			out = append(out, item)
		}
	}

	return out, nil
}

func plainOptions(values []string) []prompt.Option {
	out := make([]prompt.Option, 0, len(values))
	for _, v := range values {
		out = append(out, prompt.Option{Value: v})
	}

	return out
}
