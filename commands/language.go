// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"context"
	"fmt"
	"slices"

	"codeberg.org/tcli/tcli/config"
	"codeberg.org/tcli/tcli/i18n"
	"codeberg.org/tcli/tcli/store"
	"codeberg.org/tcli/tcli/tree"
)

// LanguageAdd registers a language, creates its namespace files and
// optionally translates every namespace from the source language.
func (a *App) LanguageAdd(ctx context.Context, lang string) error {
	return a.inProject(func(p *config.Project, st *store.Store) error {
		if err := i18n.Validate(lang); err != nil {
			return err
		}

		if p.HasLanguage(lang) {
			return fmt.Errorf("%w: %s", ErrLanguageExists, lang)
		}

		p.Langs = append(p.Langs, lang)
		slices.Sort(p.Langs)

		if err := p.Save(""); err != nil {
			return err
		}

		for _, ns := range p.Namespaces {
			if err := st.Ensure(lang, ns); err != nil {
				return err
			}
		}

		auto, err := a.Prompter.Confirm(fmt.Sprintf("Auto-translate all existing keys to %s?", lang), true)
		if err != nil {
			return err
		}

		if !auto {
			a.printf(p.DefaultNamespace, "Language added")

			return nil
		}

		tr, err := a.NewTranslator()
		if err != nil {
			return err
		}

		for _, ns := range p.Namespaces {
			source, err := st.Load(p.SourceLang, ns)
			if err != nil {
				return err
			}

			entries := tree.Flatten(source)
			if len(entries) == 0 {
				continue
			}

			translated, err := tr.TranslateBatch(ctx, entries, p.SourceLang, lang)
			if err != nil {
				return fmt.Errorf("translating %s: %w", ns, err)
			}

			target, err := st.Load(lang, ns)
			if err != nil {
				return err
			}

			merge(target, tree.Unflatten(translated))

			if err := st.Save(lang, ns, target); err != nil {
				return err
			}

			a.logger.Info().
				Str("lang", lang).
				Str("ns", ns).
				Int("keys", len(translated)).
				Msg("Translated namespace")
		}

		a.printf(p.DefaultNamespace, "Language added and translated")

		return nil
	})
}

// merge sets every leaf of src into dst.
func merge(dst, src tree.Node) {
	flat := tree.Flatten(src)

	for _, key := range flat.Keys() {
		if path, err := tree.ParsePath(key); err == nil {
			dst.Set(path, flat[key])
		}
	}
}

// LanguageRemove unregisters a language and deletes its directory.
func (a *App) LanguageRemove(lang string) error {
	return a.inProject(func(p *config.Project, st *store.Store) error {
		if !p.HasLanguage(lang) {
			return fmt.Errorf("%w: %s", ErrLanguageNotFound, lang)
		}

		if lang == p.SourceLang {
			return ErrRemoveSourceLanguage
		}

		confirmed, err := a.Prompter.Confirm(fmt.Sprintf("Remove language '%s' and all its translations?", lang), false)
		if err != nil || !confirmed {
			return err
		}

		p.Langs = slices.DeleteFunc(p.Langs, func(l string) bool { return l == lang })

		if err := p.Save(""); err != nil {
			return err
		}

		if err := st.RemoveLanguage(lang); err != nil {
			return err
		}

		a.printf(p.DefaultNamespace, "Language removed")

		return nil
	})
}

// LanguageList prints the languages with their English names and marks the
// source language.
func (a *App) LanguageList() error {
	return a.inProject(func(p *config.Project, _ *store.Store) error {
		a.printf(p.DefaultNamespace, "Languages:")

		for _, lang := range p.Langs {
			marker := ""
			if lang == p.SourceLang {
				marker = " (source)"
			}

			fmt.Fprintf(a.Out, "  %s - %s%s\n", lang, i18n.DisplayName(lang), marker)
		}

		return nil
	})
}
