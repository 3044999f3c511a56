// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/tcli/tcli/config"
	"codeberg.org/tcli/tcli/prompt"
	"codeberg.org/tcli/tcli/store"
	"codeberg.org/tcli/tcli/translate"
	"codeberg.org/tcli/tcli/tree"
)

// KeyOptions selects a key and its value. Empty fields fall back to prompts
// or to the project's default namespace and source language.
type KeyOptions struct {
	Key       string
	Value     string
	Namespace string
	Lang      string
}

// Add adds a key. In the source language the value is then translated into
// every other language, one language at a time. In any other language
// without a value, the source language's value is translated.
func (a *App) Add(ctx context.Context, opts KeyOptions) error {
	return a.inProject(func(p *config.Project, st *store.Store) error {
		ns, err := namespaceOf(p, opts.Namespace)
		if err != nil {
			return err
		}

		lang, err := languageOf(p, opts.Lang)
		if err != nil {
			return err
		}

		path, err := a.askKey(opts.Key, "Enter translation key:")
		if err != nil {
			return err
		}

		target, err := st.Load(lang, ns)
		if err != nil {
			return err
		}

		if target.Has(path) {
			overwrite, err := a.Prompter.Confirm(fmt.Sprintf("Key '%s' already exists. Overwrite?", path), false)
			if err != nil || !overwrite {
				return err
			}
		}

		if lang != p.SourceLang {
			return a.addTranslated(ctx, p, st, ns, lang, path, target, opts.Value)
		}

		value := opts.Value
		if value == "" {
			value, err = a.Prompter.Text(prompt.TextOptions{
				Message:  fmt.Sprintf("Enter value for '%s':", path),
				Validate: prompt.Required("Value is required"),
			})
			if err != nil {
				return err
			}
		}

		if value == "" {
			return ErrValueRequired
		}

		tr, err := a.translatorFor(p)
		if err != nil {
			return err
		}

		target.Set(path, value)

		if err := st.Save(lang, ns, target); err != nil {
			return err
		}

		a.printf(ns, "Added successfully")

		if err := a.propagate(ctx, tr, p, st, ns, path, value); err != nil {
			return err
		}

		a.printf(ns, "Translated to all languages")

		return nil
	})
}

// addTranslated sets path in a non-source language, translating the source
// value unless the operator supplied one.
func (a *App) addTranslated(
	ctx context.Context,
	p *config.Project,
	st *store.Store,
	ns, lang string,
	path tree.Path,
	target tree.Node,
	value string,
) error {
	if value == "" {
		source, err := st.Load(p.SourceLang, ns)
		if err != nil {
			return err
		}

		sourceValue, ok := source.Get(path)
		if !ok {
			return fmt.Errorf("%w: %s in %s", ErrSourceKeyNotFound, path, p.SourceLang)
		}

		tr, err := a.NewTranslator()
		if err != nil {
			return err
		}

		value, err = tr.Translate(ctx, sourceValue, p.SourceLang, lang)
		if err != nil {
			return err
		}
	}

	target.Set(path, value)

	if err := st.Save(lang, ns, target); err != nil {
		return err
	}

	a.printf(ns, "Added successfully")

	return nil
}

// Update replaces the value of an existing key. Updating the source language
// re-translates the key into every other language.
func (a *App) Update(ctx context.Context, opts KeyOptions) error {
	return a.inProject(func(p *config.Project, st *store.Store) error {
		ns, err := namespaceOf(p, opts.Namespace)
		if err != nil {
			return err
		}

		lang, err := languageOf(p, opts.Lang)
		if err != nil {
			return err
		}

		path, err := a.askKey(opts.Key, "Enter translation key to update:")
		if err != nil {
			return err
		}

		value := opts.Value
		if value == "" {
			value, err = a.Prompter.Text(prompt.TextOptions{
				Message:  fmt.Sprintf("Enter new value for '%s':", path),
				Validate: prompt.Required("Value is required"),
			})
			if err != nil {
				return err
			}
		}

		target, err := st.Load(lang, ns)
		if err != nil {
			return err
		}

		if !target.Has(path) {
			return fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}

		var tr translate.Translator

		if lang == p.SourceLang {
			if tr, err = a.translatorFor(p); err != nil {
				return err
			}
		}

		target.Set(path, value)

		if err := st.Save(lang, ns, target); err != nil {
			return err
		}

		a.printf(ns, "Updated successfully")

		if lang != p.SourceLang {
			return nil
		}

		if err := a.propagate(ctx, tr, p, st, ns, path, value); err != nil {
			return err
		}

		a.printf(ns, "Updated in all languages")

		return nil
	})
}

// RemoveOptions selects the key to remove. Without Lang the key is removed
// from every language.
type RemoveOptions struct {
	Key       string
	Namespace string
	Lang      string
}

// Remove deletes a key, or a whole subtree when the key addresses one.
func (a *App) Remove(opts RemoveOptions) error {
	return a.inProject(func(p *config.Project, st *store.Store) error {
		ns, err := namespaceOf(p, opts.Namespace)
		if err != nil {
			return err
		}

		path, err := a.askKey(opts.Key, "Enter translation key to remove:")
		if err != nil {
			return err
		}

		if opts.Lang != "" {
			lang, err := languageOf(p, opts.Lang)
			if err != nil {
				return err
			}

			return a.removeFrom(st, ns, lang, path)
		}

		source, err := st.Load(p.SourceLang, ns)
		if err != nil {
			return err
		}

		if _, ok := source.Lookup(path); !ok {
			return fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}

		confirmed, err := a.Prompter.Confirm(fmt.Sprintf("Remove '%s' from all languages?", path), false)
		if err != nil || !confirmed {
			return err
		}

		for _, lang := range p.Langs {
			n, err := st.Load(lang, ns)
			if err != nil {
				return err
			}

			if _, ok := n.Lookup(path); !ok {
				continue
			}

			n.Delete(path)

			if err := st.Save(lang, ns, n); err != nil {
				return err
			}
		}

		a.printf(ns, "Removed from all languages")

		return nil
	})
}

func (a *App) removeFrom(st *store.Store, ns, lang string, path tree.Path) error {
	n, err := st.Load(lang, ns)
	if err != nil {
		return err
	}

	if _, ok := n.Lookup(path); !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, path)
	}

	confirmed, err := a.Prompter.Confirm(fmt.Sprintf("Remove '%s' from %s?", path, lang), false)
	if err != nil || !confirmed {
		return err
	}

	n.Delete(path)

	if err := st.Save(lang, ns, n); err != nil {
		return err
	}

	a.printf(ns, "Removed successfully")

	return nil
}

// BatchOptions selects the batch file and the target languages. Without
// Langs every language except the source language is targeted.
type BatchOptions struct {
	File      string
	Namespace string
	Langs     []string
}

// Batch translates every entry of a JSON file, flat or nested, with one
// call per target language and merges the results into each language.
func (a *App) Batch(ctx context.Context, opts BatchOptions) error {
	return a.inProject(func(p *config.Project, st *store.Store) error {
		ns, err := namespaceOf(p, opts.Namespace)
		if err != nil {
			return err
		}

		file := opts.File
		if file == "" {
			file, err = a.Prompter.Text(prompt.TextOptions{
				Message:  "Enter path to JSON file with translations:",
				Validate: prompt.Required("File path is required"),
			})
			if err != nil {
				return err
			}
		}

		entries, err := readBatchFile(file)
		if err != nil {
			return err
		}

		targets := opts.Langs
		if len(targets) == 0 {
			targets = p.Targets()
		}

		tr, err := a.NewTranslator()
		if err != nil {
			return err
		}

		for _, lang := range targets {
			if !p.HasLanguage(lang) {
				a.logger.Warn().
					Str("lang", lang).
					Msg("Language not supported, skipping")

				continue
			}

			n, err := st.Load(lang, ns)
			if err != nil {
				return err
			}

			translated, err := tr.TranslateBatch(ctx, entries, p.SourceLang, lang)
			if err != nil {
				return err
			}

			for _, key := range translated.Keys() {
				path, err := tree.ParsePath(key)
				if err != nil {
					a.logger.Warn().Err(err).Str("key", key).Msg("Skipping batch entry")

					continue
				}

				n.Set(path, translated[key])
			}

			if err := st.Save(lang, ns, n); err != nil {
				return err
			}

			a.printf(ns, "Translated %d keys to %s", len(translated), lang)
		}

		a.printf(ns, "Batch translation completed")

		return nil
	})
}

func readBatchFile(file string) (tree.Flat, error) {
	data, err := os.ReadFile(file) // #nosec G304 -- path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBatchFile, file, err)
	}

	n, err := tree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBatchFile, file, err)
	}

	return tree.Flatten(n), nil
}

// translatorFor returns a translator when the project has languages to
// translate into. It is created before any file is written so a missing
// credential fails the command cleanly.
func (a *App) translatorFor(p *config.Project) (translate.Translator, error) {
	if len(p.Targets()) == 0 {
		return nil, nil
	}

	return a.NewTranslator()
}

// propagate translates value into every non-source language. Each language
// is saved before the next is translated, so a failure leaves earlier
// languages written.
func (a *App) propagate(
	ctx context.Context,
	tr translate.Translator,
	p *config.Project,
	st *store.Store,
	ns string,
	path tree.Path,
	value string,
) error {
	for _, lang := range p.Targets() {
		n, err := st.Load(lang, ns)
		if err != nil {
			return err
		}

		translated, err := tr.Translate(ctx, value, p.SourceLang, lang)
		if err != nil {
			return fmt.Errorf("translating to %s: %w", lang, err)
		}

		n.Set(path, translated)

		if err := st.Save(lang, ns, n); err != nil {
			return err
		}

		a.logger.Info().
			Str("lang", lang).
			Str("key", path.String()).
			Msg("Translated")
	}

	return nil
}
