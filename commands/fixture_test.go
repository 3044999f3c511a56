// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/tcli/tcli/config"
	"codeberg.org/tcli/tcli/prompt"
	"codeberg.org/tcli/tcli/store"
	"codeberg.org/tcli/tcli/translate"
	"codeberg.org/tcli/tcli/tree"
)

// scriptedPrompter answers prompts from a fixed list. An answer may be an
// error, which the prompt returns instead.
type scriptedPrompter struct {
	t       *testing.T
	answers []any
	asked   []string
}

func (p *scriptedPrompter) next(message string) any {
	p.t.Helper()

	p.asked = append(p.asked, message)

	if len(p.answers) == 0 {
		p.t.Fatalf("unexpected prompt %q", message)
	}

	a := p.answers[0]
	p.answers = p.answers[1:]

	return a
}

func (p *scriptedPrompter) Text(opts prompt.TextOptions) (string, error) {
	a := p.next(opts.Message)
	if err, ok := a.(error); ok {
		return "", err
	}

	s, _ := a.(string)

	if opts.Validate != nil {
		require.NoError(p.t, opts.Validate(s), "answer to %q", opts.Message)
	}

	return s, nil
}

func (p *scriptedPrompter) Confirm(message string, _ bool) (bool, error) {
	a := p.next(message)
	if err, ok := a.(error); ok {
		return false, err
	}

	b, _ := a.(bool)

	return b, nil
}

func (p *scriptedPrompter) Select(message string, options []prompt.Option) (string, error) {
	a := p.next(message)
	if err, ok := a.(error); ok {
		return "", err
	}

	s, _ := a.(string)

	for _, o := range options {
		if o.Value == s {
			return s, nil
		}
	}

	p.t.Fatalf("%q is not an option of %q", s, message)

	return "", nil
}

func (p *scriptedPrompter) MultiSelect(message string, _ []prompt.Option, _ []string) ([]string, error) {
	a := p.next(message)
	if err, ok := a.(error); ok {
		return nil, err
	}

	s, _ := a.([]string)

	return s, nil
}

// fakeTranslator prefixes values with the target language.
type fakeTranslator struct {
	calls []string

	// failOn makes calls into this language fail with err.
	failOn string
	err    error

	// drop is left out of batch results.
	drop string
}

func (f *fakeTranslator) Translate(_ context.Context, text, from, to string) (string, error) {
	f.calls = append(f.calls, from+">"+to)

	if to == f.failOn {
		return "", f.err
	}

	return "[" + to + "] " + text, nil
}

func (f *fakeTranslator) TranslateBatch(_ context.Context, entries tree.Flat, from, to string) (tree.Flat, error) {
	f.calls = append(f.calls, from+">>"+to)

	if to == f.failOn {
		return nil, f.err
	}

	out := make(tree.Flat, len(entries))

	for k, v := range entries {
		if k != f.drop {
			out[k] = "[" + to + "] " + v
		}
	}

	return out, nil
}

type fixture struct {
	app        *App
	dir        string
	out        *bytes.Buffer
	prompter   *scriptedPrompter
	translator *fakeTranslator
	store      *store.Store
}

// newFixture creates a project with languages de-de, en-us (source) and
// pt-br, namespaces common (default) and home, and an English common tree.
func newFixture(t *testing.T, answers ...any) *fixture {
	t.Helper()

	dir := t.TempDir()

	p := &config.Project{
		DefaultNamespace: "common",
		LangDir:          "lang",
		Langs:            []string{"de-de", "en-us", "pt-br"},
		Namespaces:       []string{"common", "home"},
		SourceLang:       "en-us",
	}
	require.NoError(t, p.Save(filepath.Join(dir, config.ProjectFile)))

	f := &fixture{
		dir:        dir,
		out:        &bytes.Buffer{},
		prompter:   &scriptedPrompter{t: t, answers: answers},
		translator: &fakeTranslator{},
		store:      store.New(filepath.Join(dir, "lang")),
	}

	f.app = &App{
		ConfigPath: filepath.Join(dir, config.ProjectFile),
		Settings:   &config.Settings{},
		Prompter:   f.prompter,
		NewTranslator: func() (translate.Translator, error) {
			return f.translator, nil
		},
	}
	require.NoError(t, f.app.setup(context.Background(), nil, f.out, f.out))

	f.seed(t, "en-us", "common", tree.Node{
		"home": tree.Node{"title": tree.Leaf("Hi")},
		"bye":  tree.Leaf("Bye"),
	})

	return f
}

func (f *fixture) seed(t *testing.T, lang, ns string, n tree.Node) {
	t.Helper()

	require.NoError(t, f.store.Save(lang, ns, n))
}

func (f *fixture) tree(t *testing.T, lang, ns string) tree.Node {
	t.Helper()

	n, err := f.store.Load(lang, ns)
	require.NoError(t, err)

	return n
}

func (f *fixture) project(t *testing.T) *config.Project {
	t.Helper()

	p, err := config.LoadProject(f.app.ConfigPath)
	require.NoError(t, err)

	return p
}

func get(t *testing.T, n tree.Node, key string) string {
	t.Helper()

	v, ok := n.Get(tree.MustParsePath(key))
	require.True(t, ok, "key %s", key)

	return v
}
