// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/tcli/tcli/i18n"
	"codeberg.org/tcli/tcli/translate"
	"codeberg.org/tcli/tcli/tree"
)

func TestLanguageAddWithoutTranslation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)

	require.NoError(t, f.app.LanguageAdd(context.Background(), "fr-fr"))

	assert.Equal(t, []string{"de-de", "en-us", "fr-fr", "pt-br"}, f.project(t).Langs)
	assert.Empty(t, f.tree(t, "fr-fr", "common"))
	assert.FileExists(t, f.store.Path("fr-fr", "home"))
	assert.Empty(t, f.translator.calls)
	assert.Equal(t, []string{"Auto-translate all existing keys to fr-fr?"}, f.prompter.asked)
	assert.Equal(t, "[common] Language added\n", f.out.String())
}

func TestLanguageAddTranslates(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	f.seed(t, "fr-fr", "common", tree.Node{"extra": tree.Leaf("kept")})

	require.NoError(t, f.app.LanguageAdd(context.Background(), "fr-fr"))

	fr := f.tree(t, "fr-fr", "common")
	assert.Equal(t, "[fr-fr] Hi", get(t, fr, "home.title"))
	assert.Equal(t, "[fr-fr] Bye", get(t, fr, "bye"))
	assert.Equal(t, "kept", get(t, fr, "extra"))

	// home has no keys in the source language, so nothing is sent for it.
	assert.Equal(t, []string{"en-us>>fr-fr"}, f.translator.calls)
	assert.Equal(t, "[common] Language added and translated\n", f.out.String())
}

func TestLanguageAddTranslationFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	f.translator.failOn = "fr-fr"
	f.translator.err = &translate.APIError{StatusCode: 503, Err: translate.ErrOverloaded}

	err := f.app.LanguageAdd(context.Background(), "fr-fr")
	require.ErrorIs(t, err, translate.ErrOverloaded)

	// The language stays registered with empty files.
	assert.Contains(t, f.project(t).Langs, "fr-fr")
	assert.Empty(t, f.tree(t, "fr-fr", "common"))
}

func TestLanguageAddErrors(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	assert.ErrorIs(t, f.app.LanguageAdd(context.Background(), "de-de"), ErrLanguageExists)
	assert.ErrorIs(t, f.app.LanguageAdd(context.Background(), "../x"), i18n.ErrInvalidCode)
	assert.Equal(t, []string{"de-de", "en-us", "pt-br"}, f.project(t).Langs)
}

func TestLanguageRemove(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	f.seed(t, "pt-br", "common", tree.Node{"bye": tree.Leaf("Tchau")})

	require.NoError(t, f.app.LanguageRemove("pt-br"))

	assert.Equal(t, []string{"de-de", "en-us"}, f.project(t).Langs)

	_, err := os.Stat(filepath.Join(f.store.Base(), "pt-br"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, "[common] Language removed\n", f.out.String())
}

func TestLanguageRemoveErrors(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	assert.ErrorIs(t, f.app.LanguageRemove("en-us"), ErrRemoveSourceLanguage)
	assert.ErrorIs(t, f.app.LanguageRemove("fr-fr"), ErrLanguageNotFound)
}

func TestLanguageList(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.NoError(t, f.app.LanguageList())
	assert.Equal(t, ""+
		"[common] Languages:\n"+
		"  de-de - German (Germany)\n"+
		"  en-us - English (US) (source)\n"+
		"  pt-br - Portuguese (Brazil)\n", f.out.String())
}

func TestMerge(t *testing.T) {
	t.Parallel()

	dst := tree.Node{"a": tree.Leaf("1"), "b": tree.Node{"c": tree.Leaf("2")}}
	merge(dst, tree.Node{"b": tree.Node{"d": tree.Leaf("3")}, "a": tree.Leaf("4")})

	assert.Equal(t, tree.Node{
		"a": tree.Leaf("4"),
		"b": tree.Node{"c": tree.Leaf("2"), "d": tree.Leaf("3")},
	}, dst)
}
