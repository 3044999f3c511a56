// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package verify checks that every language of a namespace carries the same keys.
package verify

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"codeberg.org/tcli/tcli/tree"
)

// ErrCoverageGaps is returned by Report.Err when any language misses keys.
var ErrCoverageGaps = errors.New("some translation keys are missing")

// Loader loads the tree of one language and namespace.
type Loader interface {
	Load(lang, namespace string) (tree.Node, error)
}

// Gap lists the keys one language misses within one namespace.
type Gap struct {
	Namespace string
	Language  string
	Missing   []string
}

// Report is the outcome of a coverage check.
type Report struct {
	Gaps []Gap
}

// FullyCovered reports whether no language misses any key.
func (r Report) FullyCovered() bool {
	return len(r.Gaps) == 0
}

// Err returns ErrCoverageGaps when the report has gaps.
func (r Report) Err() error {
	if r.FullyCovered() {
		return nil
	}

	return fmt.Errorf("%w: %d language/namespace pairs affected", ErrCoverageGaps, len(r.Gaps))
}

// AllKeys returns the union of leaf paths over every tree, in ascending order.
func AllKeys(trees map[string]tree.Node) []string {
	union := make(map[string]struct{})

	for _, n := range trees {
		for key := range tree.Flatten(n) {
			union[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(union))
	for key := range union {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

// Missing returns, per language, the keys of the union that the language's
// tree does not hold as a leaf. Languages without gaps are left out.
func Missing(trees map[string]tree.Node) map[string][]string {
	all := AllKeys(trees)
	out := make(map[string][]string)

	for lang, n := range trees {
		var missing []string

		for _, key := range all {
			if !n.Has(tree.Path(splitKey(key))) {
				missing = append(missing, key)
			}
		}

		if len(missing) > 0 {
			out[lang] = missing
		}
	}

	return out
}

// Namespace checks one namespace. Gaps follow the order of langs.
func Namespace(namespace string, langs []string, trees map[string]tree.Node) []Gap {
	missing := Missing(trees)

	var gaps []Gap

	for _, lang := range langs {
		if keys, ok := missing[lang]; ok {
			gaps = append(gaps, Gap{Namespace: namespace, Language: lang, Missing: keys})
		}
	}

	return gaps
}

// Run loads every (namespace, language) tree through l and checks each namespace.
func Run(l Loader, namespaces, langs []string) (Report, error) {
	var report Report

	for _, namespace := range namespaces {
		trees := make(map[string]tree.Node, len(langs))

		for _, lang := range langs {
			n, err := l.Load(lang, namespace)
			if err != nil {
				return Report{}, err
			}

			trees[lang] = n
		}

		report.Gaps = append(report.Gaps, Namespace(namespace, langs, trees)...)
	}

	return report, nil
}

// Write prints the report. prefix labels the all-present message.
func (r Report) Write(w io.Writer, prefix string) error {
	if r.FullyCovered() {
		_, err := fmt.Fprintf(w, "[%s] All translation keys are present in all namespaces and languages.\n", prefix)

		return err
	}

	for _, gap := range r.Gaps {
		if _, err := fmt.Fprintf(w, "\n[%s] Missing keys in %s:\n", gap.Namespace, gap.Language); err != nil {
			return err
		}

		for _, key := range gap.Missing {
			if _, err := fmt.Fprintf(w, "  - %s\n", key); err != nil {
				return err
			}
		}
	}

	return nil
}

// splitKey turns a flattened key back into a path. Keys whose segments
// contain the separator cannot be told apart from nested ones.
func splitKey(key string) []string {
	return strings.Split(key, tree.Separator)
}
