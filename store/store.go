// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package store reads and writes translation trees laid out as
// <base>/<language>/<namespace>.json.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/tcli/tcli/tree"
)

const (
	fileExtension = ".json"

	dirPermissions  = 0o755
	filePermissions = 0o644
)

var errEmptyName = errors.New("language and namespace must not be empty")

// Store is a directory of translation files.
type Store struct {
	base   string
	logger zerolog.Logger
}

// New returns a Store rooted at base. The directory does not need to exist yet.
func New(base string) *Store {
	return &Store{
		base:   base,
		logger: log.With().Str("sys", "store").Logger(),
	}
}

// Base returns the root directory of the store.
func (s *Store) Base() string {
	return s.base
}

// Path returns the file path of a language and namespace pair.
func (s *Store) Path(lang, namespace string) string {
	return filepath.Join(s.base, lang, namespace+fileExtension)
}

// Load reads the tree for lang and namespace. A missing file yields an empty tree.
func (s *Store) Load(lang, namespace string) (tree.Node, error) {
	if lang == "" || namespace == "" {
		return nil, errEmptyName
	}

	path := s.Path(lang, namespace)

	data, err := os.ReadFile(path) // #nosec G304 -- path is built from configured names
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug().Str("path", path).Msg("No translation file, using empty tree")

		return tree.New(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	n, err := tree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	s.logger.Debug().
		Str("path", path).
		Int("keys", n.Len()).
		Msg("Loaded translation file")

	return n, nil
}

// Save writes n for lang and namespace, creating directories as needed.
// The file is replaced atomically and keys are sorted at every level.
func (s *Store) Save(lang, namespace string, n tree.Node) error {
	if lang == "" || namespace == "" {
		return errEmptyName
	}

	data, err := tree.Marshal(n)
	if err != nil {
		return err
	}

	path := s.Path(lang, namespace)

	if err := WriteFile(path, data); err != nil {
		return err
	}

	s.logger.Debug().
		Str("path", path).
		Int("keys", n.Len()).
		Msg("Saved translation file")

	return nil
}

// Ensure creates an empty tree file for lang and namespace unless one exists.
func (s *Store) Ensure(lang, namespace string) error {
	if _, err := os.Stat(s.Path(lang, namespace)); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", s.Path(lang, namespace), err)
	}

	return s.Save(lang, namespace, tree.New())
}

// RemoveNamespace deletes the namespace file of lang. A missing file is not an error.
func (s *Store) RemoveNamespace(lang, namespace string) error {
	path := s.Path(lang, namespace)

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	s.logger.Debug().Str("path", path).Msg("Removed translation file")

	return nil
}

// RemoveLanguage deletes the directory of lang with every namespace in it.
func (s *Store) RemoveLanguage(lang string) error {
	if lang == "" {
		return errEmptyName
	}

	dir := filepath.Join(s.base, lang)

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}

	s.logger.Debug().Str("path", dir).Msg("Removed language directory")

	return nil
}

// Layout lists what already exists below a store's base directory.
type Layout struct {
	Languages  []string
	Namespaces []string
}

// Scan lists language directories and the union of namespace files found in them.
// A missing base directory yields an empty Layout.
func (s *Store) Scan() (Layout, error) {
	var layout Layout

	entries, err := os.ReadDir(s.base)
	if errors.Is(err, os.ErrNotExist) {
		return layout, nil
	}

	if err != nil {
		return layout, fmt.Errorf("failed to read %s: %w", s.base, err)
	}

	seen := make(map[string]struct{})

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		layout.Languages = append(layout.Languages, entry.Name())

		files, err := os.ReadDir(filepath.Join(s.base, entry.Name()))
		if err != nil {
			return layout, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		for _, file := range files {
			name := file.Name()
			if file.IsDir() || !strings.HasSuffix(name, fileExtension) {
				continue
			}

			namespace := strings.TrimSuffix(name, fileExtension)
			if _, ok := seen[namespace]; !ok {
				seen[namespace] = struct{}{}
				layout.Namespaces = append(layout.Namespaces, namespace)
			}
		}
	}

	slices.Sort(layout.Languages)
	slices.Sort(layout.Namespaces)

	return layout, nil
}

// WriteFile atomically replaces path with data, creating parent directories.
// Newly created files are made world-readable.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	_, statErr := os.Stat(path)
	created := errors.Is(statErr, os.ErrNotExist)

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if created {
		if err := os.Chmod(path, filePermissions); err != nil {
			return fmt.Errorf("failed to set permissions on %s: %w", path, err)
		}
	}

	return nil
}
