// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"fmt"
	"slices"

	"codeberg.org/tcli/tcli/config"
	"codeberg.org/tcli/tcli/store"
)

// NamespaceAdd registers a namespace and creates its file in every language
// that does not have one yet.
func (a *App) NamespaceAdd(name string) error {
	return a.inProject(func(p *config.Project, st *store.Store) error {
		if err := validateName(name); err != nil {
			return err
		}

		if p.HasNamespace(name) {
			return fmt.Errorf("%w: %s", ErrNamespaceExists, name)
		}

		p.Namespaces = append(p.Namespaces, name)
		slices.Sort(p.Namespaces)

		if err := p.Save(""); err != nil {
			return err
		}

		for _, lang := range p.Langs {
			if err := st.Ensure(lang, name); err != nil {
				return err
			}
		}

		a.printf(p.DefaultNamespace, "Namespace added")

		return nil
	})
}

// NamespaceRemove unregisters a namespace and deletes its files.
func (a *App) NamespaceRemove(name string) error {
	return a.inProject(func(p *config.Project, st *store.Store) error {
		if !p.HasNamespace(name) {
			return fmt.Errorf("%w: %s", ErrNamespaceNotFound, name)
		}

		if name == p.DefaultNamespace {
			return ErrRemoveDefaultNamespace
		}

		confirmed, err := a.Prompter.Confirm(fmt.Sprintf("Remove namespace '%s' and all its translations?", name), false)
		if err != nil || !confirmed {
			return err
		}

		p.Namespaces = slices.DeleteFunc(p.Namespaces, func(ns string) bool { return ns == name })

		if err := p.Save(""); err != nil {
			return err
		}

		for _, lang := range p.Langs {
			if err := st.RemoveNamespace(lang, name); err != nil {
				return err
			}
		}

		a.printf(p.DefaultNamespace, "Namespace removed")

		return nil
	})
}

// NamespaceList prints the namespaces and marks the default one.
func (a *App) NamespaceList() error {
	return a.inProject(func(p *config.Project, _ *store.Store) error {
		a.printf(p.DefaultNamespace, "Namespaces:")

		for _, ns := range p.Namespaces {
			marker := ""
			if ns == p.DefaultNamespace {
				marker = " (default)"
			}

			fmt.Fprintf(a.Out, "  %s%s\n", ns, marker)
		}

		return nil
	})
}

// NamespaceDefault makes name the default namespace.
func (a *App) NamespaceDefault(name string) error {
	return a.inProject(func(p *config.Project, _ *store.Store) error {
		if !p.HasNamespace(name) {
			return fmt.Errorf("%w: %s", ErrNamespaceNotFound, name)
		}

		p.DefaultNamespace = name

		if err := p.Save(""); err != nil {
			return err
		}

		a.printf(name, "Default namespace updated")

		return nil
	})
}
