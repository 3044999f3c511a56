// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"codeberg.org/tcli/tcli/config"
	"codeberg.org/tcli/tcli/store"
	"codeberg.org/tcli/tcli/verify"
)

// Verify prints the keys each language is missing per namespace. With
// strict, gaps also fail the command with verify.ErrCoverageGaps.
func (a *App) Verify(strict bool) error {
	return a.inProject(func(p *config.Project, st *store.Store) error {
		report, err := verify.Run(st, p.Namespaces, p.Langs)
		if err != nil {
			return err
		}

		if err := report.Write(a.Out, p.DefaultNamespace); err != nil {
			return err
		}

		if strict {
			return report.Err()
		}

		return nil
	})
}
