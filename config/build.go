// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"runtime/debug"
	"strings"
)

// BuildVersion is the latest tagged release of tcli.
const BuildVersion string = "v1.0.0"

const shortRevisionLength = 8

type buildInfo struct {
	VcsRevision string
	VcsTime     string
	VcsModified bool
}

// Revision returns the commit date and short hash the binary was built from.
func (b *buildInfo) Revision() string {
	if b.VcsRevision == "" {
		return "unknown"
	}

	rev := b.VcsRevision
	if len(rev) > shortRevisionLength {
		rev = rev[:shortRevisionLength]
	}

	date, _, _ := strings.Cut(b.VcsTime, "T")

	s := date + "-" + rev
	if b.VcsModified {
		s += "+dirty"
	}

	return s
}

// Version is shown by `tcli --version`.
func (b *buildInfo) Version() string {
	return BuildVersion + " (" + b.Revision() + ")"
}

func (b *buildInfo) load() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			b.VcsRevision = kv.Value
		case "vcs.time":
			b.VcsTime = kv.Value
		case "vcs.modified":
			b.VcsModified = kv.Value == "true"
		}
	}
}
