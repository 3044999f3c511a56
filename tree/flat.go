// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tree

import (
	"slices"
	"strings"
)

// Flat maps dotted paths to leaf values.
type Flat map[string]string

// Flatten returns one entry per leaf below n, keyed by its dotted path.
// Nodes never appear as entries, so nodes without leaves are dropped.
func Flatten(n Node) Flat {
	out := make(Flat)

	walk(n, nil, func(p Path, leaf Leaf) {
		out[p.String()] = string(leaf)
	})

	return out
}

// Unflatten builds a Node by applying Set for every entry of f.
//
// Entries are applied in ascending key order so that colliding entries such
// as "a" and "a.b" always resolve the same way. Keys with empty segments are
// split as-is.
func Unflatten(f Flat) Node {
	out := New()

	for _, key := range f.Keys() {
		out.Set(Path(strings.Split(key, Separator)), f[key])
	}

	return out
}

// Keys returns the keys of f in ascending order.
func (f Flat) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// LeafPaths returns the dotted paths of every leaf below n in ascending order.
func LeafPaths(n Node) []string {
	return Flatten(n).Keys()
}
