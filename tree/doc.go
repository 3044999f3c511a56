// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package tree models the translation strings of one language and namespace
as a tree whose inner nodes are [Node] values and whose leaves are [Leaf]
strings.

# Addressing

A [Path] is a non-empty list of segments. Its textual form joins the
segments with ".":

	p, _ := tree.ParsePath("home.title")
	n.Set(p, "Welcome")
	v, ok := n.Get(p)

The separator cannot be escaped. A key that itself contains "." cannot be
addressed through a Path; such keys still load, save and flatten, but
their flattened form is ambiguous.

# Overwrite rules

Set replaces anything in its way. A leaf that sits where Set needs an inner
node is replaced by a new empty node, and whatever sits at the final
segment (leaf or node) is replaced by the new leaf:

	n := tree.Node{"a": tree.Leaf("leaf")}
	n.Set(tree.Path{"a", "b"}, "v") // n == {"a": {"b": "v"}}

Delete never prunes ancestors that become empty.

# Flat form

[Flatten] and [Unflatten] convert between a Node and a [Flat] mapping of
dotted paths to leaf values. Nodes without any leaf below them disappear in
the round trip.
*/
package tree
