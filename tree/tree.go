// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tree

import (
	"errors"
	"fmt"
	"strings"
)

// Separator joins the segments of a Path in its textual form.
const Separator = "."

var errInvalidPath = errors.New("invalid key path")

// Value is either a Leaf or a Node.
type Value interface {
	isValue()
}

// Leaf is a translated string.
type Leaf string

// Node maps key segments to leaves or nested nodes.
//
// The zero value is not usable for Set; use [New] or a literal.
type Node map[string]Value

func (Leaf) isValue() {}
func (Node) isValue() {}

// New returns an empty Node.
func New() Node {
	return Node{}
}

// Path addresses a leaf or node inside a Node.
type Path []string

// ParsePath splits s on Separator.
//
// It rejects the empty string and paths with empty segments such as "a..b" or ".a".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: key is empty", errInvalidPath)
	}

	segments := strings.Split(s, Separator)
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", errInvalidPath, s)
		}
	}

	return Path(segments), nil
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}

	return p
}

// String returns the dotted form of p.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// parent walks every segment but the last and returns the node that holds
// the final segment. It does not create anything.
func (n Node) parent(p Path) (Node, bool) {
	if len(p) == 0 || n == nil {
		return nil, false
	}

	current := n

	for _, segment := range p[:len(p)-1] {
		next, ok := current[segment].(Node)
		if !ok {
			return nil, false
		}

		current = next
	}

	return current, true
}

// Lookup returns whatever p addresses, leaf or node.
func (n Node) Lookup(p Path) (Value, bool) {
	holder, ok := n.parent(p)
	if !ok {
		return nil, false
	}

	v, ok := holder[p[len(p)-1]]

	return v, ok
}

// Get returns the leaf value at p.
//
// A path that ends on a node, or runs through a leaf, is reported as absent.
func (n Node) Get(p Path) (string, bool) {
	v, ok := n.Lookup(p)
	if !ok {
		return "", false
	}

	leaf, ok := v.(Leaf)

	return string(leaf), ok
}

// Has reports whether Get would return a value, including an empty string.
func (n Node) Has(p Path) bool {
	_, ok := n.Get(p)

	return ok
}

// Set assigns value at p, creating intermediate nodes and replacing any leaf
// that is in the way. An empty path is ignored.
func (n Node) Set(p Path, value string) {
	if len(p) == 0 {
		return
	}

	current := n

	for _, segment := range p[:len(p)-1] {
		next, ok := current[segment].(Node)
		if !ok || next == nil {
			next = Node{}
			current[segment] = next
		}

		current = next
	}

	current[p[len(p)-1]] = Leaf(value)
}

// Delete removes whatever p addresses. Missing prefixes make it a no-op.
func (n Node) Delete(p Path) {
	holder, ok := n.parent(p)
	if !ok {
		return
	}

	delete(holder, p[len(p)-1])
}

// Len returns the number of leaves below n.
func (n Node) Len() int {
	count := 0

	walk(n, nil, func(Path, Leaf) { count++ })

	return count
}

// walk visits every leaf below n with its full path. The path slice passed
// to fn is reused between calls.
func walk(n Node, prefix Path, fn func(Path, Leaf)) {
	for key, v := range n {
		p := append(prefix, key) //nolint:gocritic // reused scratch slice

		switch v := v.(type) {
		case Leaf:
			fn(p, v)
		case Node:
			walk(v, p, fn)
		}
	}
}
