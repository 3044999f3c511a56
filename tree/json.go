// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	errInvalidJSON      = errors.New("invalid JSON")
	errNotAnObject      = errors.New("translation data must be a JSON object")
	errUnsupportedValue = errors.New("unsupported value")
)

// Parse decodes a JSON object into a Node.
//
// Strings become leaves and objects become nodes. Numbers and booleans are
// kept as leaves holding their JSON text. Arrays and null values are
// rejected because they could not be written back unchanged.
// Whitespace-only input decodes to an empty Node.
func Parse(data []byte) (Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}

	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errNotAnObject
	}

	return parseObject(root, nil)
}

func parseObject(obj gjson.Result, prefix Path) (Node, error) {
	out := New()

	var err error

	obj.ForEach(func(key, value gjson.Result) bool {
		p := append(prefix, key.String()) //nolint:gocritic // scratch slice, only used for messages

		switch {
		case value.IsObject():
			var child Node

			child, err = parseObject(value, p)
			if err != nil {
				return false
			}

			out[key.String()] = child
		case value.IsArray():
			err = fmt.Errorf("%w at %q: arrays are not supported", errUnsupportedValue, p.String())

			return false
		case value.Type == gjson.Null:
			err = fmt.Errorf("%w at %q: null values are not supported", errUnsupportedValue, p.String())

			return false
		case value.Type == gjson.String:
			out[key.String()] = Leaf(value.Str)
		default:
			out[key.String()] = Leaf(value.Raw)
		}

		return true
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// Marshal encodes n as pretty-printed JSON with two-space indentation.
//
// Keys are written in ascending order at every level and HTML characters
// are not escaped, so markup inside translations stays readable.
func Marshal(n Node) ([]byte, error) {
	if n == nil {
		n = New()
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("failed to encode translations: %w", err)
	}

	return buf.Bytes(), nil
}
